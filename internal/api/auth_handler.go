package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdv-backend-go/internal/core"
	"pdv-backend-go/internal/models"
)

// AuthHandler handles session bootstrap, password and preference endpoints.
type AuthHandler struct {
	authService core.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as core.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// InitializeSession handles POST /auth/session. Called right after a
// client-side sign-in; flips the first-login flag and tells the client
// whether a password change is required.
func (h *AuthHandler) InitializeSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := h.authService.InitializeSession(c.Request.Context(), userID)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetProfile handles GET /auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword handles POST /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Senha alterada com sucesso"})
}

// RequestPasswordReset handles POST /auth/password-reset. Always answers
// success so callers cannot probe which addresses have accounts.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Se o email existir, um link de reset foi enviado"})
}

// GetPreferences handles GET /auth/preferences
func (h *AuthHandler) GetPreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	prefs, err := h.authService.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /auth/preferences
func (h *AuthHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	prefs, err := h.authService.UpdatePreferences(c.Request.Context(), userID, req)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
