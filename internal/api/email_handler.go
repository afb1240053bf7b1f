package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdv-backend-go/internal/core"
	"pdv-backend-go/internal/models"
)

// EmailHandler exposes the transactional email operations directly, for
// administrative resends outside the provisioning and update flows.
type EmailHandler struct {
	mailService core.MailService
}

// NewEmailHandler creates a new EmailHandler.
func NewEmailHandler(ms core.MailService) *EmailHandler {
	return &EmailHandler{mailService: ms}
}

type welcomeEmailRequest struct {
	Email             string `json:"email" binding:"required,email"`
	DisplayName       string `json:"displayName" binding:"required"`
	TemporaryPassword string `json:"temporaryPassword" binding:"required"`
}

type passwordResetEmailRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName,omitempty"`
	ResetLink   string `json:"resetLink" binding:"required"`
}

type statusChangeEmailRequest struct {
	Email       string                   `json:"email" binding:"required,email"`
	DisplayName string                   `json:"displayName,omitempty"`
	NewStatus   models.StatusColaborador `json:"newStatus" binding:"required"`
}

// SendWelcome handles POST /emails/welcome
func (h *EmailHandler) SendWelcome(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req welcomeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.mailService.SendWelcomeEmail(c.Request.Context(), req.Email, req.DisplayName, req.TemporaryPassword); err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Email de boas-vindas enviado com sucesso"})
}

// SendPasswordReset handles POST /emails/password-reset
func (h *EmailHandler) SendPasswordReset(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req passwordResetEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.mailService.SendPasswordResetEmail(c.Request.Context(), req.Email, req.DisplayName, req.ResetLink); err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Email de reset de senha enviado com sucesso"})
}

// SendStatusChange handles POST /emails/status-change
func (h *EmailHandler) SendStatusChange(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req statusChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.mailService.SendStatusChangeEmail(c.Request.Context(), req.Email, req.DisplayName, req.NewStatus); err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Email de mudança de status enviado com sucesso"})
}
