package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdv-backend-go/internal/core"
)

// mapServiceError translates core-layer errors to HTTP status codes and a
// JSON ErrorResponse. Unrecognized errors log server-side and answer 500.
func mapServiceError(c *gin.Context, err error) {
	var validationErr *core.ValidationError
	var remoteErr *core.RemoteError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  "Dados inválidos",
			Fields: validationErr.Fields,
		})
	case errors.Is(err, core.ErrEmailConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrEmailConflict.Error()})
	case errors.Is(err, core.ErrColaboradorNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrColaboradorNotFound.Error()})
	case errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrUserNotFound.Error()})
	case errors.As(err, &remoteErr):
		// Identity-provider failures carry a user-facing translated message.
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: remoteErr.Message})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// currentUserID reads the UID placed in the context by the auth middleware,
// answering 401 when it is missing.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return "", false
	}
	return userID.(string), true
}
