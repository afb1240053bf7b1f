package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pdv-backend-go/internal/core"
	"pdv-backend-go/internal/db"
	"pdv-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (Logging, Recovery, CORS) are applied to the
// router before this is called, in main.go.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	authService core.AuthService,
	colaboradorService core.ColaboradorService,
	mailService core.MailService,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized; routes cannot be secured")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient, logger)

	authHandler := NewAuthHandler(authService)
	colaboradorHandler := NewColaboradorHandler(colaboradorService)
	emailHandler := NewEmailHandler(mailService)

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			// POST /api/v1/auth/session - Called after a client-side sign-in to
			// bootstrap the backend session and flip the first-login flag.
			authGroup.POST("/session", authMW.VerifyToken(), authHandler.InitializeSession)
			authGroup.GET("/me", authMW.VerifyToken(), authHandler.GetProfile)
			authGroup.POST("/password", authMW.VerifyToken(), authHandler.ChangePassword)
			authGroup.GET("/preferences", authMW.VerifyToken(), authHandler.GetPreferences)
			authGroup.PUT("/preferences", authMW.VerifyToken(), authHandler.UpdatePreferences)

			// Public: the reset flow starts from the login screen, before any
			// token exists.
			authGroup.POST("/password-reset", authHandler.RequestPasswordReset)
		}

		colaboradoresGroup := apiV1.Group("/colaboradores", authMW.VerifyToken())
		{
			colaboradoresGroup.GET("", colaboradorHandler.List)
			colaboradoresGroup.POST("", colaboradorHandler.Create)
			colaboradoresGroup.GET("/:id", colaboradorHandler.Get)
			colaboradoresGroup.PATCH("/:id", colaboradorHandler.Update)
			colaboradoresGroup.DELETE("/:id", colaboradorHandler.Delete)
			colaboradoresGroup.PUT("/:id/permissoes", colaboradorHandler.UpdatePermissoes)
			colaboradoresGroup.PATCH("/:id/permissoes/:modulo", colaboradorHandler.TogglePermissao)
		}

		emailsGroup := apiV1.Group("/emails", authMW.VerifyToken())
		{
			emailsGroup.POST("/welcome", emailHandler.SendWelcome)
			emailsGroup.POST("/password-reset", emailHandler.SendPasswordReset)
			emailsGroup.POST("/status-change", emailHandler.SendStatusChange)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "PDV backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
