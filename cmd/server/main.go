package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pdv-backend-go/internal/api"
	"pdv-backend-go/internal/config"
	"pdv-backend-go/internal/core"
	"pdv-backend-go/internal/db"
	"pdv-backend-go/internal/mailer"
	"pdv-backend-go/internal/middleware"
	"pdv-backend-go/pkg/cache"
	"pdv-backend-go/pkg/messagequeue"
)

func main() {
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("Failed to load application configuration", zap.Error(err))
	}

	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirebase(initCtx, appConfig); err != nil {
		zapLogger.Fatal("Failed to initialize Firebase Admin SDK", zap.Error(err))
	}

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firestoreClient == nil || firebaseAuthClient == nil {
		zapLogger.Fatal("Firestore or Firebase Auth client is nil after initialization")
	}

	// Repositories
	colaboradorRepo := db.NewFirestoreColaboradorRepository(firestoreClient)
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	auditRepo := db.NewFirestoreAuditRepository(firestoreClient)
	authAccounts := db.NewFirebaseAuthAccounts(firebaseAuthClient)

	// Optional Redis cache for the directory working sets.
	var directoryCache cache.Cache
	if appConfig.RedisAddress != "" {
		directoryCache, err = cache.NewRedisCache(initCtx, cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddress,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Warn("Redis unavailable, directory caching disabled", zap.Error(err))
			directoryCache = nil
		}
	}

	// Email delivery: direct SendGrid by default; when RabbitMQ is configured
	// the services publish to the queue and a worker delivers in background.
	deliverySender := mailer.NewSendGridSender(appConfig.SendGridAPIKey, appConfig.SendGridFrom)
	emailSender := deliverySender
	var emailQueue messagequeue.MessageQueue
	if appConfig.RabbitMQURL != "" {
		emailQueue, err = messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{
			URL: appConfig.RabbitMQURL,
		})
		if err != nil {
			zapLogger.Warn("RabbitMQ unavailable, emails will be sent inline", zap.Error(err))
		} else {
			emailSender = mailer.NewQueueSender(emailQueue, appConfig.EmailQueueName)
			worker := mailer.NewMailWorker(emailQueue, appConfig.EmailQueueName, deliverySender, zapLogger)
			if err := worker.Start(context.Background()); err != nil {
				zapLogger.Fatal("Failed to start mail worker", zap.Error(err))
			}
			zapLogger.Info("Mail worker started", zap.String("queue", appConfig.EmailQueueName))
		}
	}

	// Services
	auditService := core.NewAuditService(auditRepo)
	mailService := core.NewMailService(emailSender, appConfig.CompanyName, zapLogger)
	colaboradorService := core.NewColaboradorService(
		colaboradorRepo, userRepo, authAccounts, mailService, auditService, directoryCache, zapLogger,
	)
	authService := core.NewAuthService(userRepo, colaboradorRepo, authAccounts, mailService, zapLogger)

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware skipped: CLIENT_URL is not configured")
	}

	api.SetupRoutes(router, zapLogger, authService, colaboradorService, mailService)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if emailQueue != nil {
		if err := emailQueue.Close(); err != nil {
			zapLogger.Warn("Failed to close message queue cleanly", zap.Error(err))
		}
	}

	zapLogger.Info("Server exiting gracefully.")
}
