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

	"learnsphere-backend/internal/api"
	"learnsphere-backend/internal/config"
	"learnsphere-backend/internal/core"
	"learnsphere-backend/internal/db"
	"learnsphere-backend/internal/mailer"
	"learnsphere-backend/internal/middleware"
	"learnsphere-backend/internal/uploader"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()
	clients, err := db.NewClients(initCtx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase clients", zap.Error(err))
	}
	defer clients.Close()

	courseRepo := db.NewFirestoreCourseRepository(clients.Firestore)
	lessonRepo := db.NewFirestoreLessonRepository(clients.Firestore)
	enrollmentRepo := db.NewFirestoreEnrollmentRepository(clients.Firestore)
	reviewRepo := db.NewFirestoreReviewRepository(clients.Firestore)
	certificateRepo := db.NewFirestoreCertificateRepository(clients.Firestore)
	profileRepo := db.NewFirestoreProfileRepository(clients.Firestore)

	var notifier core.Notifier
	if cfg.SMTPHost != "" {
		m, err := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailSender)
		if err != nil {
			logger.Fatal("Failed to configure mailer", zap.Error(err))
		}
		notifier = m
		logger.Info("Enrollment decision notifications enabled", zap.String("smtpHost", cfg.SMTPHost))
	} else {
		logger.Warn("SMTP_HOST not set, enrollment decision notifications disabled")
	}

	courseService := core.NewCourseService(courseRepo, lessonRepo, enrollmentRepo)
	enrollmentService := core.NewEnrollmentService(enrollmentRepo, courseRepo, profileRepo, notifier, logger)
	progressService := core.NewProgressService(enrollmentRepo, lessonRepo)
	certificateService := core.NewCertificateService(certificateRepo)
	reviewService := core.NewReviewService(reviewRepo, enrollmentRepo)
	authoringService := core.NewAuthoringService(courseRepo, lessonRepo)
	profileService := core.NewProfileService(profileRepo)

	var uploadHandler *api.UploadHandler
	if cfg.CloudinaryURL != "" {
		uploadService, err := uploader.New(cfg.CloudinaryURL)
		if err != nil {
			logger.Fatal("Failed to configure uploader", zap.Error(err))
		}
		uploadHandler = api.NewUploadHandler(uploadService, logger)
	}

	if strings.ToLower(cfg.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	if cfg.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(cfg.ClientURL))
	} else {
		logger.Warn("CLIENT_URL not set, CORS middleware disabled")
	}

	authMW := middleware.NewAuthMiddleware(clients.Auth, logger)
	api.SetupRoutes(router, authMW, api.Handlers{
		Course:      api.NewCourseHandler(courseService, reviewService, logger),
		Enrollment:  api.NewEnrollmentHandler(enrollmentService, logger),
		Progress:    api.NewProgressHandler(progressService, logger),
		Certificate: api.NewCertificateHandler(certificateService, progressService, logger),
		Review:      api.NewReviewHandler(reviewService, logger),
		Instructor:  api.NewInstructorHandler(authoringService, logger),
		Profile:     api.NewProfileHandler(profileService, logger),
		Upload:      uploadHandler,
	}, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("address", server.Addr), zap.String("ginMode", gin.Mode()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited gracefully")
}
