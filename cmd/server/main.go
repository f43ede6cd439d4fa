package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nucampus/campus-backend/internal/config"
	"github.com/nucampus/campus-backend/internal/database"
	"github.com/nucampus/campus-backend/internal/handler"
	"github.com/nucampus/campus-backend/internal/logger"
	"github.com/nucampus/campus-backend/internal/mailer"
	"github.com/nucampus/campus-backend/internal/realtime"
	"github.com/nucampus/campus-backend/internal/repository"
	"github.com/nucampus/campus-backend/internal/router"
	"github.com/nucampus/campus-backend/internal/service"
	"github.com/nucampus/campus-backend/internal/validator"
	"github.com/nucampus/campus-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Campus Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	noticeRepo := repository.NewNoticeRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	studentService := service.NewStudentService(studentRepo, userRepo)
	notificationService := service.NewNotificationService(notificationRepo, rdb, log)
	courseService := service.NewCourseService(courseRepo, notificationService, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, studentRepo, userRepo, notificationService, log)
	noticeService := service.NewNoticeService(noticeRepo)
	mediaService := service.NewMediaService(cfg)

	// ─── Realtime Hub ──────────────────────────────────────────────────
	hub := realtime.NewHub(rdb, log)
	go hub.Run(ctx)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, authService, userService),
		Enrollment:   handler.NewEnrollmentHandler(enrollmentService),
		Notification: handler.NewNotificationHandler(notificationService),
		Course:       handler.NewCourseHandler(courseService),
		Student:      handler.NewStudentHandler(studentService),
		User:         handler.NewUserHandler(userService),
		Notice:       handler.NewNoticeHandler(noticeService),
		Media:        handler.NewMediaHandler(mediaService),
		WS:           handler.NewWSHandler(hub, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	sender := mailer.New(cfg, log)
	noticeScheduler := worker.NewNoticeScheduler(noticeRepo, notificationService, rdb, cfg.NoticeSweepInterval, log)
	emailWorker := worker.NewEmailWorker(userRepo, rdb, sender, log)

	go noticeScheduler.Start(workerCtx)
	go emailWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
