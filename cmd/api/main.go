package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/tutorhub/tutorhub-api/internal/config"
	"github.com/tutorhub/tutorhub-api/internal/domain/finance"
	"github.com/tutorhub/tutorhub-api/internal/middleware"
	"github.com/tutorhub/tutorhub-api/internal/pkg/database"
	"github.com/tutorhub/tutorhub-api/internal/pkg/email"
	"github.com/tutorhub/tutorhub-api/internal/pkg/jwt"
	"github.com/tutorhub/tutorhub-api/internal/pkg/logger"
	pkgresponse "github.com/tutorhub/tutorhub-api/internal/pkg/response"
	"github.com/tutorhub/tutorhub-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting TutorHub finance API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Notifiers ----------
	notifiers, closeMail := buildNotifiers(cfg, rdb)
	defer closeMail()

	// ---------- Finance ----------
	financeRepo := finance.NewRepository(db, cfg.FinanceQueryTimeout)
	financeService := finance.NewService(financeRepo, notifiers, finance.Options{
		RecentLimit:       cfg.FinanceRecentLimit,
		DefaultPercentage: cfg.FinanceDefaultPayoutPercent,
	})

	var archiver *finance.ReportArchiver
	reportStore, err := storage.New(storage.Config{
		Backend:   cfg.ReportStorage,
		LocalPath: cfg.ReportLocalPath,
		BaseURL:   cfg.ReportBaseURL,
		R2: storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("backend", cfg.ReportStorage).Msg("Report storage unavailable, archiving disabled")
	} else {
		archiver = finance.NewReportArchiver(reportStore)
	}

	if cfg.MonthlyCloseEnabled && archiver != nil {
		closer, err := finance.NewMonthlyCloser(financeService, archiver, cfg.MonthlyCloseSchedule)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule monthly close")
		}
		closer.Start()
		defer closer.Stop()
	}

	financeHandler := finance.NewHandler(financeService, archiver)

	// ---------- Router ----------
	r := newRouter(cfg, jwtService, financeHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newRouter(cfg *config.Config, jwtService *jwt.Service, financeHandler *finance.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	authMiddleware := middleware.Auth(jwtService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/admin/finance", financeHandler.Routes(authMiddleware, middleware.RequireAdmin()))
		r.Mount("/finance", financeHandler.InstructorRoutes(authMiddleware, middleware.RequireInstructor()))
	})

	return r
}

// buildNotifiers wires the optional payout side effects. The returned func
// drains the email queue.
func buildNotifiers(cfg *config.Config, rdb *redis.Client) (finance.PayoutNotifier, func()) {
	var notifiers finance.MultiNotifier
	closeMail := func() {}

	if pub := finance.NewRedisPublisher(rdb); pub != nil {
		notifiers = append(notifiers, pub)
	}

	if cfg.SendGridAPIKey != "" {
		mailer := email.NewService(email.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		})
		notifiers = append(notifiers, finance.NewEmailNotifier(mailer))
		closeMail = mailer.Close
	} else {
		log.Warn().Msg("SENDGRID_API_KEY not set, payout emails disabled")
	}

	return notifiers, closeMail
}
