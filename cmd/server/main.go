package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beworking/internal/api"
	"beworking/internal/auth"
	"beworking/internal/config"
	"beworking/internal/jobs"
	"beworking/internal/logger"
	"beworking/internal/middleware"
	"beworking/internal/repository"
	"beworking/internal/service"

	"github.com/gorilla/handlers"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logr.Sync()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logr.Fatal("Failed to open DB", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logr.Fatal("Failed to connect to DB", zap.Error(err))
	}

	loc := cfg.Location()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := repository.NewUserRepository(db)
	stripeRepo := repository.NewStripeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	mailboxRepo := repository.NewMailboxRepository(db)
	jobRepo := repository.NewJobRepository(db)

	sender := service.NewSenderService(service.NewNotifier(cfg, logr), logr, loc)
	stripeService := service.NewStripeService(cfg)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	bookingService := service.NewBookingService(bookingRepo, userRepo, sender, logr, loc, time.Now)
	mailboxService := service.NewMailboxService(mailboxRepo, userRepo, sender, logr, time.Now)
	subscriptionService := service.NewSubscriptionService(stripeService, userRepo, stripeRepo, logr, time.Now)
	adminService := service.NewAdminService(bookingRepo, mailboxService)
	jobService := service.NewJobService(jobRepo, logr)

	router := api.NewRouter(api.Handlers{
		Auth:         api.NewAuthHandler(authService, logr),
		User:         api.NewUserHandler(userService, logr),
		Booking:      api.NewBookingHandler(bookingService, logr),
		Mailbox:      api.NewMailboxHandler(mailboxService, logr),
		Subscription: api.NewSubscriptionHandler(subscriptionService, logr),
		Admin:        api.NewAdminHandler(adminService, logr),
		DB:           db,
	}, tokens, cfg.AdminAPIKey)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.RateLimitTrustProxy)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "Stripe-Signature"}),
		handlers.AllowCredentials(),
	)
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(zap.NewStdLog(logr)), handlers.PrintRecoveryStack(!cfg.IsProduction()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := jobs.NewScheduler(logr, jobService, cfg.CronExpireSubscriptions)
	scheduler.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           recovery(cors(middleware.Chain(router, middleware.RequestID, middleware.AccessLog(logr), limiter.Limit))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logr.Info("Server running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("Graceful shutdown failed", zap.Error(err))
	}
	scheduler.Stop()
	sender.Wait()
}
