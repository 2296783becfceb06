package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/healthsync-ai/scheduler/internal/api/router"
	"github.com/healthsync-ai/scheduler/internal/capacity"
	"github.com/healthsync-ai/scheduler/internal/compliance"
	appconfig "github.com/healthsync-ai/scheduler/internal/config"
	"github.com/healthsync-ai/scheduler/internal/followup"
	"github.com/healthsync-ai/scheduler/internal/forecast"
	"github.com/healthsync-ai/scheduler/internal/http/handlers"
	"github.com/healthsync-ai/scheduler/internal/notify"
	"github.com/healthsync-ai/scheduler/internal/observability/metrics"
	"github.com/healthsync-ai/scheduler/internal/scheduling"
	"github.com/healthsync-ai/scheduler/internal/triage"
	"github.com/healthsync-ai/scheduler/internal/waitlist"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting scheduler API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	schedulerMetrics := metrics.NewSchedulerMetrics(registry)

	policy := capacity.Policy{
		MaxPerDay:       cfg.MaxPatientsPerDay,
		EmergencyBuffer: cfg.EmergencyBuffer,
	}
	ledger, err := capacity.NewLedger(capacity.NewStore(redisClient, logger), policy, logger)
	if err != nil {
		logger.Error("invalid capacity policy", "error", err)
		os.Exit(1)
	}

	waitlistMgr := waitlist.NewManager(waitlist.NewStore(redisClient, logger), logger)

	disclaimer := compliance.NewDisclaimer(compliance.DisclaimerLevel(cfg.DisclaimerLevel))
	triageSvc := triage.NewService(disclaimer, logger)

	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		emailSender = sg
	} else {
		emailSender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(emailSender, cfg.OperatorEmail, logger)

	schedSvc := scheduling.NewService(scheduling.Config{
		Ledger:      ledger,
		Waitlist:    waitlistMgr,
		Triage:      triageSvc,
		Store:       scheduling.NewStore(redisClient, logger),
		Notifier:    notifier,
		Metrics:     schedulerMetrics,
		Logger:      logger,
		HorizonDays: cfg.NextAvailableHorizonDays,
	})

	forecaster := forecast.New(ledger, logger)
	monitor := followup.NewMonitor(followup.NewStore(redisClient, logger), logger)

	r := router.New(&router.Config{
		Logger:             logger,
		Triage:             handlers.NewTriageHandler(triageSvc, logger),
		Bookings:           handlers.NewBookingHandler(schedSvc, logger),
		Availability:       handlers.NewAvailabilityHandler(ledger, cfg.NextAvailableHorizonDays, logger),
		Waitlist:           handlers.NewWaitlistHandler(waitlistMgr, logger),
		Forecast:           handlers.NewForecastHandler(forecaster, cfg.ForecastDays, logger),
		FollowUps:          handlers.NewFollowUpHandler(monitor, logger),
		Admin:              handlers.NewAdminHandler(schedSvc, ledger, logger),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("redis close failed", "error", err)
	}

	logger.Info("server stopped")
}
