package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/konanauto/garage-booking/internal/address"
	"github.com/konanauto/garage-booking/internal/api/router"
	"github.com/konanauto/garage-booking/internal/booking"
	"github.com/konanauto/garage-booking/internal/catalog"
	appconfig "github.com/konanauto/garage-booking/internal/config"
	"github.com/konanauto/garage-booking/internal/gcal"
	"github.com/konanauto/garage-booking/internal/http/handlers"
	"github.com/konanauto/garage-booking/internal/notify"
	"github.com/konanauto/garage-booking/internal/observability/metrics"
	"github.com/konanauto/garage-booking/pkg/logging"
)

func main() {
	// Local development reads .env; production sets real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting garage-booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	limitsStore := catalog.NewStore(redisClient)

	calendarClient, err := gcal.NewClient(context.Background(), gcal.Config{
		CalendarID:  cfg.GoogleCalendarID,
		ClientEmail: cfg.GoogleClientEmail,
		PrivateKey:  cfg.GooglePrivateKey,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize calendar client", "error", err)
		os.Exit(1)
	}

	bookingMetrics := metrics.NewBookingMetrics(nil)

	cache, err := booking.NewCache(booking.CacheConfig{
		Reader:     calendarClient,
		Interval:   cfg.CalendarSyncInterval,
		WindowDays: cfg.CalendarSyncWindowDays,
		Logger:     logger,
		Metrics:    bookingMetrics,
	})
	if err != nil {
		logger.Error("failed to initialize event cache", "error", err)
		os.Exit(1)
	}

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	go cache.Start(runCtx)

	var sender notify.Sender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:     cfg.SendGridAPIKey,
		FromEmail:  cfg.SendGridFromEmail,
		FromName:   cfg.SendGridFromName,
		OwnerEmail: cfg.OwnerEmail,
	}, logger); sg != nil {
		sender = sg
	} else {
		logger.Info("sendgrid not configured, owner notifications disabled")
		sender = notify.NewStubSender(logger)
	}

	bookingSvc, err := booking.NewService(booking.ServiceConfig{
		Limits:   limitsStore,
		Cache:    cache,
		Calendar: calendarClient,
		Notifier: sender,
		Metrics:  bookingMetrics,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to initialize booking service", "error", err)
		os.Exit(1)
	}

	bookingHandler := handlers.NewBookingHandler(handlers.BookingHandlerConfig{
		Service: bookingSvc,
		Logger:  logger,
	})
	limitsHandler := handlers.NewLimitsHandler(limitsStore, logger)
	addressHandler := handlers.NewAddressHandler(address.NewClient(address.Config{}, logger), logger)

	r := router.New(&router.Config{
		Logger:             logger,
		BookingHandler:     bookingHandler,
		LimitsHandler:      limitsHandler,
		AddressHandler:     addressHandler,
		MetricsHandler:     promhttp.Handler(),
		StaffAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: strings.Split(cfg.CORSAllowedOrigins, ","),
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

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancelRun()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
