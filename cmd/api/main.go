package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prodone-web/prodone-api/cmd/mainconfig"
	"github.com/prodone-web/prodone-api/internal/api/router"
	"github.com/prodone-web/prodone-api/internal/booking"
	appconfig "github.com/prodone-web/prodone-api/internal/config"
	"github.com/prodone-web/prodone-api/internal/leads"
	"github.com/prodone-web/prodone-api/internal/notify"
	"github.com/prodone-web/prodone-api/internal/observability/metrics"
	"github.com/prodone-web/prodone-api/pkg/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting ProDone API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	sender := buildEmailSender(cfg, logger)
	logger.Info("email gateway",
		"provider", cfg.EmailProvider,
		"configured", sender != nil,
		"operator_email_set", cfg.AdminEmail != "",
	)
	if cfg.CalendlyWebhookSecret == "" {
		logger.Warn("calendly webhook secret not configured; /api/appointment will reject requests")
	}

	notifySvc := notify.NewService(sender, cfg.AdminEmail, cfg.EmailSendTimeout, logger)
	apiMetrics := metrics.NewAPIMetrics(nil)

	leadsHandler := leads.NewHandler(notifySvc, apiMetrics, logger)
	bookingWebhook := booking.NewWebhookHandler(cfg.CalendlyWebhookSecret, notifySvc, apiMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		BookingWebhook:     bookingWebhook,
		MetricsHandler:     promhttp.Handler(),
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

	logger.Info("server stopped")
}

// buildEmailSender selects the mail gateway implementation from
// configuration. A nil return means credentials are missing; handlers
// surface that as a configuration error rather than failing at startup.
func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			return nil
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			return nil
		}
		return sender
	case "stub":
		return notify.NewStubEmailSender(logger)
	default:
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			logger.Error("email configuration missing", "has_api_key", cfg.SendGridAPIKey != "")
			return nil
		}
		return sender
	}
}
