package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/wolfman30/leadform/cmd/mainconfig"
	"github.com/wolfman30/leadform/internal/collector"
	appconfig "github.com/wolfman30/leadform/internal/config"
	"github.com/wolfman30/leadform/internal/notify"
	"github.com/wolfman30/leadform/internal/observability/metrics"
	"github.com/wolfman30/leadform/pkg/logging"
)

// BuildEmailSender picks the alert email provider. It returns nil when alerts
// are not configured.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if len(cfg.AlertRecipients) == 0 {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: sendgrid selected but SENDGRID_API_KEY is empty")
		}
		return sender, nil
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger), nil
	case "", "stub":
		logger.Warn("lead alerts configured without an email provider; logging only")
		return notify.NewStubEmailSender(logger), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}
}

// BuildDispatcher wires the collector client, optional alerts and metrics into
// a fire-and-forget dispatcher.
func BuildDispatcher(cfg *appconfig.Config, email notify.EmailSender, m *metrics.FormMetrics, logger *logging.Logger) *collector.Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	client := collector.NewClient(cfg.CollectorURL, &http.Client{Timeout: cfg.CollectorTimeout}, logger.With("component", "collector"))

	opts := []collector.DispatcherOption{
		collector.WithTimeout(cfg.CollectorTimeout),
		collector.WithObserver(m),
	}
	if alerter := notify.NewLeadAlerter(email, cfg.AlertRecipients, logger); alerter != nil {
		opts = append(opts, collector.WithNotifier(alerter))
	}
	return collector.NewDispatcher(client, logger, opts...)
}
