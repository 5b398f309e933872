package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prodone-web/prodone-api/pkg/logging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender defines the interface for the outbound mail gateway.
// Implementations can be swapped (SendGrid, SES, stub) without changing callers.
type EmailSender interface {
	// Send dispatches a single email.
	Send(ctx context.Context, msg EmailMessage) error
	// Verify performs a synchronous credentials/connectivity check against
	// the gateway without sending anything.
	Verify(ctx context.Context) error
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To       string
	ToName   string
	FromName string // overrides the sender's default display name when set
	Subject  string
	Body     string // Plain text body
	HTML     string // Optional HTML body
}

// SendGridSender sends emails via the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	apiKey    string
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSender creates a new SendGrid email sender. Returns nil when no
// API key is configured so callers can detect the misconfiguration.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "ProDone"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via SendGrid.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return ErrNotConfigured
	}

	fromName := s.fromName
	if msg.FromName != "" {
		fromName = msg.FromName
	}
	from := mail.NewEmail(fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	var message *mail.SGMailV3
	if msg.HTML != "" {
		message = mail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.HTML)
	} else {
		message = mail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.Body)
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("sendgrid send failed", "error", err, "to", msg.To)
		return fmt.Errorf("%w: %v", ErrGatewayConnection, err)
	}

	if err := classifyStatus(response.StatusCode); err != nil {
		s.logger.Error("sendgrid returned error status", "status", response.StatusCode, "to", msg.To)
		return err
	}

	s.logger.Info("email sent via sendgrid", "to", msg.To, "subject", msg.Subject, "status", response.StatusCode)
	return nil
}

// Verify checks the API key against SendGrid without sending mail.
func (s *SendGridSender) Verify(ctx context.Context) error {
	if s.client == nil {
		return ErrNotConfigured
	}

	request := sendgrid.GetRequest(s.apiKey, "/v3/scopes", "")
	request.Method = http.MethodGet
	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayConnection, err)
	}
	return classifyStatus(response.StatusCode)
}

// classifyStatus maps a gateway HTTP status to the error taxonomy.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrGatewayAuth, status)
	case status >= http.StatusBadRequest:
		return fmt.Errorf("%w: status %d", ErrSendFailed, status)
	}
	return nil
}

// StubEmailSender is a no-op sender for local development or when email is
// disabled. It logs instead of sending.
type StubEmailSender struct {
	logger *logging.Logger
}

// NewStubEmailSender creates a stub email sender that logs but doesn't send.
func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

// Send logs the email but doesn't actually send it.
func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	s.logger.Info("stub email sender: would send email", "to", msg.To, "subject", msg.Subject)
	return nil
}

// Verify always succeeds.
func (s *StubEmailSender) Verify(ctx context.Context) error {
	return nil
}

// Ensure interface compliance
var _ EmailSender = (*SendGridSender)(nil)
var _ EmailSender = (*StubEmailSender)(nil)
