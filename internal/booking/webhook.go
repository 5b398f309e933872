package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prodone-web/prodone-api/internal/api/respond"
	"github.com/prodone-web/prodone-api/internal/notify"
	"github.com/prodone-web/prodone-api/internal/observability/metrics"
	"github.com/prodone-web/prodone-api/pkg/logging"
)

// TokenHeader carries the shared secret on every Calendly callback.
const TokenHeader = "X-Calendly-Webhook-Token"

// confirmationSender dispatches the invitee confirmation email.
type confirmationSender interface {
	SendMeetingConfirmation(ctx context.Context, c notify.MeetingConfirmation) error
}

// WebhookHandler handles Calendly webhook callbacks on /api/appointment.
type WebhookHandler struct {
	secret   string
	notifier confirmationSender
	metrics  *metrics.APIMetrics
	logger   *logging.Logger
}

func NewWebhookHandler(secret string, notifier confirmationSender, m *metrics.APIMetrics, logger *logging.Logger) *WebhookHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WebhookHandler{secret: strings.TrimSpace(secret), notifier: notifier, metrics: m, logger: logger}
}

// Handle authenticates and dispatches a webhook callback. The body is never
// parsed before the token check passes, so auth failures leak nothing.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if h.secret == "" {
		h.logger.Error("calendly webhook secret not configured")
		respond.Error(w, http.StatusInternalServerError, "Webhook secret not configured")
		return
	}

	token := r.Header.Get(TokenHeader)
	if token == "" || token != h.secret {
		h.logger.Warn("unauthorized calendly webhook")
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var env WebhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		h.metrics.ObserveWebhook("invalid", "rejected")
		respond.Error(w, http.StatusBadRequest, "Malformed payload")
		return
	}

	start := time.Now()
	switch env.Event {
	case EventInviteeCreated:
		h.handleCreated(r.Context(), w, &env)
	case EventInviteeCanceled:
		// Acknowledged without action; cancellation handling is a placeholder.
		h.metrics.ObserveWebhook(env.Event, "ok")
		respond.JSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		// Unknown event types are accepted to stay forward-compatible.
		h.logger.Info("ignoring calendly event", "event", env.Event)
		h.metrics.ObserveWebhook(env.Event, "ignored")
		respond.JSON(w, http.StatusOK, map[string]any{"received": true})
	}
	h.metrics.ObserveWebhookLatency(env.Event, time.Since(start).Seconds())
}

// handleCreated validates the invitee.created payload and relays it into a
// confirmation email.
func (h *WebhookHandler) handleCreated(ctx context.Context, w http.ResponseWriter, env *WebhookEnvelope) {
	if env.Payload == nil || env.Payload.Invitee == nil || env.Payload.Event == nil {
		h.logger.Error("malformed calendly payload", "event", env.Event)
		h.metrics.ObserveWebhook(env.Event, "rejected")
		respond.Error(w, http.StatusBadRequest, "Malformed payload")
		return
	}

	invitee := env.Payload.Invitee
	evt := env.Payload.Event

	// Without an address the confirmation cannot be delivered at all.
	if invitee.Email == "" {
		h.logger.Error("no email found in invitee", "invitee_name", invitee.Name)
		h.metrics.ObserveWebhook(env.Event, "rejected")
		respond.Error(w, http.StatusBadRequest, "No email found in invitee")
		return
	}

	link := ResolveMeetingLink(evt)
	if link == "" {
		// Best effort: the confirmation still goes out without a link.
		h.logger.Warn("no meeting link found for event", "start_time", evt.StartTime)
	}

	err := h.notifier.SendMeetingConfirmation(ctx, notify.MeetingConfirmation{
		InviteeName:  invitee.Name,
		InviteeEmail: invitee.Email,
		StartTime:    evt.StartTime,
		MeetingLink:  link,
	})
	if err != nil {
		h.metrics.ObserveWebhook(env.Event, "failed")
		h.metrics.ObserveEmail("booking_confirmation", "failed")
		h.respondSendError(w, err)
		return
	}

	h.metrics.ObserveWebhook(env.Event, "ok")
	h.metrics.ObserveEmail("booking_confirmation", "sent")
	respond.JSON(w, http.StatusOK, map[string]any{"success": true, "emailSent": true})
}

// respondSendError keeps configuration, verification, and send failures
// distinguishable for operators.
func (h *WebhookHandler) respondSendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notify.ErrNotConfigured):
		h.logger.Error("email configuration missing for confirmation")
		respond.Error(w, http.StatusInternalServerError, "Email configuration error")
	case errors.Is(err, notify.ErrGatewayVerify):
		h.logger.Error("email gateway verification failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Email transporter verification failed")
	default:
		h.logger.Error("confirmation email error", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to send email")
	}
}
