package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prodone-web/prodone-api/internal/api/respond"
	"github.com/prodone-web/prodone-api/internal/notify"
	"github.com/prodone-web/prodone-api/internal/observability/metrics"
	"github.com/prodone-web/prodone-api/pkg/logging"
)

// leadNotifier dispatches the operator notification for a submission.
type leadNotifier interface {
	NotifyNewLead(ctx context.Context, lead notify.LeadNotification) error
}

// Handler handles HTTP requests for lead-form submissions.
type Handler struct {
	notifier leadNotifier
	metrics  *metrics.APIMetrics
	logger   *logging.Logger
}

// NewHandler creates a new leads handler.
func NewHandler(notifier leadNotifier, m *metrics.APIMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// Submit handles POST /api/leads. A valid submission produces exactly one
// operator email; nothing is stored and nothing is retried.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.Error("failed to decode lead submission", "error", err)
		h.metrics.ObserveLead("rejected")
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Fail fast before any external call.
	if err := sub.Validate(); err != nil {
		h.metrics.ObserveLead("rejected")
		respond.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}

	err := h.notifier.NotifyNewLead(r.Context(), notify.LeadNotification{
		Industry:     sub.Industry,
		BusinessType: sub.BusinessType,
		Name:         sub.Name,
		City:         sub.City,
		Phone:        sub.Phone,
		Email:        sub.Email,
		Message:      sub.Message,
	})
	if err != nil {
		h.metrics.ObserveLead("failed")
		h.metrics.ObserveEmail("lead_notification", "failed")
		h.respondSendError(w, err)
		return
	}

	h.metrics.ObserveLead("accepted")
	h.metrics.ObserveEmail("lead_notification", "sent")
	h.logger.Info("lead email sent", "name", sub.Name, "email", sub.Email, "industry", sub.Industry)
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Email sent successfully",
	})
}

// respondSendError maps a gateway failure to one of the four classified
// operator-facing messages. Raw error text never reaches the caller.
func (h *Handler) respondSendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notify.ErrNotConfigured):
		h.logger.Error("email configuration missing")
		respond.Error(w, http.StatusInternalServerError, "Email service not configured. Please contact support.")
	case errors.Is(err, notify.ErrGatewayAuth):
		h.logger.Error("lead email error", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Email authentication failed. Please check email credentials.")
	case errors.Is(err, notify.ErrGatewayConnection):
		h.logger.Error("lead email error", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Email service connection failed. Please try again later.")
	default:
		h.logger.Error("lead email error", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to send email. Please try again or contact support.")
	}
}
