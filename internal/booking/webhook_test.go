package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prodone-web/prodone-api/internal/notify"
)

// mockConfirmer records confirmation requests and returns a scripted error.
type mockConfirmer struct {
	err   error
	calls []notify.MeetingConfirmation
}

func (m *mockConfirmer) SendMeetingConfirmation(_ context.Context, c notify.MeetingConfirmation) error {
	m.calls = append(m.calls, c)
	return m.err
}

const testSecret = "calendly-secret"

func createdPayload(t *testing.T, mutate func(map[string]any)) []byte {
	t.Helper()
	payload := map[string]any{
		"event": "invitee.created",
		"payload": map[string]any{
			"invitee": map[string]any{
				"name":  "John Doe",
				"email": "john@example.com",
			},
			"event": map[string]any{
				"start_time": "2026-09-14T15:30:00Z",
				"location":   "https://meet.google.com/abc-defg-hij",
			},
		},
	}
	if mutate != nil {
		mutate(payload)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return body
}

func postWebhook(h *WebhookHandler, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/appointment", bytes.NewReader(body))
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	w := httptest.NewRecorder()
	h.Handle(w, req)
	return w
}

func TestHandle_MethodNotAllowed(t *testing.T) {
	confirmer := &mockConfirmer{}
	h := NewWebhookHandler(testSecret, confirmer, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/appointment", nil)
	w := httptest.NewRecorder()
	h.Handle(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Method not allowed") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestHandle_SecretNotConfigured(t *testing.T) {
	h := NewWebhookHandler("", &mockConfirmer{}, nil, nil)

	w := postWebhook(h, "anything", createdPayload(t, nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"wrong token", "wrong-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confirmer := &mockConfirmer{}
			h := NewWebhookHandler(testSecret, confirmer, nil, nil)

			w := postWebhook(h, tt.token, createdPayload(t, nil))

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), "Unauthorized") {
				t.Errorf("unexpected body: %s", w.Body.String())
			}
			if len(confirmer.calls) != 0 {
				t.Errorf("expected no sends on auth failure, got %d", len(confirmer.calls))
			}
		})
	}
}

func TestHandle_InviteeCreated_SendsConfirmation(t *testing.T) {
	confirmer := &mockConfirmer{}
	h := NewWebhookHandler(testSecret, confirmer, nil, nil)

	w := postWebhook(h, testSecret, createdPayload(t, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(confirmer.calls) != 1 {
		t.Fatalf("expected one confirmation, got %d", len(confirmer.calls))
	}
	c := confirmer.calls[0]
	if c.InviteeEmail != "john@example.com" {
		t.Errorf("unexpected invitee email: %s", c.InviteeEmail)
	}
	if c.MeetingLink != "https://meet.google.com/abc-defg-hij" {
		t.Errorf("unexpected meeting link: %s", c.MeetingLink)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["success"] != true || resp["emailSent"] != true {
		t.Errorf("unexpected response: %v", resp)
	}
}

func TestHandle_InviteeCreated_ConferencingFallback(t *testing.T) {
	confirmer := &mockConfirmer{}
	h := NewWebhookHandler(testSecret, confirmer, nil, nil)

	body := createdPayload(t, func(p map[string]any) {
		evt := p["payload"].(map[string]any)["event"].(map[string]any)
		delete(evt, "location")
		evt["conferencing"] = map[string]any{"join_url": "https://x"}
	})
	w := postWebhook(h, testSecret, body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if confirmer.calls[0].MeetingLink != "https://x" {
		t.Errorf("expected conferencing link, got %q", confirmer.calls[0].MeetingLink)
	}
}

func TestHandle_InviteeCreated_NoLinkStillSends(t *testing.T) {
	confirmer := &mockConfirmer{}
	h := NewWebhookHandler(testSecret, confirmer, nil, nil)

	body := createdPayload(t, func(p map[string]any) {
		evt := p["payload"].(map[string]any)["event"].(map[string]any)
		delete(evt, "location")
	})
	w := postWebhook(h, testSecret, body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(confirmer.calls) != 1 {
		t.Fatalf("expected one confirmation, got %d", len(confirmer.calls))
	}
	if confirmer.calls[0].MeetingLink != "" {
		t.Errorf("expected empty meeting link, got %q", confirmer.calls[0].MeetingLink)
	}
}

func TestHandle_InviteeCreated_MalformedPayload(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing payload", func(p map[string]any) { delete(p, "payload") }},
		{"missing invitee", func(p map[string]any) { delete(p["payload"].(map[string]any), "invitee") }},
		{"missing event", func(p map[string]any) { delete(p["payload"].(map[string]any), "event") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confirmer := &mockConfirmer{}
			h := NewWebhookHandler(testSecret, confirmer, nil, nil)

			w := postWebhook(h, testSecret, createdPayload(t, tt.mutate))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), "Malformed payload") {
				t.Errorf("unexpected body: %s", w.Body.String())
			}
			if len(confirmer.calls) != 0 {
				t.Errorf("expected no sends, got %d", len(confirmer.calls))
			}
		})
	}
}

func TestHandle_InviteeCreated_MissingEmail(t *testing.T) {
	confirmer := &mockConfirmer{}
	h := NewWebhookHandler(testSecret, confirmer, nil, nil)

	body := createdPayload(t, func(p map[string]any) {
		invitee := p["payload"].(map[string]any)["invitee"].(map[string]any)
		delete(invitee, "email")
	})
	w := postWebhook(h, testSecret, body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No email found in invitee") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if len(confirmer.calls) != 0 {
		t.Errorf("expected no sends, got %d", len(confirmer.calls))
	}
}

func TestHandle_InviteeCanceled(t *testing.T) {
	confirmer := &mockConfirmer{}
	h := NewWebhookHandler(testSecret, confirmer, nil, nil)

	body, _ := json.Marshal(map[string]any{"event": "invitee.canceled"})
	w := postWebhook(h, testSecret, body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(confirmer.calls) != 0 {
		t.Errorf("expected no sends for cancellation, got %d", len(confirmer.calls))
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["success"] != true {
		t.Errorf("unexpected response: %v", resp)
	}
}

func TestHandle_UnknownEventAcknowledged(t *testing.T) {
	confirmer := &mockConfirmer{}
	h := NewWebhookHandler(testSecret, confirmer, nil, nil)

	body, _ := json.Marshal(map[string]any{"event": "invitee.rescheduled"})
	w := postWebhook(h, testSecret, body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(confirmer.calls) != 0 {
		t.Errorf("expected no sends for unknown event, got %d", len(confirmer.calls))
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["received"] != true {
		t.Errorf("expected received=true, got %v", resp)
	}
}

func TestHandle_InviteeCreated_SendErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"not configured", notify.ErrNotConfigured, "Email configuration error"},
		{"verify failure", notify.ErrGatewayVerify, "Email transporter verification failed"},
		{"send failure", notify.ErrSendFailed, "Failed to send email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confirmer := &mockConfirmer{err: tt.err}
			h := NewWebhookHandler(testSecret, confirmer, nil, nil)

			w := postWebhook(h, testSecret, createdPayload(t, nil))

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", w.Code)
			}

			var resp map[string]string
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["error"] != tt.message {
				t.Errorf("expected %q, got %q", tt.message, resp["error"])
			}
		})
	}
}
