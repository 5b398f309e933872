// Package booking relays Calendly webhook callbacks into confirmation emails.
package booking

import (
	"encoding/json"
	"time"
)

// Calendly event types this relay understands. Unknown types are acknowledged
// without processing to stay forward-compatible with the provider's catalog.
const (
	EventInviteeCreated  = "invitee.created"
	EventInviteeCanceled = "invitee.canceled"
)

// WebhookEnvelope is the top-level Calendly webhook body. The payload is
// under control of the external provider and treated as untrusted input.
type WebhookEnvelope struct {
	Event   string        `json:"event"`
	Payload *EventPayload `json:"payload"`
}

// EventPayload carries the invitee and scheduled-event details.
type EventPayload struct {
	Invitee *Invitee        `json:"invitee"`
	Event   *ScheduledEvent `json:"event"`
}

// Invitee is the external party who booked the meeting.
type Invitee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ScheduledEvent describes the booked meeting. Calendly sends location either
// as a plain string or as a structured object, so it stays raw until the
// link resolvers inspect it.
type ScheduledEvent struct {
	StartTime    time.Time       `json:"start_time"`
	Location     json.RawMessage `json:"location,omitempty"`
	Conferencing *Conferencing   `json:"conferencing,omitempty"`
}

// Conferencing is the structured conferencing block with a join URL.
type Conferencing struct {
	JoinURL string `json:"join_url"`
}
