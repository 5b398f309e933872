package booking

import (
	"encoding/json"
	"testing"
)

func TestResolveMeetingLink_LocationString(t *testing.T) {
	evt := &ScheduledEvent{
		Location: json.RawMessage(`"https://meet.google.com/abc-defg-hij"`),
		Conferencing: &Conferencing{
			JoinURL: "https://x",
		},
	}

	// The plain-string location wins over the conferencing block.
	if got := ResolveMeetingLink(evt); got != "https://meet.google.com/abc-defg-hij" {
		t.Fatalf("expected verbatim location string, got %q", got)
	}
}

func TestResolveMeetingLink_ConferencingFallback(t *testing.T) {
	tests := []struct {
		name string
		evt  *ScheduledEvent
	}{
		{"no location", &ScheduledEvent{Conferencing: &Conferencing{JoinURL: "https://x"}}},
		{"non-meet location string", &ScheduledEvent{
			Location:     json.RawMessage(`"123 Main St, Austin TX"`),
			Conferencing: &Conferencing{JoinURL: "https://x"},
		}},
		{"structured location object", &ScheduledEvent{
			Location:     json.RawMessage(`{"type":"physical","location":"HQ"}`),
			Conferencing: &Conferencing{JoinURL: "https://x"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveMeetingLink(tt.evt); got != "https://x" {
				t.Fatalf("expected conferencing join URL, got %q", got)
			}
		})
	}
}

func TestResolveMeetingLink_NoMatch(t *testing.T) {
	tests := []struct {
		name string
		evt  *ScheduledEvent
	}{
		{"empty event", &ScheduledEvent{}},
		{"conferencing without join url", &ScheduledEvent{Conferencing: &Conferencing{}}},
		{"plain address only", &ScheduledEvent{Location: json.RawMessage(`"123 Main St"`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveMeetingLink(tt.evt); got != "" {
				t.Fatalf("expected empty link, got %q", got)
			}
		})
	}
}
