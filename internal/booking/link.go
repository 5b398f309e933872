package booking

import (
	"encoding/json"
	"strings"
)

// googleMeetPrefix is the expected video-conferencing URL prefix for
// plain-string locations.
const googleMeetPrefix = "https://meet.google.com"

// linkResolver extracts a meeting link from a scheduled event, reporting
// whether it found one.
type linkResolver func(evt *ScheduledEvent) (string, bool)

// meetingLinkResolvers is the ordered resolution chain: first match wins.
var meetingLinkResolvers = []linkResolver{
	resolveLocationString,
	resolveConferencingJoinURL,
}

// ResolveMeetingLink applies the resolver chain and returns the first match.
// An empty result is not fatal; the confirmation is sent without a link.
func ResolveMeetingLink(evt *ScheduledEvent) string {
	for _, resolve := range meetingLinkResolvers {
		if link, ok := resolve(evt); ok {
			return link
		}
	}
	return ""
}

// resolveLocationString matches a plain-string location that carries a
// Google Meet URL verbatim.
func resolveLocationString(evt *ScheduledEvent) (string, bool) {
	if len(evt.Location) == 0 {
		return "", false
	}
	var location string
	if err := json.Unmarshal(evt.Location, &location); err != nil {
		// Structured location object; not this resolver's concern.
		return "", false
	}
	if strings.HasPrefix(location, googleMeetPrefix) {
		return location, true
	}
	return "", false
}

// resolveConferencingJoinURL falls back to the structured conferencing block.
func resolveConferencingJoinURL(evt *ScheduledEvent) (string, bool) {
	if evt.Conferencing == nil || evt.Conferencing.JoinURL == "" {
		return "", false
	}
	return evt.Conferencing.JoinURL, true
}
