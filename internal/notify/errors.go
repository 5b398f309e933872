package notify

import "errors"

var (
	// ErrNotConfigured is returned when no email gateway credentials are
	// configured. This is a deployment problem, not a caller problem.
	ErrNotConfigured = errors.New("notify: email gateway not configured")

	// ErrGatewayAuth is returned when the gateway rejects our credentials.
	ErrGatewayAuth = errors.New("notify: email gateway rejected credentials")

	// ErrGatewayConnection is returned when the gateway cannot be reached.
	ErrGatewayConnection = errors.New("notify: email gateway unreachable")

	// ErrGatewayVerify is returned when the pre-send handshake fails.
	ErrGatewayVerify = errors.New("notify: email gateway verification failed")

	// ErrSendFailed is returned for send failures not covered above.
	ErrSendFailed = errors.New("notify: email send failed")
)
