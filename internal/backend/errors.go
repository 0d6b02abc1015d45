package backend

import "fmt"

// OrderErrorKind closes the failure taxonomy of order submission. The
// kind is decided here at the HTTP boundary, by response shape, so
// checkout matches exhaustively instead of probing optional fields.
type OrderErrorKind int

const (
	// KindRateLimited is an HTTP 429 with an optional cooldown.
	KindRateLimited OrderErrorKind = iota
	// KindRejected is a structured failure carrying a server message.
	KindRejected
	// KindTransport covers network failures, timeouts, and responses
	// with no usable structure.
	KindTransport
)

// OrderError is the only error type CreateOrder returns.
type OrderError struct {
	Kind OrderErrorKind
	// Message is the server-supplied message for KindRejected.
	Message string
	// CooldownMinutes is the server cooldown for KindRateLimited;
	// 0 means the server omitted it and callers apply their default.
	CooldownMinutes int
	// Cause is the underlying transport error, when there is one.
	Cause error
}

func (e *OrderError) Error() string {
	switch e.Kind {
	case KindRateLimited:
		return fmt.Sprintf("order rate limited (cooldown %d minutes)", e.CooldownMinutes)
	case KindRejected:
		return "order rejected: " + e.Message
	default:
		if e.Cause != nil {
			return "order submission failed: " + e.Cause.Error()
		}
		return "order submission failed"
	}
}

func (e *OrderError) Unwrap() error {
	return e.Cause
}

func rateLimited(cooldownMinutes int) *OrderError {
	return &OrderError{Kind: KindRateLimited, CooldownMinutes: cooldownMinutes}
}

func rejected(message string) *OrderError {
	return &OrderError{Kind: KindRejected, Message: message}
}

func transport(cause error) *OrderError {
	return &OrderError{Kind: KindTransport, Cause: cause}
}
