package bizyair

// StreamState is the lifecycle state of a [StreamClient].
//
//	Idle -> Open -> Consuming -> Closed
//
// Closed is reachable from every state. A handle that was never opened
// stays Idle when closed.
type StreamState int

const (
	// StateIdle means Open has not been called.
	StateIdle StreamState = iota

	// StateOpen means the connection is established and no line has been read yet.
	StateOpen

	// StateConsuming means at least one read from the event stream has happened.
	StateConsuming

	// StateClosed means the connection has been released.
	StateClosed
)

// String returns the lower-case state name.
func (s StreamState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpen:
		return "open"
	case StateConsuming:
		return "consuming"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Request is the immutable description of one workflow call.
//
// Payload is any value encodable as JSON; it is serialized once per call.
type Request struct {
	URL     string
	Payload any
}
