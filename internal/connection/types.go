package connection

import (
	"errors"
	"time"
)

// Errors
var (
	ErrNotConnected    = errors.New("not connected")
	ErrStaleConnection = errors.New("connection stale (no ping)")
	ErrAlreadyClosed   = errors.New("already closed")
	ErrAlreadyStarted  = errors.New("manager already started")
	ErrStopped         = errors.New("manager stopped")
)

// Notification texts shown to the user on lifecycle transitions.
const (
	warningFormat  = "WARNING: Lost server connection, attempting to reconnect. Attempt number %d"
	recoveredText  = "Server connection recovered."
	connectionLost = "The connection with the server was lost."
)

// TimestampedMessage wraps raw message data with receive timestamp.
type TimestampedMessage struct {
	Data       []byte    // Raw message bytes from WebSocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// Event is one decoded stream item. The manager does not look inside it.
type Event map[string]any

// Severity classifies a Notification.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// Notification is a user-visible lifecycle signal.
type Notification struct {
	Severity Severity
	Message  string
	Attempt  int // Attempt number the signal refers to (0 for success)
	At       time.Time
}

// Renderer displays decoded events. Display must not block for long.
type Renderer interface {
	Display(ev Event)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ev Event)

// Display calls f(ev).
func (f RendererFunc) Display(ev Event) { f(ev) }

// Notifier presents lifecycle notifications. Notify is fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// DecodeErrorHandler receives payloads that could not be decoded.
type DecodeErrorHandler func(data []byte, err error)

// State is the manager's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateRetryWait
	StateTerminal
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateRetryWait:
		return "retry_wait"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// ClientConfig configures a WebSocket client.
type ClientConfig struct {
	URL              string        // WebSocket URL (e.g., ws://localhost:9000/tweets)
	UserAgent        string        // Sent on the upgrade request when set
	HandshakeTimeout time.Duration // WebSocket upgrade timeout
	PingTimeout      time.Duration // Max time without ping/pong before considering connection stale
	WriteTimeout     time.Duration // Write deadline for sends
	BufferSize       int           // Message channel buffer size
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		HandshakeTimeout: 10 * time.Second,
		PingTimeout:      60 * time.Second,
		WriteTimeout:     5 * time.Second,
		BufferSize:       1000,
	}
}

// ManagerConfig configures the Connection Manager.
type ManagerConfig struct {
	Client     ClientConfig
	Handshake  string        // Sent once, first, on every opened connection
	RetryDelay time.Duration // Fixed wait between a close and the next attempt
	MaxRetries int           // Close on an attempt above this is terminal
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Client:     DefaultClientConfig(),
		Handshake:  "subscribe",
		RetryDelay: 5 * time.Second,
		MaxRetries: 10,
	}
}

// ManagerStats provides statistics about the connection manager.
type ManagerStats struct {
	SessionID    string
	State        State
	Attempt      int   // Retry-policy counter; reset to 1 on every open
	Dials        int64 // Total connection attempts, never reset
	Recovering   bool  // A retry wait happened since the last open
	Reconnects   int64 // Opens that followed a retry wait
	Events       int64 // Events forwarded to the renderer
	DecodeErrors int64
}
