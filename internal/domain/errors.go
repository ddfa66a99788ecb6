package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidOptions signals malformed lookup options, detected before any request is issued.
	ErrInvalidOptions = errors.New("invalid options")
	// ErrUnknownScope signals a search scope outside the scope registry.
	ErrUnknownScope = errors.New("unknown search scope")
	// ErrTransport signals a failed remote query.
	ErrTransport = errors.New("transport error")
)

// DefaultLookupDetail is surfaced when a failure carries no message of its own.
const DefaultLookupDetail = "Lookup Failed"

// TransportError is a failed remote query. Description holds the raw response
// body, which CYYNC encodes as JSON with a "message" or "error" field.
type TransportError struct {
	Status      int
	Message     string
	Description string
}

func (e *TransportError) Error() string {
	base := fmt.Sprintf("%s - (%d)", e.Message, e.Status)
	if detail := e.Detail(); detail != "" {
		return base + "| " + detail
	}
	return base
}

// Detail extracts the remote explanation from Description, if any.
func (e *TransportError) Detail() string {
	if e.Description == "" {
		return ""
	}
	var body struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Description), &body); err != nil {
		return ""
	}
	if s, ok := body.Message.(string); ok && s != "" {
		return s
	}
	if s, ok := body.Error.(string); ok && s != "" {
		return s
	}
	return ""
}

func (e *TransportError) Unwrap() error { return ErrTransport }

// NewTransportError creates a transport error.
func NewTransportError(status int, message, description string) error {
	return &TransportError{Status: status, Message: message, Description: description}
}

// LookupError is the single readable failure a lookup surfaces to its caller.
type LookupError struct {
	Detail string
	Status int
	Err    error
}

func (e *LookupError) Error() string { return e.Detail }

func (e *LookupError) Unwrap() error { return e.Err }

// NewLookupError wraps err into a LookupError, carrying the transport status when present.
func NewLookupError(err error) *LookupError {
	var le *LookupError
	if errors.As(err, &le) {
		return le
	}
	detail := DefaultLookupDetail
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	out := &LookupError{Detail: detail, Err: err}
	var te *TransportError
	if errors.As(err, &te) {
		out.Status = te.Status
	}
	return out
}

// ValidationError is a single option validation failure.
type ValidationError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}
