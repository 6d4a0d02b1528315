package linq

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrAPI matches every error returned by Client fetches via errors.Is.
var ErrAPI = errors.New("menu api error")

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	// KindTransport covers timeouts, DNS and connection failures.
	KindTransport ErrorKind = iota + 1
	// KindHTTP is a non-success HTTP status.
	KindHTTP
	// KindDecode is a response body that is not valid JSON.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// APIError is the single error type surfaced by the client.
type APIError struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("%s: api returned status %d", e.Op, e.StatusCode)
	case KindTransport:
		if e.Timeout() {
			return fmt.Sprintf("%s: timeout connecting to menu api: %v", e.Op, e.Err)
		}
		return fmt.Sprintf("%s: error connecting to menu api: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports ErrAPI as a match so callers need not type-assert.
func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// Timeout reports whether the failure was a deadline or client timeout.
func (e *APIError) Timeout() bool {
	if e == nil || e.Err == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
