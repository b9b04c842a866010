package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed model call. The caller decides whether to
// retry; providers never retry internally.
type ErrorKind string

const (
	ErrorKindRateLimited    ErrorKind = "rate_limited"
	ErrorKindInvalidRequest ErrorKind = "invalid_request"
	ErrorKindUnavailable    ErrorKind = "unavailable"
	ErrorKindUnknown        ErrorKind = "unknown"
)

// ModelError is the classified failure of a model call.
type ModelError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ModelError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("model call failed (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("model call failed (%s): %s", e.Kind, e.Message)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may usefully resend the same request.
func (e *ModelError) Retryable() bool {
	return e.Kind == ErrorKindRateLimited || e.Kind == ErrorKindUnavailable || e.Kind == ErrorKindUnknown
}

// AsModelError extracts a *ModelError from an error chain.
func AsModelError(err error) (*ModelError, bool) {
	var me *ModelError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// ClassifyStatus maps an HTTP status from a provider into an ErrorKind.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return ErrorKindRateLimited
	case status >= 400 && status < 500:
		return ErrorKindInvalidRequest
	case status >= 500:
		return ErrorKindUnavailable
	default:
		return ErrorKindUnknown
	}
}

// WrapTransportError classifies transport-level failures (connection refused,
// timeouts, cancelled contexts) as Unavailable.
func WrapTransportError(err error) *ModelError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ModelError{Kind: ErrorKindUnavailable, Message: "request cancelled or timed out", Err: err}
	}
	return &ModelError{Kind: ErrorKindUnavailable, Message: err.Error(), Err: err}
}
