package fetch

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/kbukum/sitekit/errors"
)

// Kind classifies a fetch failure.
type Kind int

const (
	// KindNetwork covers request construction, transport failures and cancellation.
	KindNetwork Kind = iota
	// KindHTTP is a non-2xx status.
	KindHTTP
	// KindFormat is a body that is not the expected JSON shape.
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Error is the error stored in a failed Result.
type Error struct {
	Kind       Kind
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	case KindFormat:
		return "Invalid API response format: " + e.Message
	default:
		return "network error: " + e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// AppError converts e into the shared application error.
func (e *Error) AppError() *apperrors.AppError {
	switch e.Kind {
	case KindHTTP:
		return apperrors.HTTPFailure(e.URL, e.StatusCode).WithCause(e)
	case KindFormat:
		return apperrors.InvalidFormat(e.URL, e.Message).WithCause(e)
	default:
		if errors.Is(e.Err, context.DeadlineExceeded) {
			return apperrors.Timeout("fetch "+e.URL, e)
		}
		return apperrors.NetworkFailure(e.URL, e)
	}
}

func httpError(url string, status int, cause error) *Error {
	return &Error{Kind: KindHTTP, URL: url, StatusCode: status, Message: fmt.Sprintf("status %d", status), Err: cause}
}

func formatError(url, reason string, cause error) *Error {
	return &Error{Kind: KindFormat, URL: url, Message: reason, Err: cause}
}

func networkError(url string, cause error) *Error {
	msg := "request failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindNetwork, URL: url, Message: msg, Err: cause}
}

// NewFormatError builds a format error for payloads rejected after Fetch returned.
func NewFormatError(url, reason string) *Error {
	return formatError(url, reason, nil)
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsHTTPError reports whether err is a non-2xx fetch failure.
func IsHTTPError(err error) bool { k, ok := kindOf(err); return ok && k == KindHTTP }

// IsFormatError reports whether err is a malformed-body fetch failure.
func IsFormatError(err error) bool { k, ok := kindOf(err); return ok && k == KindFormat }

// IsNetworkError reports whether err is a transport or cancellation failure.
func IsNetworkError(err error) bool { k, ok := kindOf(err); return ok && k == KindNetwork }

// StatusCode returns the HTTP status of an HTTP fetch error, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// ToAppError converts any fetch result error into an AppError.
func ToAppError(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e.AppError()
	}
	return apperrors.From(err)
}
