package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status that best describes the failure.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// HTTPFailure reports a non-2xx answer from url.
func HTTPFailure(url string, status int) *AppError {
	return &AppError{
		Code: ErrCodeHTTP, Message: fmt.Sprintf("HTTP error! status: %d", status),
		HTTPStatus: http.StatusBadGateway, Retryable: status >= 500 || status == http.StatusTooManyRequests,
		Details: map[string]any{"url": url, "status": status},
	}
}

// InvalidFormat reports a response body that is not usable JSON.
func InvalidFormat(url, reason string) *AppError {
	return &AppError{
		Code: ErrCodeFormat, Message: fmt.Sprintf("Invalid API response format: %s", reason),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"url": url},
	}
}

// NetworkFailure reports a transport failure while talking to url.
func NetworkFailure(url string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeNetwork, Message: "Unable to reach the API. Please check your connection.",
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"url": url}, Cause: cause,
	}
}

// Timeout reports an operation that ran out of time or was cancelled.
func Timeout(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long. Please try again.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// InvalidInput reports a single invalid field.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation reports a multi-field validation failure.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// ContextMisuse reports that hook was consumed outside of provider.
func ContextMisuse(hook, provider string) *AppError {
	return &AppError{
		Code: ErrCodeContextMisuse, Message: fmt.Sprintf("%s must be used within %s", hook, provider),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"hook": hook, "provider": provider},
	}
}

// StorageFailure reports a failed read or write of a persisted slot.
func StorageFailure(key string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStorage, Message: fmt.Sprintf("Unable to access stored value %q.", key),
		HTTPStatus: http.StatusInternalServerError, Retryable: true,
		Details: map[string]any{"key": key}, Cause: cause,
	}
}

// Internal reports an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
