package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Fetch path errors
const (
	// ErrCodeHTTP indicates the remote API answered with a non-2xx status.
	ErrCodeHTTP ErrorCode = "HTTP_ERROR"
	// ErrCodeFormat indicates the response body was not the expected JSON shape.
	ErrCodeFormat ErrorCode = "FORMAT_ERROR"
	// ErrCodeNetwork indicates a transport-level failure (DNS, refused, reset).
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	// ErrCodeTimeout indicates the request or the simulated delay was cut short.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Caller errors
const (
	// ErrCodeInvalidInput indicates a form or argument failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeContextMisuse indicates a hook was used outside its provider.
	ErrCodeContextMisuse ErrorCode = "CONTEXT_MISUSE"
)

// Internal errors
const (
	// ErrCodeStorage indicates the persisted key-value slot could not be used.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeNetwork: true,
	ErrCodeTimeout: true,
	ErrCodeStorage: true,
}

// IsRetryableCode reports whether a caller may reasonably retry after code.
// Nothing in sitekit retries on its own; this is advice for the UI layer.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
