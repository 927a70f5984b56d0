package fetch

// Envelope messages.
const (
	MessageSuccess = "Data was fetched successfully"
	MessageFailure = "Error: Failed to load data"
)

// Result is the envelope returned by Fetch. Exactly one of Data and Err is
// set on a finished result, and IsLoading is false.
type Result[T any] struct {
	Data      *T
	Err       error
	Message   string
	IsLoading bool
}

// Success wraps a fetched value.
func Success[T any](v T) Result[T] {
	return Result[T]{Data: &v, Message: MessageSuccess}
}

// Failure wraps a fetch error.
func Failure[T any](err error) Result[T] {
	return Result[T]{Err: err, Message: MessageFailure}
}

// Pending is the envelope of a fetch that has not finished.
func Pending[T any]() Result[T] {
	return Result[T]{IsLoading: true}
}

// OK reports whether the fetch succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil && r.Data != nil
}
