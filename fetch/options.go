package fetch

import (
	"fmt"
	"net/http"
	"time"
)

// Options is the per-call request configuration.
type Options struct {
	Method          string
	Headers         map[string]string
	Body            any
	SimulateLoading bool
	LoadingTime     time.Duration
	// AllowEmpty accepts a 2xx response without a body as success with the zero value.
	AllowEmpty bool

	validate func(any) error
}

// Option configures a single Fetch call.
type Option func(*Options)

func newOptions(opts []Option) Options {
	o := Options{Method: http.MethodGet, Headers: map[string]string{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.LoadingTime < 0 {
		o.LoadingTime = 0
	}
	return o
}

// WithMethod sets the HTTP method.
func WithMethod(method string) Option {
	return func(o *Options) {
		if method != "" {
			o.Method = method
		}
	}
}

// WithHeader sets one request header.
func WithHeader(key, value string) Option {
	return func(o *Options) { o.Headers[key] = value }
}

// WithHeaders merges headers into the request headers.
func WithHeaders(headers map[string]string) Option {
	return func(o *Options) {
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// WithBody sets a raw request body (string or []byte).
func WithBody(body any) Option {
	return func(o *Options) { o.Body = body }
}

// WithJSON sets a JSON request body and switches a GET to POST.
func WithJSON(v any) Option {
	return func(o *Options) {
		o.Body = v
		o.Headers["Content-Type"] = "application/json"
		if o.Method == http.MethodGet {
			o.Method = http.MethodPost
		}
	}
}

// WithSimulatedLoading delays the request by d before it is issued.
func WithSimulatedLoading(d time.Duration) Option {
	return func(o *Options) {
		o.SimulateLoading = true
		o.LoadingTime = d
	}
}

// WithAllowEmpty accepts an empty 2xx body, as form endpoints may send.
func WithAllowEmpty() Option {
	return func(o *Options) { o.AllowEmpty = true }
}

// WithValidator runs fn on the decoded value. A non-nil error turns the
// result into a format error.
func WithValidator[T any](fn func(T) error) Option {
	return func(o *Options) {
		o.validate = func(v any) error {
			t, ok := v.(T)
			if !ok {
				return fmt.Errorf("validator expects %T, got %T", t, v)
			}
			return fn(t)
		}
	}
}
