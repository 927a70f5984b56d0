package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/sitekit/httpclient"
	"github.com/kbukum/sitekit/logger"
	"github.com/kbukum/sitekit/observability"
)

// HeaderRequestID carries the per-call request id.
const HeaderRequestID = "X-Request-ID"

// Fetcher holds the transport and instrumentation shared by Fetch calls.
type Fetcher struct {
	adapter *httpclient.Adapter
	log     *logger.Logger
	tracer  trace.Tracer
	metrics *observability.FetchMetrics
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLogger sets the logger. Defaults to the global "fetch" logger.
func WithLogger(l *logger.Logger) FetcherOption {
	return func(f *Fetcher) { f.log = l }
}

// WithTracerProvider sets the tracer provider. Defaults to the otel global.
func WithTracerProvider(tp trace.TracerProvider) FetcherOption {
	return func(f *Fetcher) { f.tracer = observability.Tracer(tp) }
}

// WithMetrics sets the metric instruments. Nil disables metrics.
func WithMetrics(m *observability.FetchMetrics) FetcherOption {
	return func(f *Fetcher) { f.metrics = m }
}

// NewFetcher creates a Fetcher over adapter.
func NewFetcher(adapter *httpclient.Adapter, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		adapter: adapter,
		log:     logger.Get("fetch"),
		tracer:  observability.Tracer(nil),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Adapter returns the underlying HTTP adapter.
func (f *Fetcher) Adapter() *httpclient.Adapter {
	return f.adapter
}

// Fetch requests url, decodes the JSON body into T and wraps the outcome.
func Fetch[T any](ctx context.Context, f *Fetcher, url string, opts ...Option) Result[T] {
	if f == nil || f.adapter == nil {
		return Failure[T](networkError(url, errors.New("fetcher has no http adapter")))
	}
	o := newOptions(opts)
	requestID := ensureRequestID(o.Headers)
	start := time.Now()

	ctx, span := f.tracer.Start(ctx, observability.SpanFetch,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrURL, url),
			attribute.String(observability.AttrMethod, o.Method),
		),
	)
	defer span.End()

	value, status, ferr := run[T](ctx, f.adapter, url, o)
	elapsed := time.Since(start)

	fields := logger.Fields(
		logger.FieldURL, url,
		logger.FieldMethod, o.Method,
		logger.FieldRequestID, requestID,
		logger.FieldDuration, elapsed.Milliseconds(),
	)
	if status > 0 {
		span.SetAttributes(attribute.Int(observability.AttrStatusCode, status))
		fields[logger.FieldStatusCode] = status
	}

	if ferr != nil {
		span.SetAttributes(attribute.String(observability.AttrErrorKind, ferr.Kind.String()))
		span.RecordError(ferr)
		span.SetStatus(codes.Error, ferr.Error())
		f.metrics.RecordFetch(ctx, o.Method, ferr.Kind.String(), elapsed)
		fields[logger.FieldError] = ferr.Error()
		f.log.Warn("fetch failed", fields)
		return Failure[T](ferr)
	}

	f.metrics.RecordFetch(ctx, o.Method, "ok", elapsed)
	f.log.Debug("fetch succeeded", fields)
	return Success(value)
}

func run[T any](ctx context.Context, adapter *httpclient.Adapter, url string, o Options) (T, int, *Error) {
	var zero T
	if url == "" {
		return zero, 0, networkError(url, errors.New("empty url"))
	}

	if o.SimulateLoading && o.LoadingTime > 0 {
		timer := time.NewTimer(o.LoadingTime)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return zero, 0, networkError(url, ctx.Err())
		case <-timer.C:
		}
	}

	resp, err := adapter.Do(ctx, httpclient.Request{
		Method:  o.Method,
		Path:    url,
		Headers: o.Headers,
		Body:    o.Body,
	})
	if err != nil {
		if httpclient.IsStatus(err) {
			return zero, httpclient.StatusCode(err), httpError(url, httpclient.StatusCode(err), err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, 0, networkError(url, ctxErr)
		}
		return zero, 0, networkError(url, err)
	}

	if o.AllowEmpty && len(bytes.TrimSpace(resp.Body)) == 0 {
		return zero, resp.StatusCode, nil
	}
	value, ferr := decode[T](url, resp.Body, o.validate)
	return value, resp.StatusCode, ferr
}

func decode[T any](url string, body []byte, validate func(any) error) (T, *Error) {
	var value T
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return value, formatError(url, "body is not valid JSON", nil)
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return value, formatError(url, "expected a JSON object or array", nil)
	}
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return value, formatError(url, err.Error(), err)
	}
	if validate != nil {
		if err := validate(value); err != nil {
			return value, formatError(url, err.Error(), err)
		}
	}
	return value, nil
}

func ensureRequestID(headers map[string]string) string {
	canonical := http.CanonicalHeaderKey(HeaderRequestID)
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == canonical && v != "" {
			return v
		}
	}
	id := uuid.NewString()
	headers[HeaderRequestID] = id
	return id
}
