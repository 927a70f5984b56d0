package provider

import (
	"context"
	"maps"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/sitekit/component"
	"github.com/kbukum/sitekit/fetch"
	"github.com/kbukum/sitekit/logger"
	"github.com/kbukum/sitekit/observability"
)

// Loader fetches the collection from its fixed endpoint.
type Loader[T any] func(ctx context.Context) fetch.Result[[]T]

// Option configures a Collection.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.FetchMetrics
	tracer  trace.Tracer
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics counts discarded loads on m.
func WithMetrics(m *observability.FetchMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracerProvider sets the tracer provider used for load spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracer = observability.Tracer(tp) }
}

// Collection owns one fetched collection and its load status.
type Collection[T any] struct {
	name string
	load Loader[T]
	opts options

	mu         sync.Mutex
	items      []T
	status     Status
	state      State
	seq        uint64 // latest issued
	appliedSeq uint64
	hasFetched bool
	mounting   bool
	inflight   map[uint64]context.CancelFunc
	subs       map[int]func(Snapshot[T])
	nextSub    int
}

// NewCollection creates an idle collection named name.
func NewCollection[T any](name string, load Loader[T], opts ...Option) *Collection[T] {
	o := options{tracer: observability.Tracer(nil)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get(name)
	} else {
		o.log = o.log.WithComponent(name)
	}
	return &Collection[T]{
		name:     name,
		load:     load,
		opts:     o,
		inflight: make(map[uint64]context.CancelFunc),
		subs:     make(map[int]func(Snapshot[T])),
	}
}

// Name returns the provider name.
func (c *Collection[T]) Name() string { return c.name }

// Start mounts the collection. Load failures are kept in the status.
func (c *Collection[T]) Start(ctx context.Context) error {
	c.Mount(ctx)
	return nil
}

// Stop unmounts the collection.
func (c *Collection[T]) Stop(context.Context) error {
	c.Unmount()
	return nil
}

// Health maps the collection state onto component health.
func (c *Collection[T]) Health(context.Context) component.Health {
	c.mu.Lock()
	defer c.mu.Unlock()
	return healthOf(c.name, c.state, len(c.items), c.status.Err)
}

// Mount fetches the collection unless it has already been fetched or a mount
// fetch is in flight. It returns the resulting snapshot.
func (c *Collection[T]) Mount(ctx context.Context) Snapshot[T] {
	c.mu.Lock()
	if c.hasFetched || c.mounting {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.opts.log.Debug("mount skipped", logger.Fields(logger.FieldState, snap.State.String()))
		return snap
	}
	c.mounting = true
	c.mu.Unlock()

	snap := c.run(ctx, "mount")

	c.mu.Lock()
	c.mounting = false
	c.mu.Unlock()
	return snap
}

// Refresh fetches the collection again regardless of prior state.
func (c *Collection[T]) Refresh(ctx context.Context) Snapshot[T] {
	return c.run(ctx, "refresh")
}

// Unmount drops all state. Loads still in flight are cancelled and their
// results discarded.
func (c *Collection[T]) Unmount() {
	c.mu.Lock()
	for seq, cancel := range c.inflight {
		cancel()
		delete(c.inflight, seq)
	}
	c.seq++
	c.appliedSeq = c.seq
	c.items = nil
	c.status = Status{}
	c.state = StateIdle
	c.hasFetched = false
	c.mounting = false
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.opts.log.Debug("unmounted")
	c.notify(snap)
}

// Snapshot returns the current state.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Items returns a copy of the current items.
func (c *Collection[T]) Items() []T {
	return c.Snapshot().Items
}

// Status returns the current status.
func (c *Collection[T]) Status() Status {
	return c.Snapshot().Status
}

// Subscribe registers fn to be called synchronously on every state change.
// The returned function removes the subscription.
func (c *Collection[T]) Subscribe(fn func(Snapshot[T])) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

func (c *Collection[T]) run(ctx context.Context, op string) Snapshot[T] {
	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.inflight[seq] = cancel
	c.state = StateLoading
	c.status = statusOf(fetch.Pending[[]T]())
	loading := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(loading)

	loadCtx, span := c.opts.tracer.Start(loadCtx, observability.SpanRefresh, trace.WithAttributes(
		attribute.String(observability.AttrProviderName, c.name),
		attribute.Int64(observability.AttrSeq, int64(seq)),
		attribute.String("provider.operation", op),
	))
	res := c.load(loadCtx)
	span.End()

	return c.apply(ctx, seq, op, res)
}

func (c *Collection[T]) apply(ctx context.Context, seq uint64, op string, res fetch.Result[[]T]) Snapshot[T] {
	c.mu.Lock()
	delete(c.inflight, seq)
	if seq != c.seq {
		latest := c.seq
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.opts.log.Debug("stale load discarded", logger.Fields(
			logger.FieldOperation, op,
			logger.FieldSeq, seq,
			"latest_seq", latest,
		))
		c.opts.metrics.RecordDiscarded(ctx, c.name)
		return snap
	}

	c.appliedSeq = seq
	switch {
	case res.Err != nil:
		c.items = nil
		c.state = StateFailed
		c.status = statusOf(res)
	case res.Data == nil:
		c.items = nil
		c.state = StateFailed
		c.status = Status{Err: fetch.NewFormatError(c.name, "response carried no data"), Message: fetch.MessageFailure}
	default:
		c.items = *res.Data
		c.state = StateLoaded
		c.status = statusOf(res)
		c.hasFetched = true
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if snap.State == StateFailed {
		c.opts.log.Warn("load failed", logger.Fields(
			logger.FieldOperation, op,
			logger.FieldSeq, seq,
			logger.FieldError, snap.Status.Err.Error(),
		))
	} else {
		c.opts.log.Debug("load applied", logger.Fields(
			logger.FieldOperation, op,
			logger.FieldSeq, seq,
			logger.FieldItems, len(snap.Items),
		))
	}
	c.notify(snap)
	return snap
}

func (c *Collection[T]) snapshotLocked() Snapshot[T] {
	items := slices.Clone(c.items)
	if items == nil {
		items = []T{}
	}
	return Snapshot[T]{
		Items:  items,
		Status: c.status,
		State:  c.state,
		Seq:    c.appliedSeq,
	}
}

func (c *Collection[T]) notify(snap Snapshot[T]) {
	c.mu.Lock()
	subs := make([]func(Snapshot[T]), 0, len(c.subs))
	for _, id := range slices.Sorted(maps.Keys(c.subs)) {
		subs = append(subs, c.subs[id])
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

var _ component.Component = (*Collection[any])(nil)
