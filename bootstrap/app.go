package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/sitekit/component"
	"github.com/kbukum/sitekit/fetch"
	"github.com/kbukum/sitekit/logger"
	"github.com/kbukum/sitekit/observability"
	"github.com/kbukum/sitekit/provider"
	"github.com/kbukum/sitekit/site"
	"github.com/kbukum/sitekit/storage"
	"github.com/kbukum/sitekit/theme"
	"github.com/kbukum/sitekit/version"

	// registers the "local" storage provider
	_ "github.com/kbukum/sitekit/storage/local"
)

// App holds everything a sitectl command needs. Components are built eagerly
// but only mounted once registered with RegisterComponent.
type App struct {
	Name    string
	Version string
	Cfg     *site.Config
	Tree    *component.Tree
	Logger  *logger.Logger
	Client  *site.Client
	Metrics *observability.FetchMetrics

	FAQ          *provider.Collection[site.FAQ]
	Testimonials *provider.Collection[site.Testimonial]
	Theme        *theme.Store

	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
	closers         []func(context.Context) error
}

// NewApp creates an application from cfg. It applies defaults, validates the
// config, initializes the logger and, when enabled, OTLP telemetry. Telemetry
// already started is shut down again if a later step fails.
func NewApp(ctx context.Context, cfg *site.Config, opts ...Option) (*App, error) {
	if cfg.Base.Version == "" {
		cfg.Base.Version = version.Short()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	app := &App{
		Name:            cfg.Base.Name,
		Version:         cfg.Base.Version,
		Cfg:             cfg,
		Tree:            component.NewTree(),
		gracefulTimeout: 15 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		if err := logger.Init(cfg.Logging, cfg.Base.Name); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		app.Logger = logger.Global()
	}

	if _, ok := cfg.API.Headers["User-Agent"]; !ok {
		headers := make(map[string]string, len(cfg.API.Headers)+1)
		for k, v := range cfg.API.Headers {
			headers[k] = v
		}
		headers["User-Agent"] = version.UserAgent(app.Name)
		cfg.API.Headers = headers
	}

	tp, err := app.initTelemetry(ctx)
	if err != nil {
		_ = app.stop()
		return nil, err
	}

	fetchOpts := []fetch.FetcherOption{fetch.WithMetrics(app.Metrics)}
	if tp != nil {
		fetchOpts = append(fetchOpts, fetch.WithTracerProvider(tp))
	}
	clientOpts := []site.ClientOption{
		site.WithLogger(app.Logger.WithComponent("site")),
		site.WithFetcherOptions(fetchOpts...),
	}
	if o.transport != nil {
		clientOpts = append(clientOpts, site.WithTransport(o.transport))
	}
	app.Client, err = site.NewClient(cfg.API, clientOpts...)
	if err != nil {
		_ = app.stop()
		return nil, fmt.Errorf("site client: %w", err)
	}

	providerOpts := []provider.Option{
		provider.WithLogger(app.Logger.WithComponent("provider")),
		provider.WithMetrics(app.Metrics),
	}
	if tp != nil {
		providerOpts = append(providerOpts, provider.WithTracerProvider(tp))
	}
	app.FAQ = site.NewFAQProvider(app.Client, providerOpts...)
	app.Testimonials = site.NewTestimonialsProvider(app.Client, providerOpts...)

	backend, err := storage.New(cfg.Theme.Storage, app.Logger)
	if err != nil {
		_ = app.stop()
		return nil, fmt.Errorf("theme storage: %w", err)
	}
	app.Theme = theme.NewStore(backend,
		theme.WithKey(cfg.Theme.Key),
		theme.WithLogger(app.Logger.WithComponent("theme")),
	)

	return app, nil
}

// initTelemetry installs OTLP providers when observability is enabled and
// always prepares the fetch instruments. The returned tracer provider is nil
// when telemetry is off.
func (a *App) initTelemetry(ctx context.Context) (trace.TracerProvider, error) {
	if !a.Cfg.Observability.Enabled {
		m, err := observability.NewFetchMetrics(nil)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		a.Metrics = m
		return nil, nil
	}

	tp, err := observability.InitTracer(ctx, a.Cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("tracer: %w", err)
	}
	a.closers = append(a.closers, tp.Shutdown)

	mp, err := observability.InitMeter(ctx, a.Cfg.Observability, 0)
	if err != nil {
		return nil, fmt.Errorf("meter: %w", err)
	}
	a.closers = append(a.closers, mp.Shutdown)

	m, err := observability.NewFetchMetrics(mp)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	a.Metrics = m
	return tp, nil
}

// RegisterComponent adds a component to the application's tree.
func (a *App) RegisterComponent(c component.Component) error {
	return a.Tree.Add(c)
}

// ReadyCheck verifies that all mounted components are healthy.
func (a *App) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Tree.Health(ctx) {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run mounts the tree and blocks until a shutdown signal or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}
	a.Logger.Info("application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.stop()
}

// RunTask mounts the tree, runs task and unmounts again. SIGINT and SIGTERM
// cancel the task context.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Debug("starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Tree.Mount(ctx); err != nil {
		_ = a.stop()
		return fmt.Errorf("mount failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		_ = a.stop()
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}

	a.Logger.Debug("application started", logger.DurationFields("startup", time.Since(start)))
	return nil
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
		return nil
	}
}

// Shutdown unmounts the tree and flushes telemetry. Use when managing your own lifecycle.
func (a *App) Shutdown(context.Context) error {
	return a.stop()
}

func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("onStop hook error", logger.Fields(logger.FieldError, err.Error()))
		errs = append(errs, err)
	}
	if err := a.Tree.Unmount(ctx); err != nil {
		a.Logger.Error("unmount completed with errors", logger.Fields(logger.FieldError, err.Error()))
		errs = append(errs, err)
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
