package theme

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/kbukum/sitekit/component"
	apperrors "github.com/kbukum/sitekit/errors"
	"github.com/kbukum/sitekit/logger"
	"github.com/kbukum/sitekit/storage"
)

// Names consumers resolve the store by.
const (
	ProviderName = "ThemeProvider"
	HookName     = "useTheme"
)

// DefaultKey is the storage slot holding the theme.
const DefaultKey = "theme"

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage slot.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l.WithComponent("theme") }
}

// Store holds the current theme and persists changes to one storage slot.
type Store struct {
	backend storage.Store
	key     string
	log     *logger.Logger

	mu      sync.RWMutex
	current Theme
	started bool
	subs    map[int]func(Theme)
	nextSub int
}

// NewStore creates a store over backend. It is unusable until Start.
func NewStore(backend storage.Store, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		log:     logger.Get("theme"),
		current: Default,
		subs:    make(map[int]func(Theme)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the provider name.
func (s *Store) Name() string { return ProviderName }

// Start reads the stored theme. An absent or malformed value yields the
// default. A read error also yields the default and is returned as a
// STORAGE_ERROR.
func (s *Store) Start(ctx context.Context) error {
	raw, ok, err := s.backend.Get(ctx, s.key)

	t := Default
	var startErr error
	switch {
	case err != nil:
		s.log.Warn("theme read failed, using default", logger.Fields(logger.FieldError, err.Error()))
		startErr = apperrors.StorageFailure(s.key, err)
	case !ok:
	default:
		parsed, valid := Parse(raw)
		if !valid {
			s.log.Warn("stored theme is malformed, using default", logger.Fields("value", raw))
		}
		t = parsed
	}

	s.mu.Lock()
	s.current = t
	s.started = true
	s.mu.Unlock()

	s.log.Debug("theme mounted", logger.Fields(logger.FieldTheme, t.String()))
	s.notify(t)
	return startErr
}

// Stop unmounts the store.
func (s *Store) Stop(context.Context) error {
	s.mu.Lock()
	s.started = false
	s.current = Default
	s.mu.Unlock()
	return nil
}

// Health reports the mounted theme.
func (s *Store) Health(context.Context) component.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return component.Health{Name: ProviderName, Status: component.StatusDegraded, Message: "not mounted"}
	}
	return component.Health{Name: ProviderName, Status: component.StatusHealthy, Message: s.current.String()}
}

// Current returns the theme. Before Start it returns a CONTEXT_MISUSE error.
func (s *Store) Current() (Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return Default, misuse()
	}
	return s.current, nil
}

// IsDark reports whether the dark theme is active. False before Start.
func (s *Store) IsDark() bool {
	t, err := s.Current()
	return err == nil && t.IsDark()
}

// Pick returns dark when the dark theme is active and light otherwise.
//
//	logo := store.Pick("/images/logo.svg", "/images/logo-dark.svg")
func (s *Store) Pick(light, dark string) string {
	if s.IsDark() {
		return dark
	}
	return light
}

// Toggle flips the theme. The new value is written before memory is updated,
// so a failed write leaves the store unchanged.
func (s *Store) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return Default, misuse()
	}
	next := s.current.Toggle()
	if err := s.write(ctx, next); err != nil {
		cur := s.current
		s.mu.Unlock()
		return cur, err
	}
	s.current = next
	s.mu.Unlock()

	s.log.Info("theme toggled", logger.Fields(logger.FieldTheme, next.String()))
	s.notify(next)
	return next, nil
}

// Set selects t explicitly. Invalid themes are rejected with INVALID_INPUT.
func (s *Store) Set(ctx context.Context, t Theme) error {
	parsed, ok := Parse(string(t))
	if !ok {
		return apperrors.InvalidInput("theme", "must be light or dark")
	}

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return misuse()
	}
	if err := s.write(ctx, parsed); err != nil {
		s.mu.Unlock()
		return err
	}
	changed := s.current != parsed
	s.current = parsed
	s.mu.Unlock()

	if changed {
		s.log.Info("theme set", logger.Fields(logger.FieldTheme, parsed.String()))
		s.notify(parsed)
	}
	return nil
}

// Reset clears the stored theme and returns to the default. A failed delete
// leaves the store unchanged.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return misuse()
	}
	if err := s.backend.Delete(ctx, s.key); err != nil {
		s.mu.Unlock()
		s.log.Error("theme reset failed", logger.Fields(logger.FieldError, err.Error()))
		return apperrors.StorageFailure(s.key, err)
	}
	changed := s.current != Default
	s.current = Default
	s.mu.Unlock()

	s.log.Info("theme reset", logger.Fields(logger.FieldTheme, Default.String()))
	if changed {
		s.notify(Default)
	}
	return nil
}

// Subscribe registers fn to be called synchronously on every theme change.
func (s *Store) Subscribe(fn func(Theme)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// write must be called with s.mu held.
func (s *Store) write(ctx context.Context, t Theme) error {
	if err := s.backend.Set(ctx, s.key, t.String()); err != nil {
		s.log.Error("theme write failed", logger.Fields(logger.FieldTheme, t.String(), logger.FieldError, err.Error()))
		return apperrors.StorageFailure(s.key, err)
	}
	return nil
}

func (s *Store) notify(t Theme) {
	s.mu.RLock()
	subs := make([]func(Theme), 0, len(s.subs))
	for _, id := range slices.Sorted(maps.Keys(s.subs)) {
		subs = append(subs, s.subs[id])
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(t)
	}
}

func misuse() *apperrors.AppError {
	return apperrors.ContextMisuse(HookName, ProviderName)
}

// Use resolves the nearest mounted theme store in tree. It panics with a
// CONTEXT_MISUSE error when none is mounted.
func Use(tree *component.Tree) *Store {
	return component.MustUse[*Store](tree, HookName, ProviderName)
}

var _ component.Component = (*Store)(nil)
