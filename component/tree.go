package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/sitekit/logger"
)

type entry struct {
	component Component
	mounted   bool
}

// Tree holds components for one subtree. Components mount in the order they
// were added and unmount in reverse.
type Tree struct {
	parent  *Tree
	entries []*entry
	lookup  map[string]*entry
	mu      sync.RWMutex

	// serializes Mount and Unmount
	lifecycle sync.Mutex
}

// NewTree creates an empty root tree.
func NewTree() *Tree {
	return &Tree{lookup: make(map[string]*entry)}
}

// Child creates a subtree whose lookups fall back to t.
func (t *Tree) Child() *Tree {
	c := NewTree()
	c.parent = t
	return c
}

// Add places c in the tree. Names must be unique within one tree; a child
// tree may shadow a name of its parent.
func (t *Tree) Add(c Component) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	name := c.Name()
	if _, exists := t.lookup[name]; exists {
		return fmt.Errorf("component %s already added", name)
	}
	e := &entry{component: c}
	t.entries = append(t.entries, e)
	t.lookup[name] = e

	logger.Get("component").Debug("component added", logger.Fields(logger.FieldComponent, name))
	return nil
}

// Mount starts every component that is not yet mounted. A failing Start does
// not keep later components from mounting; all failures are joined.
//
// A component counts as mounted from the moment its Start begins, so
// anything it notifies during Start can already resolve it. The tree lock is
// not held across Start or Stop.
func (t *Tree) Mount(ctx context.Context) error {
	t.lifecycle.Lock()
	defer t.lifecycle.Unlock()

	t.mu.Lock()
	var pending []*entry
	for _, e := range t.entries {
		if !e.mounted {
			e.mounted = true
			pending = append(pending, e)
		}
	}
	t.mu.Unlock()

	log := logger.Get("component")
	var errs []error
	for _, e := range pending {
		name := e.component.Name()
		if err := e.component.Start(ctx); err != nil {
			log.Warn("component start failed", logger.Fields(logger.FieldComponent, name, logger.FieldError, err.Error()))
			errs = append(errs, fmt.Errorf("start %s: %w", name, err))
		}
		log.Debug("component mounted", logger.Fields(logger.FieldComponent, name))
	}
	return errors.Join(errs...)
}

// Unmount stops mounted components in reverse order. A component stops
// resolving before its Stop runs.
func (t *Tree) Unmount(ctx context.Context) error {
	t.lifecycle.Lock()
	defer t.lifecycle.Unlock()

	t.mu.Lock()
	var mounted []*entry
	for i := len(t.entries) - 1; i >= 0; i-- {
		if e := t.entries[i]; e.mounted {
			e.mounted = false
			mounted = append(mounted, e)
		}
	}
	t.mu.Unlock()

	log := logger.Get("component")
	var errs []error
	for _, e := range mounted {
		name := e.component.Name()
		stopCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := e.component.Stop(stopCtx); err != nil {
			log.Error("component stop failed", logger.Fields(logger.FieldComponent, name, logger.FieldError, err.Error()))
			errs = append(errs, fmt.Errorf("stop %s: %w", name, err))
		}
		cancel()
		log.Debug("component unmounted", logger.Fields(logger.FieldComponent, name))
	}
	return errors.Join(errs...)
}

// Health returns the health of every component in this tree in order.
func (t *Tree) Health(ctx context.Context) []Health {
	t.mu.RLock()
	components := make([]Component, len(t.entries))
	for i, e := range t.entries {
		components[i] = e.component
	}
	t.mu.RUnlock()

	results := make([]Health, 0, len(components))
	for _, c := range components {
		results = append(results, c.Health(ctx))
	}
	return results
}

// Lookup returns the nearest mounted component with the given name.
func (t *Tree) Lookup(name string) (Component, bool) {
	for cur := t; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		e, ok := cur.lookup[name]
		mounted := ok && e.mounted
		cur.mu.RUnlock()
		if mounted {
			return e.component, true
		}
	}
	return nil, false
}
