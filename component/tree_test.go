package component

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/kbukum/sitekit/errors"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
	onStart    func()
	onStop     func()
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	if m.onStart != nil {
		m.onStart()
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	if m.onStop != nil {
		m.onStop()
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

func TestAddDuplicate(t *testing.T) {
	tree := NewTree()
	if err := tree.Add(&mockComponent{name: "faq"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := tree.Add(&mockComponent{name: "faq"}); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestMountOrderAndUnmountReverse(t *testing.T) {
	tree := NewTree()
	var started, stopped []string
	for _, name := range []string{"theme", "faq", "testimonials"} {
		_ = tree.Add(&mockComponent{name: name, startOrder: &started, stopOrder: &stopped})
	}

	if err := tree.Mount(context.Background()); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if fmt.Sprint(started) != "[theme faq testimonials]" {
		t.Errorf("unexpected start order %v", started)
	}

	if err := tree.Unmount(context.Background()); err != nil {
		t.Fatalf("Unmount failed: %v", err)
	}
	if fmt.Sprint(stopped) != "[testimonials faq theme]" {
		t.Errorf("unexpected stop order %v", stopped)
	}
}

func TestMountTwiceStartsOnce(t *testing.T) {
	tree := NewTree()
	var started []string
	_ = tree.Add(&mockComponent{name: "faq", startOrder: &started})

	_ = tree.Mount(context.Background())
	_ = tree.Mount(context.Background())
	if len(started) != 1 {
		t.Errorf("expected one start, got %d", len(started))
	}
}

func TestMountContinuesPastFailure(t *testing.T) {
	tree := NewTree()
	var started []string
	boom := errors.New("boom")
	_ = tree.Add(&mockComponent{name: "theme", startErr: boom, startOrder: &started})
	_ = tree.Add(&mockComponent{name: "faq", startOrder: &started})

	err := tree.Mount(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to contain boom, got %v", err)
	}
	if len(started) != 2 {
		t.Errorf("expected both components started, got %v", started)
	}
}

func TestTreeReadableDuringLifecycle(t *testing.T) {
	tree := NewTree()
	var foundOnStart, foundOnStop bool
	c := &mockComponent{name: "faq"}
	c.onStart = func() {
		_, foundOnStart = tree.Lookup("faq")
		_ = tree.Health(context.Background())
	}
	c.onStop = func() {
		_, foundOnStop = tree.Lookup("faq")
	}
	_ = tree.Add(c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = tree.Mount(context.Background())
		_ = tree.Unmount(context.Background())
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lookup from within Start or Stop blocked")
	}

	if !foundOnStart {
		t.Error("expected component to resolve while starting")
	}
	if foundOnStop {
		t.Error("expected component to stop resolving before Stop")
	}
}

func TestUnmountSkipsUnmounted(t *testing.T) {
	tree := NewTree()
	var stopped []string
	_ = tree.Add(&mockComponent{name: "faq", stopOrder: &stopped})

	if err := tree.Unmount(context.Background()); err != nil {
		t.Fatalf("Unmount failed: %v", err)
	}
	if len(stopped) != 0 {
		t.Errorf("expected no stops, got %v", stopped)
	}
}

func TestUnmountJoinsErrors(t *testing.T) {
	tree := NewTree()
	_ = tree.Add(&mockComponent{name: "faq", stopErr: errors.New("stop failed")})
	_ = tree.Mount(context.Background())

	if err := tree.Unmount(context.Background()); err == nil {
		t.Error("expected error from Unmount")
	}
}

func TestHealth(t *testing.T) {
	tree := NewTree()
	_ = tree.Add(&mockComponent{name: "faq", health: Health{Name: "faq", Status: StatusHealthy}})
	_ = tree.Add(&mockComponent{name: "testimonials", health: Health{Name: "testimonials", Status: StatusUnhealthy}})

	results := tree.Health(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[1].Status != StatusUnhealthy {
		t.Errorf("expected testimonials unhealthy, got %s", results[1].Status)
	}
}

func TestUse(t *testing.T) {
	tree := NewTree()
	c := &mockComponent{name: "faq"}
	_ = tree.Add(c)

	if _, ok := Use[*mockComponent](tree, "faq"); ok {
		t.Error("expected unmounted component to be unresolvable")
	}

	_ = tree.Mount(context.Background())
	got, ok := Use[*mockComponent](tree, "faq")
	if !ok || got != c {
		t.Fatalf("expected to resolve mounted component, got %v %v", got, ok)
	}

	if _, ok := Use[fmt.Stringer](tree, "faq"); ok {
		t.Error("expected type mismatch to be unresolvable")
	}

	_ = tree.Unmount(context.Background())
	if _, ok := Use[*mockComponent](tree, "faq"); ok {
		t.Error("expected unmounted component to be unresolvable")
	}
}

func TestUseNearestWins(t *testing.T) {
	root := NewTree()
	outer := &mockComponent{name: "theme"}
	_ = root.Add(outer)
	_ = root.Mount(context.Background())

	child := root.Child()
	got, ok := Use[*mockComponent](child, "theme")
	if !ok || got != outer {
		t.Fatal("expected child to resolve parent component")
	}

	inner := &mockComponent{name: "theme"}
	_ = child.Add(inner)
	_ = child.Mount(context.Background())
	got, _ = Use[*mockComponent](child, "theme")
	if got != inner {
		t.Error("expected nearest component to shadow parent")
	}
	got, _ = Use[*mockComponent](root, "theme")
	if got != outer {
		t.Error("expected root lookup unaffected by child")
	}
}

func TestMustUsePanicsWithContextMisuse(t *testing.T) {
	defer func() {
		r := recover()
		appErr, ok := r.(*apperrors.AppError)
		if !ok {
			t.Fatalf("expected *AppError panic, got %T: %v", r, r)
		}
		if appErr.Code != apperrors.ErrCodeContextMisuse {
			t.Errorf("expected CONTEXT_MISUSE, got %s", appErr.Code)
		}
		if appErr.Message != "useFaq must be used within FaqProvider" {
			t.Errorf("unexpected message %q", appErr.Message)
		}
	}()
	MustUse[*mockComponent](NewTree(), "useFaq", "FaqProvider")
}

func TestMustUseNilTree(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil tree")
		}
	}()
	MustUse[*mockComponent](nil, "useTheme", "ThemeProvider")
}
