package component

import (
	apperrors "github.com/kbukum/sitekit/errors"
)

// Use resolves the nearest mounted component named name as a T.
func Use[T any](t *Tree, name string) (T, bool) {
	var zero T
	if t == nil {
		return zero, false
	}
	c, ok := t.Lookup(name)
	if !ok {
		return zero, false
	}
	v, ok := c.(T)
	return v, ok
}

// MustUse is Use for consumers that cannot work without their provider.
// It panics with a CONTEXT_MISUSE *errors.AppError naming hook and provider.
func MustUse[T any](t *Tree, hook, name string) T {
	v, ok := Use[T](t, name)
	if !ok {
		panic(apperrors.ContextMisuse(hook, name))
	}
	return v
}
