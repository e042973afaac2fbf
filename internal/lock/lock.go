// Package lock guards commands that rewrite workspace files against
// concurrent paictl invocations.
package lock

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrHeld is returned when another paictl process holds the lock.
var ErrHeld = errors.New("another paictl command is already running")

// Flocker is the subset of flock.Flock needed for advisory locking.
type Flocker interface {
	TryLock() (bool, error)
	Unlock() error
}

// newFlocker is a var to allow test overrides without touching the
// filesystem.
var newFlocker = func(path string) Flocker { return flock.New(path) }

// SetFlockerFactory overrides how the underlying flock is built.
// Intended for use in tests only. Returns the previous factory.
func SetFlockerFactory(fn func(path string) Flocker) func(path string) Flocker {
	prev := newFlocker
	newFlocker = fn
	return prev
}

// Acquire takes a non-blocking advisory lock on path. The caller must call
// Release on the returned lock. ErrHeld means another process won the race.
func Acquire(ctx context.Context, path string) (*Lock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := newFlocker(path)
	ok, err := f.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", path, err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &Lock{flocker: f}, nil
}

// Lock is a held advisory lock.
type Lock struct {
	flocker Flocker
}

// Release gives the lock up. Safe to call once per acquired lock.
func (l *Lock) Release() error {
	if err := l.flocker.Unlock(); err != nil {
		return fmt.Errorf("releasing lock: %w", err)
	}
	return nil
}
