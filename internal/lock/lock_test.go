package lock

import (
	"context"
	"errors"
	"testing"
)

type fakeFlocker struct {
	locked    bool
	lockErr   error
	unlockErr error
	unlocked  bool
}

func (f *fakeFlocker) TryLock() (bool, error) { return f.locked, f.lockErr }
func (f *fakeFlocker) Unlock() error {
	f.unlocked = true
	return f.unlockErr
}

func installFake(t *testing.T, f *fakeFlocker) {
	t.Helper()
	prev := SetFlockerFactory(func(string) Flocker { return f })
	t.Cleanup(func() { SetFlockerFactory(prev) })
}

func TestAcquire_Success(t *testing.T) {
	f := &fakeFlocker{locked: true}
	installFake(t, f)

	l, err := Acquire(context.Background(), "/w/.pai/render.lock")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !f.unlocked {
		t.Error("Release did not unlock the flock")
	}
}

func TestAcquire_Held(t *testing.T) {
	installFake(t, &fakeFlocker{locked: false})

	_, err := Acquire(context.Background(), "/w/.pai/render.lock")
	if !errors.Is(err, ErrHeld) {
		t.Errorf("err = %v, want ErrHeld", err)
	}
}

func TestAcquire_WrapsFlockError(t *testing.T) {
	boom := errors.New("permission denied")
	installFake(t, &fakeFlocker{lockErr: boom})

	_, err := Acquire(context.Background(), "/w/.pai/render.lock")
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestAcquire_CancelledContext(t *testing.T) {
	installFake(t, &fakeFlocker{locked: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Acquire(ctx, "/w/.pai/render.lock")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRelease_WrapsUnlockError(t *testing.T) {
	boom := errors.New("unlock failed")
	installFake(t, &fakeFlocker{locked: true, unlockErr: boom})

	l, err := Acquire(context.Background(), "/w/.pai/render.lock")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := l.Release(); !errors.Is(err, boom) {
		t.Errorf("Release err = %v, want wrapped %v", err, boom)
	}
}

func TestAcquire_RealFile(t *testing.T) {
	path := t.TempDir() + "/render.lock"

	l, err := Acquire(context.Background(), path)
	if err != nil {
		t.Fatalf("Acquire on real file: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}
