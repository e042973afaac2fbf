package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func TestDirsFor(t *testing.T) {
	got := DirsFor([]string{
		"skills/deploy/SKILL.md",
		"skills/deploy/notes.md",
		"README.md",
		".pai/context/identity.md",
	})
	want := []string{".", ".pai/context", "skills/deploy"}
	if len(got) != len(want) {
		t.Fatalf("dirs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dirs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHandleEvent_IgnoresChmod(t *testing.T) {
	w := newTestWatcher(t, func(context.Context) {})

	w.handleEvent(fsnotify.Event{Name: "/w/a.md", Op: fsnotify.Chmod})
	if len(w.debounceMap) != 0 {
		t.Errorf("chmod event recorded: %v", w.debounceMap)
	}

	w.handleEvent(fsnotify.Event{Name: "/w/a.md", Op: fsnotify.Write})
	if len(w.debounceMap) != 1 {
		t.Errorf("write event not recorded: %v", w.debounceMap)
	}
}

func TestProcessSettled_FiresOncePerBatch(t *testing.T) {
	fired := 0
	w := newTestWatcher(t, func(context.Context) { fired++ })

	old := time.Now().Add(-time.Second)
	w.debounceMap["/w/a.md"] = old
	w.debounceMap["/w/b.md"] = old

	w.processSettled(context.Background())
	if fired != 1 {
		t.Errorf("callback fired %d times, want 1", fired)
	}
	if len(w.debounceMap) != 0 {
		t.Errorf("settled entries not cleared: %v", w.debounceMap)
	}
}

func TestProcessSettled_WaitsForQuietWindow(t *testing.T) {
	fired := 0
	w := newTestWatcher(t, func(context.Context) { fired++ })

	w.debounceMap["/w/a.md"] = time.Now()
	w.processSettled(context.Background())

	if fired != 0 {
		t.Error("callback fired before the debounce window passed")
	}
	if len(w.debounceMap) != 1 {
		t.Error("pending entry was dropped")
	}
}

func TestWatcher_Lifecycle(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "skills"), 0o755); err != nil {
		t.Fatal(err)
	}

	settled := make(chan struct{}, 1)
	w, err := New(root, []string{"skills", "missing-dir"}, func(context.Context) {
		select {
		case settled <- struct{}{}:
		default:
		}
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "skills", "new.md"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-settled:
	case <-time.After(5 * time.Second):
		t.Error("settle callback never fired after a write")
	}

	w.Stop()
	// Stop again must not panic or hang.
	w.Stop()
}

func newTestWatcher(t *testing.T, onSettle func(context.Context)) *Watcher {
	t.Helper()
	w, err := New(t.TempDir(), nil, onSettle, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = w.fsw.Close() })
	return w
}
