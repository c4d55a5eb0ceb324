package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeManifest(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gdscaffold.yaml")
	writeManifest(t, path, "name: A\n")

	calls := make(chan struct{}, 10)
	w, err := New(path, func(context.Context) error {
		calls <- struct{}{}
		return nil
	}, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for _, name := range []string{"B", "C", "D"} {
		writeManifest(t, path, "name: "+name+"\n")
	}

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("no pass after manifest change")
	}

	time.Sleep(200 * time.Millisecond)
	if got := w.Passes(); got != 1 {
		t.Errorf("Passes() = %d, want 1", got)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gdscaffold.yaml")
	writeManifest(t, path, "name: A\n")

	w, err := New(path, func(context.Context) error { return nil }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	writeManifest(t, filepath.Join(dir, "notes.txt"), "hello")
	time.Sleep(200 * time.Millisecond)

	if got := w.Passes(); got != 0 {
		t.Errorf("Passes() = %d, want 0", got)
	}
}

func TestWatcherSurvivesFailedPass(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gdscaffold.yaml")
	writeManifest(t, path, "name: A\n")

	calls := make(chan struct{}, 10)
	w, err := New(path, func(context.Context) error {
		calls <- struct{}{}
		return errors.New("bad manifest")
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 2; i++ {
		writeManifest(t, path, "name: B\n")
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("pass %d did not run", i+1)
		}
	}
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gdscaffold.yaml")
	writeManifest(t, path, "name: A\n")

	w, err := New(path, func(context.Context) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit after cancel")
	}
	w.Stop()
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gdscaffold.yaml")
	writeManifest(t, path, "name: A\n")

	w, err := New(path, func(context.Context) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("second Start() error: %v", err)
	}
	w.Stop()
	w.Stop()
}

func TestWatcherStartMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "gdscaffold.yaml")

	w, err := New(path, func(context.Context) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}
