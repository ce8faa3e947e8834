package csvio

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
	"github.com/jrjohn/streamlens-go/internal/testutil/mocks"
)

func watchConfig(dir string) *config.Config {
	return &config.Config{
		Import: config.ImportConfig{
			WatchEnabled: true,
			WatchDir:     dir,
			SystemUserID: 1,
		},
	}
}

func TestWatcher_Disabled(t *testing.T) {
	cfg := &config.Config{Import: config.ImportConfig{WatchEnabled: false}}
	w := NewWatcher(cfg, &mocks.MockContentService{}, zap.NewNop())

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// Stop on a never-started watcher must not panic.
	w.Stop()
}

func TestWatcher_ImportsDroppedFile(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var gotFile string
	var gotCtxErr error
	contentService := &mocks.MockContentService{
		ImportCSVFunc: func(ctx context.Context, actorID uint, filename string, r io.Reader, meta service.ClientMeta) (*response.ImportReport, error) {
			mu.Lock()
			defer mu.Unlock()
			gotFile = filename
			gotCtxErr = ctx.Err()
			return &response.ImportReport{File: filename, Total: 1, Imported: 1}, nil
		},
	}

	w := NewWatcher(watchConfig(dir), contentService, zap.NewNop())

	// Lifecycle-style start: the caller cancels the start context once
	// startup completes. Drops after that point must still import.
	startCtx, cancel := context.WithCancel(context.Background())
	if err := w.Start(startCtx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()
	cancel()

	path := filepath.Join(dir, "drop.csv")
	if err := os.WriteFile(path, []byte("platform,title\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(path + suffixImported); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("dropped file was not imported after the start context was cancelled")
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotFile != "drop.csv" {
		t.Errorf("imported file = %q, want drop.csv", gotFile)
	}
	if gotCtxErr != nil {
		t.Errorf("import ran with a dead context: %v", gotCtxErr)
	}
}

func TestWatcher_StopEndsLoop(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(watchConfig(dir), &mocks.MockContentService{}, zap.NewNop())

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// Stop must return rather than hang on the loop goroutine.
	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() did not return")
	}
}
