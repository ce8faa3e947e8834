package csvio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
)

const (
	// suffixImported marks files that went through the import loop.
	suffixImported = ".imported"
	// suffixFailed marks files the import loop could not read at all.
	suffixFailed = ".failed"
)

// ProcessFile imports a single CSV file through the content service and
// renames it afterwards so it is not picked up again. Row-level failures
// are part of a normal import report; only a file that cannot be opened
// or whose header is rejected gets the failed suffix.
func ProcessFile(ctx context.Context, contentService service.ContentService, userID uint, path string, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open csv file: %w", err)
	}

	report, err := contentService.ImportCSV(ctx, userID, filepath.Base(path), f, service.ClientMeta{UserAgent: "watch-dir"})
	closeErr := f.Close()
	if err != nil {
		if renameErr := os.Rename(path, path+suffixFailed); renameErr != nil {
			logger.Warn("Failed to mark csv file as failed",
				zap.String("file", path),
				zap.Error(renameErr),
			)
		}
		return err
	}
	if closeErr != nil {
		logger.Warn("Failed to close csv file", zap.String("file", path), zap.Error(closeErr))
	}

	if err := os.Rename(path, path+suffixImported); err != nil {
		return fmt.Errorf("failed to mark csv file as imported: %w", err)
	}

	logger.Info("Imported csv file from watch dir",
		zap.String("file", filepath.Base(path)),
		zap.Int("total", report.Total),
		zap.Int("imported", report.Imported),
		zap.Int("failed", report.Failed),
		zap.Int("duplicates", report.Duplicates),
	)
	return nil
}

// SweepDir imports every pending CSV file in dir and returns how many
// files were processed. Files that fail keep the sweep going.
func SweepDir(ctx context.Context, contentService service.ContentService, userID uint, dir string, logger *zap.Logger) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return 0, fmt.Errorf("failed to scan watch dir: %w", err)
	}

	processed := 0
	for _, path := range paths {
		if err := ProcessFile(ctx, contentService, userID, path, logger); err != nil {
			logger.Error("Failed to import csv file",
				zap.String("file", path),
				zap.Error(err),
			)
			continue
		}
		processed++
	}
	return processed, nil
}

// Watcher auto-imports CSV files dropped into the configured watch
// directory. A periodic sweep backstops it for files that arrive while
// the process is down.
type Watcher struct {
	cfg            config.ImportConfig
	contentService service.ContentService
	logger         *zap.Logger

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
	// runCtx backs the event loop. The Start context only bounds the
	// initial sweep; fx-style lifecycles cancel it right after startup
	// and the loop must keep importing drops until Stop.
	runCtx context.Context
	cancel context.CancelFunc
}

// NewWatcher creates a watch-dir importer. It does nothing until Start.
func NewWatcher(cfg *config.Config, contentService service.ContentService, logger *zap.Logger) *Watcher {
	return &Watcher{
		cfg:            cfg.Import,
		contentService: contentService,
		logger:         logger,
		stopCh:         make(chan struct{}),
	}
}

// Start begins watching the drop directory. Disabled or unconfigured
// watchers start successfully as no-ops.
func (w *Watcher) Start(ctx context.Context) error {
	if !w.cfg.WatchEnabled || w.cfg.WatchDir == "" {
		w.logger.Debug("CSV watch dir disabled")
		return nil
	}

	if err := os.MkdirAll(w.cfg.WatchDir, 0o755); err != nil {
		return fmt.Errorf("failed to create watch dir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fw.Add(w.cfg.WatchDir); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch dir: %w", err)
	}
	w.watcher = fw

	w.logger.Info("Watching for csv drops", zap.String("dir", w.cfg.WatchDir))

	// Pick up anything already sitting in the directory.
	if _, err := SweepDir(ctx, w.contentService, w.cfg.SystemUserID, w.cfg.WatchDir, w.logger); err != nil {
		w.logger.Warn("Initial watch dir sweep failed", zap.Error(err))
	}

	w.runCtx, w.cancel = context.WithCancel(context.Background())
	w.wg.Add(1)
	go w.loop(w.runCtx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.HasSuffix(strings.ToLower(event.Name), ".csv") {
				continue
			}
			if err := ProcessFile(ctx, w.contentService, w.cfg.SystemUserID, event.Name, w.logger); err != nil {
				w.logger.Error("Failed to import dropped csv file",
					zap.String("file", event.Name),
					zap.Error(err),
				)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watch dir error", zap.Error(err))
		}
	}
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() {
	if w.watcher == nil {
		return
	}
	w.cancel()
	close(w.stopCh)
	w.watcher.Close()
	w.wg.Wait()
}
