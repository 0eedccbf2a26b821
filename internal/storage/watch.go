package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// ChangeCallback is called with a key whose file was changed by something
// other than this process.
type ChangeCallback func(key string)

// Watch observes the FS data directory until ctx is cancelled and reports
// external changes to key files. Bursts of events are debounced and writes
// made through f itself are ignored.
func Watch(ctx context.Context, f *FS, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(f.root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", f.root))

	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(watchDebounce)
			timerCh = timer.C
		} else {
			timer.Reset(watchDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			for key := range pending {
				delete(pending, key)
				if f.unchanged(key) {
					logger.Debug("watcher: own write ignored", slog.String("key", key))
					continue
				}
				logger.Info("watcher: external change", slog.String("key", key))
				if cb != nil {
					cb(key)
				}
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			key, isKey := f.keyOf(ev.Name)
			if !isKey {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				pending[key] = struct{}{}
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// unchanged reports whether key's file still holds our last write.
func (f *FS) unchanged(key string) bool {
	v, ok, err := f.Get(key)
	if err != nil || !ok {
		return false
	}
	return f.isOwnWrite(key, []byte(v))
}
