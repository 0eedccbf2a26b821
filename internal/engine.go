package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/peaklog/internal/catalog"
	"github.com/starford/peaklog/internal/climbservice"
	"github.com/starford/peaklog/internal/peaklog"
	"github.com/starford/peaklog/internal/storage"
	"github.com/starford/peaklog/internal/validate"
)

var errConfigRequired = errors.New("config is required")

// Engine is a loaded climb service together with the storage it owns.
type Engine struct {
	Service *climbservice.Service

	// FS is set only for the file driver; the watcher needs it.
	FS *storage.FS

	closers []func() error
}

// Close releases storage handles.
func (e *Engine) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Open builds the catalog, storage, store and service described by cfg
// and loads the persisted log. notifier may be nil.
func Open(ctx context.Context, cfg *Config, logger *slog.Logger, notifier climbservice.Notifier) (*Engine, error) {
	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("init catalog: %w", err)
	}

	e := &Engine{}
	kv, err := e.openStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	store := peaklog.New(kv, cat, logger)
	e.Service = climbservice.NewService(cat, validate.New(cat), store, notifier)
	entries := e.Service.Load(ctx)

	logger.Debug("Peak log loaded",
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.Int("entries", len(entries)),
		slog.Int("catalog_peaks", cat.TotalCount()))
	return e, nil
}

func (e *Engine) openStorage(cfg StorageConfig) (storage.KV, error) {
	switch cfg.Driver {
	case StorageDriverMemory:
		return storage.NewMemory(), nil
	case StorageDriverSQLite:
		db, err := storage.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, db.Close)
		return db, nil
	case StorageDriverFile, "":
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		fs, err := storage.NewFS(cfg.Path)
		if err != nil {
			return nil, err
		}
		e.FS = fs
		return fs, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
