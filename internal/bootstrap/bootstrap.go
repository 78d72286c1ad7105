// Package bootstrap turns a config.Config into the collaborators the
// commands need: logger, store and layout.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstep/internal/config"
	"github.com/goliatone/go-formstep/internal/logger"
	"github.com/goliatone/go-formstep/pkg/storage"
	"github.com/goliatone/go-formstep/pkg/storage/redis"
	"github.com/goliatone/go-formstep/pkg/storage/sqlite"
	"github.com/goliatone/go-formstep/pkg/uischema"
)

// Runtime bundles the shared collaborators. Close releases them in reverse
// order of acquisition.
type Runtime struct {
	Config config.Config
	Logger *zap.Logger
	Store  storage.Store
	Layout *uischema.Layout

	closers []func() error
}

// New builds the runtime. On failure everything acquired so far is released.
func New(ctx context.Context, cfg config.Config) (*Runtime, error) {
	rt := &Runtime{Config: cfg}

	log, closeLog, err := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: logger: %w", err)
	}
	rt.Logger = log
	rt.closers = append(rt.closers, closeLog)

	layout, err := uischema.Load(cfg.LayoutFile)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("bootstrap: layout: %w", err)
	}
	rt.Layout = layout

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("bootstrap: store: %w", err)
	}
	rt.Store = store
	rt.closers = append(rt.closers, store.Close)

	log.Debug("runtime ready",
		zap.String("store", cfg.Store),
		zap.String("layout", layout.Source),
	)
	return rt, nil
}

// Close releases the store and flushes the logger.
func (rt *Runtime) Close() error {
	if rt == nil {
		return nil
	}
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

// OpenStore returns the backend named by cfg.Store.
func OpenStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemory(), nil
	case config.StoreFile:
		store, err := storage.NewFile(cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreRedis:
		store, err := redis.Open(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store)
	}
}
