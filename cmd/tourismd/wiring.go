package main

import (
	"context"

	"github.com/rs/zerolog"

	"tourismd/internal/backend/hfinference"
	"tourismd/internal/cache"
	"tourismd/internal/config"
	"tourismd/internal/device"
	"tourismd/internal/manager"
)

// detectAccelerator is swapped in tests.
var detectAccelerator device.Probe = device.DetectAccelerator

// newManager wires the inference loader, the optional Redis cache and the
// Manager from cfg. The returned cleanup releases the cache connection.
func newManager(ctx context.Context, cfg config.Config, log zerolog.Logger) (*manager.Manager, func(), error) {
	dev := device.Resolve(cfg.Device, detectAccelerator)
	log.Info().Str("requested", cfg.Device).Str("device", dev.String()).Msg("device resolved")

	loader := hfinference.NewLoader(hfinference.Options{
		BaseURL:        cfg.InferenceURL,
		RequestTimeout: cfg.RequestTimeout(),
		Concurrency:    cfg.BackendConcurrency,
		Logger:         &log,
	})

	var (
		c       manager.Cache
		cleanup = func() {}
	)
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cache.Opts{
			URL: cfg.RedisURL,
			TTL: cfg.CacheTTL(),
		})
		if err != nil {
			return nil, nil, err
		}
		if err := rc.Ping(ctx); err != nil {
			// Lookups fail soft; keep the cache so it recovers with Redis.
			log.Warn().Err(err).Msg("prediction cache unreachable")
		}
		c = rc
		cleanup = func() { _ = rc.Close() }
	}

	variant, err := manager.ParseVariant(cfg.ModelType)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Loader:             loader,
		DefaultVariant:     variant,
		PrimaryModel:       cfg.ZeroShotModel,
		Device:             dev,
		Token:              cfg.HFToken,
		FineTunedModelPath: cfg.FineTunedModelPath,
		MaxConcurrency:     cfg.MaxConcurrency,
		MaxWait:            cfg.MaxWait(),
		LoadTimeout:        cfg.LoadTimeout(),
		Cache:              c,
		Logger:             &log,
	})
	return mgr, cleanup, nil
}
