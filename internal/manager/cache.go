package manager

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Cache stores raw classifications keyed by CacheKey. Errors are logged and
// otherwise ignored; a failing cache never fails a prediction.
type Cache interface {
	Get(ctx context.Context, key string) (Classification, bool, error)
	Set(ctx context.Context, key string, c Classification) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (Classification, bool, error) {
	return Classification{}, false, nil
}

func (noopCache) Set(context.Context, string, Classification) error { return nil }

// CacheKey identifies a classification of text against labels by model.
// Label order is significant.
func CacheKey(model, text string, labels []string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	for _, l := range labels {
		h.Write([]byte(l))
		h.Write([]byte{0x1f})
	}
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func (m *Manager) cacheGet(ctx context.Context, key string) (Classification, bool) {
	if _, ok := m.cache.(noopCache); ok {
		return Classification{}, false
	}
	c, ok, err := m.cache.Get(ctx, key)
	switch {
	case err != nil:
		cacheLookups.WithLabelValues("error").Inc()
		m.log.Warn().Err(err).Msg("prediction cache lookup failed")
		return Classification{}, false
	case !ok:
		cacheLookups.WithLabelValues("miss").Inc()
		return Classification{}, false
	}
	cacheLookups.WithLabelValues("hit").Inc()
	return c, true
}

func (m *Manager) cacheSet(ctx context.Context, key string, c Classification) {
	if _, ok := m.cache.(noopCache); ok {
		return
	}
	if err := m.cache.Set(ctx, key, c); err != nil {
		m.log.Warn().Err(err).Msg("prediction cache store failed")
	}
}
