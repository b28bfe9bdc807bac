package manager

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/semaphore"
)

// Initialize resolves the variant (the configured default when requested is
// nil) and loads a backend for it. A zero-shot load that fails falls back to
// FallbackModel; only when both fail is an error returned, and the previous
// backend, if any, keeps serving. Loads are serialized.
func (m *Manager) Initialize(ctx context.Context, requested *Variant) error {
	if requested != nil && *requested == VariantFineTuned {
		return m.notSupported(*requested)
	}
	m.loadMu.Lock()
	defer m.loadMu.Unlock()
	ctx, cancel := m.loadContext(ctx)
	defer cancel()
	return m.initializeLocked(ctx, requested)
}

func (m *Manager) loadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.loadTimeout > 0 {
		return context.WithTimeout(ctx, m.loadTimeout)
	}
	return context.WithCancel(ctx)
}

// initializeLocked runs the load policy. Callers hold loadMu.
func (m *Manager) initializeLocked(ctx context.Context, requested *Variant) error {
	variant := m.defaultVariant
	if requested != nil {
		variant = *requested
	}
	switch variant {
	case VariantZeroShot:
	case VariantFineTuned:
		return m.notSupported(variant)
	default:
		return invalidInputError{msg: "unknown model type: " + string(variant)}
	}

	m.setLoading(true)
	defer m.setLoading(false)

	start := time.Now()
	b, primaryErr := m.load(ctx, m.primaryModel)
	if primaryErr == nil {
		m.commit(b, variant, m.primaryModel, false)
		m.log.Info().Str("variant", string(variant)).Str("model", m.primaryModel).
			Str("device", m.device.String()).Dur("dur", time.Since(start)).Msg("model loaded")
		return nil
	}
	if ctx.Err() != nil {
		return m.fail(loadFailureError{primary: primaryErr})
	}

	m.log.Warn().Err(primaryErr).Str("model", m.fallbackModel).Msg("primary model failed, loading fallback model")
	m.publisher.Publish(Event{Name: "fallback_start", Model: m.fallbackModel, Fields: map[string]any{"primary_error": primaryErr.Error()}})
	fb, fallbackErr := m.load(ctx, m.fallbackModel)
	if fallbackErr != nil {
		return m.fail(loadFailureError{primary: primaryErr, fallback: fallbackErr})
	}
	m.commit(fb, VariantZeroShot, m.fallbackModel, true)
	fallbacksTotal.Inc()
	m.log.Info().Str("variant", string(VariantZeroShot)).Str("model", m.fallbackModel).
		Str("device", m.device.String()).Dur("dur", time.Since(start)).Msg("fallback model loaded")
	m.publisher.Publish(Event{Name: "fallback_ready", Model: m.fallbackModel})
	return nil
}

// load performs one construction attempt and reports failure as a *LoadError.
func (m *Manager) load(ctx context.Context, model string) (Backend, *LoadError) {
	start := time.Now()
	m.log.Info().Str("model", model).Str("device", m.device.String()).Msg("loading model")
	m.publisher.Publish(Event{Name: "load_start", Model: model})

	var (
		b   Backend
		err error
	)
	if m.loader == nil {
		err = errors.New("no loader configured")
	} else {
		b, err = m.loader.Load(ctx, LoadSpec{Model: model, Device: m.device, Token: m.token})
		if err == nil && b == nil {
			err = errors.New("loader returned no backend")
		}
	}
	if err != nil {
		loadsTotal.WithLabelValues(model, "error").Inc()
		m.log.Error().Err(err).Str("model", model).Msg("model load failed")
		m.publisher.Publish(Event{Name: "load_failed", Model: model, Fields: map[string]any{"error": err.Error()}})
		return nil, &LoadError{Model: model, Err: err}
	}
	loadsTotal.WithLabelValues(model, "ok").Inc()
	m.publisher.Publish(Event{Name: "load_ready", Model: model, Fields: map[string]any{"dur_ms": int(time.Since(start) / time.Millisecond)}})
	return b, nil
}

// commit installs b as the active backend, replacing variant and model name in
// the same critical section, and retires the previous backend.
func (m *Manager) commit(b Backend, v Variant, model string, fallback bool) {
	weight := int64(m.maxConcurrency)
	if weight <= 0 {
		weight = 1
		if c, ok := b.(concurrent); ok && c.Concurrency() > 0 {
			weight = int64(c.Concurrency())
		}
	}
	next := &loaded{
		backend:   b,
		variant:   v,
		modelName: model,
		fallback:  fallback,
		loadedAt:  time.Now(),
		sem:       semaphore.NewWeighted(weight),
		weight:    weight,
	}
	m.mu.Lock()
	prev := m.cur
	m.cur = next
	m.lastErr = ""
	m.loads++
	if fallback {
		m.fallbacks++
	}
	m.mu.Unlock()
	if prev != nil {
		go func() { _ = m.retire(prev) }()
	}
}

func (m *Manager) fail(err error) error {
	m.mu.Lock()
	m.lastErr = err.Error()
	m.mu.Unlock()
	m.log.Error().Err(err).Msg("model initialization failed")
	m.publisher.Publish(Event{Name: "initialize_failed", Fields: map[string]any{"error": err.Error()}})
	return err
}

// notSupported rejects a variant without touching state.
func (m *Manager) notSupported(v Variant) error {
	loadsTotal.WithLabelValues(string(v), "not_supported").Inc()
	m.log.Warn().Str("variant", string(v)).Msg("model type not implemented")
	m.publisher.Publish(Event{Name: "load_not_supported", Fields: map[string]any{"variant": string(v)}})
	return notSupportedError{variant: v}
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
