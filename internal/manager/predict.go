package manager

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"tourismd/pkg/types"
)

// maxRetiredRetries bounds how often a prediction re-resolves the backend
// after losing a race with its replacement.
const maxRetiredRetries = 3

// Predict classifies text against candidateLabels with the active backend.
// When nothing is loaded it initializes the configured default variant first;
// concurrent first callers share one load.
func (m *Manager) Predict(ctx context.Context, text string, candidateLabels []string) (types.PredictionResult, error) {
	return m.predict(ctx, text, candidateLabels, nil)
}

// PredictWithVariant is Predict with an optional variant override. A
// fine-tuned override always fails with a not-supported error; a zero-shot
// override loads a backend only when the active variant differs.
func (m *Manager) PredictWithVariant(ctx context.Context, text string, candidateLabels []string, override *Variant) (types.PredictionResult, error) {
	return m.predict(ctx, text, candidateLabels, override)
}

func (m *Manager) predict(ctx context.Context, text string, labels []string, want *Variant) (types.PredictionResult, error) {
	if len(labels) == 0 {
		return types.PredictionResult{}, invalidInputError{msg: "candidate_labels must not be empty"}
	}
	for attempt := 0; ; attempt++ {
		cur, err := m.ensure(ctx, want)
		if err != nil {
			predictionsTotal.WithLabelValues(variantLabel(want, m.defaultVariant), "error").Inc()
			return types.PredictionResult{}, err
		}
		res, err := m.run(ctx, cur, text, labels)
		if errors.Is(err, errRetired) {
			if attempt < maxRetiredRetries {
				continue
			}
			return types.PredictionResult{}, inferenceError{model: cur.modelName, err: err}
		}
		return res, err
	}
}

// ensure returns a backend serving want (any variant when nil), loading one if
// needed. Concurrent callers with the same want join a single load; the load
// outlives a caller that gives up waiting.
func (m *Manager) ensure(ctx context.Context, want *Variant) (*loaded, error) {
	if want != nil && *want == VariantFineTuned {
		return nil, m.notSupported(*want)
	}
	matches := func(l *loaded) bool { return l != nil && (want == nil || l.variant == *want) }
	if cur := m.current(); matches(cur) {
		return cur, nil
	}

	key := "initialize"
	if want != nil {
		key += ":" + string(*want)
	}
	ch := m.group.DoChan(key, func() (any, error) {
		lctx, cancel := m.loadContext(context.WithoutCancel(ctx))
		defer cancel()
		m.loadMu.Lock()
		defer m.loadMu.Unlock()
		if matches(m.current()) {
			return nil, nil
		}
		m.log.Info().Msg("no backend loaded, initializing on first use")
		return nil, m.initializeLocked(lctx, want)
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	cur := m.current()
	if !matches(cur) {
		return nil, loadFailureError{primary: &LoadError{Model: m.primaryModel, Err: errors.New("backend replaced during initialization")}}
	}
	return cur, nil
}

// run performs one classification against l.
func (m *Manager) run(ctx context.Context, l *loaded, text string, labels []string) (types.PredictionResult, error) {
	if l.variant == VariantFineTuned {
		return types.PredictionResult{}, m.notSupported(l.variant)
	}
	key := CacheKey(l.modelName, text, labels)
	if c, ok := m.cacheGet(ctx, key); ok {
		if res, err := normalize(c, text, l.variant, l.modelName); err == nil {
			predictionsTotal.WithLabelValues(string(l.variant), "cached").Inc()
			return res, nil
		}
	}

	release, err := m.admit(ctx, l)
	if err != nil {
		if !errors.Is(err, errRetired) {
			predictionsTotal.WithLabelValues(string(l.variant), "error").Inc()
		}
		return types.PredictionResult{}, err
	}
	defer release()

	start := time.Now()
	out, err := l.backend.Classify(ctx, text, labels)
	inferenceDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		var res types.PredictionResult
		if res, err = normalize(out, text, l.variant, l.modelName); err == nil {
			if !sortedDescending(res.Scores) {
				m.log.Warn().Str("model", l.modelName).Msg("backend returned scores out of order")
			}
			m.cacheSet(ctx, key, out)
			predictionsTotal.WithLabelValues(string(l.variant), "ok").Inc()
			return res, nil
		}
	}
	predictionsTotal.WithLabelValues(string(l.variant), "error").Inc()
	m.log.Error().Err(err).Str("model", l.modelName).Msg("inference failed")
	m.publisher.Publish(Event{Name: "predict_error", Model: l.modelName, Fields: map[string]any{"error": err.Error()}})
	return types.PredictionResult{}, inferenceError{model: l.modelName, err: err}
}

// normalize converts a backend classification into a PredictionResult. The
// label order is trusted as returned.
func normalize(c Classification, text string, v Variant, model string) (types.PredictionResult, error) {
	if len(c.Labels) == 0 {
		return types.PredictionResult{}, errors.New("backend returned no labels")
	}
	if len(c.Labels) != len(c.Scores) {
		return types.PredictionResult{}, fmt.Errorf("backend returned %d labels and %d scores", len(c.Labels), len(c.Scores))
	}
	scores := make([]float64, len(c.Scores))
	for i, s := range c.Scores {
		if math.IsNaN(s) {
			return types.PredictionResult{}, fmt.Errorf("backend returned NaN score for %q", c.Labels[i])
		}
		scores[i] = min(max(s, 0), 1)
	}
	seq := c.Sequence
	if seq == "" {
		seq = text
	}
	labels := slices.Clone(c.Labels)
	return types.PredictionResult{
		Sequence:   seq,
		Labels:     labels,
		Scores:     scores,
		Prediction: labels[0],
		Confidence: scores[0],
		IsTourism:  labels[0] == types.TourismLabel,
		ModelType:  string(v),
		ModelName:  model,
	}, nil
}

func sortedDescending(s []float64) bool {
	for i := 1; i < len(s); i++ {
		if s[i] > s[i-1] {
			return false
		}
	}
	return true
}

func variantLabel(want *Variant, def Variant) string {
	if want != nil {
		return string(*want)
	}
	return string(def)
}
