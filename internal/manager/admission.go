package manager

import (
	"context"
	"errors"
	"time"
)

// errRetired is returned by admit when the backend was replaced while the
// caller waited; the caller re-resolves the active backend and retries.
var errRetired = errors.New("backend retired")

// admit reserves one of the backend's concurrency slots, waiting at most
// maxWait. Returns a release func to be deferred.
func (m *Manager) admit(ctx context.Context, l *loaded) (func(), error) {
	// Fast path: respect an already-canceled context
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}
	wctx, cancel := context.WithTimeout(ctx, m.maxWait)
	defer cancel()
	if err := l.sem.Acquire(wctx, 1); err != nil {
		if ctx.Err() != nil {
			return func() {}, ctx.Err()
		}
		tooBusyTotal.Inc()
		return func() {}, tooBusyError{model: l.modelName}
	}
	if l.retired.Load() {
		l.sem.Release(1)
		return func() {}, errRetired
	}
	l.inflight.Add(1)
	inflightGauge.Inc()
	return func() {
		l.inflight.Add(-1)
		inflightGauge.Dec()
		l.sem.Release(1)
	}, nil
}

// retire closes l after its in-flight predictions complete. Callers must
// already have removed l from m.cur.
func (m *Manager) retire(l *loaded) error {
	start := time.Now()
	l.retired.Store(true)
	_ = l.sem.Acquire(context.Background(), l.weight)
	err := l.backend.Close()
	l.sem.Release(l.weight)

	ev := m.log.Info()
	if err != nil {
		ev = m.log.Warn().Err(err)
	}
	ev.Str("model", l.modelName).Dur("drain", time.Since(start)).Msg("backend retired")
	m.publisher.Publish(Event{Name: "backend_retired", Model: l.modelName})
	return err
}
