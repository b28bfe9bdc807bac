package manager

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeBackend is an in-memory Backend. By default it echoes the labels in the
// given order with descending scores that sum to one.
type fakeBackend struct {
	model  string
	out    *Classification
	err    error
	block  chan struct{}
	conc   int
	calls  atomic.Int32
	closed atomic.Bool
}

func (b *fakeBackend) Classify(ctx context.Context, text string, labels []string) (Classification, error) {
	b.calls.Add(1)
	if b.block != nil {
		select {
		case <-b.block:
		case <-ctx.Done():
			return Classification{}, ctx.Err()
		}
	}
	if b.err != nil {
		return Classification{}, b.err
	}
	if b.out != nil {
		return *b.out, nil
	}
	n := len(labels)
	total := float64(n * (n + 1) / 2)
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = float64(n-i) / total
	}
	return Classification{Sequence: text, Labels: append([]string(nil), labels...), Scores: scores}, nil
}

func (b *fakeBackend) Close() error {
	b.closed.Store(true)
	return nil
}

func (b *fakeBackend) Concurrency() int { return b.conc }

// fakeLoader records every construction attempt.
type fakeLoader struct {
	mu        sync.Mutex
	fail      map[string]error
	delay     time.Duration
	hook      func(ctx context.Context, spec LoadSpec) error
	configure func(b *fakeBackend, n int)
	attempts  []LoadSpec
	backends  []*fakeBackend
}

func (l *fakeLoader) Load(ctx context.Context, spec LoadSpec) (Backend, error) {
	if l.delay > 0 {
		select {
		case <-time.After(l.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if l.hook != nil {
		if err := l.hook(ctx, spec); err != nil {
			l.record(spec, nil)
			return nil, err
		}
	}
	l.mu.Lock()
	err := l.fail[spec.Model]
	l.mu.Unlock()
	if err != nil {
		l.record(spec, nil)
		return nil, err
	}
	b := &fakeBackend{model: spec.Model}
	l.mu.Lock()
	if l.configure != nil {
		l.configure(b, len(l.backends))
	}
	l.mu.Unlock()
	l.record(spec, b)
	return b, nil
}

func (l *fakeLoader) record(spec LoadSpec, b *fakeBackend) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts = append(l.attempts, spec)
	if b != nil {
		l.backends = append(l.backends, b)
	}
}

func (l *fakeLoader) setFail(model string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail == nil {
		l.fail = map[string]error{}
	}
	if err == nil {
		delete(l.fail, model)
		return
	}
	l.fail[model] = err
}

func (l *fakeLoader) tried() []LoadSpec {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LoadSpec(nil), l.attempts...)
}

func (l *fakeLoader) built() []*fakeBackend {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*fakeBackend(nil), l.backends...)
}

// memCache is a Cache backed by a map.
type memCache struct {
	mu   sync.Mutex
	m    map[string]Classification
	err  error
	sets int
}

func (c *memCache) Get(_ context.Context, key string) (Classification, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return Classification{}, false, c.err
	}
	v, ok := c.m[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, v Classification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.err != nil {
		return c.err
	}
	if c.m == nil {
		c.m = map[string]Classification{}
	}
	c.m[key] = v
	return nil
}

// waitFor polls cond until it holds or one second passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

var twoLabels = []string{"tourism", "not_tourism"}
