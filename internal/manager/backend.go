package manager

import "context"

// Backend is a loaded, invocable classification engine bound to one model
// and one device.
type Backend interface {
	// Classify scores text against the candidate labels. Implementations
	// return labels sorted by descending score.
	Classify(ctx context.Context, text string, labels []string) (Classification, error)
	// Close releases resources held by the backend.
	Close() error
}

// Loader constructs backends. Load blocks for the duration of the model load.
type Loader interface {
	Load(ctx context.Context, spec LoadSpec) (Backend, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, spec LoadSpec) (Backend, error)

func (f LoaderFunc) Load(ctx context.Context, spec LoadSpec) (Backend, error) { return f(ctx, spec) }

// concurrent is implemented by backends that tolerate parallel Classify calls.
type concurrent interface {
	Concurrency() int
}
