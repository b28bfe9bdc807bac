package manager

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"tourismd/internal/device"
)

// Manager owns the single active classification backend.
type Manager struct {
	// mu guards cur, loading, lastErr and the counters.
	mu      sync.RWMutex
	cur     *loaded
	loading bool
	lastErr string

	loads     uint64
	fallbacks uint64

	// loadMu serializes backend construction; group coalesces lazy loads.
	loadMu sync.Mutex
	group  singleflight.Group

	loader             Loader
	defaultVariant     Variant
	primaryModel       string
	fallbackModel      string
	device             device.Device
	token              string
	fineTunedModelPath string
	maxConcurrency     int
	maxWait            time.Duration
	loadTimeout        time.Duration
	cache              Cache
	publisher          EventPublisher
	log                zerolog.Logger
	startTime          time.Time
}

// loaded is one constructed backend together with the state that is replaced
// with it as a unit.
type loaded struct {
	backend   Backend
	variant   Variant
	modelName string
	fallback  bool
	loadedAt  time.Time
	sem       *semaphore.Weighted
	weight    int64
	inflight  atomic.Int64
	retired   atomic.Bool
}

// New constructs a Manager serving the zero-shot variant from loader.
func New(loader Loader, primaryModel string, dev device.Device) *Manager {
	return NewWithConfig(ManagerConfig{
		Loader:       loader,
		PrimaryModel: primaryModel,
		Device:       dev,
	})
}

// current returns the active backend, or nil before the first successful load.
func (m *Manager) current() *loaded {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Ready reports whether a backend is loaded.
func (m *Manager) Ready() bool {
	return m.current() != nil
}

// Close retires the active backend once its in-flight predictions finish.
// The manager returns to the uninitialized state.
func (m *Manager) Close() error {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()
	m.mu.Lock()
	cur := m.cur
	m.cur = nil
	m.mu.Unlock()
	if cur == nil {
		return nil
	}
	return m.retire(cur)
}
