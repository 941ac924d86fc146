package tiles

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/olablt/gio-mapdemo/logging"
	"github.com/olablt/gio-mapdemo/tiles/worker"
)

// failureCooldown is how long a tile that failed to load is left alone.
const failureCooldown = 30 * time.Second

// Manager serves tiles without blocking the caller. A tile that is not yet
// cached is loaded from the primary provider on the worker pool while the
// fallback provider's tile is returned in its place.
type Manager struct {
	name     string
	primary  Provider
	fallback Provider
	pool     *worker.Pool
	log      logging.Logger

	cache         *Cache[string, image.Image]
	fallbackCache *Cache[string, image.Image]

	mu      sync.Mutex
	loading map[string]bool
	failed  map[string]time.Time
	pruned  time.Time
	onLoad  func()
	now     func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithFallback sets the provider consulted while the primary tile loads.
func WithFallback(p Provider) ManagerOption {
	return func(m *Manager) { m.fallback = p }
}

// WithCacheSize bounds the number of primary tiles kept in memory.
func WithCacheSize(n int) ManagerOption {
	return func(m *Manager) {
		m.cache = NewCache[string, image.Image](n)
		m.fallbackCache = NewCache[string, image.Image](n)
	}
}

// WithLogger sets the manager's logger.
func WithLogger(l logging.Logger) ManagerOption {
	return func(m *Manager) { m.log = l }
}

func NewManager(name string, primary Provider, pool *worker.Pool, opts ...ManagerOption) *Manager {
	m := &Manager{
		name:          name,
		primary:       primary,
		pool:          pool,
		log:           logging.Noop(),
		cache:         NewCache[string, image.Image](256),
		fallbackCache: NewCache[string, image.Image](256),
		loading:       make(map[string]bool),
		failed:        make(map[string]time.Time),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logging.String("layer", name))
	return m
}

// Name identifies the layer in logs.
func (m *Manager) Name() string { return m.name }

// SetOnLoadCallback registers a function called from a worker goroutine
// whenever a primary tile has been loaded.
func (m *Manager) SetOnLoadCallback(callback func()) {
	m.mu.Lock()
	m.onLoad = callback
	m.mu.Unlock()
}

// Tile returns the best image currently available for tile. The boolean is
// false when neither the primary nor a fallback tile is available.
func (m *Manager) Tile(tile Tile) (image.Image, bool) {
	key := tile.Key()
	if img, ok := m.cache.Get(key); ok {
		return img, true
	}

	m.requestPrimary(tile)

	if m.fallback == nil {
		return nil, false
	}
	if img, ok := m.fallbackCache.Get(key); ok {
		return img, true
	}
	img, err := m.fallback.GetTile(context.Background(), tile)
	if err != nil {
		m.log.Warn("fallback tile failed", logging.String("tile", key), logging.Err(err))
		return nil, false
	}
	m.fallbackCache.Set(key, img)
	return img, true
}

func (m *Manager) requestPrimary(tile Tile) {
	key := tile.Key()

	m.mu.Lock()
	now := m.now()
	m.pruneFailed(now)
	if m.loading[key] {
		m.mu.Unlock()
		return
	}
	if at, ok := m.failed[key]; ok && now.Sub(at) < failureCooldown {
		m.mu.Unlock()
		return
	}
	m.loading[key] = true
	m.mu.Unlock()

	ok := m.pool.Submit(worker.Task{
		Ctx: context.Background(),
		Work: func(ctx context.Context) error {
			return m.load(ctx, tile)
		},
	})
	if !ok {
		// Queue full; the next frame asks again.
		m.mu.Lock()
		delete(m.loading, key)
		m.mu.Unlock()
	}
}

// pruneFailed forgets failures whose cooldown has passed. It sweeps at
// most once per cooldown. m.mu must be held.
func (m *Manager) pruneFailed(now time.Time) {
	if now.Sub(m.pruned) < failureCooldown {
		return
	}
	m.pruned = now
	for key, at := range m.failed {
		if now.Sub(at) >= failureCooldown {
			delete(m.failed, key)
		}
	}
}

func (m *Manager) load(ctx context.Context, tile Tile) error {
	key := tile.Key()
	img, err := m.primary.GetTile(ctx, tile)

	m.mu.Lock()
	delete(m.loading, key)
	if err != nil {
		m.failed[key] = m.now()
		m.mu.Unlock()
		m.log.Debug("tile load failed", logging.String("tile", key), logging.Err(err))
		return err
	}
	delete(m.failed, key)
	onLoad := m.onLoad
	m.mu.Unlock()

	m.cache.Set(key, img)
	m.log.Debug("tile loaded", logging.String("tile", key))
	if onLoad != nil {
		onLoad()
	}
	return nil
}
