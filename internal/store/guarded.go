package store

import (
	"log/slog"
	"sync"
)

// Guarded wraps a Store so that failures never reach the caller. A failed
// read or write is logged and the session continues from an in-memory
// overlay: values written during the session are always readable back, even
// when the backing store rejected them.
type Guarded struct {
	backing Store
	logger  *slog.Logger

	mu      sync.Mutex
	overlay map[string]string
	failed  bool
}

// NewGuarded wraps backing. A nil backing behaves as an always-empty store.
func NewGuarded(backing Store, logger *slog.Logger) *Guarded {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guarded{
		backing: backing,
		logger:  logger,
		overlay: make(map[string]string),
	}
}

// Get returns the value for key. The in-memory overlay wins over the
// backing store; on a backing error the key reads as absent.
func (g *Guarded) Get(key string) (string, bool) {
	g.mu.Lock()
	v, ok := g.overlay[key]
	g.mu.Unlock()
	if ok {
		return v, true
	}

	if g.backing == nil {
		return "", false
	}
	v, ok, err := g.backing.Get(key)
	if err != nil {
		g.logger.Warn("could not read preference, using default", "key", key, "error", err)
		g.markFailed()
		return "", false
	}
	return v, ok
}

// Set stores value. It reports whether the value reached the backing store;
// the value is kept in memory either way.
func (g *Guarded) Set(key, value string) bool {
	if g.backing != nil {
		err := g.backing.Set(key, value)
		if err == nil {
			g.mu.Lock()
			delete(g.overlay, key)
			g.mu.Unlock()
			return true
		}
		g.logger.Warn("could not save preference", "key", key, "error", err)
	}

	g.mu.Lock()
	g.overlay[key] = value
	g.mu.Unlock()
	g.markFailed()
	return false
}

// Forget drops the overlay value for key so the next Get consults the
// backing store. Used when another process is known to have written it.
func (g *Guarded) Forget(key string) {
	g.mu.Lock()
	delete(g.overlay, key)
	g.mu.Unlock()
}

// Degraded reports whether any backing operation has failed this session.
func (g *Guarded) Degraded() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failed
}

func (g *Guarded) markFailed() {
	g.mu.Lock()
	if !g.failed {
		g.logger.Debug("preference store degraded to in-memory session")
	}
	g.failed = true
	g.mu.Unlock()
}
