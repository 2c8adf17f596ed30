// Package state caches small pieces of host-pushed window state so the
// renderer can read them synchronously even though delivery is
// asynchronous and out-of-band.
package state

import "sync/atomic"

// Cache holds the current window state as last reported by the host.
// Values reflect the most recent notification received by this process
// instance and are never persisted across restarts.
type Cache struct {
	maximized atomic.Bool
}

// NewCache returns a cache with the maximized flag unset
func NewCache() *Cache {
	return &Cache{}
}

// SetMaximized records a host maximize/unmaximize notification
func (c *Cache) SetMaximized(v bool) {
	c.maximized.Store(v)
}

// Maximized reports the most recently received maximized state
func (c *Cache) Maximized() bool {
	return c.maximized.Load()
}
