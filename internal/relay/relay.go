package relay

import (
	"sync"

	"github.com/visorhq/visor/host/internal/state"
)

// Host event channel names. Delivery order is preserved per channel; no
// ordering is guaranteed across channels.
const (
	EventMaximize   = "maximize"
	EventUnmaximize = "unmaximize"
	EventFocus      = "focus"
	EventBlur       = "blur"
	EventEnterFull  = "enter-full-screen"
	EventLeaveFull  = "leave-full-screen"
	EventMenuAction = "menu:action"
)

// Handler receives one host-pushed event payload
type Handler func(payload map[string]interface{})

// DetachFunc removes exactly the handler returned by the matching Attach
// call. Safe to call more than once; calls after the first are no-ops.
type DetachFunc func()

type registration struct {
	handler Handler
}

// Relay registers renderer handlers against named host event channels
// without leaking the underlying host event source across the boundary.
type Relay struct {
	mu       sync.Mutex
	channels map[string][]*registration
}

// New creates an empty relay
func New() *Relay {
	return &Relay{channels: make(map[string][]*registration)}
}

// Attach registers handler against the named event channel. Multiple
// attaches for the same name register independently; detaching one never
// affects the others.
func (r *Relay) Attach(event string, handler Handler) DetachFunc {
	reg := &registration{handler: handler}

	r.mu.Lock()
	r.channels[event] = append(r.channels[event], reg)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.detach(event, reg) })
	}
}

func (r *Relay) detach(event string, reg *registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	regs := r.channels[event]
	for i, candidate := range regs {
		if candidate == reg {
			r.channels[event] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(r.channels[event]) == 0 {
		delete(r.channels, event)
	}
}

// Dispatch delivers a host-pushed event to every handler currently attached
// to the channel, in attach order. Handlers run synchronously on the
// caller's goroutine, so a single dispatching pump preserves host-send
// order per channel.
func (r *Relay) Dispatch(event string, payload map[string]interface{}) {
	r.mu.Lock()
	regs := make([]*registration, len(r.channels[event]))
	copy(regs, r.channels[event])
	r.mu.Unlock()

	for _, reg := range regs {
		reg.handler(payload)
	}
}

// HandlerCount reports how many handlers are attached to the channel
func (r *Relay) HandlerCount(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels[event])
}

// BindWindowState attaches the internal handlers that keep the window state
// cache in sync with host maximize/unmaximize notifications. These are the
// only writers of the cache.
func BindWindowState(r *Relay, cache *state.Cache) {
	r.Attach(EventMaximize, func(map[string]interface{}) {
		cache.SetMaximized(true)
	})
	r.Attach(EventUnmaximize, func(map[string]interface{}) {
		cache.SetMaximized(false)
	})
}
