package ws

import (
	"context"
	"errors"
	"sync"
)

// Hub tracks attached boundary sessions and delivers window manager
// commands to the desktop shell side of each one. It implements
// local.WindowTransport.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*session)}
}

func (h *Hub) add(s *session) {
	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

// Send delivers a window manager command to every attached session. With
// no session attached the round trip fails immediately; the bridge never
// retries on behalf of the caller.
func (h *Hub) Send(ctx context.Context, command string, args map[string]interface{}) error {
	h.mu.RLock()
	sessions := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	if len(sessions) == 0 {
		return errors.New("no attached shell session")
	}

	frame := map[string]interface{}{
		"type":    "command",
		"command": command,
	}
	if args != nil {
		frame["args"] = args
	}

	var lastErr error
	delivered := false
	for _, s := range sessions {
		if err := s.write(frame); err != nil {
			lastErr = err
			continue
		}
		delivered = true
	}
	if !delivered {
		return lastErr
	}
	return nil
}
