package deeplink

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/visorhq/visor/host/internal/host"
)

// Phase is the intake protocol state
type Phase int

const (
	// PhaseStart is the pre-arm state entered at attach and after a reload
	PhaseStart Phase = iota
	// PhaseArmed means the link set is decoded and immutable
	PhaseArmed
	// PhaseResetRequested means the sentinel is set and a reload is pending
	PhaseResetRequested
)

// Intake captures launch-argument deep links once per logical launch
type Intake struct {
	mu       sync.Mutex
	scheme   string
	args     []string
	sentinel SentinelStore
	links    []string
	phase    Phase
}

// NewIntake decodes deep links from the process launch arguments. A present
// reset sentinel yields an empty set and is cleared before returning.
func NewIntake(args []string, scheme string, sentinel SentinelStore) (*Intake, error) {
	i := &Intake{
		scheme:   scheme,
		args:     append([]string(nil), args...),
		sentinel: sentinel,
	}
	if err := i.Rearm(); err != nil {
		return nil, err
	}
	return i, nil
}

// Rearm re-runs the Start transition. Called once at construction and again
// whenever the rendering surface reattaches after a reload.
func (i *Intake) Rearm() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.phase = PhaseStart
	present, err := i.sentinel.Consume()
	if err != nil {
		return fmt.Errorf("failed to read reset sentinel: %w", err)
	}

	if present {
		i.links = nil
	} else {
		i.links = decode(i.args, i.scheme)
	}
	i.phase = PhaseArmed
	return nil
}

// Links returns the captured deep-link set. The result is a copy; the
// underlying set never changes outside a reset/reload cycle.
func (i *Intake) Links() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]string, len(i.links))
	copy(out, i.links)
	return out
}

// CurrentPhase reports the current protocol state
func (i *Intake) CurrentPhase() Phase {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.phase
}

// Reset sets the sentinel and forces a full reload of the rendering
// surface. The sentinel must be durably set before the reload is issued,
// otherwise the reloaded surface would observe the stale link set.
func (i *Intake) Reset(ctx context.Context, window host.WindowCommander) error {
	i.mu.Lock()
	i.phase = PhaseResetRequested
	i.mu.Unlock()

	if err := i.sentinel.Set(); err != nil {
		i.mu.Lock()
		i.phase = PhaseArmed
		i.mu.Unlock()
		return fmt.Errorf("failed to set reset sentinel: %w", err)
	}
	if err := window.Reload(ctx); err != nil {
		return fmt.Errorf("failed to reload window: %w", err)
	}
	return nil
}

func decode(args []string, scheme string) []string {
	prefix := scheme + "://"
	var links []string
	for _, arg := range args {
		if strings.HasPrefix(arg, prefix) {
			links = append(links, arg)
		}
	}
	return links
}
