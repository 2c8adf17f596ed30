package bridge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/visorhq/visor/host/internal/relay"
	"github.com/visorhq/visor/host/internal/shared/types"
)

// Provider is a single capability bridge implementation
type Provider interface {
	Definition() types.Bridge
	Execute(ctx context.Context, opID string, params map[string]interface{}) (*types.Result, error)
}

// EventSource is implemented by providers whose bridge exposes host event
// channels. The session layer attaches renderer handlers through the relay
// rather than through Execute, since detach closures cannot cross the
// boundary as data.
type EventSource interface {
	Events() []string
	Relay() *relay.Relay
}

// Registry assembles the capability bridges and dispatches op calls
type Registry struct {
	bridges sync.Map
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register publishes a capability bridge
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("bridge ID cannot be empty")
	}
	r.bridges.Store(def.ID, provider)
	return nil
}

// Get retrieves a bridge provider by ID
func (r *Registry) Get(bridgeID string) (Provider, bool) {
	val, ok := r.bridges.Load(bridgeID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns the published bridge definitions, sorted by ID. This is the
// capability catalog the renderer discovers at attach time.
func (r *Registry) List() []types.Bridge {
	var bridges []types.Bridge
	r.bridges.Range(func(_, value interface{}) bool {
		bridges = append(bridges, value.(Provider).Definition())
		return true
	})
	sort.Slice(bridges, func(i, j int) bool { return bridges[i].ID < bridges[j].ID })
	return bridges
}

// Execute dispatches a bridge op by its "bridge.op" ID
func (r *Registry) Execute(ctx context.Context, opID string, params map[string]interface{}) (*types.Result, error) {
	parts := strings.SplitN(opID, ".", 2)
	if len(parts) < 2 {
		return errorResult(fmt.Sprintf("invalid op ID format: %s", opID)),
			fmt.Errorf("invalid op ID format: %s", opID)
	}

	provider, ok := r.Get(parts[0])
	if !ok {
		return errorResult(fmt.Sprintf("bridge not found: %s", parts[0])),
			fmt.Errorf("bridge not found: %s", parts[0])
	}

	return provider.Execute(ctx, opID, params)
}

func errorResult(message string) *types.Result {
	return &types.Result{Success: false, Error: &message}
}
