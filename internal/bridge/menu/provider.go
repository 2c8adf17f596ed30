package menu

import (
	"context"
	"fmt"

	"github.com/visorhq/visor/host/internal/relay"
	"github.com/visorhq/visor/host/internal/shared/types"
)

// Provider implements the native menu bridge. It exposes nothing but the
// menu action event channel.
type Provider struct {
	events *relay.Relay
}

// NewProvider creates the menu bridge provider
func NewProvider(events *relay.Relay) *Provider {
	return &Provider{events: events}
}

// Events implements bridge.EventSource
func (p *Provider) Events() []string {
	return []string{relay.EventMenuAction}
}

// Relay implements bridge.EventSource
func (p *Provider) Relay() *relay.Relay {
	return p.events
}

// Definition returns the published bridge shape
func (p *Provider) Definition() types.Bridge {
	return types.Bridge{
		ID:          "menu",
		Name:        "Menu Bridge",
		Description: "Native menu action events",
		Category:    types.CategoryMenu,
		Ops: []types.Op{
			{
				ID:          "menu.addEventListener",
				Name:        "Add Event Listener",
				Description: "Subscribe to native menu action events",
				Parameters: []types.Parameter{
					{Name: "event", Type: "string", Description: "Event channel name", Required: true},
				},
				Returns: "subscription",
				Sync:    true,
			},
			{
				ID:          "menu.removeEventListener",
				Name:        "Remove Event Listener",
				Description: "Detach a previously added listener",
				Parameters: []types.Parameter{
					{Name: "subscription", Type: "string", Description: "Subscription ID", Required: true},
				},
				Returns: "boolean",
				Sync:    true,
			},
		},
	}
}

// Execute runs a menu op. Listener management happens in the session
// layer; no other ops exist on this bridge.
func (p *Provider) Execute(ctx context.Context, opID string, params map[string]interface{}) (*types.Result, error) {
	return failure(fmt.Sprintf("unknown op: %s", opID))
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
