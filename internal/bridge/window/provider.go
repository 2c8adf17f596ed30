package window

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/visorhq/visor/host/internal/deeplink"
	"github.com/visorhq/visor/host/internal/extensions"
	"github.com/visorhq/visor/host/internal/host"
	"github.com/visorhq/visor/host/internal/relay"
	"github.com/visorhq/visor/host/internal/shared/types"
	"github.com/visorhq/visor/host/internal/state"
)

// Provider implements the window/app control bridge. Informational reads
// (isMaximized, getDeepLinks) answer from process-local state; every other
// op is a host round trip that fails without retry.
type Provider struct {
	commander  host.WindowCommander
	flags      host.FlagSource
	layouts    host.LayoutStore
	events     *relay.Relay
	cache      *state.Cache
	intake     *deeplink.Intake
	extensions *extensions.Lazy
}

// NewProvider creates the window bridge provider
func NewProvider(
	commander host.WindowCommander,
	flags host.FlagSource,
	layouts host.LayoutStore,
	events *relay.Relay,
	cache *state.Cache,
	intake *deeplink.Intake,
	ext *extensions.Lazy,
) *Provider {
	return &Provider{
		commander:  commander,
		flags:      flags,
		layouts:    layouts,
		events:     events,
		cache:      cache,
		intake:     intake,
		extensions: ext,
	}
}

// Events implements bridge.EventSource
func (p *Provider) Events() []string {
	return []string{
		relay.EventMaximize,
		relay.EventUnmaximize,
		relay.EventFocus,
		relay.EventBlur,
		relay.EventEnterFull,
		relay.EventLeaveFull,
	}
}

// Relay implements bridge.EventSource
func (p *Provider) Relay() *relay.Relay {
	return p.events
}

// Definition returns the published bridge shape
func (p *Provider) Definition() types.Bridge {
	return types.Bridge{
		ID:          "window",
		Name:        "Window Bridge",
		Description: "Window and application control",
		Category:    types.CategoryWindow,
		Ops: []types.Op{
			{ID: "window.addEventListener", Name: "Add Event Listener", Description: "Subscribe to a window lifecycle event", Parameters: []types.Parameter{{Name: "event", Type: "string", Description: "Event channel name", Required: true}}, Returns: "subscription", Sync: true},
			{ID: "window.removeEventListener", Name: "Remove Event Listener", Description: "Detach a previously added listener", Parameters: []types.Parameter{{Name: "subscription", Type: "string", Description: "Subscription ID", Required: true}}, Returns: "boolean", Sync: true},
			{ID: "window.setRepresentedFilename", Name: "Set Represented Filename", Description: "Update the file the window represents", Parameters: []types.Parameter{{Name: "path", Type: "string", Description: "File path", Required: true}}, Returns: "boolean"},
			{ID: "window.updateColorScheme", Name: "Update Color Scheme", Description: "Propagate the renderer color scheme to the host", Parameters: []types.Parameter{{Name: "scheme", Type: "string", Description: "dark, light or auto", Required: true}}, Returns: "boolean"},
			{ID: "window.updateLanguage", Name: "Update Language", Description: "Propagate the renderer language to the host", Parameters: []types.Parameter{{Name: "language", Type: "string", Description: "BCP 47 language tag", Required: true}}, Returns: "boolean"},
			{ID: "window.getCLIFlags", Name: "Get CLI Flags", Description: "Fetch host-resolved command line options", Parameters: []types.Parameter{}, Returns: "object"},
			{ID: "window.getDeepLinks", Name: "Get Deep Links", Description: "Read the launch-time deep link set", Parameters: []types.Parameter{}, Returns: "array", Sync: true},
			{ID: "window.resetDeepLinks", Name: "Reset Deep Links", Description: "Clear deep links via a forced reload", Parameters: []types.Parameter{}, Returns: "boolean"},
			{ID: "window.fetchLayouts", Name: "Fetch Layouts", Description: "Load saved panel layouts", Parameters: []types.Parameter{}, Returns: "array"},
			{ID: "window.getExtensions", Name: "Get Extensions", Description: "List installed extensions", Parameters: []types.Parameter{}, Returns: "array"},
			{ID: "window.loadExtension", Name: "Load Extension", Description: "Load executable extension content", Parameters: []types.Parameter{{Name: "id", Type: "string", Description: "Extension ID", Required: true}}, Returns: "string"},
			{ID: "window.installExtension", Name: "Install Extension", Description: "Install an extension package", Parameters: []types.Parameter{{Name: "data", Type: "string", Description: "Base64 zip package", Required: true}}, Returns: "string"},
			{ID: "window.uninstallExtension", Name: "Uninstall Extension", Description: "Remove an installed extension", Parameters: []types.Parameter{{Name: "id", Type: "string", Description: "Extension ID", Required: true}}, Returns: "boolean"},
			{ID: "window.handleTitleBarDoubleClick", Name: "Title Bar Double Click", Description: "Notify the host of a title bar double click", Parameters: []types.Parameter{}, Returns: "boolean"},
			{ID: "window.isMaximized", Name: "Is Maximized", Description: "Read the cached maximized state", Parameters: []types.Parameter{}, Returns: "boolean", Sync: true},
			{ID: "window.minimizeWindow", Name: "Minimize Window", Description: "Minimize the window", Parameters: []types.Parameter{}, Returns: "boolean"},
			{ID: "window.maximizeWindow", Name: "Maximize Window", Description: "Maximize the window", Parameters: []types.Parameter{}, Returns: "boolean"},
			{ID: "window.unmaximizeWindow", Name: "Unmaximize Window", Description: "Restore the window from maximized", Parameters: []types.Parameter{}, Returns: "boolean"},
			{ID: "window.closeWindow", Name: "Close Window", Description: "Close the window", Parameters: []types.Parameter{}, Returns: "boolean"},
			{ID: "window.reloadWindow", Name: "Reload Window", Description: "Reload the rendering surface", Parameters: []types.Parameter{}, Returns: "boolean"},
		},
	}
}

// Execute runs a window op
func (p *Provider) Execute(ctx context.Context, opID string, params map[string]interface{}) (*types.Result, error) {
	switch opID {
	case "window.setRepresentedFilename":
		return p.setRepresentedFilename(ctx, params)
	case "window.updateColorScheme":
		return p.updateColorScheme(ctx, params)
	case "window.updateLanguage":
		return p.updateLanguage(ctx, params)
	case "window.getCLIFlags":
		return p.getCLIFlags(ctx)
	case "window.getDeepLinks":
		return success(map[string]interface{}{"links": p.intake.Links()})
	case "window.resetDeepLinks":
		return p.resetDeepLinks(ctx)
	case "window.fetchLayouts":
		return p.fetchLayouts(ctx)
	case "window.getExtensions":
		return p.getExtensions(ctx)
	case "window.loadExtension":
		return p.loadExtension(ctx, params)
	case "window.installExtension":
		return p.installExtension(ctx, params)
	case "window.uninstallExtension":
		return p.uninstallExtension(ctx, params)
	case "window.handleTitleBarDoubleClick":
		return p.command(p.commander.HandleTitleBarDoubleClick(ctx))
	case "window.isMaximized":
		return success(map[string]interface{}{"maximized": p.cache.Maximized()})
	case "window.minimizeWindow":
		return p.command(p.commander.Minimize(ctx))
	case "window.maximizeWindow":
		return p.command(p.commander.Maximize(ctx))
	case "window.unmaximizeWindow":
		return p.command(p.commander.Unmaximize(ctx))
	case "window.closeWindow":
		return p.command(p.commander.Close(ctx))
	case "window.reloadWindow":
		return p.command(p.commander.Reload(ctx))
	default:
		return failure(fmt.Sprintf("unknown op: %s", opID))
	}
}

func (p *Provider) command(err error) (*types.Result, error) {
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"done": true})
}

func (p *Provider) setRepresentedFilename(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok {
		return failure("path parameter required")
	}
	return p.command(p.commander.SetRepresentedFilename(ctx, path))
}

func (p *Provider) updateColorScheme(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	scheme, ok := params["scheme"].(string)
	if !ok || (scheme != "dark" && scheme != "light" && scheme != "auto") {
		return failure("scheme must be dark, light or auto")
	}
	return p.command(p.commander.SetColorScheme(ctx, scheme))
}

func (p *Provider) updateLanguage(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	lang, ok := params["language"].(string)
	if !ok || lang == "" {
		return failure("language parameter required")
	}
	return p.command(p.commander.SetLanguage(ctx, lang))
}

func (p *Provider) getCLIFlags(ctx context.Context) (*types.Result, error) {
	flags, err := p.flags.CLIFlags(ctx)
	if err != nil {
		return failure(fmt.Sprintf("failed to fetch CLI flags: %v", err))
	}
	return success(map[string]interface{}{"flags": flags.Flags, "args": flags.Args})
}

func (p *Provider) resetDeepLinks(ctx context.Context) (*types.Result, error) {
	if err := p.intake.Reset(ctx, p.commander); err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"reset": true})
}

func (p *Provider) fetchLayouts(ctx context.Context) (*types.Result, error) {
	layouts, err := p.layouts.FetchLayouts(ctx)
	if err != nil {
		return failure(fmt.Sprintf("failed to fetch layouts: %v", err))
	}
	return success(map[string]interface{}{"layouts": layouts, "count": len(layouts)})
}

func (p *Provider) getExtensions(ctx context.Context) (*types.Result, error) {
	handler, err := p.extensions.Get(ctx)
	if err != nil {
		return failure(err.Error())
	}
	exts, err := handler.List(ctx)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"extensions": exts, "count": len(exts)})
}

func (p *Provider) loadExtension(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	id, ok := params["id"].(string)
	if !ok || id == "" {
		return failure("id parameter required")
	}
	handler, err := p.extensions.Get(ctx)
	if err != nil {
		return failure(err.Error())
	}
	content, err := handler.Load(ctx, id)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"id": id, "content": string(content)})
}

func (p *Provider) installExtension(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	encoded, ok := params["data"].(string)
	if !ok || encoded == "" {
		return failure("data parameter required")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return failure("data must be base64 encoded")
	}
	handler, err := p.extensions.Get(ctx)
	if err != nil {
		return failure(err.Error())
	}
	id, err := handler.Install(ctx, data)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"id": id})
}

func (p *Provider) uninstallExtension(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	id, ok := params["id"].(string)
	if !ok || id == "" {
		return failure("id parameter required")
	}
	handler, err := p.extensions.Get(ctx)
	if err != nil {
		return failure(err.Error())
	}
	removed, err := handler.Uninstall(ctx, id)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"uninstalled": removed})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
