package local

import (
	"context"
	"fmt"
)

// WindowTransport delivers window manager commands to the desktop shell
// that owns the native window. The bridge never retries: a failed delivery
// surfaces directly to the calling op.
type WindowTransport interface {
	Send(ctx context.Context, command string, args map[string]interface{}) error
}

// Window implements host.WindowCommander by forwarding each command over
// the shell transport
type Window struct {
	transport WindowTransport
}

// NewWindow creates a window commander bound to the shell transport
func NewWindow(transport WindowTransport) *Window {
	return &Window{transport: transport}
}

func (w *Window) send(ctx context.Context, command string, args map[string]interface{}) error {
	if err := w.transport.Send(ctx, command, args); err != nil {
		return fmt.Errorf("window command %s failed: %w", command, err)
	}
	return nil
}

// Minimize implements host.WindowCommander
func (w *Window) Minimize(ctx context.Context) error {
	return w.send(ctx, "minimize", nil)
}

// Maximize implements host.WindowCommander
func (w *Window) Maximize(ctx context.Context) error {
	return w.send(ctx, "maximize", nil)
}

// Unmaximize implements host.WindowCommander
func (w *Window) Unmaximize(ctx context.Context) error {
	return w.send(ctx, "unmaximize", nil)
}

// Close implements host.WindowCommander
func (w *Window) Close(ctx context.Context) error {
	return w.send(ctx, "close", nil)
}

// Reload implements host.WindowCommander
func (w *Window) Reload(ctx context.Context) error {
	return w.send(ctx, "reload", nil)
}

// SetRepresentedFilename implements host.WindowCommander
func (w *Window) SetRepresentedFilename(ctx context.Context, path string) error {
	return w.send(ctx, "set-represented-filename", map[string]interface{}{"path": path})
}

// SetColorScheme implements host.WindowCommander
func (w *Window) SetColorScheme(ctx context.Context, scheme string) error {
	return w.send(ctx, "set-color-scheme", map[string]interface{}{"scheme": scheme})
}

// SetLanguage implements host.WindowCommander
func (w *Window) SetLanguage(ctx context.Context, lang string) error {
	return w.send(ctx, "set-language", map[string]interface{}{"language": lang})
}

// HandleTitleBarDoubleClick implements host.WindowCommander
func (w *Window) HandleTitleBarDoubleClick(ctx context.Context) error {
	return w.send(ctx, "title-bar-double-click", nil)
}
