// Package host declares the collaborator interfaces behind the capability
// bridges. The bridge layer specifies the call contract only; concrete
// implementations (OS windowing, filesystem, flag parsing) live elsewhere
// and are injected at assembly time.
package host

import (
	"context"

	"github.com/visorhq/visor/host/internal/shared/types"
)

// WindowCommander executes window manager commands on behalf of the
// renderer. Every method is a host round trip: it blocks until the window
// manager acknowledges or the transport fails, and it is never retried.
type WindowCommander interface {
	Minimize(ctx context.Context) error
	Maximize(ctx context.Context) error
	Unmaximize(ctx context.Context) error
	Close(ctx context.Context) error
	Reload(ctx context.Context) error
	SetRepresentedFilename(ctx context.Context, path string) error
	SetColorScheme(ctx context.Context, scheme string) error
	SetLanguage(ctx context.Context, lang string) error
	HandleTitleBarDoubleClick(ctx context.Context) error
}

// PathResolver resolves host filesystem locations
type PathResolver interface {
	// HomeDir resolves the user's home directory. Called at most once per
	// successful extension handler construction.
	HomeDir(ctx context.Context) (string, error)
}

// LayoutStore loads saved panel layouts from a host-resolved user directory
type LayoutStore interface {
	FetchLayouts(ctx context.Context) ([]types.Layout, error)
}

// FlagSource resolves command-line-derived options
type FlagSource interface {
	CLIFlags(ctx context.Context) (types.CLIFlags, error)
}

// Store is the storage collaborator behind the Storage bridge. The bridge
// pre-binds each method into a free function before publication; the Store
// itself never crosses the boundary.
type Store interface {
	List(ctx context.Context) ([]string, error)
	All(ctx context.Context) ([]types.StorageItem, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
