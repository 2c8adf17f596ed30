package extensions

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/visorhq/visor/host/internal/host"
)

// Lazy constructs the shared extension handler at most once per process.
//
// Construction crosses a suspension point (the home-directory round trip),
// so a bare presence check would let two concurrent first users both
// observe "absent" and construct twice. All callers therefore funnel
// through a single-flight group: concurrent first users share one
// in-flight construction, and a failure caches nothing so a later call can
// retry cleanly.
type Lazy struct {
	resolver host.PathResolver
	subpath  string
	group    singleflight.Group
	handler  atomic.Pointer[Handler]
}

// NewLazy defers handler construction until first use. The handler is
// scoped to subpath under the host-resolved home directory.
func NewLazy(resolver host.PathResolver, subpath string) *Lazy {
	return &Lazy{resolver: resolver, subpath: subpath}
}

// Get returns the shared handler, constructing it on first use. Every
// caller observes the same instance once construction completes.
func (l *Lazy) Get(ctx context.Context) (*Handler, error) {
	if h := l.handler.Load(); h != nil {
		return h, nil
	}

	v, err, _ := l.group.Do("handler", func() (interface{}, error) {
		if h := l.handler.Load(); h != nil {
			return h, nil
		}
		home, err := l.resolver.HomeDir(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		h, err := NewHandler(filepath.Join(home, l.subpath))
		if err != nil {
			return nil, err
		}
		l.handler.Store(h)
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Handler), nil
}
