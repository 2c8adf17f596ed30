// Package local provides the default host-side implementations of the
// collaborator interfaces in package host. They keep the daemon runnable
// standalone: paths and flags come from the local process, layouts and
// storage live under the host state directory, and window commands are
// forwarded to the attached desktop shell.
package local

import (
	"context"
	"os"
)

// Paths resolves host filesystem locations from the local OS
type Paths struct{}

// NewPaths creates a local path resolver
func NewPaths() *Paths {
	return &Paths{}
}

// HomeDir implements host.PathResolver
func (p *Paths) HomeDir(ctx context.Context) (string, error) {
	return os.UserHomeDir()
}
