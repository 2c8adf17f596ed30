// Package paths defines the layout of the host state directory.
//
// Everything the daemon persists lives under one state root
// (~/.visor/state by default):
//
//	<state>/
//	  ├── layouts/         (saved panel layouts, JSON)
//	  ├── storage/         (named storage items, one file per key)
//	  └── .deeplink-reset  (deep link reset sentinel)
//
// Components take their concrete directory at construction; this package
// is the single place the layout is spelled out.
package paths

import "path/filepath"

const (
	layoutsDir = "layouts"
	storageDir = "storage"
)

// Layouts returns the saved layout directory under the state root
func Layouts(stateDir string) string {
	return filepath.Join(stateDir, layoutsDir)
}

// Storage returns the named item storage directory under the state root
func Storage(stateDir string) string {
	return filepath.Join(stateDir, storageDir)
}
