// Package extensions manages installed renderer extensions on the host
// filesystem.
//
// Extensions live under a host-resolved directory (home dir + fixed
// subpath), one directory per extension with a manifest.yaml describing it
// and an entry script the renderer executes. Packages arrive as zip
// archives through the install op.
//
// The handler is expensive to construct (it needs a host round trip to
// resolve the home directory), so Lazy defers construction to first use
// and single-flights it: concurrent first users share one construction and
// one resolution round trip, and a failed construction caches nothing.
package extensions
