// Package types provides shared data structures for the Visor host bridge.
//
// This package defines the wire-level records that cross the isolation
// boundary between the privileged host process and the sandboxed renderer.
// Everything here is plain, structurally-typed data: no type in this
// package carries behavior, and nothing that crosses the boundary may.
//
// Bridge Surface:
//   - Bridge: published capability bridge definition
//   - Op: single bridge operation (sync read or async host round trip)
//   - Parameter: op parameter specification
//   - Result: standard op execution result
//
// Boundary Records:
//   - NetworkInterface: host network interface address entry
//   - CLIFlags: host-resolved command-line options
//   - Extension: installed extension metadata
//   - Layout: saved panel layout
//   - StorageItem: named storage entry
package types
