// Package bridge assembles and publishes the capability bridges that the
// sandboxed renderer is allowed to call.
//
// The registry is the only component with authority to cross the isolation
// boundary. It is constructed once at process attach, wires the event
// relay and window state cache to host-pushed events, places the lazy
// extension initializer behind the extension ops, and publishes four
// disjoint bridges:
//   - environment: process-local information, synchronous reads only
//   - window: window/app control, host round trips
//   - storage: named item storage over one shared collaborator
//   - menu: native menu action events
//
// Boundary constraint: bridge definitions and op results are plain data.
// Stateful collaborators are pre-bound into free functions before
// publication and never cross the boundary themselves.
package bridge
