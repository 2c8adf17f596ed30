// Package ws implements the boundary socket channel between the host
// process and the sandboxed rendering surface.
//
// Only JSON frames cross this channel: bridge op calls and results, event
// subscriptions, and host-pushed event notifications. No references, no
// prototypes, no code.
//
// Message Types (renderer → host):
//   - call: invoke a bridge op by ID; answered with a result frame
//     correlated by message ID
//   - subscribe / unsubscribe: manage event listeners; addEventListener
//     and removeEventListener ops route here because detach closures
//     cannot cross the boundary as data
//   - ping: keep-alive
//
// Message Types (shell → host):
//   - event: host event notification (window lifecycle, menu actions),
//     dispatched into the event relay in delivery order
//
// Message Types (host → renderer/shell):
//   - result: outcome of a call
//   - event: relayed host event for an active subscription
//   - command: window manager command for the desktop shell
//   - system, pong
//
// The shell attaches with ?role=shell. Only renderer attaches count as a
// page load for the deep-link protocol; a shell reconnect never consumes
// a pending reset sentinel.
package ws
