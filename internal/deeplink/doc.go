// Package deeplink delivers launch-time deep links to the application
// exactly once per logical launch.
//
// Deep links are URL arguments (visor:// by default) captured from the
// process launch arguments. Clearing them without restarting the process
// uses a sentinel-plus-reload protocol:
//
//   - Start: check the reset sentinel. Present: deliver an empty set and
//     clear the sentinel. Absent: decode links from the launch arguments.
//   - Armed: links are immutable and readable any number of times.
//   - Reset requested: set the sentinel, then force a full reload of the
//     rendering surface.
//   - Start (post-reload): the sentinel is now present, so the next attach
//     sees an empty set and the sentinel is cleared.
//
// This guarantees at most one non-empty delivery per reset cycle and that
// the reload path never redelivers stale links.
package deeplink
