// Package main is the entry point for the Visor host bridge daemon.
//
// The daemon is the privileged side of the Visor desktop application. The
// sandboxed rendering surface has no direct OS access; every host
// capability it may use is published here as one of four capability
// bridges and reached over the boundary socket channel.
//
// Architecture:
//
//	Rendering surface (sandboxed webview) → boundary socket → host bridge
//	Desktop shell (native window owner)  ↔ boundary socket ↔ host bridge
//
// The daemon provides:
//   - Capability bridge registry (environment, window, storage, menu)
//   - Host event relay with safe subscribe/unsubscribe
//   - Lazily constructed extension handler
//   - Deep-link intake with the sentinel/reload reset protocol
//   - Prometheus metrics and rate limiting
//
// Configuration:
//   - Environment variables (VISOR_* prefix)
//   - CLI flags (override env vars)
//
// Signals:
//   - SIGINT, SIGTERM: shutdown
package main
