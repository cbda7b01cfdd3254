// Package domain holds the pure types shared across the skein runtime:
// dialogue requests, runner status, suspend reasons, lifecycle hooks and
// error values. It has no dependencies on adapters or on the runtime core.
package domain
