package ports

import (
	"github.com/Semihazah/skein/pkg/lines"
	"github.com/Semihazah/skein/pkg/program"
)

// AssetState is the lifecycle of an asynchronously loaded asset.
type AssetState int

const (
	AssetUnloaded AssetState = iota
	AssetLoading
	AssetLoaded
	AssetFailed
)

func (s AssetState) String() string {
	switch s {
	case AssetUnloaded:
		return "unloaded"
	case AssetLoading:
		return "loading"
	case AssetLoaded:
		return "loaded"
	case AssetFailed:
		return "failed"
	}
	return "unknown"
}

// ProgramHandle tracks the readiness of a compiled script asset. The
// admission gate polls State every tick; it never blocks on a handle.
// Program is only meaningful once State reports AssetLoaded, and Err once it
// reports AssetFailed.
type ProgramHandle interface {
	State() AssetState
	Program() *program.Program
	Err() error
}

// TableHandle tracks the readiness of a string-table asset, with the same
// contract as ProgramHandle.
type TableHandle interface {
	State() AssetState
	Table() *lines.Table
	Err() error
}

// AssetSource resolves a script locator into the pair of handles the
// admission gate polls. Resolve must return immediately; loading happens in
// the background. Resolving the same locator repeatedly may return the same
// handles.
type AssetSource interface {
	Resolve(locator string) (ProgramHandle, TableHandle)
}
