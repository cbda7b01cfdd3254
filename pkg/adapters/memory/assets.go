// Package memory provides in-memory implementations of the asset and
// variable-storage ports: an AssetSource whose handle states are set by the
// embedding host (or by tests), and a map-backed VariableStorage.
package memory

import (
	"sync"

	"github.com/Semihazah/skein/pkg/lines"
	"github.com/Semihazah/skein/pkg/ports"
	"github.com/Semihazah/skein/pkg/program"
)

// ProgramHandle is a manually driven ports.ProgramHandle.
type ProgramHandle struct {
	mu    sync.Mutex
	state ports.AssetState
	prog  *program.Program
	err   error
}

// NewProgramHandle creates a handle in the Unloaded state.
func NewProgramHandle() *ProgramHandle {
	return &ProgramHandle{state: ports.AssetUnloaded}
}

// SetLoading marks the handle as loading.
func (h *ProgramHandle) SetLoading() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = ports.AssetLoading
}

// SetLoaded publishes the program and marks the handle as loaded.
func (h *ProgramHandle) SetLoaded(p *program.Program) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = ports.AssetLoaded
	h.prog = p
}

// SetFailed marks the handle as failed.
func (h *ProgramHandle) SetFailed(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = ports.AssetFailed
	h.err = err
}

// State implements ports.ProgramHandle.
func (h *ProgramHandle) State() ports.AssetState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Program implements ports.ProgramHandle.
func (h *ProgramHandle) Program() *program.Program {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.prog
}

// Err implements ports.ProgramHandle.
func (h *ProgramHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// TableHandle is a manually driven ports.TableHandle.
type TableHandle struct {
	mu    sync.Mutex
	state ports.AssetState
	table *lines.Table
	err   error
}

// NewTableHandle creates a handle in the Unloaded state.
func NewTableHandle() *TableHandle {
	return &TableHandle{state: ports.AssetUnloaded}
}

// SetLoading marks the handle as loading.
func (h *TableHandle) SetLoading() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = ports.AssetLoading
}

// SetLoaded publishes the table and marks the handle as loaded.
func (h *TableHandle) SetLoaded(t *lines.Table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = ports.AssetLoaded
	h.table = t
}

// SetFailed marks the handle as failed.
func (h *TableHandle) SetFailed(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = ports.AssetFailed
	h.err = err
}

// State implements ports.TableHandle.
func (h *TableHandle) State() ports.AssetState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Table implements ports.TableHandle.
func (h *TableHandle) Table() *lines.Table {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.table
}

// Err implements ports.TableHandle.
func (h *TableHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Entry couples a locator's two handles.
type Entry struct {
	Program *ProgramHandle
	Table   *TableHandle
}

// Source is an in-memory ports.AssetSource. Hosts register entries up front
// (Add or AddLoaded) and drive their states; Resolve returns the same
// handles for the same locator. Unknown locators resolve to fresh Unloaded
// handles, which the host may still complete later.
type Source struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewSource creates an empty source.
func NewSource() *Source {
	return &Source{entries: make(map[string]Entry)}
}

// Add registers unloaded handles for locator and returns them.
func (s *Source) Add(locator string) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[locator]; ok {
		return e
	}
	e := Entry{Program: NewProgramHandle(), Table: NewTableHandle()}
	s.entries[locator] = e
	return e
}

// AddLoaded registers locator with both assets already loaded.
func (s *Source) AddLoaded(locator string, p *program.Program, t *lines.Table) Entry {
	e := s.Add(locator)
	e.Program.SetLoaded(p)
	e.Table.SetLoaded(t)
	return e
}

// Resolve implements ports.AssetSource.
func (s *Source) Resolve(locator string) (ports.ProgramHandle, ports.TableHandle) {
	e := s.Add(locator)
	return e.Program, e.Table
}
