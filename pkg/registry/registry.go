// Package registry dispatches script commands into host-supplied callbacks.
package registry

import (
	"strings"
	"sync"
)

// Command is a host callback. It receives the mutable host state handle and
// the ordered positional arguments parsed from the command text. Callbacks
// run inside the tick that produced the command and must not re-enter the
// runtime's step.
type Command[H any] func(host H, args []string)

// Registry maps command names to callbacks. Registration is expected to
// finish during setup, before any session that uses the command runs.
type Registry[H any] struct {
	mu       sync.RWMutex
	commands map[string]Command[H]
}

// New creates an empty registry.
func New[H any]() *Registry[H] {
	return &Registry[H]{
		commands: make(map[string]Command[H]),
	}
}

// Register adds a command. An existing command with the same name is
// overwritten.
func (r *Registry[H]) Register(name string, fn Command[H]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[name] = fn
}

// Names returns the registered command names, in no particular order.
func (r *Registry[H]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// Split parses raw command text on single-space boundaries into a name and
// positional arguments. No quoting or escaping is supported.
func Split(raw string) (name string, args []string) {
	tokens := strings.Split(raw, " ")
	return tokens[0], tokens[1:]
}

// Dispatch splits raw command text and invokes the matching callback with
// host. An unknown name is a silent no-op: scripts may reference commands
// absent from a given host build. The return value reports whether a
// callback ran.
func (r *Registry[H]) Dispatch(raw string, host H) bool {
	name, args := Split(raw)

	r.mu.RLock()
	fn, ok := r.commands[name]
	r.mu.RUnlock()

	if !ok {
		return false
	}
	fn(host, args)
	return true
}
