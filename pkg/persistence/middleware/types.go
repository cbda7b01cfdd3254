// Package middleware decorates variable storage backends with cross-cutting
// behavior: namespacing for save slots, audit logging, and write protection.
package middleware

import "github.com/Semihazah/skein/pkg/ports"

// Middleware allows wrapping a VariableStorage to add behavior.
type Middleware func(ports.VariableStorage) ports.VariableStorage

// Chain applies middlewares to a base storage. The first middleware becomes
// the outermost wrapper.
func Chain(base ports.VariableStorage, mws ...Middleware) ports.VariableStorage {
	wrapped := base
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	return wrapped
}
