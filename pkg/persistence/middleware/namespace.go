package middleware

import (
	"strings"

	"github.com/Semihazah/skein/pkg/ports"
)

type namespaceMiddleware struct {
	next   ports.VariableStorage
	prefix string
}

// NewNamespaceMiddleware creates a middleware that scopes every variable
// under a prefix. Hosts use it to isolate save slots or players sharing one
// backend.
func NewNamespaceMiddleware(namespace string) Middleware {
	prefix := namespace + "/"
	return func(next ports.VariableStorage) ports.VariableStorage {
		return &namespaceMiddleware{next: next, prefix: prefix}
	}
}

func (m *namespaceMiddleware) GetValue(name string) (any, bool) {
	return m.next.GetValue(m.prefix + name)
}

func (m *namespaceMiddleware) SetValue(name string, value any) {
	m.next.SetValue(m.prefix+name, value)
}

// Clear drops the whole underlying store, keys outside the namespace
// included. Backends with per-prefix deletion should be cleared directly
// when that matters.
func (m *namespaceMiddleware) Clear() {
	m.next.Clear()
}

// Namespace reports the prefix without its separator.
func (m *namespaceMiddleware) Namespace() string {
	return strings.TrimSuffix(m.prefix, "/")
}
