package middleware

import (
	"log/slog"

	"github.com/Semihazah/skein/pkg/ports"
)

type readOnlyMiddleware struct {
	next   ports.VariableStorage
	logger *slog.Logger
}

// NewReadOnlyMiddleware creates a middleware that drops writes, warning
// once per call. Hosts use it to replay scripts against a saved game
// without mutating it.
func NewReadOnlyMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.VariableStorage) ports.VariableStorage {
		return &readOnlyMiddleware{next: next, logger: logger}
	}
}

func (m *readOnlyMiddleware) GetValue(name string) (any, bool) {
	return m.next.GetValue(name)
}

func (m *readOnlyMiddleware) SetValue(name string, value any) {
	m.logger.Warn("write dropped by read-only storage", "name", name)
}

func (m *readOnlyMiddleware) Clear() {
	m.logger.Warn("clear dropped by read-only storage")
}
