package middleware

import (
	"log/slog"

	"github.com/Semihazah/skein/pkg/ports"
)

type auditMiddleware struct {
	next   ports.VariableStorage
	logger *slog.Logger
}

// NewAuditMiddleware creates a middleware that logs every write at debug
// level. Reads are not logged; scripts read far more than they write.
func NewAuditMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.VariableStorage) ports.VariableStorage {
		return &auditMiddleware{next: next, logger: logger}
	}
}

func (m *auditMiddleware) GetValue(name string) (any, bool) {
	return m.next.GetValue(name)
}

func (m *auditMiddleware) SetValue(name string, value any) {
	m.logger.Debug("variable set", "name", name, "value", value)
	m.next.SetValue(name, value)
}

func (m *auditMiddleware) Clear() {
	m.logger.Debug("variables cleared")
	m.next.Clear()
}
