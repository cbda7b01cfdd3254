package memory

// VariableStorage implements ports.VariableStorage with a plain map. It is
// not safe for concurrent use; the interpreter owns it on the tick thread.
type VariableStorage map[string]any

// NewVariableStorage creates empty storage.
func NewVariableStorage() VariableStorage {
	return make(VariableStorage)
}

// GetValue fetches a variable.
func (m VariableStorage) GetValue(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// SetValue stores a variable.
func (m VariableStorage) SetValue(name string, value any) {
	m[name] = value
}

// Clear removes all variables.
func (m VariableStorage) Clear() {
	for name := range m {
		delete(m, name)
	}
}
