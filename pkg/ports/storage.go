package ports

// VariableStorage holds script variables across nodes and sessions.
// Interpreters read and write it for PushVariable and StoreVariable.
type VariableStorage interface {
	// GetValue fetches a variable; found is false when it was never set.
	GetValue(name string) (value any, found bool)

	// SetValue stores a variable.
	SetValue(name string, value any)

	// Clear removes all variables.
	Clear()
}

// FunctionLibrary provides host functions callable from scripts (CallFunc).
// Unlike commands, functions return values onto the interpreter's stack.
type FunctionLibrary interface {
	// Call invokes the named function with ordered arguments. An unknown
	// name is an error; scripts that call functions require them present.
	Call(name string, args []any) (any, error)
}
