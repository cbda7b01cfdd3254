package vm

import "fmt"

// Library is a map-backed ports.FunctionLibrary.
type Library map[string]func(args []any) (any, error)

// Call invokes the named function. Unlike commands, an unknown function is
// an error: scripts that call functions require them present.
func (l Library) Call(name string, args []any) (any, error) {
	fn, ok := l[name]
	if !ok {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	return fn(args)
}
