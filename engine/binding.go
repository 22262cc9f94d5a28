package engine

import (
	"errors"
	"fmt"

	"github.com/samber/mo"
)

// Variadic marks a host function that accepts any number of arguments.
const Variadic = -1

// Opaque is the string form of a script value that has no host equivalent, such as a table or function.
type Opaque string

// HostFunc is the native side of a binding. Arguments arrive marshaled as
// string, float64, bool, nil or Opaque. A returned error is raised inside the
// script as a catchable error; mo.None returns nothing to the script.
type HostFunc func(args []any) (mo.Option[string], error)

// Binding is a single name installed into the namespace object: either a function or a string value.
type Binding struct {
	Name string

	// Arity is the exact argument count a function accepts, or Variadic.
	Arity int
	// Usage is raised when the argument count does not match Arity.
	Usage string
	Func  HostFunc

	// Value is installed instead of a function when Func is nil.
	Value string
}

// Function builds a function binding.
func Function(name string, arity int, usage string, fn HostFunc) Binding {
	return Binding{Name: name, Arity: arity, Usage: usage, Func: fn}
}

// Value builds a read-only string binding.
func Value(name, value string) Binding {
	return Binding{Name: name, Value: value}
}

// checkArity returns the error raised for a call with n arguments, if any.
func (b Binding) checkArity(n int) error {
	if b.Arity == Variadic || b.Arity == n {
		return nil
	}
	if b.Usage != "" {
		return errors.New(b.Usage)
	}
	return fmt.Errorf("%s: expected %d argument(s), got %d", b.Name, b.Arity, n)
}
