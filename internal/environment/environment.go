// Package environment implements the interpreter's lexical scope stack:
// a singly-linked chain of scopes mapping names to values, with
// parent-chain lookup.
package environment

import (
	"fmt"

	"github.com/loxscript/loxscript/internal/value"
)

// Environment is one scope in the chain. The innermost (current) scope
// owns its own name-to-value mapping and holds a reference to its
// enclosing scope; a lookup that misses walks outward until it finds
// the name or runs out of parents.
type Environment struct {
	store map[string]value.Value
	outer *Environment
}

// New creates a root environment with no enclosing scope. Used once,
// for the program's global scope.
func New() *Environment {
	return &Environment{store: make(map[string]value.Value)}
}

// Push returns a new scope enclosed by e, entered on block entry.
func (e *Environment) Push() *Environment {
	return &Environment{store: make(map[string]value.Value), outer: e}
}

// Pop returns the enclosing scope, discarding e's own bindings. Popping
// the root scope is a programming error: the root lives for the
// interpreter's lifetime.
func (e *Environment) Pop() *Environment {
	if e.outer == nil {
		panic("environment: cannot pop the root scope")
	}
	return e.outer
}

// Define inserts name into the topmost scope, shadowing (but not
// disturbing) any binding of the same name in an outer scope.
func (e *Environment) Define(name string, v value.Value) {
	e.store[name] = v
}

// Get walks outward from e looking for name, returning the nearest
// binding. The bool is false if name is undefined in the whole chain.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[name]; ok {
			return v, true
		}
	}
	return value.Nil, false
}

// Assign walks outward from e and updates the nearest scope that
// already defines name. It returns an error, rather than defining a
// new binding, if name is undefined anywhere in the chain — assignment
// to an undefined variable is a runtime error.
func (e *Environment) Assign(name string, v value.Value) error {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = v
			return nil
		}
	}
	return fmt.Errorf("undefined variable %q", name)
}
