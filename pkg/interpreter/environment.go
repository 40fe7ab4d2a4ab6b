package interpreter

import (
	"maps"
	"slices"
)

// Environment holds every variable binding of a running program.
//
// There is no lexical nesting. A call takes a snapshot with Push, binds
// its parameters into the live map and restores the snapshot with Pop
// when it returns, so every change made during the call is discarded.
type Environment struct {
	variables map[string]Value
	snapshots []map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		variables: make(map[string]Value),
	}
}

// Get retrieves a variable value by name.
func (e *Environment) Get(name string) (Value, bool) {
	value, ok := e.variables[name]
	return value, ok
}

// Set binds name to value, overwriting any existing binding.
func (e *Environment) Set(name string, value Value) {
	e.variables[name] = value
}

// Has checks if a variable is bound.
func (e *Environment) Has(name string) bool {
	_, ok := e.variables[name]
	return ok
}

// Keys returns the bound names in sorted order.
func (e *Environment) Keys() []string {
	return slices.Sorted(maps.Keys(e.variables))
}

// Size returns the number of bindings.
func (e *Environment) Size() int {
	return len(e.variables)
}

// Push saves a copy of the current bindings.
func (e *Environment) Push() {
	e.snapshots = append(e.snapshots, maps.Clone(e.variables))
}

// Pop replaces the current bindings with the most recent snapshot. It is
// a no-op when no snapshot exists.
func (e *Environment) Pop() {
	n := len(e.snapshots)
	if n == 0 {
		return
	}
	e.variables = e.snapshots[n-1]
	e.snapshots[n-1] = nil
	e.snapshots = e.snapshots[:n-1]
}

// Depth returns the number of saved snapshots.
func (e *Environment) Depth() int {
	return len(e.snapshots)
}
