package interp

import "github.com/Francis589-png/JUSUPLUSPLUS/internal/value"

// Environment is the identifier-to-value mapping active at a given
// moment of interpretation. Function calls create a child environment
// whose initial contents are a snapshot (shallow copy) of the caller's
// bindings at call time, extended with parameter bindings; mutation
// inside the callee never propagates back to the caller. This "snapshot
// scope" stands in for lexical closures over mutable cells.
type Environment struct {
	vars map[string]value.Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]value.Value)}
}

// Snapshot returns a new environment whose bindings are a shallow copy of
// e's, the call-time capture a function call makes of its caller's scope.
func (e *Environment) Snapshot() *Environment {
	cp := make(map[string]value.Value, len(e.vars))
	for k, v := range e.vars {
		cp[k] = v
	}
	return &Environment{vars: cp}
}

// Get looks up name directly in this environment (no built-in fallback).
func (e *Environment) Get(name string) (value.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to v, mutating this environment in place.
func (e *Environment) Set(name string, v value.Value) {
	e.vars[name] = v
}

// Names returns every bound identifier, used by the shell's `vars` command.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	return names
}
