package interpreter

import "sort"

// Environment maps variable names to their current values for one program
// run. It is not safe for concurrent use.
type Environment struct {
	values map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Set binds name, replacing any earlier binding.
func (e *Environment) Set(name string, v Value) {
	e.values[name] = v
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Environment) Len() int {
	return len(e.values)
}
