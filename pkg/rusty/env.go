package rusty

import (
	"fmt"
	"slices"
	"strings"
)

// Environment is one frame of variable bindings. Frames are shared by
// reference: every closure keeps the frame it was declared in alive.
type Environment struct {
	values map[string]Value
	parent *Environment
}

func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Child creates a new innermost frame
func (env *Environment) Child() *Environment {
	return &Environment{values: make(map[string]Value), parent: env}
}

func (env *Environment) Parent() *Environment {
	return env.parent
}

// Define binds a name in this frame, replacing any earlier binding here
func (env *Environment) Define(name string, value Value) {
	env.values[name] = value
}

// Get a variable's value by looking through every frame (inner to outer)
func (env *Environment) Get(name string) (Value, error) {
	for frame := env; frame != nil; frame = frame.parent {
		if value, ok := frame.values[name]; ok {
			return value, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Assign overwrites the innermost existing binding. Unlike Define it never
// creates a new variable.
func (env *Environment) Assign(name string, value Value) error {
	for frame := env; frame != nil; frame = frame.parent {
		if _, ok := frame.values[name]; ok {
			frame.values[name] = value
			return nil
		}
	}
	return undefinedVariable(name)
}

// Names lists every visible name once, sorted
func (env *Environment) Names() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for frame := env; frame != nil; frame = frame.parent {
		for name := range frame.values {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names
}

func (env *Environment) String() string {
	var sb strings.Builder
	for frame := env; frame != nil; frame = frame.parent {
		sb.WriteString("{\n")
		for _, name := range sortedKeys(frame.values) {
			fmt.Fprintf(&sb, "\t%v: %v\n", name, frame.values[name])
		}
		sb.WriteString("}")
	}
	return sb.String()
}

func undefinedVariable(name string) *RuntimeError {
	return runtimeError(ErrUndefinedVariable, 0, "Undefined variable '%s'.", name)
}
