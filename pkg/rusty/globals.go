package rusty

// GlobalBindings are the names a host makes visible to programs before
// they run, typically native functions and namespaces
type GlobalBindings map[string]Value

// Merge returns a new set holding every binding. Later sets win.
func Merge(sets ...GlobalBindings) GlobalBindings {
	merged := make(GlobalBindings)
	for _, set := range sets {
		for name, value := range set {
			merged[name] = value
		}
	}
	return merged
}

// Native wraps fn as a function value
func Native(name string, arity Arity, fn func(args []Value) (Value, error)) NativeFunctionValue {
	return NativeFunctionValue{Name: name, Arity: arity, Exec: fn}
}

// Namespace builds a namespace from its members
func Namespace(name string, members map[string]Value) *NamespaceValue {
	return &NamespaceValue{Name: name, Members: members}
}

func (bindings GlobalBindings) install(env *Environment) {
	for name, value := range bindings {
		env.Define(name, value)
	}
}
