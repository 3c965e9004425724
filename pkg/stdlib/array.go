package stdlib

import (
	"fmt"
	"strings"

	"github.com/posidron/rusty/pkg/rusty"
)

// Arrays are values: push, set and concat return new arrays and leave
// their arguments untouched.
func arrayNamespace() *rusty.NamespaceValue {
	return namespace("Array", []rusty.NativeFunctionValue{
		rusty.Native("create", rusty.Variadic, doCreate),
		rusty.Native("length", rusty.Exactly(1), doLength),
		rusty.Native("push", rusty.Exactly(2), doPush),
		rusty.Native("pop", rusty.Exactly(1), doPop),
		rusty.Native("get", rusty.Exactly(2), doGet),
		rusty.Native("set", rusty.Exactly(3), doSet),
		rusty.Native("concat", rusty.Exactly(2), doConcat),
		rusty.Native("join", rusty.Exactly(2), doJoin),
		rusty.Native("slice", rusty.Variadic, doSlice),
	}, nil)
}

func array(fn string, value rusty.Value, what string) (rusty.ArrayValue, error) {
	if a, ok := value.(rusty.ArrayValue); ok {
		return a, nil
	}
	return nil, fmt.Errorf("%s: %s must be an array, got %s", fn, what, rusty.TypeName(value))
}

func doCreate(args []rusty.Value) (rusty.Value, error) {
	return append(rusty.ArrayValue{}, args...), nil
}

func doLength(args []rusty.Value) (rusty.Value, error) {
	switch v := args[0].(type) {
	case rusty.ArrayValue:
		return rusty.NumberValue(len(v)), nil
	case rusty.StringValue:
		return rusty.NumberValue(v.Length()), nil
	}
	return nil, fmt.Errorf("length: argument must be an array or string, got %s", rusty.TypeName(args[0]))
}

func doPush(args []rusty.Value) (rusty.Value, error) {
	a, err := array("push", args[0], "first argument")
	if err != nil {
		return nil, err
	}
	pushed := make(rusty.ArrayValue, len(a), len(a)+1)
	copy(pushed, a)
	return append(pushed, args[1]), nil
}

// doPop returns the last element
func doPop(args []rusty.Value) (rusty.Value, error) {
	a, err := array("pop", args[0], "argument")
	if err != nil {
		return nil, err
	}
	if len(a) == 0 {
		return nil, fmt.Errorf("pop: cannot pop from empty array")
	}
	return a[len(a)-1], nil
}

func doGet(args []rusty.Value) (rusty.Value, error) {
	i, err := index("get", args[1])
	if err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case rusty.ArrayValue:
		if i >= len(v) {
			return nil, fmt.Errorf("get: index %d out of bounds (array length: %d)", i, len(v))
		}
		return v[i], nil
	case rusty.StringValue:
		runes := []rune(string(v))
		if i >= len(runes) {
			return nil, fmt.Errorf("get: index %d out of bounds (string length: %d)", i, len(runes))
		}
		return rusty.StringValue(string(runes[i : i+1])), nil
	}
	return nil, fmt.Errorf("get: first argument must be an array or string, got %s", rusty.TypeName(args[0]))
}

func doSet(args []rusty.Value) (rusty.Value, error) {
	i, err := index("set", args[1])
	if err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case rusty.ArrayValue:
		if i >= len(v) {
			return nil, fmt.Errorf("set: index %d out of bounds (array length: %d)", i, len(v))
		}
		updated := append(rusty.ArrayValue{}, v...)
		updated[i] = args[2]
		return updated, nil
	case rusty.StringValue:
		runes := []rune(string(v))
		if i >= len(runes) {
			return nil, fmt.Errorf("set: index %d out of bounds (string length: %d)", i, len(runes))
		}
		char, ok := args[2].(rusty.StringValue)
		if !ok || char.Length() != 1 {
			return nil, fmt.Errorf("set: replacement must be a single character")
		}
		runes[i] = []rune(string(char))[0]
		return rusty.StringValue(runes), nil
	}
	return nil, fmt.Errorf("set: first argument must be an array or string, got %s", rusty.TypeName(args[0]))
}

func doConcat(args []rusty.Value) (rusty.Value, error) {
	a, err := array("concat", args[0], "first argument")
	if err != nil {
		return nil, err
	}
	b, err := array("concat", args[1], "second argument")
	if err != nil {
		return nil, err
	}
	joined := make(rusty.ArrayValue, 0, len(a)+len(b))
	return append(append(joined, a...), b...), nil
}

func doJoin(args []rusty.Value) (rusty.Value, error) {
	a, err := array("join", args[0], "first argument")
	if err != nil {
		return nil, err
	}
	sep, err := str("join", args[1], "separator")
	if err != nil {
		return nil, err
	}
	items := make([]string, len(a))
	for i, item := range a {
		items[i] = rusty.Stringify(item)
	}
	return rusty.StringValue(strings.Join(items, sep)), nil
}

// doSlice takes (array or string, start[, length]). A length running past
// the end is clipped.
func doSlice(args []rusty.Value) (rusty.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("slice: requires 2 or 3 arguments, got %d", len(args))
	}
	start, err := index("slice", args[1])
	if err != nil {
		return nil, err
	}
	length := -1
	if len(args) == 3 {
		if length, err = index("slice", args[2]); err != nil {
			return nil, err
		}
	}
	bounds := func(n int) (int, int, error) {
		if start > n {
			return 0, 0, fmt.Errorf("slice: start index %d out of bounds (length: %d)", start, n)
		}
		end := n
		if length >= 0 && length < n-start {
			end = start + length
		}
		return start, end, nil
	}

	switch v := args[0].(type) {
	case rusty.ArrayValue:
		from, to, err := bounds(len(v))
		if err != nil {
			return nil, err
		}
		return append(rusty.ArrayValue{}, v[from:to]...), nil
	case rusty.StringValue:
		runes := []rune(string(v))
		from, to, err := bounds(len(runes))
		if err != nil {
			return nil, err
		}
		return rusty.StringValue(runes[from:to]), nil
	}
	return nil, fmt.Errorf("slice: first argument must be an array or string, got %s", rusty.TypeName(args[0]))
}
