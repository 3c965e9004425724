package rusty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Value is anything a program can compute, from numbers and strings to
// functions, arrays and objects
type Value interface {
	String() string
	Equals(Value) bool
}

type NumberValue float64

func (numberValue NumberValue) String() string {
	return nToS(float64(numberValue))
}

func (numberValue NumberValue) Equals(other Value) bool {
	if otherNum, ok := other.(NumberValue); ok {
		return numberValue == otherNum
	}
	return false
}

func nToS(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

type StringValue string

func (stringValue StringValue) String() string {
	return string(stringValue)
}

func (stringValue StringValue) Equals(other Value) bool {
	if otherStr, ok := other.(StringValue); ok {
		return stringValue == otherStr
	}
	return false
}

// Length counts code points, not bytes
func (stringValue StringValue) Length() int {
	return len([]rune(string(stringValue)))
}

type BoolValue bool

func (boolValue BoolValue) String() string {
	if boolValue {
		return "true"
	}
	return "false"
}

func (boolValue BoolValue) Equals(other Value) bool {
	if otherBool, ok := other.(BoolValue); ok {
		return boolValue == otherBool
	}
	return false
}

type NilValue struct{}

func (nilValue NilValue) String() string {
	return "nil"
}

func (nilValue NilValue) Equals(other Value) bool {
	_, ok := other.(NilValue)
	return ok
}

// ArrayValue is immutable from the language's point of view. Natives that
// "modify" an array return a new one.
type ArrayValue []Value

func (arrayValue ArrayValue) String() string {
	items := make([]string, len(arrayValue))
	for i, item := range arrayValue {
		items[i] = item.String()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (arrayValue ArrayValue) Equals(other Value) bool {
	otherArr, ok := other.(ArrayValue)
	if !ok || len(arrayValue) != len(otherArr) {
		return false
	}
	for i := range arrayValue {
		if !arrayValue[i].Equals(otherArr[i]) {
			return false
		}
	}
	return true
}

type ObjectValue map[string]Value

func (objectValue ObjectValue) String() string {
	keys := sortedKeys(objectValue)
	items := make([]string, len(keys))
	for i, key := range keys {
		items[i] = key + ": " + objectValue[key].String()
	}
	return "{" + strings.Join(items, ", ") + "}"
}

func (objectValue ObjectValue) Equals(other Value) bool {
	otherObj, ok := other.(ObjectValue)
	return ok && membersEqual(objectValue, otherObj)
}

// NamespaceValue groups related natives and constants, e.g. Math.PI
type NamespaceValue struct {
	Name    string
	Members map[string]Value
}

func (namespaceValue *NamespaceValue) String() string {
	return fmt.Sprintf("[Namespace: %s {%s}]",
		namespaceValue.Name, strings.Join(sortedKeys(namespaceValue.Members), ", "))
}

func (namespaceValue *NamespaceValue) Equals(other Value) bool {
	otherNs, ok := other.(*NamespaceValue)
	if !ok {
		return false
	}
	return namespaceValue.Name == otherNs.Name &&
		membersEqual(namespaceValue.Members, otherNs.Members)
}

// FunctionValue is a user-defined function together with the environment
// that was active when it was declared
type FunctionValue struct {
	Decl    *FunctionStmt
	Closure *Environment
}

func (functionValue *FunctionValue) Name() string {
	return functionValue.Decl.Name.Lexeme
}

func (functionValue *FunctionValue) String() string {
	return "<fn " + functionValue.Name() + ">"
}

func (functionValue *FunctionValue) Equals(other Value) bool {
	if otherFn, ok := other.(*FunctionValue); ok {
		return functionValue.Name() == otherFn.Name()
	}
	return false
}

// Arity is the number of arguments a native function accepts
type Arity struct {
	n        int
	variadic bool
}

// Variadic accepts any number of arguments. The native checks them itself.
var Variadic = Arity{variadic: true}

func Exactly(n int) Arity {
	return Arity{n: n}
}

func (arity Arity) Accepts(n int) bool {
	return arity.variadic || arity.n == n
}

func (arity Arity) IsVariadic() bool {
	return arity.variadic
}

func (arity Arity) String() string {
	if arity.variadic {
		return "variadic"
	}
	return strconv.Itoa(arity.n)
}

// NativeFunctionValue is a function implemented by the host
type NativeFunctionValue struct {
	Name  string
	Arity Arity
	Exec  func(args []Value) (Value, error)
}

func (nativeFunctionValue NativeFunctionValue) String() string {
	return "<native fn " + nativeFunctionValue.Name + ">"
}

func (nativeFunctionValue NativeFunctionValue) Equals(other Value) bool {
	if otherNat, ok := other.(NativeFunctionValue); ok {
		return nativeFunctionValue.Name == otherNat.Name
	}
	return false
}

// TypeName names the kind of a value for diagnostics
func TypeName(value Value) string {
	switch value.(type) {
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case BoolValue:
		return "boolean"
	case NilValue, nil:
		return "nil"
	case ArrayValue:
		return "array"
	case ObjectValue:
		return "object"
	case *NamespaceValue:
		return "namespace"
	case *FunctionValue:
		return "function"
	case NativeFunctionValue:
		return "native function"
	}
	return fmt.Sprintf("%T", value)
}

// Truthy: only nil and false are falsy
func Truthy(value Value) bool {
	switch v := value.(type) {
	case NilValue, nil:
		return false
	case BoolValue:
		return bool(v)
	}
	return true
}

// Stringify renders a value the way print does
func Stringify(value Value) string {
	if value == nil {
		return "nil"
	}
	return value.String()
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func membersEqual(a, b map[string]Value) bool {
	if len(a) != len(b) {
		return false
	}
	for key, value := range a {
		otherValue, ok := b[key]
		if !ok || !value.Equals(otherValue) {
			return false
		}
	}
	return true
}
