package rusty

import (
	"testing"
)

func TestValue_Equals(t *testing.T) {
	fnA := &FunctionValue{Decl: &FunctionStmt{Name: Token{Lexeme: "a"}}}
	fnA2 := &FunctionValue{Decl: &FunctionStmt{Name: Token{Lexeme: "a"}}}
	fnB := &FunctionValue{Decl: &FunctionStmt{Name: Token{Lexeme: "b"}}}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"numbers", NumberValue(1), NumberValue(1), true},
		{"different numbers", NumberValue(1), NumberValue(2), false},
		{"strings", StringValue("a"), StringValue("a"), true},
		{"number and string", NumberValue(1), StringValue("1"), false},
		{"nil and false", NilValue{}, BoolValue(false), false},
		{"booleans", BoolValue(true), BoolValue(true), true},
		{"arrays", ArrayValue{NumberValue(1), StringValue("x")}, ArrayValue{NumberValue(1), StringValue("x")}, true},
		{"array lengths", ArrayValue{NumberValue(1)}, ArrayValue{}, false},
		{"objects", ObjectValue{"k": NilValue{}}, ObjectValue{"k": NilValue{}}, true},
		{"object keys", ObjectValue{"k": NilValue{}}, ObjectValue{"j": NilValue{}}, false},
		{"functions by name", fnA, fnA2, true},
		{"different functions", fnA, fnB, false},
		{"natives by name", NativeFunctionValue{Name: "f"}, NativeFunctionValue{Name: "f"}, true},
		{"function and native", fnA, NativeFunctionValue{Name: "a"}, false},
		{"namespaces", Namespace("M", map[string]Value{"x": NumberValue(1)}), Namespace("M", map[string]Value{"x": NumberValue(1)}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.want {
				t.Errorf("%v.Equals(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equals(tt.a); got != tt.want {
				t.Errorf("equality is not symmetric for %v and %v", tt.a, tt.b)
			}
		})
	}
}

func TestValue_Stringify(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NumberValue(42), "42"},
		{NumberValue(-0.5), "-0.5"},
		{NumberValue(1e21), "1000000000000000000000"},
		{StringValue("hi"), "hi"},
		{NilValue{}, "nil"},
		{nil, "nil"},
		{BoolValue(false), "false"},
		{ArrayValue{}, "[]"},
		{ObjectValue{"b": NumberValue(2), "a": ArrayValue{NilValue{}}}, "{a: [nil], b: 2}"},
		{Namespace("Math", map[string]Value{"PI": NumberValue(3), "abs": NilValue{}}), "[Namespace: Math {PI, abs}]"},
		{NativeFunctionValue{Name: "now"}, "<native fn now>"},
	}

	for _, tt := range tests {
		if got := Stringify(tt.value); got != tt.want {
			t.Errorf("Stringify(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	falsy := []Value{nil, NilValue{}, BoolValue(false)}
	truthy := []Value{BoolValue(true), NumberValue(0), StringValue(""), ArrayValue{}, ObjectValue{}}

	for _, v := range falsy {
		if Truthy(v) {
			t.Errorf("%v should be falsy", v)
		}
	}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Errorf("%v should be truthy", v)
		}
	}
}

func TestArity(t *testing.T) {
	if !Exactly(2).Accepts(2) || Exactly(2).Accepts(1) {
		t.Error("Exactly(2) should only accept 2")
	}
	if !Exactly(0).Accepts(0) || Exactly(0).Accepts(1) {
		t.Error("Exactly(0) is not variadic")
	}
	if !Variadic.Accepts(0) || !Variadic.Accepts(9) {
		t.Error("Variadic should accept anything")
	}
}

func TestTypeName(t *testing.T) {
	tests := map[string]Value{
		"number":          NumberValue(1),
		"string":          StringValue(""),
		"boolean":         BoolValue(true),
		"nil":             NilValue{},
		"array":           ArrayValue{},
		"object":          ObjectValue{},
		"namespace":       Namespace("N", nil),
		"native function": NativeFunctionValue{},
	}
	for want, value := range tests {
		if got := TypeName(value); got != want {
			t.Errorf("TypeName(%#v) = %q, want %q", value, got, want)
		}
	}
}
