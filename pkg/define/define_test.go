package define

import (
	"errors"
	"testing"

	"github.com/posidron/rusty/pkg/rusty"
)

func TestParse(t *testing.T) {
	t.Setenv("RUSTY_DEFINE_TEST", "hello")

	tests := []struct {
		name string
		defs []string
		want map[string]rusty.Value
	}{
		{"number", []string{"answer=6*7"}, map[string]rusty.Value{"answer": rusty.NumberValue(42)}},
		{"float", []string{"half = 1 / 2"}, map[string]rusty.Value{"half": rusty.NumberValue(0.5)}},
		{"string", []string{`greeting="hi " + "there"`}, map[string]rusty.Value{"greeting": rusty.StringValue("hi there")}},
		{"bool", []string{"debug=true"}, map[string]rusty.Value{"debug": rusty.BoolValue(true)}},
		{"nil", []string{"nothing=nil"}, map[string]rusty.Value{"nothing": rusty.NilValue{}}},
		{"env", []string{`who=env("RUSTY_DEFINE_TEST")`}, map[string]rusty.Value{"who": rusty.StringValue("hello")}},
		{
			"array",
			[]string{`dirs=["a", 1]`},
			map[string]rusty.Value{"dirs": rusty.ArrayValue{rusty.StringValue("a"), rusty.NumberValue(1)}},
		},
		{
			"map",
			[]string{`point={"x": 1, "y": 2}`},
			map[string]rusty.Value{"point": rusty.ObjectValue{"x": rusty.NumberValue(1), "y": rusty.NumberValue(2)}},
		},
		{
			"refers to earlier",
			[]string{"a=2", "b=a*10"},
			map[string]rusty.Value{"a": rusty.NumberValue(2), "b": rusty.NumberValue(20)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.defs)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() = %v, want %v", got, tt.want)
			}
			for name, want := range tt.want {
				if !want.Equals(got[name]) {
					t.Errorf("Parse()[%q] = %v, want %v", name, got[name], want)
				}
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		def  string
		want error
	}{
		{"missing equals", "answer", ErrSyntax},
		{"bad name", "1x=2", ErrSyntax},
		{"empty expression", "x=", ErrExpression},
		{"compile error", "x=1 +", ErrExpression},
		{"unknown variable", "x=y", ErrExpression},
		{"unsupported value", "x=env", ErrValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]string{tt.def})
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefinedGlobalsReachProgram(t *testing.T) {
	bindings, err := Parse([]string{"n=3"})
	if err != nil {
		t.Fatal(err)
	}
	interp := rusty.New(rusty.WithGlobals(bindings))
	if _, err := interp.Globals().Get("n"); err != nil {
		t.Errorf("Get(n) error = %v", err)
	}
}
