// Package stdlib provides the native namespaces available to rusty
// programs: Math, Array, String, File, Time, JSON and Regex.
package stdlib

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/posidron/rusty/pkg/rusty"
)

type config struct {
	rand *rand.Rand
	now  func() time.Time
}

type Option func(config) config

// WithRand makes Math.random and Math.random_range draw from r
func WithRand(r *rand.Rand) Option {
	return func(c config) config {
		c.rand = r
		return c
	}
}

// WithClock replaces the clock behind Time.now
func WithClock(now func() time.Time) Option {
	return func(c config) config {
		c.now = now
		return c
	}
}

// Bindings returns a fresh set of namespaces. Nothing is shared between
// two calls, so separate interpreters never observe each other's state.
func Bindings(opts ...Option) rusty.GlobalBindings {
	cfg := config{
		rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:  time.Now,
	}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return rusty.GlobalBindings{
		"Math":   mathNamespace(cfg),
		"Array":  arrayNamespace(),
		"String": stringNamespace(),
		"File":   fileNamespace(),
		"Time":   timeNamespace(cfg),
		"JSON":   jsonNamespace(),
		"Regex":  regexNamespace(),
	}
}

// namespace builds a namespace from natives plus extra constant members
func namespace(name string, natives []rusty.NativeFunctionValue, constants map[string]rusty.Value) *rusty.NamespaceValue {
	members := make(map[string]rusty.Value, len(natives)+len(constants))
	for _, native := range natives {
		members[native.Name] = native
	}
	for key, value := range constants {
		members[key] = value
	}
	return rusty.Namespace(name, members)
}

func number(fn string, value rusty.Value, what string) (float64, error) {
	if n, ok := value.(rusty.NumberValue); ok {
		return float64(n), nil
	}
	return 0, fmt.Errorf("%s: %s must be a number, got %s", fn, what, rusty.TypeName(value))
}

func str(fn string, value rusty.Value, what string) (string, error) {
	if s, ok := value.(rusty.StringValue); ok {
		return string(s), nil
	}
	return "", fmt.Errorf("%s: %s must be a string, got %s", fn, what, rusty.TypeName(value))
}

// index converts a number to a non-negative integer index
func index(fn string, value rusty.Value) (int, error) {
	n, err := number(fn, value, "index")
	if err != nil {
		return 0, err
	}
	if n < 0 || n != float64(int(n)) {
		return 0, fmt.Errorf("%s: index %s is not a non-negative integer", fn, value)
	}
	return int(n), nil
}
