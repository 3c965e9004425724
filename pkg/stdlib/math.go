package stdlib

import (
	"fmt"
	"math"

	"github.com/posidron/rusty/pkg/rusty"
)

func mathNamespace(cfg config) *rusty.NamespaceValue {
	return namespace("Math", []rusty.NativeFunctionValue{
		rusty.Native("random", rusty.Exactly(0), func(args []rusty.Value) (rusty.Value, error) {
			return rusty.NumberValue(cfg.rand.Float64()), nil
		}),
		rusty.Native("random_range", rusty.Exactly(2), func(args []rusty.Value) (rusty.Value, error) {
			return doRandomRange(cfg, args)
		}),
		unaryMath("abs", math.Abs),
		unaryMath("round", math.Round),
		unaryMath("floor", math.Floor),
		unaryMath("ceil", math.Ceil),
		rusty.Native("sqrt", rusty.Exactly(1), doSqrt),
		binaryMath("pow", math.Pow),
		binaryMath("min", math.Min),
		binaryMath("max", math.Max),
	}, map[string]rusty.Value{
		"PI": rusty.NumberValue(math.Pi),
		"E":  rusty.NumberValue(math.E),
	})
}

func unaryMath(name string, fn func(float64) float64) rusty.NativeFunctionValue {
	return rusty.Native(name, rusty.Exactly(1), func(args []rusty.Value) (rusty.Value, error) {
		n, err := number(name, args[0], "argument")
		if err != nil {
			return nil, err
		}
		return rusty.NumberValue(fn(n)), nil
	})
}

func binaryMath(name string, fn func(float64, float64) float64) rusty.NativeFunctionValue {
	return rusty.Native(name, rusty.Exactly(2), func(args []rusty.Value) (rusty.Value, error) {
		a, err := number(name, args[0], "first argument")
		if err != nil {
			return nil, err
		}
		b, err := number(name, args[1], "second argument")
		if err != nil {
			return nil, err
		}
		return rusty.NumberValue(fn(a, b)), nil
	})
}

func doSqrt(args []rusty.Value) (rusty.Value, error) {
	n, err := number("sqrt", args[0], "argument")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("sqrt: argument must not be negative, got %v", args[0])
	}
	return rusty.NumberValue(math.Sqrt(n)), nil
}

// doRandomRange returns an integer in [floor(min), floor(max)]
func doRandomRange(cfg config, args []rusty.Value) (rusty.Value, error) {
	lo, err := number("random_range", args[0], "min")
	if err != nil {
		return nil, err
	}
	hi, err := number("random_range", args[1], "max")
	if err != nil {
		return nil, err
	}
	lo, hi = math.Floor(lo), math.Floor(hi)
	if lo > hi {
		return nil, fmt.Errorf("random_range: min (%v) must be less than or equal to max (%v)",
			rusty.NumberValue(lo), rusty.NumberValue(hi))
	}
	// Int64N takes a positive int64, so the span plus one must stay below 2^63.
	if span := hi - lo; math.IsNaN(span) || math.IsInf(span, 0) || span >= math.MaxInt64 {
		return nil, fmt.Errorf("random_range: range from %v to %v is too large",
			rusty.NumberValue(lo), rusty.NumberValue(hi))
	}
	return rusty.NumberValue(lo + float64(cfg.rand.Int64N(int64(hi-lo)+1))), nil
}
