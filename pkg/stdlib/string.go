package stdlib

import (
	"strings"

	"github.com/posidron/rusty/pkg/rusty"
)

func stringNamespace() *rusty.NamespaceValue {
	return namespace("String", []rusty.NativeFunctionValue{
		rusty.Native("length", rusty.Exactly(1), doLength),
		rusty.Native("upper", rusty.Exactly(1), func(args []rusty.Value) (rusty.Value, error) {
			s, err := str("upper", args[0], "argument")
			if err != nil {
				return nil, err
			}
			return rusty.StringValue(strings.ToUpper(s)), nil
		}),
		rusty.Native("lower", rusty.Exactly(1), func(args []rusty.Value) (rusty.Value, error) {
			s, err := str("lower", args[0], "argument")
			if err != nil {
				return nil, err
			}
			return rusty.StringValue(strings.ToLower(s)), nil
		}),
		rusty.Native("string", rusty.Exactly(1), func(args []rusty.Value) (rusty.Value, error) {
			return rusty.StringValue(rusty.Stringify(args[0])), nil
		}),
	}, nil)
}
