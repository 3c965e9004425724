package stdlib

import (
	"github.com/posidron/rusty/pkg/rusty"
)

func timeNamespace(cfg config) *rusty.NamespaceValue {
	return namespace("Time", []rusty.NativeFunctionValue{
		// Milliseconds since the Unix epoch
		rusty.Native("now", rusty.Exactly(0), func(args []rusty.Value) (rusty.Value, error) {
			return rusty.NumberValue(cfg.now().UnixMilli()), nil
		}),
	}, nil)
}
