package stdlib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/posidron/rusty/pkg/rusty"
)

func jsonNamespace() *rusty.NamespaceValue {
	return namespace("JSON", []rusty.NativeFunctionValue{
		rusty.Native("parse", rusty.Exactly(1), doParse),
		rusty.Native("stringify", rusty.Exactly(1), doStringify),
	}, nil)
}

func doParse(args []rusty.Value) (rusty.Value, error) {
	text, err := str("parse", args[0], "argument")
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(strings.NewReader(text))
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse: unexpected data after JSON value")
	}
	return fromJSON(decoded), nil
}

func fromJSON(decoded any) rusty.Value {
	switch v := decoded.(type) {
	case nil:
		return rusty.NilValue{}
	case bool:
		return rusty.BoolValue(v)
	case float64:
		return rusty.NumberValue(v)
	case string:
		return rusty.StringValue(v)
	case []any:
		arr := make(rusty.ArrayValue, len(v))
		for i, item := range v {
			arr[i] = fromJSON(item)
		}
		return arr
	case map[string]any:
		obj := make(rusty.ObjectValue, len(v))
		for key, item := range v {
			obj[key] = fromJSON(item)
		}
		return obj
	}
	return rusty.NilValue{}
}

func doStringify(args []rusty.Value) (rusty.Value, error) {
	encodable, err := toJSON(args[0])
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(encodable); err != nil {
		return nil, fmt.Errorf("stringify: %w", err)
	}
	return rusty.StringValue(strings.TrimSuffix(buf.String(), "\n")), nil
}

func toJSON(value rusty.Value) (any, error) {
	switch v := value.(type) {
	case rusty.NilValue:
		return nil, nil
	case rusty.BoolValue:
		return bool(v), nil
	case rusty.NumberValue:
		return float64(v), nil
	case rusty.StringValue:
		return string(v), nil
	case rusty.ArrayValue:
		items := make([]any, len(v))
		for i, item := range v {
			encoded, err := toJSON(item)
			if err != nil {
				return nil, err
			}
			items[i] = encoded
		}
		return items, nil
	case rusty.ObjectValue:
		return membersToJSON(v)
	case *rusty.NamespaceValue:
		return membersToJSON(v.Members)
	}
	return nil, fmt.Errorf("stringify: cannot convert %s to JSON", rusty.TypeName(value))
}

func membersToJSON(members map[string]rusty.Value) (any, error) {
	obj := make(map[string]any, len(members))
	for key, item := range members {
		encoded, err := toJSON(item)
		if err != nil {
			return nil, err
		}
		obj[key] = encoded
	}
	return obj, nil
}
