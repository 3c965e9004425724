// Package define turns command-line definitions of the form name=expr into
// rusty globals. The right-hand side is an expr-lang expression evaluated
// on the host before the program runs, e.g.
//
//	-D 'answer=6*7' -D 'home=env("HOME")' -D 'dirs=["a", "b"]'
//
// Each definition may refer to the ones given before it.
package define

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/posidron/rusty/pkg/rusty"
)

var (
	ErrSyntax     = errors.New("invalid definition")
	ErrExpression = errors.New("invalid expression")
	ErrValue      = errors.New("unsupported value")
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parse evaluates each definition in order.
func Parse(definitions []string) (rusty.GlobalBindings, error) {
	env := map[string]any{"env": os.Getenv}
	bindings := rusty.GlobalBindings{}
	for _, def := range definitions {
		name, source, ok := strings.Cut(def, "=")
		name, source = strings.TrimSpace(name), strings.TrimSpace(source)
		if !ok || !identifier.MatchString(name) {
			return nil, fmt.Errorf("%w: %q (want name=expr)", ErrSyntax, def)
		}
		if source == "" {
			return nil, fmt.Errorf("%w: %s: empty expression", ErrExpression, name)
		}
		program, err := expr.Compile(source, expr.Env(env))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrExpression, name, err)
		}
		result, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrExpression, name, err)
		}
		value, err := ToValue(result)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		env[name] = result
		bindings[name] = value
	}
	return bindings, nil
}

// ToValue converts a Go value produced by expr-lang into a rusty value.
func ToValue(result any) (rusty.Value, error) {
	if result == nil {
		return rusty.NilValue{}, nil
	}
	v := reflect.ValueOf(result)
	switch v.Kind() {
	case reflect.Bool:
		return rusty.BoolValue(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rusty.NumberValue(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rusty.NumberValue(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rusty.NumberValue(v.Float()), nil
	case reflect.String:
		return rusty.StringValue(v.String()), nil
	case reflect.Slice, reflect.Array:
		arr := make(rusty.ArrayValue, v.Len())
		for i := range arr {
			item, err := ToValue(v.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			arr[i] = item
		}
		return arr, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			break
		}
		obj := make(rusty.ObjectValue, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			item, err := ToValue(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			obj[iter.Key().String()] = item
		}
		return obj, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrValue, result)
}
