package stdlib

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/posidron/rusty/pkg/rusty"
)

// regexCache holds the patterns compiled by one set of bindings.
type regexCache struct {
	mutex    sync.Mutex
	compiled map[string]*regexp.Regexp
}

func (cache *regexCache) compile(pattern string) (*regexp.Regexp, error) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	if re, ok := cache.compiled[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	cache.compiled[pattern] = re
	return re, nil
}

// resolve accepts a regex object made by Regex.new or a bare pattern string
func (cache *regexCache) resolve(fn string, value rusty.Value) (*regexp.Regexp, error) {
	var pattern string
	switch v := value.(type) {
	case rusty.StringValue:
		pattern = string(v)
	case rusty.ObjectValue:
		p, ok := v["pattern"].(rusty.StringValue)
		if !ok {
			return nil, fmt.Errorf("%s: first argument must be a regex object created with Regex.new", fn)
		}
		pattern = string(p)
	default:
		return nil, fmt.Errorf("%s: first argument must be a regex object or pattern, got %s", fn, rusty.TypeName(value))
	}
	re, err := cache.compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid regex pattern: %w", fn, err)
	}
	return re, nil
}

func regexNamespace() *rusty.NamespaceValue {
	cache := &regexCache{compiled: map[string]*regexp.Regexp{}}

	withText := func(name string, fn func(re *regexp.Regexp, text string) rusty.Value) rusty.NativeFunctionValue {
		return rusty.Native(name, rusty.Exactly(2), func(args []rusty.Value) (rusty.Value, error) {
			re, err := cache.resolve(name, args[0])
			if err != nil {
				return nil, err
			}
			text, err := str(name, args[1], "second argument")
			if err != nil {
				return nil, err
			}
			return fn(re, text), nil
		})
	}

	return namespace("Regex", []rusty.NativeFunctionValue{
		rusty.Native("new", rusty.Exactly(1), func(args []rusty.Value) (rusty.Value, error) {
			pattern, err := str("new", args[0], "pattern")
			if err != nil {
				return nil, err
			}
			if _, err := cache.compile(pattern); err != nil {
				return nil, fmt.Errorf("new: invalid regex pattern: %w", err)
			}
			return rusty.ObjectValue{"pattern": rusty.StringValue(pattern)}, nil
		}),
		withText("test", func(re *regexp.Regexp, text string) rusty.Value {
			return rusty.BoolValue(re.MatchString(text))
		}),
		withText("match", func(re *regexp.Regexp, text string) rusty.Value {
			return stringArray(re.FindAllString(text, -1))
		}),
		withText("split", func(re *regexp.Regexp, text string) rusty.Value {
			return stringArray(re.Split(text, -1))
		}),
		withText("capture", doCapture),
		rusty.Native("replace", rusty.Exactly(3), func(args []rusty.Value) (rusty.Value, error) {
			re, err := cache.resolve("replace", args[0])
			if err != nil {
				return nil, err
			}
			text, err := str("replace", args[1], "second argument")
			if err != nil {
				return nil, err
			}
			repl, err := str("replace", args[2], "third argument")
			if err != nil {
				return nil, err
			}
			return rusty.StringValue(re.ReplaceAllString(text, repl)), nil
		}),
		rusty.Native("is_valid", rusty.Exactly(1), func(args []rusty.Value) (rusty.Value, error) {
			pattern, err := str("is_valid", args[0], "pattern")
			if err != nil {
				return nil, err
			}
			_, err = cache.compile(pattern)
			return rusty.BoolValue(err == nil), nil
		}),
		rusty.Native("escape", rusty.Exactly(1), func(args []rusty.Value) (rusty.Value, error) {
			s, err := str("escape", args[0], "argument")
			if err != nil {
				return nil, err
			}
			return rusty.StringValue(regexp.QuoteMeta(s)), nil
		}),
	}, nil)
}

// doCapture returns the whole first match followed by its groups, with nil
// for groups that did not participate. No match gives nil.
func doCapture(re *regexp.Regexp, text string) rusty.Value {
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return rusty.NilValue{}
	}
	groups := make(rusty.ArrayValue, len(loc)/2)
	for i := range groups {
		if loc[2*i] < 0 {
			groups[i] = rusty.NilValue{}
			continue
		}
		groups[i] = rusty.StringValue(text[loc[2*i]:loc[2*i+1]])
	}
	return groups
}

func stringArray(items []string) rusty.ArrayValue {
	arr := make(rusty.ArrayValue, len(items))
	for i, item := range items {
		arr[i] = rusty.StringValue(item)
	}
	return arr
}
