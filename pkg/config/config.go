// Package config loads rusty's YAML configuration file and exposes it to
// kong as a flag resolver.
//
// Keys are flag names. Nested maps are joined with '-', and underscores may
// stand in for hyphens, so the following are equivalent:
//
//	log-level: debug
//	log_level: debug
//	log:
//	  level: debug
//
// Command-line flags override values from the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// Resolver holds the flattened configuration.
type Resolver map[string]any

// Load is a [kong.ConfigurationLoader]:
//
//	kong.Configuration(config.Load, config.DefaultPath())
func Load(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Resolver{}, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	resolver := Resolver{}
	resolver.flatten("", doc)
	return resolver, nil
}

func (resolver Resolver) flatten(prefix string, doc map[string]any) {
	for key, value := range doc {
		name := normalize(key)
		if prefix != "" {
			name = prefix + "-" + name
		}
		if nested, ok := value.(map[string]any); ok {
			resolver.flatten(name, nested)
			continue
		}
		resolver[name] = scalar(value)
	}
}

func normalize(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// scalar renders numbers as strings; kong parses flag values from text.
func scalar(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = scalar(item)
		}
		return items
	}
	return value
}

// Validate implements [kong.Resolver].
func (resolver Resolver) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (resolver Resolver) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := resolver[normalize(flag.Name)]; ok {
		return value, nil
	}
	return nil, nil
}
