package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] for YAML config files.
//
// Flags are read from the mapping under the given key when the document has
// one, and from the top-level mapping otherwise:
//
//	config:
//	  log-level: debug
//	  log_pretty: false
//	  path: [~/calc, /usr/share/pcalc]
//
// Keys may spell a flag's hyphens as underscores. A document that is empty
// or is not a mapping resolves nothing, so kong falls back to defaults.
// Command-line flags override config file values.
func resolve(name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return config{}, nil
			}

			return nil, err
		}

		if ns, ok := doc[name].(map[string]any); ok {
			doc = ns
		}

		conf := make(config, len(doc))
		for k, v := range doc {
			conf[k] = flagValue(v)
		}

		return conf, nil
	}
}

// config implements [kong.Resolver] over a flat map of flag values.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	if v, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	return nil, nil
}

// flagValue converts a decoded YAML value into a form kong's mappers accept.
// Kong parses numbers from strings, and sequences become string slices.
func flagValue(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = flagValue(e)
		}

		return out
	default:
		return v
	}
}
