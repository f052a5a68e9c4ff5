package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/smf/log"
)

// resolve is a [kong.ConfigurationLoader] for YAML config files.
//
// Nested mappings are flattened by joining keys with "-", so
//
//	log:
//	  level: debug
//	  pretty: false
//	catalog: /tmp/catalog.db
//
// sets --log-level=debug and --no-log-pretty, and supplies "catalog" to any
// flag of that name. Underscores may stand in for hyphens. Command-line flags
// override config file values.
//
// A file that is not valid YAML is logged and otherwise ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		log.Warn("ignoring configuration file", slog.Any("error", err))

		return config{}, nil
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over a flattened YAML document.
type config map[string]any

func (c config) flatten(prefix string, doc map[string]any) {
	for key, val := range doc {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if sub, ok := val.(map[string]any); ok {
			c.flatten(name, sub)

			continue
		}

		c[name] = scalar(val)
	}
}

// scalar converts a decoded YAML value to the form kong's mappers accept.
// Numbers become strings and sequences become comma-separated lists.
func scalar(val any) any {
	switch v := val.(type) {
	case bool, string, nil:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(scalar(e))
		}

		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil
}
