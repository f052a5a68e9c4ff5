package cmd

import (
	"context"
	"encoding"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalWithOptions(
		i.document(ktx),
		yaml.Indent(defaultConfigIndent),
	)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.FromContext(ctx).DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// document builds the configuration document from current flag values.
// Flags belonging to a group are nested under the group key with the group
// prefix removed, so --log-level is written as log.level.
func (i *Init) document(ktx *kong.Context) yaml.MapSlice {
	var (
		doc    yaml.MapSlice
		groups = map[string]int{}
	)

	ignore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val, ok := flagValue(ktx, flag)
		if !ok {
			continue
		}

		if flag.Group == nil {
			doc = append(doc, yaml.MapItem{Key: flag.Name, Value: val})

			continue
		}

		key := flag.Group.Key
		name := strings.TrimPrefix(flag.Name, key+"-")

		idx, ok := groups[key]
		if !ok {
			idx = len(doc)
			groups[key] = idx
			doc = append(doc, yaml.MapItem{Key: key, Value: yaml.MapSlice{}})
		}

		sub, _ := doc[idx].Value.(yaml.MapSlice)
		doc[idx].Value = append(sub, yaml.MapItem{Key: name, Value: val})
	}

	return doc
}

// flagValue returns the value of a CLI flag in a form the YAML encoder
// writes as a scalar or sequence. It reports false for unset values.
func flagValue(ktx *kong.Context, flag *kong.Flag) (any, bool) {
	val := ktx.FlagValue(flag)
	if val == nil {
		return nil, false
	}

	switch v := val.(type) {
	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil {
			return nil, false
		}

		return string(text), true

	case fmt.Stringer:
		return v.String(), true

	case string:
		return v, v != ""

	case []string:
		return v, len(v) > 0

	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v, true

	default:
		return fmt.Sprint(v), true
	}
}
