package cmd

import (
	"context"
	"log/slog"
)

// Fmt reads a material and writes it in the chosen format.
type Fmt struct {
	SMF  SMF  `cmd:"" default:"withargs" help:"Format as canonical material source (default)."`
	JSON JSON `cmd:""                    help:"Format as JSON."`
	YAML YAML `cmd:""                    help:"Format as YAML."`
	CBOR CBOR `cmd:""                    help:"Format as canonical CBOR."`
	AST  AST  `cmd:""                    help:"Format as parse tree."`
}

// SMF formats input as canonical material source.
type SMF struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Input Input `embed:""`
}

// Run executes the smf command.
func (f *SMF) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := f.Input.material(ctx)
	if err != nil {
		return ErrFormat.With(slog.String("format", "smf")).Wrap(err)
	}

	return m.Format(ctx, outputFrom(ctx), f.Indent)
}

// JSON formats input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Input Input `embed:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := j.Input.material(ctx)
	if err != nil {
		return ErrFormat.With(slog.String("format", "json")).Wrap(err)
	}

	return m.FormatJSON(ctx, outputFrom(ctx), j.Indent)
}

// YAML formats input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Input Input `embed:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := y.Input.material(ctx)
	if err != nil {
		return ErrFormat.With(slog.String("format", "yaml")).Wrap(err)
	}

	return m.FormatYAML(ctx, outputFrom(ctx), y.Indent)
}

// CBOR formats input as canonical CBOR.
type CBOR struct {
	Input Input `embed:""`
}

// Run executes the cbor command.
func (c *CBOR) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := c.Input.material(ctx)
	if err != nil {
		return ErrFormat.With(slog.String("format", "cbor")).Wrap(err)
	}

	return m.FormatCBOR(ctx, outputFrom(ctx))
}

// AST prints the parse tree without building a material.
type AST struct {
	Input Input `embed:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := a.Input.tree(ctx)
	if err != nil {
		return ErrFormat.With(slog.String("format", "ast")).Wrap(err)
	}

	return root.Print(outputFrom(ctx))
}
