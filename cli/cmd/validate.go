package cmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/ardnew/smf/material"
	"github.com/ardnew/smf/pkg"
)

// Validate checks a JSON export against the material document schema.
type Validate struct {
	Schema bool `help:"Print the schema instead of validating."`

	Source string `arg:"" default:"-" help:"JSON document or '-' for default stdin." name:"source"`
}

// Run executes the validate command.
func (v *Validate) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out := outputFrom(ctx)

	if v.Schema {
		_, err = fmt.Fprint(out, material.Schema())

		return err
	}

	r, name, err := open(v.Source)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := material.ValidateJSON(bufio.NewReader(r)); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s: valid\n", name)

	return err
}

// Version prints the program version.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	_, err := fmt.Fprintln(outputFrom(ctx), pkg.Name, pkg.Version)

	return err
}
