package cmd

import (
	"context"

	"github.com/ardnew/smf/cli/cmd/repl"
	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/material"
)

// Repl starts an interactive query shell over a material.
type Repl struct {
	Source string `arg:"" help:"Source material file (default: the embedded sample)." name:"source" optional:"" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var cacheDir string

	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	var loader repl.Loader = func(ctx context.Context) (*material.Material, error) {
		if r.Source == "" {
			return sample(ctx)
		}

		return load(ctx, r.Source)
	}

	var opts []repl.Option
	if r.Source != "" {
		opts = append(opts, repl.WithEditPath(r.Source))
	}

	return repl.Run(ctx, loader, cacheDir, log.FromContext(ctx), opts...)
}
