package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/query"
)

// Query evaluates an expression against a material.
type Query struct {
	Expr string `arg:"" help:"Expression to evaluate, e.g. 'len(setup)' or 'resolve(\"Sine\", \"resultVar\")'." name:"expr"`

	Input Input `embed:""`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := q.Input.material(ctx)
	if err != nil {
		return err
	}

	result, err := query.Eval(ctx, q.Expr, m)
	if err != nil {
		return err
	}

	log.FromContext(ctx).TraceContext(ctx, "query evaluated",
		slog.String("expr", q.Expr),
		slog.String("type", fmt.Sprintf("%T", result)),
	)

	_, err = fmt.Fprintln(outputFrom(ctx), query.FormatResult(result))

	return err
}
