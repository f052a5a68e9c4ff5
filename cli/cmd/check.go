package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/smf/lint"
	"github.com/ardnew/smf/log"
)

// Check reports references in a material that do not resolve.
type Check struct {
	Strict bool `help:"Treat warnings as errors." negatable:""`

	Input Input `embed:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := c.Input.material(ctx)
	if err != nil {
		return err
	}

	issues := lint.Check(m)
	out := outputFrom(ctx)

	var errs, warns int

	for _, issue := range issues {
		if issue.Severity == lint.SeverityError {
			errs++
		} else {
			warns++
		}

		if _, err := fmt.Fprintln(out, issue); err != nil {
			return err
		}
	}

	log.FromContext(ctx).DebugContext(ctx, "check complete",
		slog.String("source", c.Input.Source),
		slog.Int("errors", errs),
		slog.Int("warnings", warns),
	)

	if errs > 0 || (c.Strict && warns > 0) {
		return ErrCheck.With(
			slog.Int("errors", errs),
			slog.Int("warnings", warns),
		)
	}

	return nil
}
