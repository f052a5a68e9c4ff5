package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/material"
	"github.com/ardnew/smf/report"
)

// sampleName is the source name reported for the embedded sample.
const sampleName = "UnlitGeneric.smf"

// Show builds a material and prints its report.
type Show struct {
	Sample bool `help:"Print the embedded sample material instead of reading a source." short:"S"`

	Input Input `embed:""`
}

// Run executes the show command.
func (s *Show) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var m *material.Material

	if s.Sample {
		m, err = sample(ctx)
	} else {
		m, err = s.Input.material(ctx)
	}

	if err != nil {
		return err
	}

	log.FromContext(ctx).DebugContext(ctx, "material built",
		slog.String("shader", m.Shader),
		slog.Int("variables", len(m.Variables)),
		slog.Int("setup", len(m.Setup)),
		slog.Int("render", len(m.Render)),
	)

	return report.Print(outputFrom(ctx), m)
}

func sample(ctx context.Context) (*material.Material, error) {
	return material.ParseString(ctx, material.Sample,
		material.WithFile(sampleName),
		material.WithLogger(log.FromContext(ctx)),
	)
}
