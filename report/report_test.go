package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/smf/material"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()

	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"sample", material.Sample},
		{"empty", "Bare {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := material.ParseString(context.Background(), tt.source)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Print(&buf, m))

			golden(t).Assert(t, tt.name, buf.Bytes())
		})
	}
}
