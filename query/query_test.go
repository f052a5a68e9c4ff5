package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/smf/material"
)

func sample(t *testing.T) *material.Material {
	t.Helper()

	m, err := material.ParseString(context.Background(), material.Sample)
	require.NoError(t, err)

	return m
}

func TestEval(t *testing.T) {
	m := sample(t)

	tests := []struct {
		source string
		want   any
	}{
		{`shader`, "UnlitGeneric"},
		{`len(vars)`, 7},
		{`frame`, 0},
		{`alpha`, 1.0},
		{`tint[1]`, 0.5},
		{`tint[2] * 4`, 1.0},
		{`offset[1] + 1`, 17},
		{`basetexture`, "models/props/crate01"},
		{`kind("transform")`, "ARRAY4D"},
		{`kind("missing")`, ""},
		{`"scale" in vars`, true},
		{`len(setup) + len(render)`, 4},
		{`render[0].params.srcVar1.index`, 1},
		{`render[0].params.srcVar1.kind`, "index"},
		{`resolve("Equals", "srcVar1")`, 0.5},
		{`resolve("Sine", "resultVar")`, 1.0},
		{`resolve("Sine", "nothing")`, nil},
		{`proxies()`, []any{"Sine", "AnimatedTexture", "Equals", "TextureScroll"}},
		{`map(filter(setup, .name == "Sine"), .params.sineperiod.value)`, []any{2.0}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := Eval(context.Background(), tt.source, m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	m := sample(t)

	_, err := Compile(`nosuchname + 1`, m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCompile))

	_, err = Compile(`(`, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCompile))
}

func TestCompile_Untyped(t *testing.T) {
	q, err := Compile(`alpha`, nil)
	require.NoError(t, err)
	assert.Equal(t, "alpha", q.Source())

	got, err := q.Eval(context.Background(), sample(t))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = q.Eval(context.Background(), &material.Material{Shader: "X"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEval_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q, err := Compile(`shader`, nil)
	require.NoError(t, err)

	_, err = q.Eval(ctx, sample(t))
	assert.True(t, errors.Is(err, ErrEvaluate))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNames(t *testing.T) {
	names := Names(sample(t))

	assert.Contains(t, names, "tint")
	assert.Contains(t, names, "resolve")
	assert.IsIncreasing(t, names)
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{true, "true"},
		{3, "3"},
		{int64(-2), "-2"},
		{0.5, "0.5"},
		{"a b", `"a b"`},
		{material.Float(0.25), "0.25f"},
		{[]any{1, 2.5, "x"}, `[1, 2.5, "x"]`},
		{map[string]any{"b": 1, "a": []any{}}, "{a: [], b: 1}"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatResult(tt.in))
		})
	}
}
