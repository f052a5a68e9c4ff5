package lint

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/smf/material"
)

const source = `Lit {
	var alpha = 1.0f;
	var tint = [1, 0.5f, 0.25f];
	var frame = 3;

	SetupProxies {
		Sine { resultVar = alpah; }
		Equals { srcVar1 = tint[3]; resultVar = frame[0]; }
	}
	RenderProxies {
		Scale { srcVar1 = tint[2]; rate = 0.5f; }
	}
}`

func build(t *testing.T, src string) *material.Material {
	t.Helper()

	m, err := material.ParseString(context.Background(), src)
	require.NoError(t, err)

	return m
}

func TestResolve(t *testing.T) {
	m := build(t, source)

	tests := []struct {
		name string
		ref  material.Reference
		want material.Value
		err  error
	}{
		{"literal", material.LiteralRef(material.Integer(4)), material.Integer(4), nil},
		{"variable", material.VariableRef("alpha"), material.Float(1), nil},
		{"whole array", material.VariableRef("tint"), material.Array3F{1, 0.5, 0.25}, nil},
		{"element", material.ArrayIndexRef("tint", 1), material.Float(0.5), nil},
		{"undefined", material.VariableRef("beta"), nil, ErrUndefinedVariable},
		{"undefined index", material.ArrayIndexRef("tnt", 0), nil, ErrUndefinedVariable},
		{"not array", material.ArrayIndexRef("alpha", 0), nil, ErrNotAnArray},
		{"out of range", material.ArrayIndexRef("tint", 3), nil, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(m, tt.ref)
			if tt.err != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.err), "got %v", err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggest(t *testing.T) {
	names := []string{"alpha", "basetexture", "frame", "tint"}

	tests := []struct {
		name string
		want string
	}{
		{"alph", "alpha"},
		{"alpah", "alpha"},
		{"BASE", "basetexture"},
		{"fram", "frame"},
		{"zzzzzz", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.name, names))
		})
	}
}

func TestCheck(t *testing.T) {
	issues := Check(build(t, source))

	var got []string
	for _, i := range issues {
		got = append(got, i.String())
	}

	assert.Equal(t, []string{
		`error: setup Sine.resultVar: undefined variable "alpah" (did you mean "alpha"?)`,
		`error: setup Equals.resultVar: variable is not an array "frame"`,
		`error: setup Equals.srcVar1: array index out of range "tint" [3]`,
		`warning: variables: variable is never referenced "alpha"`,
	}, got)
	assert.True(t, HasErrors(issues))
}

func TestCheck_Unused(t *testing.T) {
	issues := Check(build(t, material.Sample))

	require.Len(t, issues, 2)
	assert.False(t, HasErrors(issues))

	for i, name := range []string{"scale", "transform"} {
		assert.Equal(t, SeverityWarning, issues[i].Severity)
		assert.True(t, errors.Is(issues[i].Err, ErrUnusedVariable))
		assert.Equal(t, "variables", issues[i].Where())
		assert.Contains(t, issues[i].String(), `"`+name+`"`)
	}
}
