package material

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/smf/lang"
	"github.com/ardnew/smf/pkg"
)

func parse(t *testing.T, src string) *Material {
	t.Helper()

	m, err := ParseString(context.Background(), src)
	require.NoError(t, err)
	require.NotNil(t, m)

	return m
}

func TestParseString_RoundTripScenario(t *testing.T) {
	m := parse(t, `Foo { var a = 3; var b = 1.5f; SetupProxies { Init { x = a; } } }`)

	want := &Material{
		Shader: "Foo",
		Variables: map[string]Value{
			"a": Integer(3),
			"b": Float(1.5),
		},
		Setup: []Proxy{
			{Name: "Init", Parameters: map[string]Reference{"x": VariableRef("a")}},
		},
	}

	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("material mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "INTEGER(3)", m.Variables["a"].String())
	assert.Equal(t, "FLOAT(1.5)", m.Variables["b"].String())
}

func TestScalarSuffixRules(t *testing.T) {
	tests := []struct {
		text string
		want Value
	}{
		{"1.5f", Float(1.5)},
		{"2f", Float(2)},
		{"-0.25f", Float(-0.25)},
		{"1.5d", Double(1.5)},
		{"7d", Double(7)},
		{"1.5", Double(1.5)},
		{"-2.5", Double(-2.5)},
		{"1e3", Double(1000)},
		{"3", Integer(3)},
		{"-3", Integer(-3)},
		{"+3", Integer(3)},
		{"2147483647", Integer(2147483647)},
		{"0.1f", Float(0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m := parse(t, "Foo { var v = "+tt.text+"; }")
			assert.Equal(t, tt.want, m.Variables["v"])
		})
	}
}

func TestScalarString(t *testing.T) {
	m := parse(t, `Foo { var a = "plain"; var b = "tab\there"; var c = "bad\qescape"; }`)

	assert.Equal(t, String("plain"), m.Variables["a"])
	assert.Equal(t, String("tab\there"), m.Variables["b"])
	assert.Equal(t, String(`bad\qescape`), m.Variables["c"])
}

func TestMalformedNumber(t *testing.T) {
	tests := []string{
		"2147483648", // int32 overflow
		"1e39f",      // float32 overflow
		"1e400",      // float64 overflow
		"[1, 1e39f]",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			_, err := ParseString(context.Background(), "Foo { var v = "+text+"; }")
			require.ErrorIs(t, err, ErrMalformedNumber)
		})
	}
}

func TestArrayUnification(t *testing.T) {
	tests := []struct {
		text string
		want Value
	}{
		{"[1, 2]", Array2{1, 2}},
		{"[1, 2, 3]", Array3{1, 2, 3}},
		{"[1, 2, 3, 4]", Array4{1, 2, 3, 4}},
		{"[1, 2.0f]", Array2F{1, 2}},
		{"[2.0f, 1]", Array2F{2, 1}},
		{"[1.5f, 2.5f, 3]", Array3F{1.5, 2.5, 3}},
		{"[1, 2, 3, 0.5f]", Array4F{1, 2, 3, 0.5}},
		{"[1, 2.0d]", Array2D{1, 2}},
		{"[1.5f, 2.5]", Array2D{1.5, 2.5}},
		{"[1, 2, 0.1f, 0.1d]", Array4D{1, 2, 0.1, 0.1}},
		{"[-1, +2, 3]", Array3{-1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m := parse(t, "Foo { var v = "+tt.text+"; }")
			assert.Equal(t, tt.want, m.Variables["v"])
		})
	}
}

func TestArrayTypeSelectionCommutative(t *testing.T) {
	elems := []string{"1", "2.0f", "3.5d"}

	perms := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}

	for _, perm := range perms {
		text := make([]string, len(perm))
		want := make([]float64, len(perm))

		for i, j := range perm {
			text[i] = elems[j]
			want[i] = []float64{1, 2, 3.5}[j]
		}

		src := "[" + strings.Join(text, ", ") + "]"

		t.Run(src, func(t *testing.T) {
			m := parse(t, "Foo { var v = "+src+"; }")

			got, ok := m.Variables["v"].(Array3D)
			require.True(t, ok, "expected Array3D, got %T", m.Variables["v"])

			// Element order follows source order.
			assert.Equal(t, want, got[:])
		})
	}
}

func TestLastWriteWins(t *testing.T) {
	m := parse(t, `Foo {
		var a = 1;
		var a = "two";
		var a = 3.0f;
		SetupProxies { P { x = a; x = 5; y = b; } }
	}`)

	assert.Equal(t, Float(3), m.Variables["a"])
	require.Len(t, m.Setup, 1)
	assert.Equal(t, map[string]Reference{
		"x": LiteralRef(Integer(5)),
		"y": VariableRef("b"),
	}, m.Setup[0].Parameters)
}

func TestProxyOrder(t *testing.T) {
	names := []string{"Alpha", "Bravo", "Charlie", "Delta"}

	perms := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
		{1, 3, 0, 2},
	}

	for _, perm := range perms {
		var (
			src  strings.Builder
			want []string
		)

		src.WriteString("Foo { RenderProxies { ")

		for _, i := range perm {
			fmt.Fprintf(&src, "%s { n = %d; } ", names[i], i)
			want = append(want, names[i])
		}

		src.WriteString("} }")

		t.Run(strings.Join(want, ","), func(t *testing.T) {
			m := parse(t, src.String())

			got := make([]string, 0, len(m.Render))
			for _, p := range m.Render {
				got = append(got, p.Name)
			}

			assert.Equal(t, want, got)
			assert.Empty(t, m.Setup)
		})
	}
}

func TestMultipleBlocksAppend(t *testing.T) {
	m := parse(t, `Foo {
		SetupProxies { A { } B { } }
		RenderProxies { R { } }
		SetupProxies { C { } }
	}`)

	var got []string
	for _, p := range m.Setup {
		got = append(got, p.Name)
	}

	assert.Equal(t, []string{"A", "B", "C"}, got)
	assert.Len(t, m.Render, 1)
}

func TestReferences(t *testing.T) {
	m := parse(t, `Foo { SetupProxies { P {
		v = name;
		i = tint[2];
		s = "str";
		f = 0.5f;
		d = 0.5;
		n = -4;
	} } }`)

	want := map[string]Reference{
		"v": VariableRef("name"),
		"i": ArrayIndexRef("tint", 2),
		"s": LiteralRef(String("str")),
		"f": LiteralRef(Float(0.5)),
		"d": LiteralRef(Double(0.5)),
		"n": LiteralRef(Integer(-4)),
	}

	if diff := cmp.Diff(want, m.Setup[0].Parameters); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestFailureScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty shader block", `{ var a = 1; }`, ErrMissingShaderIdentifier},
		{"array as parameter", `Foo { SetupProxies { P { x = [1, 2]; } } }`, ErrArrayLiteralNotAllowedAsParameter},
		{"string in array", `Foo { var a = [1, "x"]; }`, ErrUnsupportedArrayElement},
		{"five elements", `Foo { var a = [1, 2, 3, 4, 5]; }`, ErrInvalidArraySize},
		{"one element", `Foo { var a = [1]; }`, ErrInvalidArraySize},
		{"empty array", `Foo { var a = []; }`, ErrInvalidArraySize},
		{"index overflow", `Foo { SetupProxies { P { x = a[4294967296]; } } }`, ErrMalformedIndex},
		{"grammar", `Foo { var a = ; }`, lang.ErrGrammarRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseString(context.Background(), tt.src)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, m, "no partial model on error")
		})
	}
}

func TestErrorAttributes(t *testing.T) {
	_, err := ParseString(context.Background(),
		"Foo {\n  var a = [1, 2, 3, 4, 5];\n}")
	require.ErrorIs(t, err, ErrInvalidArraySize)

	var pe *pkg.Error
	require.ErrorAs(t, err, &pe)

	pos, ok := pe.Attr("pos")
	require.True(t, ok)
	assert.Equal(t, "2:11", pos.String())

	size, ok := pe.Attr("size")
	require.True(t, ok)
	assert.Equal(t, int64(5), size.Int64())
}
