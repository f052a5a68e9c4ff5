package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{None{}, "NONE"},
		{Float(1.5), "FLOAT(1.5)"},
		{Float(0.1), "FLOAT(0.1)"},
		{Double(0.1), "DOUBLE(0.1)"},
		{Integer(-7), "INTEGER(-7)"},
		{String("hi"), `STRING("hi")`},
		{Array2{1, 2}, "ARRAY2(1, 2)"},
		{Array3F{1, 2, 3.5}, "ARRAY3F(1, 2, 3.5)"},
		{Array4D{1, 2, 3, 4}, "ARRAY4D(1, 2, 3, 4)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestValueKind(t *testing.T) {
	tests := []struct {
		kind ValueKind
		len  int
		elem ValueKind
	}{
		{KindInteger, 0, KindInteger},
		{KindString, 0, KindString},
		{KindArray2, 2, KindInteger},
		{KindArray3F, 3, KindFloat},
		{KindArray4D, 4, KindDouble},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.len, tt.kind.Len())
			assert.Equal(t, tt.elem, tt.kind.Elem())

			parsed, ok := ParseValueKind(tt.kind.String())
			assert.True(t, ok)
			assert.Equal(t, tt.kind, parsed)
		})
	}

	_, ok := ParseValueKind("BOOL")
	assert.False(t, ok)
	assert.Equal(t, "ValueKind(99)", ValueKind(99).String())
}

func TestElementAt(t *testing.T) {
	v, ok := ElementAt(Array3F{1, 2.5, 3}, 1)
	assert.True(t, ok)
	assert.Equal(t, Float(2.5), v)

	v, ok = ElementAt(Array2{4, 5}, 0)
	assert.True(t, ok)
	assert.Equal(t, Integer(4), v)

	v, ok = ElementAt(Array4D{1, 2, 3, 4}, 3)
	assert.True(t, ok)
	assert.Equal(t, Double(4), v)

	_, ok = ElementAt(Array2{4, 5}, 2)
	assert.False(t, ok)

	_, ok = ElementAt(Integer(1), 0)
	assert.False(t, ok)

	_, ok = ElementAt(nil, 0)
	assert.False(t, ok)
}

func TestReferenceString(t *testing.T) {
	assert.Equal(t, "INTEGER(1)", LiteralRef(Integer(1)).String())
	assert.Equal(t, "NONE", Reference{}.String())
	assert.Equal(t, "alpha", VariableRef("alpha").String())
	assert.Equal(t, "tint[2]", ArrayIndexRef("tint", 2).String())
	assert.Equal(t, "index", RefArrayIndex.String())
}
