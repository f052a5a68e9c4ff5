package material

import (
	"log/slog"
	"strconv"

	"github.com/ardnew/smf/lang"
)

// RefKind identifies the shape of a [Reference].
type RefKind int

const (
	// RefLiteral is an inline value.
	RefLiteral RefKind = iota
	// RefVariable names a material variable.
	RefVariable
	// RefArrayIndex names one element of an array variable.
	RefArrayIndex
)

func (k RefKind) String() string {
	switch k {
	case RefLiteral:
		return "literal"
	case RefVariable:
		return "variable"
	case RefArrayIndex:
		return "index"
	default:
		return "RefKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Reference is the unresolved right-hand side of a proxy parameter.
//
// Literal is set only for [RefLiteral]; Name for [RefVariable] and
// [RefArrayIndex]; Index only for [RefArrayIndex].
type Reference struct {
	Kind    RefKind
	Literal Value
	Name    string
	Index   uint32
}

// LiteralRef returns a reference holding v.
func LiteralRef(v Value) Reference {
	return Reference{Kind: RefLiteral, Literal: v}
}

// VariableRef returns a reference to the variable name.
func VariableRef(name string) Reference {
	return Reference{Kind: RefVariable, Name: name}
}

// ArrayIndexRef returns a reference to element index of the variable name.
func ArrayIndexRef(name string, index uint32) Reference {
	return Reference{Kind: RefArrayIndex, Name: name, Index: index}
}

func (r Reference) String() string {
	switch r.Kind {
	case RefLiteral:
		if r.Literal == nil {
			return None{}.String()
		}

		return r.Literal.String()
	case RefVariable:
		return r.Name
	case RefArrayIndex:
		return r.Name + "[" + strconv.FormatUint(uint64(r.Index), 10) + "]"
	default:
		return r.Kind.String()
	}
}

// resolveReference classifies the right-hand side of a proxy parameter.
func resolveReference(n *lang.Node) (Reference, error) {
	if n == nil {
		return Reference{}, ErrInvalidReferenceShape.With(nodeAttrs(n)...)
	}

	switch n.Kind {
	case lang.KindIdentifier:
		return VariableRef(n.Text), nil

	case lang.KindVariableReference:
		name := n.Text
		if id := n.Child(0); id != nil {
			if id.Kind != lang.KindIdentifier {
				return Reference{}, ErrInvalidReferenceShape.With(nodeAttrs(id)...)
			}

			name = id.Text
		}

		if name == "" {
			return Reference{}, ErrInvalidReferenceShape.With(nodeAttrs(n)...)
		}

		return VariableRef(name), nil

	case lang.KindArrayIndexReference:
		id, idx := n.Child(0), n.Child(1)
		if id == nil || id.Kind != lang.KindIdentifier || idx == nil {
			return Reference{}, ErrInvalidReferenceShape.With(nodeAttrs(n)...)
		}

		index, err := strconv.ParseUint(idx.Text, 10, 32)
		if err != nil {
			return Reference{}, ErrMalformedIndex.Wrap(err).
				With(nodeAttrs(idx)...).
				With(slog.String("name", id.Text))
		}

		return ArrayIndexRef(id.Text, uint32(index)), nil

	case lang.KindValue:
		if len(n.Children) != 1 {
			return Reference{}, ErrInvalidReferenceShape.With(nodeAttrs(n)...)
		}

		return resolveReference(n.Child(0))

	case lang.KindArray:
		return Reference{}, ErrArrayLiteralNotAllowedAsParameter.
			With(nodeAttrs(n)...)

	case lang.KindString, lang.KindNumber,
		lang.KindInteger, lang.KindSignedInteger,
		lang.KindFloat, lang.KindDouble,
		lang.KindNonIntegral, lang.KindSignedNonIntegral:
		v, err := interpretScalar(n)
		if err != nil {
			return Reference{}, err
		}

		return LiteralRef(v), nil

	default:
		return Reference{}, ErrInvalidReferenceShape.With(nodeAttrs(n)...)
	}
}
