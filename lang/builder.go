package lang

import (
	"strconv"
	"strings"
)

// Builder provides a programmatic API for constructing parse trees without
// parsing source text. This is useful for tools that synthesize materials
// and for testing shapes the parser never produces.
//
// Example:
//
//	b := lang.NewBuilder()
//	root := b.Material("UnlitGeneric",
//	    b.Variable("alpha", b.Value(b.Number("0.5f"))),
//	    b.SetupProxies(
//	        b.Proxy("Sine", b.Param("resultVar", b.VariableRef("alpha"))),
//	    ),
//	)
type Builder struct{}

// NewBuilder creates a new parse tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Material creates the root node. An empty shader produces a [KindShader]
// node with no children.
func (b *Builder) Material(shader string, items ...*Node) *Node {
	s := &Node{Kind: KindShader, Text: shader}
	if shader != "" {
		s.Children = []*Node{b.Identifier(shader)}
	}

	return &Node{
		Kind:     KindMaterial,
		Children: append([]*Node{s}, items...),
	}
}

// Variable creates a variable declaration.
func (b *Builder) Variable(name string, value *Node) *Node {
	return &Node{
		Kind:     KindVariable,
		Text:     name,
		Children: []*Node{b.Identifier(name), value},
	}
}

// SetupProxies creates a setup proxy block.
func (b *Builder) SetupProxies(proxies ...*Node) *Node {
	return &Node{Kind: KindSetupProxies, Text: "SetupProxies", Children: proxies}
}

// RenderProxies creates a render proxy block.
func (b *Builder) RenderProxies(proxies ...*Node) *Node {
	return &Node{Kind: KindRenderProxies, Text: "RenderProxies", Children: proxies}
}

// Block creates a named block of a kind not otherwise recognized.
func (b *Builder) Block(name string, proxies ...*Node) *Node {
	return &Node{Kind: KindBlock, Text: name, Children: proxies}
}

// Proxy creates a proxy invocation.
func (b *Builder) Proxy(name string, params ...*Node) *Node {
	return &Node{
		Kind:     KindProxy,
		Text:     name,
		Children: append([]*Node{b.Identifier(name)}, params...),
	}
}

// Param creates a proxy parameter.
func (b *Builder) Param(name string, ref *Node) *Node {
	return &Node{
		Kind:     KindProxyParameter,
		Text:     name,
		Children: []*Node{b.Identifier(name), ref},
	}
}

// VariableRef creates a variable reference.
func (b *Builder) VariableRef(name string) *Node {
	return &Node{
		Kind:     KindVariableReference,
		Text:     name,
		Children: []*Node{b.Identifier(name)},
	}
}

// IndexRef creates an array index reference.
func (b *Builder) IndexRef(name string, index uint32) *Node {
	idx := strconv.FormatUint(uint64(index), 10)

	return &Node{
		Kind: KindArrayIndexReference,
		Text: name + "[" + idx + "]",
		Children: []*Node{
			b.Identifier(name),
			{Kind: KindInteger, Text: idx},
		},
	}
}

// Value wraps a literal.
func (b *Builder) Value(lit *Node) *Node {
	return &Node{Kind: KindValue, Text: lit.Text, Children: []*Node{lit}}
}

// Identifier creates an identifier.
func (b *Builder) Identifier(name string) *Node {
	return &Node{Kind: KindIdentifier, Text: name}
}

// String creates a quoted string literal.
func (b *Builder) String(s string) *Node {
	return &Node{Kind: KindString, Text: strconv.Quote(s)}
}

// Number creates a numeric literal, classified the way the parser would
// classify the same text.
func (b *Builder) Number(text string) *Node {
	return &Node{
		Kind:     KindNumber,
		Text:     text,
		Children: []*Node{{Kind: classifyNumber(text), Text: text}},
	}
}

// Array creates an array literal.
func (b *Builder) Array(elems ...*Node) *Node {
	text := make([]string, len(elems))
	for i, e := range elems {
		text[i] = e.Text
	}

	return &Node{
		Kind:     KindArray,
		Text:     "[" + strings.Join(text, ", ") + "]",
		Children: elems,
	}
}

// classifyNumber returns the lexical class of well-formed numeric text.
func classifyNumber(text string) Kind {
	signed := strings.HasPrefix(text, "+") || strings.HasPrefix(text, "-")

	switch {
	case strings.HasSuffix(text, "f"):
		return KindFloat
	case strings.HasSuffix(text, "d"):
		return KindDouble
	case strings.ContainsAny(text, ".eE") && signed:
		return KindSignedNonIntegral
	case strings.ContainsAny(text, ".eE"):
		return KindNonIntegral
	case signed:
		return KindSignedInteger
	default:
		return KindInteger
	}
}
