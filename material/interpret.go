package material

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/smf/lang"
)

// width orders the numeric classes for array unification.
type width int

const (
	widthUnknown width = iota
	widthInteger
	widthFloat
	widthDouble
)

// widthOf returns the width selected by a numeric lexical class.
// Unsuffixed non-integral literals are always double width.
func widthOf(k lang.Kind) width {
	switch k {
	case lang.KindInteger, lang.KindSignedInteger:
		return widthInteger
	case lang.KindFloat:
		return widthFloat
	case lang.KindDouble, lang.KindNonIntegral, lang.KindSignedNonIntegral:
		return widthDouble
	default:
		return widthUnknown
	}
}

// numberClass returns the lexical class node of a numeric leaf: either n
// itself or the single numeric child of a [lang.KindNumber] wrapper.
func numberClass(n *lang.Node) (*lang.Node, bool) {
	switch {
	case n == nil:
		return nil, false
	case n.Kind.IsNumeric():
		return n, true
	case n.Kind == lang.KindNumber && len(n.Children) == 1 &&
		n.Children[0].Kind.IsNumeric():
		return n.Children[0], true
	default:
		return nil, false
	}
}

// interpretScalar converts a string or numeric leaf into a scalar [Value].
func interpretScalar(n *lang.Node) (Value, error) {
	if n == nil {
		return nil, ErrUnsupportedValueKind.With(nodeAttrs(n)...)
	}

	if n.Kind == lang.KindString {
		return String(unquote(n.Text)), nil
	}

	class, ok := numberClass(n)
	if !ok {
		return nil, ErrUnsupportedValueKind.With(nodeAttrs(n)...)
	}

	return parseNumber(class, widthOf(class.Kind))
}

// parseNumber parses the text of numeric class node n at width w.
func parseNumber(n *lang.Node, w width) (Value, error) {
	text := stripSuffix(n.Text)

	switch w {
	case widthInteger:
		i, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, ErrMalformedNumber.Wrap(err).With(nodeAttrs(n)...)
		}

		return Integer(i), nil

	case widthFloat:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, ErrMalformedNumber.Wrap(err).With(nodeAttrs(n)...)
		}

		return Float(f), nil

	case widthDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, ErrMalformedNumber.Wrap(err).With(nodeAttrs(n)...)
		}

		return Double(f), nil

	default:
		return nil, ErrUnsupportedValueKind.With(nodeAttrs(n)...)
	}
}

// stripSuffix removes a trailing width suffix.
func stripSuffix(s string) string {
	if strings.HasSuffix(s, "f") || strings.HasSuffix(s, "d") {
		return s[:len(s)-1]
	}

	return s
}

// unquote returns the content of a quoted string literal. Each escape
// sequence Go accepts in a double-quoted string is interpreted; any other
// backslash sequence is kept as written.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}

	s = s[1 : len(s)-1]
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for len(s) > 0 {
		if s[0] != '\\' {
			r, size := utf8.DecodeRuneInString(s)
			b.WriteRune(r)
			s = s[size:]

			continue
		}

		r, multibyte, tail, err := strconv.UnquoteChar(s, '"')
		if err != nil {
			// Keep the backslash and the character it escapes.
			_, size := utf8.DecodeRuneInString(s[1:])
			b.WriteString(s[:1+size])
			s = s[1+size:]

			continue
		}

		if r < utf8.RuneSelf || !multibyte {
			b.WriteByte(byte(r))
		} else {
			b.WriteRune(r)
		}

		s = tail
	}

	return b.String()
}
