package material

import (
	"context"
	"io"
	"strconv"
	"strings"
)

// Format writes the material in source syntax. Variables are written in
// lexical order followed by the setup and render blocks. With indent 0
// everything is written on one line.
//
// Parsing the output builds a material equal to m.
func (m *Material) Format(_ context.Context, w io.Writer, indent int) error {
	f := &formatter{indent: indent}

	f.open(0, m.Shader)

	for _, name := range m.VariableNames() {
		lit, err := Literal(m.Variables[name])
		if err != nil {
			return err
		}

		f.line(1, "var "+name+" = "+lit+";")
	}

	for _, g := range []Group{GroupSetup, GroupRender} {
		proxies := m.Proxies(g)
		if len(proxies) == 0 {
			continue
		}

		f.open(1, blockName(g))

		for _, p := range proxies {
			f.open(2, p.Name)

			for _, key := range p.ParameterNames() {
				ref, err := refLiteral(p.Parameters[key])
				if err != nil {
					return err
				}

				f.line(3, key+" = "+ref+";")
			}

			f.close(2)
		}

		f.close(1)
	}

	f.close(0)

	if indent == 0 {
		f.buf.WriteString("\n")
	}

	_, err := io.WriteString(w, f.buf.String())

	return err
}

func blockName(g Group) string {
	if g == GroupRender {
		return "RenderProxies"
	}

	return "SetupProxies"
}

// Literal returns v in source syntax, suffixed so that it parses back to
// the same kind.
func Literal(v Value) (string, error) {
	switch v := v.(type) {
	case Float:
		return fmtFloat(float32(v)) + "f", nil
	case Double:
		return fmtDouble(float64(v)) + "d", nil
	case Integer:
		return fmtInt(int32(v)), nil
	case String:
		return strconv.Quote(string(v)), nil
	case Array2, Array3, Array4:
		return "[" + join(Native(v).([]int32), fmtInt) + "]", nil
	case Array2F, Array3F, Array4F:
		return "[" + join(Native(v).([]float32), func(e float32) string {
			return fmtFloat(e) + "f"
		}) + "]", nil
	case Array2D, Array3D, Array4D:
		return "[" + join(Native(v).([]float64), func(e float64) string {
			return fmtDouble(e) + "d"
		}) + "]", nil
	default:
		return "", ErrUnsupportedValueKind
	}
}

func refLiteral(r Reference) (string, error) {
	if r.Kind == RefLiteral {
		return Literal(r.Literal)
	}

	return r.String(), nil
}

type formatter struct {
	indent int
	buf    strings.Builder
}

func (f *formatter) line(depth int, s string) {
	if f.indent == 0 {
		f.buf.WriteString(s + " ")

		return
	}

	f.buf.WriteString(strings.Repeat(" ", depth*f.indent) + s + "\n")
}

func (f *formatter) open(depth int, name string) {
	f.line(depth, name+" {")
}

func (f *formatter) close(depth int) {
	if f.indent == 0 && depth == 0 {
		f.buf.WriteString("}")

		return
	}

	f.line(depth, "}")
}
