package material

import (
	"log/slog"

	"github.com/ardnew/smf/lang"
)

// shader reads the shader identifier block.
func (b *builder) shader(n *lang.Node) error {
	id := n.Child(0)
	if id == nil || id.Text == "" {
		return ErrMissingShaderIdentifier.With(nodeAttrs(n)...)
	}

	name, ok := identifier(id)
	if !ok {
		return ErrExpectedIdentifier.With(nodeAttrs(id)...)
	}

	if b.m.Shader != "" {
		b.logger.DebugContext(b.ctx, "shader redeclared",
			slog.String("old", b.m.Shader),
			slog.String("new", name))
	}

	b.m.Shader = name

	b.logger.TraceContext(b.ctx, "build shader", slog.String("name", name))

	return nil
}

// variable reads one variable declaration into the variable table.
// A later declaration of the same name replaces an earlier one.
func (b *builder) variable(n *lang.Node) error {
	name, ok := identifier(n.Child(0))
	if !ok {
		return ErrExpectedIdentifier.With(nodeAttrs(n)...)
	}

	v, err := variableValue(n.Child(1))
	if err != nil {
		return err
	}

	if old, exists := b.m.Variables[name]; exists {
		b.logger.DebugContext(b.ctx, "variable redeclared",
			slog.String("name", name),
			slog.String("old", old.String()),
			slog.String("new", v.String()))
	}

	b.m.Variables[name] = v

	b.logger.TraceContext(b.ctx, "build variable",
		slog.String("name", name),
		slog.String("value", v.String()))

	return nil
}

// variableValue interprets the value of a variable declaration.
func variableValue(n *lang.Node) (Value, error) {
	if n != nil && n.Kind == lang.KindValue {
		if len(n.Children) != 1 {
			return nil, ErrUnsupportedValueKind.With(nodeAttrs(n)...)
		}

		n = n.Child(0)
	}

	if n != nil && n.Kind == lang.KindArray {
		return unifyArray(n)
	}

	return interpretScalar(n)
}
