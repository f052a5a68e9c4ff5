package material

import (
	"log/slog"

	"github.com/ardnew/smf/lang"
	"github.com/ardnew/smf/pkg"
)

// proxyBlock appends the proxies of block n to list in source order.
func (b *builder) proxyBlock(
	n *lang.Node,
	group Group,
	list []Proxy,
) ([]Proxy, error) {
	for child := range n.All() {
		if child == nil || child.Kind != lang.KindProxy {
			b.logger.WarnContext(b.ctx, "unsupported rule",
				append(nodeAttrs(child), slog.String("group", group.String()))...)

			continue
		}

		p, err := buildProxy(child)
		if err != nil {
			return nil, err
		}

		b.logger.TraceContext(b.ctx, "build proxy",
			slog.String("group", group.String()),
			slog.String("name", p.Name),
			slog.Int("parameter_count", len(p.Parameters)))

		list = append(list, p)
	}

	return list, nil
}

// buildProxy reads one proxy invocation. A later parameter of the same
// name replaces an earlier one.
func buildProxy(n *lang.Node) (Proxy, error) {
	name, ok := identifier(n.Child(0))
	if !ok {
		return Proxy{}, ErrExpectedIdentifier.With(nodeAttrs(n)...)
	}

	p := Proxy{
		Name:       name,
		Parameters: make(map[string]Reference, len(n.Children)-1),
	}

	for _, param := range n.Children[1:] {
		key, ok := identifier(param.Child(0))
		if !ok {
			return Proxy{}, ErrExpectedIdentifier.
				With(nodeAttrs(param)...).
				With(slog.String("proxy", name))
		}

		ref, err := resolveReference(param.Child(1))
		if err != nil {
			return Proxy{}, pkg.WrapError(err).
				With(slog.String("proxy", name), slog.String("parameter", key))
		}

		p.Parameters[key] = ref
	}

	return p, nil
}
