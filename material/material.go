package material

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/ardnew/smf/lang"
	"github.com/ardnew/smf/log"
)

// Material is the typed model of one material file.
type Material struct {
	Shader    string
	Variables map[string]Value
	Setup     []Proxy
	Render    []Proxy
}

// Proxy is one named proxy invocation.
type Proxy struct {
	Name       string
	Parameters map[string]Reference
}

// Group selects the setup or render proxy list of a [Material].
type Group int

const (
	GroupSetup Group = iota
	GroupRender
)

func (g Group) String() string {
	switch g {
	case GroupSetup:
		return "setup"
	case GroupRender:
		return "render"
	default:
		return "Group(" + strconv.Itoa(int(g)) + ")"
	}
}

// Proxies returns the proxy list of group g.
func (m *Material) Proxies(g Group) []Proxy {
	switch g {
	case GroupSetup:
		return m.Setup
	case GroupRender:
		return m.Render
	default:
		return nil
	}
}

// VariableNames returns the variable names in lexical order.
func (m *Material) VariableNames() []string {
	return sortedKeys(m.Variables)
}

// ParameterNames returns the parameter names of p in lexical order.
func (p Proxy) ParameterNames() []string {
	return sortedKeys(p.Parameters)
}

// Option configures a build.
type Option func(*config)

type config struct {
	logger log.Logger
	file   string
}

// WithLogger sets the logger used to trace the build and report skipped
// constructs. The zero value [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithFile sets the source name reported in parse errors.
func WithFile(name string) Option {
	return func(c *config) { c.file = name }
}

func makeConfig(opts ...Option) config {
	var cfg config

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// ParseString parses and builds a material from source text.
// Grammar failures match [lang.ErrGrammarRejected].
func ParseString(ctx context.Context, s string, opts ...Option) (*Material, error) {
	cfg := makeConfig(opts...)

	root, err := lang.ParseString(ctx, s,
		lang.WithLogger(cfg.logger), lang.WithFile(cfg.file))
	if err != nil {
		return nil, err
	}

	return build(ctx, root, cfg)
}

// ParseReader parses and builds a material from an io.Reader.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Material, error) {
	cfg := makeConfig(opts...)

	root, err := lang.ParseReader(ctx, r,
		lang.WithLogger(cfg.logger), lang.WithFile(cfg.file))
	if err != nil {
		return nil, err
	}

	return build(ctx, root, cfg)
}

// Build converts the parse tree rooted at root into a [Material].
// It returns either a complete model or the first error encountered.
func Build(ctx context.Context, root *lang.Node, opts ...Option) (*Material, error) {
	return build(ctx, root, makeConfig(opts...))
}

func build(ctx context.Context, root *lang.Node, cfg config) (*Material, error) {
	b := &builder{
		ctx:    ctx,
		logger: cfg.logger,
		m:      &Material{Variables: make(map[string]Value)},
	}

	for n := range root.All() {
		if n == nil {
			b.logger.WarnContext(ctx, "unsupported rule", nodeAttrs(n)...)

			continue
		}

		var err error

		switch n.Kind {
		case lang.KindShader:
			err = b.shader(n)
		case lang.KindVariable:
			err = b.variable(n)
		case lang.KindSetupProxies:
			b.m.Setup, err = b.proxyBlock(n, GroupSetup, b.m.Setup)
		case lang.KindRenderProxies:
			b.m.Render, err = b.proxyBlock(n, GroupRender, b.m.Render)
		default:
			b.logger.WarnContext(ctx, "unsupported rule", nodeAttrs(n)...)
		}

		if err != nil {
			return nil, err
		}
	}

	if b.m.Shader == "" {
		return nil, ErrNoShaderSpecified
	}

	b.logger.TraceContext(ctx, "build complete",
		slog.String("shader", b.m.Shader),
		slog.Int("variable_count", len(b.m.Variables)),
		slog.Int("setup_count", len(b.m.Setup)),
		slog.Int("render_count", len(b.m.Render)))

	return b.m, nil
}

// builder holds the state of one build.
type builder struct {
	ctx    context.Context //nolint:containedctx
	logger log.Logger
	m      *Material
}

// identifier returns the text of n if it is a non-empty identifier.
func identifier(n *lang.Node) (string, bool) {
	if n == nil || n.Kind != lang.KindIdentifier || n.Text == "" {
		return "", false
	}

	return n.Text, true
}
