// Package query evaluates expr-lang expressions against a material.
//
// The environment exposed to an expression is built by [Env]:
//
//	shader               the shader name
//	vars                 every variable, keyed by name
//	<name>               each variable again at top level, unless the name
//	                     is taken by one of the entries listed here
//	setup, render        proxy lists: [{name, params: {p: {kind, name,
//	                     index, value}}}]
//	kind(name)           the type name of a variable, or ""
//	resolve(proxy, p)    the dereferenced value of a proxy parameter
//	proxies()            every proxy name, setup first
//
// Scalars are int, float64 or string; arrays are []any.
//
//	len(vars)
//	tint[1] * 2
//	kind("transform") == "ARRAY4D"
//	filter(render, .name == "Equals")[0].params.srcVar1.index
//	resolve("Equals", "srcVar1")
package query

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/smf/lint"
	"github.com/ardnew/smf/material"
	"github.com/ardnew/smf/pkg"
)

var (
	ErrCompile  = pkg.NewError("compile expression")
	ErrEvaluate = pkg.NewError("evaluate expression")
)

// Query is a compiled expression.
type Query struct {
	source  string
	program *vm.Program
}

// Compile compiles source. If m is non-nil, identifiers are checked against
// [Env] of m; otherwise any identifier is accepted and evaluates to nil when
// absent.
func Compile(source string, m *material.Material) (*Query, error) {
	opts := []expr.Option{expr.Env(builtins(nil)), expr.AllowUndefinedVariables()}
	if m != nil {
		opts = []expr.Option{expr.Env(Env(m))}
	}

	program, err := expr.Compile(source, opts...)
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", source))
	}

	return &Query{source: source, program: program}, nil
}

// Source returns the expression text of q.
func (q *Query) Source() string { return q.source }

// Eval runs q against m.
func (q *Query) Eval(ctx context.Context, m *material.Material) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrEvaluate.Wrap(err).With(slog.String("source", q.source))
	}

	result, err := vm.Run(q.program, Env(m))
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(slog.String("source", q.source))
	}

	return result, nil
}

// Eval compiles source against m and runs it.
func Eval(ctx context.Context, source string, m *material.Material) (any, error) {
	q, err := Compile(source, m)
	if err != nil {
		return nil, err
	}

	return q.Eval(ctx, m)
}

// Env returns the expression environment of m.
func Env(m *material.Material) map[string]any {
	env := builtins(m)

	vars := make(map[string]any, len(m.Variables))
	for name, v := range m.Variables {
		vars[name] = native(v)
	}

	env["shader"] = m.Shader
	env["vars"] = vars
	env["setup"] = proxies(m.Setup)
	env["render"] = proxies(m.Render)

	for name, v := range vars {
		if _, taken := env[name]; !taken {
			env[name] = v
		}
	}

	return env
}

// Names returns the top-level names of [Env] for m in lexical order.
func Names(m *material.Material) []string {
	return slices.Sorted(maps.Keys(Env(m)))
}

func builtins(m *material.Material) map[string]any {
	if m == nil {
		m = &material.Material{}
	}

	return map[string]any{
		"shader": "",
		"vars":   map[string]any{},
		"setup":  []any{},
		"render": []any{},
		"kind": func(name string) string {
			if v, ok := m.Variables[name]; ok {
				return v.Kind().String()
			}

			return ""
		},
		"resolve": func(proxy, param string) any {
			for _, g := range []material.Group{material.GroupSetup, material.GroupRender} {
				for _, px := range m.Proxies(g) {
					ref, ok := px.Parameters[param]
					if px.Name != proxy || !ok {
						continue
					}

					v, err := lint.Resolve(m, ref)
					if err != nil {
						return nil
					}

					return native(v)
				}
			}

			return nil
		},
		"proxies": func() []any {
			names := make([]any, 0, len(m.Setup)+len(m.Render))
			for _, g := range []material.Group{material.GroupSetup, material.GroupRender} {
				for _, px := range m.Proxies(g) {
					names = append(names, px.Name)
				}
			}

			return names
		},
	}
}

func proxies(list []material.Proxy) []any {
	out := make([]any, 0, len(list))

	for _, px := range list {
		params := make(map[string]any, len(px.Parameters))

		for name, ref := range px.Parameters {
			doc := map[string]any{"kind": ref.Kind.String()}

			switch ref.Kind {
			case material.RefLiteral:
				doc["value"] = native(ref.Literal)
			case material.RefVariable:
				doc["name"] = ref.Name
			case material.RefArrayIndex:
				doc["name"] = ref.Name
				doc["index"] = int(ref.Index)
			}

			params[name] = doc
		}

		out = append(out, map[string]any{"name": px.Name, "params": params})
	}

	return out
}

// native converts v to the scalar and slice types used in expressions.
func native(v material.Value) any {
	switch n := material.Native(v).(type) {
	case int32:
		return int(n)
	case float32:
		return widen(n)
	case float64, string:
		return n
	case []int32:
		return each(n, func(e int32) any { return int(e) })
	case []float32:
		return each(n, func(e float32) any { return widen(e) })
	case []float64:
		return each(n, func(e float64) any { return e })
	default:
		return nil
	}
}

// widen converts f to the float64 with the same shortest decimal form, so
// 0.1f is 0.1 rather than 0.10000000149011612.
func widen(f float32) float64 {
	d, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}

	return d
}

func each[T any](s []T, f func(T) any) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = f(e)
	}

	return out
}
