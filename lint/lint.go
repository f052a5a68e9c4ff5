// Package lint checks the proxy parameter references of a material against
// its variable table.
//
// Building a material never dereferences references; this package does.
package lint

import (
	"cmp"
	"errors"
	"log/slog"
	"slices"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ardnew/smf/material"
	"github.com/ardnew/smf/pkg"
)

var (
	ErrUndefinedVariable = pkg.NewError("undefined variable")
	ErrNotAnArray        = pkg.NewError("variable is not an array")
	ErrIndexOutOfRange   = pkg.NewError("array index out of range")
	ErrUnusedVariable    = pkg.NewError("variable is never referenced")
)

// Resolve dereferences ref against the variables of m.
//
// A variable reference yields the variable's value. An array index reference
// yields the indexed element as a scalar. A literal yields itself.
func Resolve(m *material.Material, ref material.Reference) (material.Value, error) {
	switch ref.Kind {
	case material.RefLiteral:
		if ref.Literal == nil {
			return material.None{}, nil
		}

		return ref.Literal, nil

	case material.RefVariable, material.RefArrayIndex:
		v, ok := m.Variables[ref.Name]
		if !ok {
			err := ErrUndefinedVariable.With(slog.String("name", ref.Name))
			if s := Suggest(ref.Name, m.VariableNames()); s != "" {
				err = err.With(slog.String("suggestion", s))
			}

			return nil, err
		}

		if ref.Kind == material.RefVariable {
			return v, nil
		}

		n := v.Kind().Len()
		if n == 0 {
			return nil, ErrNotAnArray.With(
				slog.String("name", ref.Name),
				slog.String("type", v.Kind().String()),
			)
		}

		e, ok := material.ElementAt(v, int(ref.Index))
		if !ok {
			return nil, ErrIndexOutOfRange.With(
				slog.String("name", ref.Name),
				slog.Uint64("index", uint64(ref.Index)),
				slog.Int("len", n),
			)
		}

		return e, nil

	default:
		return nil, material.ErrInvalidReferenceShape.With(
			slog.String("kind", ref.Kind.String()),
		)
	}
}

// Suggest returns the candidate closest to name, or "" if none is close.
//
// Candidates containing the letters of name in order are preferred. Failing
// that, the candidate within a small edit distance of name is returned.
func Suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}

	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		best := slices.MinFunc(ranks, func(a, b fuzzy.Rank) int {
			return cmp.Or(
				cmp.Compare(a.Distance, b.Distance),
				cmp.Compare(a.Target, b.Target),
			)
		})

		return best.Target
	}

	limit := max(2, len(name)/3)
	best, bestDist := "", limit+1

	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(name, c)
		if d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}

	return best
}

// Severity classifies an [Issue].
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "Severity(" + strconv.Itoa(int(s)) + ")"
	}
}

// Issue is one problem found by [Check].
//
// Proxy and Parameter are empty for issues about variables themselves.
type Issue struct {
	Severity  Severity
	Group     material.Group
	Proxy     string
	Parameter string
	Err       error
}

// Where returns the location of i, such as "render Equals.srcVar1".
func (i Issue) Where() string {
	if i.Proxy == "" {
		return "variables"
	}

	return i.Group.String() + " " + i.Proxy + "." + i.Parameter
}

func (i Issue) String() string {
	s := i.Severity.String() + ": " + i.Where() + ": " + i.Err.Error()

	var pe *pkg.Error
	if !errors.As(i.Err, &pe) {
		return s
	}

	if v, ok := pe.Attr("name"); ok {
		s += " " + strconv.Quote(v.String())
	}

	if v, ok := pe.Attr("index"); ok {
		s += " [" + v.String() + "]"
	}

	if v, ok := pe.Attr("suggestion"); ok {
		s += " (did you mean " + strconv.Quote(v.String()) + "?)"
	}

	return s
}

// LogValue implements [slog.LogValuer].
func (i Issue) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("severity", i.Severity.String()),
		slog.String("where", i.Where()),
		slog.Any("error", i.Err),
	}

	return slog.GroupValue(attrs...)
}

// Check resolves every proxy parameter of m and reports each failure as an
// error, followed by a warning for each variable no parameter refers to.
//
// Issues are ordered by group, proxy position, and parameter name.
func Check(m *material.Material) []Issue {
	var issues []Issue

	used := make(map[string]bool, len(m.Variables))

	for _, g := range []material.Group{material.GroupSetup, material.GroupRender} {
		for _, px := range m.Proxies(g) {
			for _, name := range px.ParameterNames() {
				ref := px.Parameters[name]
				if ref.Kind != material.RefLiteral {
					used[ref.Name] = true
				}

				if _, err := Resolve(m, ref); err != nil {
					issues = append(issues, Issue{
						Severity:  SeverityError,
						Group:     g,
						Proxy:     px.Name,
						Parameter: name,
						Err:       err,
					})
				}
			}
		}
	}

	for _, name := range m.VariableNames() {
		if !used[name] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Err:      ErrUnusedVariable.With(slog.String("name", name)),
			})
		}
	}

	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	return slices.ContainsFunc(issues, func(i Issue) bool {
		return i.Severity == SeverityError
	})
}
