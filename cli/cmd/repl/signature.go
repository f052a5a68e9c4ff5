package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// signature describes a callable for the parameter hint line.
type signature struct {
	text   string
	params []string
}

func sig(name string, params ...string) signature {
	return signature{name + "(" + strings.Join(params, ", ") + ")", params}
}

// querySignatures are the functions the query environment adds.
var querySignatures = map[string]signature{
	"kind":    sig("kind", "name"),
	"resolve": sig("resolve", "proxy", "param"),
	"proxies": sig("proxies"),
}

// exprSignatures are the expr-lang builtins worth hinting.
// See https://expr-lang.org/docs/language-definition.
var exprSignatures = map[string]signature{
	"len":       sig("len", "v"),
	"all":       sig("all", "array", "predicate"),
	"any":       sig("any", "array", "predicate"),
	"one":       sig("one", "array", "predicate"),
	"none":      sig("none", "array", "predicate"),
	"map":       sig("map", "array", "mapper"),
	"filter":    sig("filter", "array", "predicate"),
	"find":      sig("find", "array", "predicate"),
	"findIndex": sig("findIndex", "array", "predicate"),
	"groupBy":   sig("groupBy", "array", "mapper"),
	"sortBy":    sig("sortBy", "array", "mapper"),
	"count":     sig("count", "array", "predicate"),
	"sum":       sig("sum", "array"),
	"mean":      sig("mean", "array"),
	"min":       sig("min", "array"),
	"max":       sig("max", "array"),
	"join":      sig("join", "array", "separator"),
	"keys":      sig("keys", "map"),
	"values":    sig("values", "map"),
	"upper":     sig("upper", "string"),
	"lower":     sig("lower", "string"),
	"int":       sig("int", "v"),
	"float":     sig("float", "v"),
	"string":    sig("string", "v"),
	"type":      sig("type", "v"),
}

// builtinNames returns the names of every hinted function.
func builtinNames() []string {
	names := make([]string, 0, len(exprSignatures))
	for name := range exprSignatures {
		names = append(names, name)
	}

	return names
}

func signatureOf(name string) (signature, bool) {
	if s, ok := querySignatures[name]; ok {
		return s, true
	}

	s, ok := exprSignatures[name]

	return s, ok
}

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall is the call enclosing the cursor, if any.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

// detectFunctionCall reports the innermost unclosed call before cursor and
// which of its arguments the cursor is in.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(cursor, len(input))

	depth := 0
	open := -1

scan:
	for i := cursor; i > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i

				break scan
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isIdentRune(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	arg := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' ||
		('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// renderSignatureHint renders s with the parameter at arg highlighted.
func renderSignatureHint(name string, s signature, arg int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range s.params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == arg {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
