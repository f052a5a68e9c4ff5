package repl

import (
	"slices"
	"testing"
)

func TestWordBounds_ExprOperators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"dot_separated", "vars.tint", 9, "tint", 5, 9},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_minus", "a-fo", 4, "fo", 2, 4},
		{"after_paren", "kind(fo", 7, "fo", 5, 7},
		{"after_comma", "resolve(a, fo", 13, "fo", 11, 13},
		{"after_quote", `kind("ti`, 8, "ti", 6, 8},
		{"in_ternary", "x ? fo", 6, "fo", 4, 6},
		{"after_comparison", "a > fo", 6, "fo", 4, 6},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"cursor_past_end", "foo", 10, "foo", 0, 3},
		{"dollar_identifier", "$basetexture", 12, "$basetexture", 0, 12},
		{"empty_after_dot", "vars.", 5, "", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParentPath_WithOperators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wordStart int
		want      string
	}{
		{"top_level", "fo", 0, ""},
		{"simple_chain", "vars.", 5, "vars"},
		{"deep_chain", "a.b.c.", 6, "a.b.c"},
		{"after_operator", "1 + vars.", 9, "vars"},
		{"after_paren", "len(vars.", 9, "vars"},
		{"no_chain", "a + ", 4, ""},
		{"not_after_dot", "vars + ti", 7, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parentPath(tt.input, tt.wordStart)
			if got != tt.want {
				t.Errorf("parentPath(%q, %d) = %q, want %q",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestChildCandidates(t *testing.T) {
	env := map[string]any{
		"shader": "UnlitGeneric",
		"vars": map[string]any{
			"tint":  []any{1, 0.5, 0.25},
			"alpha": 1.0,
		},
		"nested": map[string]any{
			"inner": map[string]any{"leaf": 1},
		},
	}

	top := childCandidates(env, "")
	for _, want := range []string{"shader", "vars", "len", "filter"} {
		if !slices.Contains(top, want) {
			t.Errorf("top-level candidates missing %q: %v", want, top)
		}
	}

	if !slices.IsSorted(top) {
		t.Errorf("top-level candidates not sorted: %v", top)
	}

	tests := []struct {
		parent string
		want   []string
	}{
		{"vars", []string{"alpha", "tint"}},
		{"nested.inner", []string{"leaf"}},
		{"nested.missing", nil},
		{"shader", nil},
		{"vars.tint", nil},
	}

	for _, tt := range tests {
		t.Run(tt.parent, func(t *testing.T) {
			got := childCandidates(env, tt.parent)
			if !slices.Equal(got, tt.want) {
				t.Errorf("childCandidates(%q) = %v, want %v", tt.parent, got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"crate", `"crate"`},
		{[]any{1, 2, 3}, "[3 items]"},
		{map[string]any{"a": 1}, "{1 keys}"},
		{2.5, "2.5"},
	}

	for _, tt := range tests {
		if got := preview(tt.in); got != tt.want {
			t.Errorf("preview(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := preview(string(make([]byte, 100)))
	if len(long) != 48 {
		t.Errorf("preview of long string has length %d, want 48", len(long))
	}
}
