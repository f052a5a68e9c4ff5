package repl

import (
	"strings"
	"testing"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no_call", "tint", 4, "", 0, false},
		{"open_paren", "kind(", 5, "kind", 0, true},
		{"first_arg", `kind("ti`, 8, "kind", 0, true},
		{"second_arg", `resolve("Sine", `, 16, "resolve", 1, true},
		{"closed_call", `kind("tint")`, 12, "", 0, false},
		{"nested_inner", `len(filter(setup, `, 18, "filter", 1, true},
		{"nested_outer", `resolve(kind("a"), `, 19, "resolve", 1, true},
		{"comma_in_array", `len([1, 2, `, 11, "len", 0, true},
		{"bare_paren", "(1 + ", 5, "", 0, false},
		{"cursor_mid", `resolve("a", "b")`, 10, "resolve", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)
			if got.name != tt.wantName || got.argIndex != tt.wantIndex ||
				got.inCall != tt.wantInCall {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {%q %d %v}",
					tt.input, tt.cursor, got,
					tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestSignatureOf(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"resolve", "resolve(proxy, param)", true},
		{"kind", "kind(name)", true},
		{"proxies", "proxies()", true},
		{"filter", "filter(array, predicate)", true},
		{"nothing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := signatureOf(tt.name)
			if ok != tt.ok || s.text != tt.want {
				t.Errorf("signatureOf(%q) = (%q, %v), want (%q, %v)",
					tt.name, s.text, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	s, _ := signatureOf("resolve")

	hint := renderSignatureHint("resolve", s, 1)
	for _, part := range []string{"resolve", "proxy", "param"} {
		if !strings.Contains(hint, part) {
			t.Errorf("hint %q missing %q", hint, part)
		}
	}
}

func BenchmarkDetectFunctionCall(b *testing.B) {
	input := `map(filter(render, .name == "Equals"), resolve(.name, `

	for b.Loop() {
		_ = detectFunctionCall(input, len(input))
	}
}
