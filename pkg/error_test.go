package pkg

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

var errSentinel = NewError("sentinel")

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", NewError("boom"), "boom"},
		{"cause only", WrapError(io.EOF), "EOF"},
		{"message and cause", errSentinel.Wrap(io.EOF), "sentinel: EOF"},
		{"empty", &Error{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	derived := errSentinel.With(slog.String("name", "x")).Wrap(io.EOF)

	if !errors.Is(derived, errSentinel) {
		t.Error("derived error should match its sentinel")
	}

	if !errors.Is(derived, io.EOF) {
		t.Error("derived error should match its cause")
	}

	if errors.Is(derived, NewError("sentinel")) {
		t.Error("derived error should not match a distinct sentinel with the same message")
	}

	if !errors.Is(errSentinel, derived) {
		t.Error("sentinel should match an error derived from it")
	}
}

func TestErrorWithImmutable(t *testing.T) {
	base := errSentinel.With(slog.Int("a", 1))
	ext := base.With(slog.Int("b", 2))

	if n := len(base.Attrs()); n != 1 {
		t.Errorf("base attrs = %d, want 1", n)
	}

	if n := len(ext.Attrs()); n != 2 {
		t.Errorf("extended attrs = %d, want 2", n)
	}

	v, ok := ext.Attr("b")
	if !ok || v.Int64() != 2 {
		t.Errorf("Attr(b) = %v, %v", v, ok)
	}

	if _, ok := base.Attr("b"); ok {
		t.Error("base should not see attributes added later")
	}
}

func TestErrorLogValue(t *testing.T) {
	err := errSentinel.With(slog.String("name", "x")).Wrap(io.EOF)
	group := err.LogValue().Group()

	keys := make([]string, 0, len(group))
	for _, a := range group {
		keys = append(keys, a.Key)
	}

	want := []string{"error", "cause", "name"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}

	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestWrapErrorPassthrough(t *testing.T) {
	orig := errSentinel.With(slog.Int("n", 1))
	if got := WrapError(orig); got != orig {
		t.Error("WrapError should return an existing *Error unchanged")
	}
}
