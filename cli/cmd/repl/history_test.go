package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_AddLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"len(vars)", modeEval},
		{"list", modeCtrl},
		{"shader", modeEval},
		{"len(vars)", modeEval}, // moves to the end
		{"len(vars)", modeEval}, // repeat of the last entry is ignored
		{"  ", modeEval},
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q): %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"list", modeCtrl},
		{"shader", modeEval},
		{"len(vars)", modeEval},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "C:list\nE:shader\nE:len(vars)\n" {
		t.Errorf("history file = %q", got)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistory_UnprefixedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	if err := os.WriteFile(path, []byte("tint[0]\n\nC:quit\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{{"tint[0]", modeEval}, {"quit", modeCtrl}}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistory_Entry(t *testing.T) {
	h := NewHistory("")
	if err := h.Add("shader", modeEval); err != nil {
		t.Fatal(err)
	}

	if e, err := h.Entry(0); err != nil || e.Line != "shader" {
		t.Errorf("Entry(0) = (%v, %v)", e, err)
	}

	if _, err := h.Entry(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(1) error = %v, want ErrOutOfBounds", err)
	}
}
