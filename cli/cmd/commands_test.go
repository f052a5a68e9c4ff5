package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ardnew/smf/material"
	"github.com/ardnew/smf/pkg"
	"github.com/ardnew/smf/report"
)

func TestShow(t *testing.T) {
	ctx, buf := capture(t)

	cmd := &Show{Input: Input{Source: writeSource(t, material.Sample)}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, strings.SplitN(report.Banner, "\n", 2)[0]) {
		t.Errorf("report does not start with the banner:\n%s", out)
	}

	for _, want := range []string{"UnlitGeneric", "basetexture", "TextureScroll"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestShowSample(t *testing.T) {
	ctx, buf := capture(t)

	if err := (&Show{Sample: true}).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !strings.Contains(buf.String(), "SHADER: UnlitGeneric") {
		t.Errorf("sample report missing shader:\n%s", buf.String())
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		strict  bool
		wantErr bool
		want    []string
	}{
		{
			name:   "clean",
			source: `Foo { var a = 1; SetupProxies { P { x = a; } } }`,
		},
		{
			name:   "unused warning",
			source: `Foo { var a = 1; var b = 2; SetupProxies { P { x = a; } } }`,
			want:   []string{"warning: variables:"},
		},
		{
			name:    "unused strict",
			source:  `Foo { var a = 1; var b = 2; SetupProxies { P { x = a; } } }`,
			strict:  true,
			wantErr: true,
			want:    []string{"warning: variables:"},
		},
		{
			name:    "undefined",
			source:  `Foo { var alpha = 1; RenderProxies { P { x = alpah; } } }`,
			wantErr: true,
			want:    []string{`error: render P.x:`, `"alpah"`, `did you mean "alpha"?`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, buf := capture(t)

			cmd := &Check{Strict: tt.strict, Input: Input{Source: writeSource(t, tt.source)}}
			err := cmd.Run(ctx)

			if tt.wantErr != (err != nil) {
				t.Fatalf("Run error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrCheck) {
				t.Errorf("Run error = %v, want ErrCheck", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}

			if len(tt.want) == 0 && buf.Len() > 0 {
				t.Errorf("unexpected output:\n%s", buf.String())
			}
		})
	}
}

func TestQuery(t *testing.T) {
	path := writeSource(t, material.Sample)

	tests := []struct {
		expr string
		want string
	}{
		{`shader`, `"UnlitGeneric"`},
		{`len(setup)`, `2`},
		{`len(render) + len(setup)`, `4`},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ctx, buf := capture(t)

			if err := (&Query{Expr: tt.expr, Input: Input{Source: path}}).Run(ctx); err != nil {
				t.Fatalf("Run: %v", err)
			}

			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("%s = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}
}

func TestQueryInvalid(t *testing.T) {
	ctx, buf := capture(t)

	cmd := &Query{Expr: `len(`, Input: Input{Source: writeSource(t, material.Sample)}}
	if err := cmd.Run(ctx); err == nil {
		t.Errorf("Run accepted an invalid expression, printed %q", buf.String())
	}
}

func TestValidate(t *testing.T) {
	m, err := material.ParseString(t.Context(), material.Sample)
	if err != nil {
		t.Fatal(err)
	}

	var doc bytes.Buffer
	if err := m.FormatJSON(t.Context(), &doc, 2); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "material.json")
	if err := os.WriteFile(path, doc.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, buf := capture(t)
	if err := (&Validate{Source: path}).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got, want := buf.String(), path+": valid\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestValidateInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "material.json")
	if err := os.WriteFile(path, []byte(`{"shader": 3}`), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, buf := capture(t)
	if err := (&Validate{Source: path}).Run(ctx); err == nil {
		t.Error("Run accepted a document that does not match the schema")
	}

	if buf.Len() > 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestValidateSchema(t *testing.T) {
	ctx, buf := capture(t)

	if err := (&Validate{Schema: true}).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if buf.String() != material.Schema() {
		t.Error("printed schema differs from material.Schema")
	}
}

func TestVersion(t *testing.T) {
	ctx, buf := capture(t)

	if err := (Version{}).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got, want := buf.String(), pkg.Name+" "+pkg.Version+"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCatalogCommands(t *testing.T) {
	dir := t.TempDir()
	db := database{DB: filepath.Join(dir, "catalog.db")}

	good := filepath.Join(dir, "good.smf")
	bad := filepath.Join(dir, "bad.smf")

	if err := os.WriteFile(good, []byte(material.Sample), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(bad, []byte("Foo { var = ; }"), 0o600); err != nil {
		t.Fatal(err)
	}

	good, _ = filepath.EvalSymlinks(good)
	bad, _ = filepath.EvalSymlinks(bad)

	ctx, buf := capture(t)

	if err := (&Index{Database: db, Paths: []string{good, bad, good}}).Run(ctx); err != nil {
		t.Fatalf("Index: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "indexed   "+good+"\n") {
		t.Errorf("good file not indexed:\n%s", out)
	}

	if !strings.Contains(out, "failed    "+bad+":") {
		t.Errorf("bad file not reported:\n%s", out)
	}

	buf.Reset()

	if err := (&Index{Database: db, Paths: []string{good}}).Run(ctx); err != nil {
		t.Fatalf("Index: %v", err)
	}

	if got, want := buf.String(), "unchanged "+good+"\n"; got != want {
		t.Errorf("reindex output = %q, want %q", got, want)
	}

	buf.Reset()

	if err := (&Find{Database: db, Proxy: "sine"}).Run(ctx); err != nil {
		t.Fatalf("Find: %v", err)
	}

	fields := strings.Fields(buf.String())
	if len(fields) != 6 || fields[0] != good || fields[1] != "UnlitGeneric" {
		t.Errorf("find output = %q", buf.String())
	}

	buf.Reset()

	if err := (&Find{Database: db, Shader: "VertexLitGeneric"}).Run(ctx); err != nil {
		t.Fatalf("Find: %v", err)
	}

	if buf.Len() > 0 {
		t.Errorf("find matched an absent shader: %q", buf.String())
	}

	buf.Reset()

	if err := (&Forget{Database: db, Paths: []string{good, bad}}).Run(ctx); err != nil {
		t.Fatalf("Forget: %v", err)
	}

	if got, want := buf.String(), "removed   "+good+"\nnot found "+bad+"\n"; got != want {
		t.Errorf("forget output = %q, want %q", got, want)
	}
}

// syncBuffer is a bytes.Buffer safe for a writer and a polling reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// waitFor polls until cond holds for the buffer contents or the deadline
// passes.
func waitFor(t *testing.T, buf *syncBuffer, cond func(string) bool) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for !cond(buf.String()) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out; output so far:\n%s", buf.String())
		}

		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatch(t *testing.T) {
	path := writeSource(t, `Foo { var a = 1; }`)

	var buf syncBuffer

	ctx, cancel := context.WithCancel(WithOutput(t.Context(), &buf))
	done := make(chan error, 1)

	go func() {
		done <- (&Watch{Settle: 20 * time.Millisecond, Source: path}).Run(ctx)
	}()

	waitFor(t, &buf, func(s string) bool { return strings.Contains(s, "SHADER: Foo") })

	if err := os.WriteFile(path, []byte(`Foo { var = ; }`), 0o600); err != nil {
		t.Fatal(err)
	}

	waitFor(t, &buf, func(s string) bool { return strings.Contains(s, "error: ") })

	if err := os.WriteFile(path, []byte(`Bar { var a = 1; }`), 0o600); err != nil {
		t.Fatal(err)
	}

	waitFor(t, &buf, func(s string) bool { return strings.Contains(s, "SHADER: Bar") })

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}
