package lang

import (
	"bytes"
	"context"
	"testing"
)

func TestNode_Print(t *testing.T) {
	root, err := ParseString(context.Background(),
		`Foo { var a = 1.5f; SetupProxies { Init { x = a; } } }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := root.Print(&buf); err != nil {
		t.Fatalf("print error: %v", err)
	}

	want := `Material
  Shader: Foo
    Identifier: Foo
  Variable: a
    Identifier: a
    Value: 1.5f
      Number: 1.5f
        Float: 1.5f
  SetupProxies: SetupProxies
    Proxy: Init
      Identifier: Init
      ProxyParameter: x
        Identifier: x
        VariableReference: a
          Identifier: a
`

	if got := buf.String(); got != want {
		t.Errorf("Print() =\n%s\nwant\n%s", got, want)
	}
}

func TestNode_Walk(t *testing.T) {
	b := NewBuilder()
	root := b.Material("Foo", b.Variable("a", b.Value(b.Number("1"))))

	var kinds []Kind

	for depth, n := range root.Walk() {
		if depth > 2 {
			break
		}

		kinds = append(kinds, n.Kind)
	}

	want := []Kind{
		KindMaterial, KindShader, KindIdentifier,
		KindVariable, KindIdentifier, KindValue,
	}

	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}

	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestNode_AllAndChild(t *testing.T) {
	var nilNode *Node

	if nilNode.Child(0) != nil {
		t.Error("Child on nil node should be nil")
	}

	for range nilNode.All() {
		t.Error("All on nil node should yield nothing")
	}

	b := NewBuilder()
	root := b.Material("", b.SetupProxies(), b.RenderProxies())

	count := 0
	for range root.All() {
		count++
	}

	if count != 3 {
		t.Errorf("All yielded %d nodes, want 3", count)
	}

	if root.Child(3) != nil || root.Child(-1) != nil {
		t.Error("out of range Child should be nil")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindMaterial, "Material"},
		{KindSignedNonIntegral, "SignedNonIntegral"},
		{KindArray, "Array"},
		{Kind(99), "Kind(99)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBuilder_NumberClass(t *testing.T) {
	b := NewBuilder()

	tests := map[string]Kind{
		"7":     KindInteger,
		"-7":    KindSignedInteger,
		"7f":    KindFloat,
		"7.0d":  KindDouble,
		"7.5":   KindNonIntegral,
		"-7e2":  KindSignedNonIntegral,
		"+0.25": KindSignedNonIntegral,
	}

	for text, want := range tests {
		if got := b.Number(text).Child(0).Kind; got != want {
			t.Errorf("Number(%q) class = %v, want %v", text, got, want)
		}
	}
}

func TestBuilder_MatchesParser(t *testing.T) {
	b := NewBuilder()
	built := b.Material("Foo",
		b.Variable("c", b.Value(b.Array(b.Number("1"), b.Number("2.0f")))),
		b.RenderProxies(b.Proxy("P", b.Param("x", b.IndexRef("c", 1)))),
	)

	parsed, err := ParseString(context.Background(),
		`Foo { var c = [1, 2.0f]; RenderProxies { P { x = c[1]; } } }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var want, got bytes.Buffer

	if err := parsed.Print(&want); err != nil {
		t.Fatal(err)
	}

	if err := built.Print(&got); err != nil {
		t.Fatal(err)
	}

	if got.String() != want.String() {
		t.Errorf("built tree =\n%s\nparsed tree =\n%s", got.String(), want.String())
	}
}
