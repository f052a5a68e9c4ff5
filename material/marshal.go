package material

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
)

// ToMap converts the material to a document of native Go maps, slices and
// scalars. Every value records its type next to its payload so the
// document can be told apart from a plain dictionary:
//
//	{
//	  "shader": "Foo",
//	  "variables": {"a": {"type": "INTEGER", "value": 3}},
//	  "setup_proxies": [
//	    {"name": "Init", "parameters": {"x": {"kind": "variable", "name": "a"}}}
//	  ],
//	  "render_proxies": []
//	}
func (m *Material) ToMap() map[string]any {
	vars := make(map[string]any, len(m.Variables))
	for name, v := range m.Variables {
		vars[name] = valueDoc(v)
	}

	return map[string]any{
		"shader":         m.Shader,
		"variables":      vars,
		"setup_proxies":  proxyDocs(m.Setup),
		"render_proxies": proxyDocs(m.Render),
	}
}

func valueDoc(v Value) map[string]any {
	if v == nil {
		v = None{}
	}

	return map[string]any{
		"type":  v.Kind().String(),
		"value": Native(v),
	}
}

func proxyDocs(proxies []Proxy) []any {
	docs := make([]any, 0, len(proxies))

	for _, p := range proxies {
		params := make(map[string]any, len(p.Parameters))
		for name, ref := range p.Parameters {
			params[name] = refDoc(ref)
		}

		docs = append(docs, map[string]any{
			"name":       p.Name,
			"parameters": params,
		})
	}

	return docs
}

func refDoc(r Reference) map[string]any {
	doc := map[string]any{"kind": r.Kind.String()}

	switch r.Kind {
	case RefLiteral:
		doc["value"] = valueDoc(r.Literal)
	case RefVariable:
		doc["name"] = r.Name
	case RefArrayIndex:
		doc["name"] = r.Name
		doc["index"] = r.Index
	}

	return doc
}

// MarshalJSON implements json.Marshaler for Material.
func (m *Material) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}

// MarshalBinary encodes the material as canonical CBOR (RFC 8949 core
// deterministic encoding), so equal materials encode to equal bytes.
func (m *Material) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}

	return encMode.Marshal(m.ToMap())
}

// FormatJSON writes the material as JSON to the writer.
func (m *Material) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(m, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(m)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the material as YAML to the writer.
func (m *Material) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, m.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)

	return err
}

// FormatCBOR writes the canonical CBOR encoding of the material.
func (m *Material) FormatCBOR(_ context.Context, w io.Writer) error {
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
