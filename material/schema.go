package material

import (
	_ "embed"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ardnew/smf/pkg"
)

// SchemaURL identifies the JSON Schema of exported materials.
const SchemaURL = "https://github.com/ardnew/smf/material.schema.json"

//go:embed material.schema.json
var schemaSource string

// ErrInvalidDocument is returned when a JSON document does not describe a
// material.
var ErrInvalidDocument = pkg.NewError("invalid material document")

//nolint:gochecknoglobals
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(SchemaURL, strings.NewReader(schemaSource)); err != nil {
		return nil, err
	}

	return compiler.Compile(SchemaURL)
})

// Schema returns the JSON Schema document exported materials conform to.
func Schema() string { return schemaSource }

// ValidateJSON checks that r holds one JSON document in the format written
// by [Material.FormatJSON].
func ValidateJSON(r io.Reader) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc any

	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(&doc); err != nil {
		return ErrInvalidDocument.Wrap(err)
	}

	if err := schema.Validate(doc); err != nil {
		return ErrInvalidDocument.Wrap(err)
	}

	return nil
}
