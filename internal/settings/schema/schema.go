package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type SchemaType int

const (
	SchemaTypeSettings SchemaType = iota
	SchemaTypeDraft
)

var ErrSchemaNotFound = errors.New("schema not found")

// ValidationError lists the schema violations of a document.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %s", strings.Join(e.Errors, "; "))
}

type Schema struct {
	schemas map[SchemaType]*gojsonschema.Schema
}

//go:embed response-settings.json
var settingsResponse json.RawMessage

//go:embed request-draft.json
var draftRequest json.RawMessage

func New() (*Schema, error) {
	settingsSchema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(settingsResponse))
	if err != nil {
		return nil, fmt.Errorf("load settings schema: %w", err)
	}

	draftSchema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(draftRequest))
	if err != nil {
		return nil, fmt.Errorf("load draft schema: %w", err)
	}

	return &Schema{
		schemas: map[SchemaType]*gojsonschema.Schema{
			SchemaTypeSettings: settingsSchema,
			SchemaTypeDraft:    draftSchema,
		},
	}, nil
}

// Validate validates a raw json document. A *ValidationError is returned if
// the document does not satisfy the schema.
func (s *Schema) Validate(schemaType SchemaType, data []byte) error {
	schema, ok := s.schemas[schemaType]
	if !ok {
		return ErrSchemaNotFound
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}

	return &ValidationError{Errors: violations}
}
