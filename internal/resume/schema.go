package resume

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// SchemaError reports a document that failed JSON Schema validation,
// with one entry per violated field.
type SchemaError struct {
	Errors []FieldError
}

// FieldError is a single schema violation at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:\n")
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}

// ValidateJSON checks raw document text against the embedded canonical
// schema. A malformed JSON payload is reported as a plain error; a
// well-formed payload that violates the schema yields a *SchemaError.
func ValidateJSON(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation could not run: %w", err)
	}

	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return schemaErr
}
