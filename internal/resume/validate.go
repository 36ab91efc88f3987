package resume

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/openresume/engine/internal/registry"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// InvalidDocumentError reports a document that violates a structural
// invariant after decoding.
type InvalidDocumentError struct {
	Field   string
	Message string
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid document: %s: %s", e.Field, e.Message)
}

// Validate checks the structural invariants of a document: field-level
// constraints from the struct tags, the presence of every required
// section key, and a template identifier known to the catalog.
func Validate(doc Document) error {
	if err := validate.Struct(doc); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &InvalidDocumentError{
				Field:   errs[0].Namespace(),
				Message: errs[0].Tag(),
			}
		}
		return err
	}

	for _, key := range RequiredSections() {
		if _, ok := doc.Sections[key]; !ok {
			return &InvalidDocumentError{
				Field:   "sections." + key,
				Message: "required section is missing",
			}
		}
	}

	if _, ok := registry.ThemeOf(doc.Metadata.Template); !ok {
		return &InvalidDocumentError{
			Field:   "metadata.template",
			Message: fmt.Sprintf("unknown template %q", doc.Metadata.Template),
		}
	}

	return nil
}
