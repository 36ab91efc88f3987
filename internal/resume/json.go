package resume

import (
	"encoding/json"
	"fmt"
)

// ToJSON encodes a document into its canonical text form. The encoding
// and FromJSON are mutually inverse for any document built by
// NewDocument or returned by the module's parsers.
func ToJSON(doc Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

// FromJSON decodes the canonical text form back into a document.
// Missing sections maps are normalized to empty so callers never see a
// nil map.
func FromJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.Sections == nil {
		doc.Sections = map[string]Section{}
	}
	return doc, nil
}
