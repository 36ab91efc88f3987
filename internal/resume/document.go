// Package resume defines the resume document value and its canonical
// JSON encoding. Everything here is pure data transformation with no
// dependency on the wasm module; the same code backs both readiness
// states of the engine.
package resume

import (
	"encoding/json"

	"github.com/openresume/engine/internal/registry"
)

// Required section keys. Parsed and factory-built documents always carry
// these four; additional keys are allowed and preserved.
const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
)

// RequiredSections lists the section keys every document must carry.
func RequiredSections() []string {
	return []string{SectionSummary, SectionExperience, SectionEducation, SectionSkills}
}

// Basics holds the identity fields of a resume.
type Basics struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	URL      string `json:"url" validate:"omitempty,url"`
	Picture  string `json:"picture"`
}

// Section is one titled block of the document. Item payloads differ per
// section kind and are kept opaque; presentation code interprets them.
type Section struct {
	Name    string            `json:"name"`
	Visible bool              `json:"visible"`
	Items   []json.RawMessage `json:"items"`
}

// Typography holds the font settings of a document.
type Typography struct {
	Family     string  `json:"family"`
	Size       float64 `json:"size"`
	LineHeight float64 `json:"lineHeight"`
}

// Page holds the page layout settings of a document.
type Page struct {
	Format string `json:"format"`
	Margin int    `json:"margin"`
}

// Metadata holds presentation settings. Template must name a registry
// entry.
type Metadata struct {
	Template   string         `json:"template" validate:"required"`
	Theme      registry.Theme `json:"theme"`
	Typography Typography     `json:"typography"`
	Page       Page           `json:"page"`
}

// Document is the resume value. Documents are owned by callers; the
// engine holds no document state.
type Document struct {
	Basics   Basics             `json:"basics"`
	Sections map[string]Section `json:"sections" validate:"required"`
	Metadata Metadata           `json:"metadata"`
}

// NewDocument builds a schema-valid default document: empty basics, the
// four required sections with no items, and metadata pointing at the
// first catalog entry with its theme and the stock typography and page
// settings.
func NewDocument() Document {
	template := registry.Default()
	theme, _ := registry.ThemeOf(template)

	sections := map[string]Section{
		SectionSummary:    emptySection("Summary"),
		SectionExperience: emptySection("Experience"),
		SectionEducation:  emptySection("Education"),
		SectionSkills:     emptySection("Skills"),
	}

	return Document{
		Basics:   Basics{},
		Sections: sections,
		Metadata: Metadata{
			Template: template,
			Theme:    theme,
			Typography: Typography{
				Family:     "IBM Plex Serif",
				Size:       14,
				LineHeight: 1.5,
			},
			Page: Page{
				Format: "a4",
				Margin: 18,
			},
		},
	}
}

func emptySection(name string) Section {
	return Section{
		Name:    name,
		Visible: true,
		Items:   []json.RawMessage{},
	}
}
