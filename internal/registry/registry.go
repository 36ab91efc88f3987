// Package registry holds the static template catalog.
//
// The catalog is pure data. It is served in-process regardless of whether
// the wasm module loaded, and any template data the module itself carries
// must agree with this table.
package registry

// Theme holds the three semantic colors of a template.
type Theme struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Primary    string `json:"primary"`
}

// names lists the template identifiers in their public display order.
// The order is a contract: consumers render pickers in this order.
var names = [...]string{
	"rhyhorn",
	"azurill",
	"pikachu",
	"nosepass",
	"bronzor",
	"chikorita",
	"ditto",
	"gengar",
	"glalie",
	"kakuna",
	"leafish",
	"onyx",
}

var themes = map[string]Theme{
	"rhyhorn":   {Background: "#ffffff", Text: "#000000", Primary: "#475569"},
	"azurill":   {Background: "#ffffff", Text: "#000000", Primary: "#0284c7"},
	"pikachu":   {Background: "#ffffff", Text: "#000000", Primary: "#ca8a04"},
	"nosepass":  {Background: "#ffffff", Text: "#000000", Primary: "#dc2626"},
	"bronzor":   {Background: "#ffffff", Text: "#000000", Primary: "#78716c"},
	"chikorita": {Background: "#ffffff", Text: "#000000", Primary: "#16a34a"},
	"ditto":     {Background: "#ffffff", Text: "#000000", Primary: "#7c3aed"},
	"gengar":    {Background: "#ffffff", Text: "#000000", Primary: "#6d28d9"},
	"glalie":    {Background: "#ffffff", Text: "#000000", Primary: "#0891b2"},
	"kakuna":    {Background: "#ffffff", Text: "#000000", Primary: "#d97706"},
	"leafish":   {Background: "#ffffff", Text: "#000000", Primary: "#15803d"},
	"onyx":      {Background: "#ffffff", Text: "#000000", Primary: "#1e293b"},
}

// Names returns the template identifiers in display order.
// The returned slice is a copy; callers may mutate it freely.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names[:])
	return out
}

// ThemeOf returns the theme for a template identifier.
// Unknown identifiers report ok == false rather than an error, because
// callers probe for presence.
func ThemeOf(name string) (Theme, bool) {
	theme, ok := themes[name]
	return theme, ok
}

// Default returns the identifier new documents start with.
func Default() string {
	return names[0]
}

// Count returns the number of catalog entries.
func Count() int {
	return len(names)
}
