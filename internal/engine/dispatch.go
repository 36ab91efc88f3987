package engine

// Op identifies a public engine operation.
type Op string

const (
	OpIsReady         Op = "is_ready"
	OpListTemplates   Op = "list_templates"
	OpTemplateTheme   Op = "get_template_theme"
	OpEmptyResume     Op = "create_empty_resume"
	OpResumeToJSON    Op = "resume_to_json"
	OpParseJSONResume Op = "parse_json_resume"
	OpParseLinkedIn   Op = "parse_linkedin_export"
	OpParseReactiveV3 Op = "parse_reactive_v3"
)

// Policy describes how one operation routes.
type Policy struct {
	// HasFallback marks operations served by the pure in-process
	// implementation whenever the module is unavailable. Operations
	// without a fallback fail with the not-initialized condition
	// instead of blocking or queuing.
	HasFallback bool
}

// Dispatch is the routing policy for every public operation. The
// asymmetry is deliberate: template data, document construction, and
// serialization are simple enough to mirror in process, while the three
// parsers are format-specific and live only in the module.
var Dispatch = map[Op]Policy{
	OpIsReady:         {HasFallback: true},
	OpListTemplates:   {HasFallback: true},
	OpTemplateTheme:   {HasFallback: true},
	OpEmptyResume:     {HasFallback: true},
	OpResumeToJSON:    {HasFallback: true},
	OpParseJSONResume: {HasFallback: false},
	OpParseLinkedIn:   {HasFallback: false},
	OpParseReactiveV3: {HasFallback: false},
}
