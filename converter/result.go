package converter

// Result holds the output of a conversion.
type Result struct {
	AsciiDoc string    `json:"asciidoc"`
	Body     string    `json:"body"`
	Title    string    `json:"title,omitempty"`
	Author   string    `json:"author,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Renames  []Rename  `json:"renames,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningDroppedElement WarningType = "dropped_element"
	WarningEmptyAnchor    WarningType = "empty_anchor"
	WarningMissingTitle   WarningType = "missing_title"
	// WarningUnresolvedReference is recorded when a link hook cannot resolve a link.
	WarningUnresolvedReference WarningType = "unresolved_reference"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
