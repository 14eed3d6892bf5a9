package fields

// FieldType enumerates the input kinds a card can collect. Statement is the
// one non-input kind: a display-only card synthesized from statement nodes.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeEmail     FieldType = "email"
	FieldTypePhone     FieldType = "phone"
	FieldTypeNumber    FieldType = "number"
	FieldTypeDate      FieldType = "date"
	FieldTypeTextarea  FieldType = "textarea"
	FieldTypeSelect    FieldType = "select"
	FieldTypeRadio     FieldType = "radio"
	FieldTypeCheckbox  FieldType = "checkbox"
	FieldTypeStatement FieldType = "statement"
)

// InputTypes lists every kind accepted on a question card. Statement is
// excluded: statement content lives on statement nodes, not question nodes.
func InputTypes() []FieldType {
	return []FieldType{
		FieldTypeText, FieldTypeEmail, FieldTypePhone, FieldTypeNumber,
		FieldTypeDate, FieldTypeTextarea, FieldTypeSelect, FieldTypeRadio,
		FieldTypeCheckbox,
	}
}

// IsInputType reports whether t is a valid question-card input kind.
func IsInputType(t FieldType) bool {
	for _, known := range InputTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether t is an option-bearing kind.
func HasOptions(t FieldType) bool {
	return t == FieldTypeSelect || t == FieldTypeRadio || t == FieldTypeCheckbox
}

// Media attaches an image or video to a card.
type Media struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Field is the full definition of one entry in the linear field schema. For
// question cards it is the authoritative input definition; for statement
// cards Label carries the statement text and Placeholder the display label.
type Field struct {
	ID          string    `json:"id" yaml:"id"`
	Type        FieldType `json:"type" yaml:"type"`
	Label       string    `json:"label" yaml:"label"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool      `json:"required" yaml:"required"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	// DisplayIf holds a boolean expression over prior answers; empty means
	// always shown. Evaluated by pkg/condition at fill time.
	DisplayIf string `json:"displayIf,omitempty" yaml:"displayIf,omitempty"`
	// Piping enables {{ answers.<id> }} substitution in Label and Placeholder.
	Piping bool   `json:"piping,omitempty" yaml:"piping,omitempty"`
	Media  *Media `json:"media,omitempty" yaml:"media,omitempty"`
}

// Clone returns a deep copy so callers can hand fields across graph
// operations without aliasing Options or Media.
func (f Field) Clone() Field {
	out := f
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	if f.Media != nil {
		media := *f.Media
		out.Media = &media
	}
	return out
}
