package model

// FieldType enumerates the input kinds a plantilla field can declare.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeNumber   FieldType = "number"
	FieldTypeEmail    FieldType = "email"
)

// DataSource tells the renderer where a field's options come from.
type DataSource string

const (
	DataSourceStatic   DataSource = "static"
	DataSourceDatabase DataSource = "database"
)

// Icon is the symbolic icon key attached to a section.
type Icon string

const (
	IconDefault   Icon = "file"
	IconUser      Icon = "user"
	IconBuilding  Icon = "building"
	IconBriefcase Icon = "briefcase"
	IconCalendar  Icon = "calendar"
	IconMapPin    Icon = "map-pin"
	IconPhone     Icon = "phone"
	IconMail      Icon = "mail"
	IconHeart     Icon = "heart"
	IconShield    Icon = "shield"
	IconClipboard Icon = "clipboard"
	IconSettings  Icon = "settings"
)

const (
	// CandidateTypesCatalog names the candidate-type catalog; it doubles as the
	// legacy sentinel value of the options/opciones attribute.
	CandidateTypesCatalog = "tipos_candidatos"

	defaultProjectionField = "nombre"
	placeholderPrefix      = "Ingrese "
	sectionTitlePrefix     = "Sección "
)

// Option is a static select entry after label/value projection.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field is the normalised, immutable description of one form input.
type Field struct {
	Name               string     `json:"name"`
	Label              string     `json:"label"`
	Type               FieldType  `json:"type"`
	Required           bool       `json:"required"`
	Placeholder        string     `json:"placeholder,omitempty"`
	DataSource         DataSource `json:"dataSource"`
	DatabaseTable      string     `json:"databaseTable,omitempty"`
	DatabaseField      string     `json:"databaseField,omitempty"`
	DatabaseValueField string     `json:"databaseValueField,omitempty"`
	Options            []Option   `json:"opciones,omitempty"`
	LegacyCatalog      bool       `json:"legacyCatalog,omitempty"`
	MinLength          *int       `json:"minLength,omitempty"`
	MinDays            *int       `json:"diasMinimos,omitempty"`
	Width              any        `json:"colspan,omitempty"`
	Validation         string     `json:"validacion,omitempty"`
	Order              int        `json:"order,omitempty"`
}

// Section groups fields under a title and icon.
type Section struct {
	Title  string  `json:"titulo"`
	Icon   Icon    `json:"icono"`
	Fields []Field `json:"campos"`
}

// FormStructure is the parsed schema that drives rendering and validation.
// Exactly one of Sections or Fields is populated.
type FormStructure struct {
	Sections []Section `json:"secciones,omitempty"`
	Fields   []Field   `json:"campos,omitempty"`
}

// Empty reports whether no structure is configured.
func (s FormStructure) Empty() bool {
	return len(s.Sections) == 0 && len(s.Fields) == 0
}

// Legacy reports whether the structure uses the flat field list.
func (s FormStructure) Legacy() bool {
	return len(s.Sections) == 0 && len(s.Fields) > 0
}

// AllFields flattens the structure in visual order: sections first, then
// fields within each section.
func (s FormStructure) AllFields() []Field {
	if len(s.Sections) == 0 {
		return append([]Field(nil), s.Fields...)
	}
	var out []Field
	for _, section := range s.Sections {
		out = append(out, section.Fields...)
	}
	return out
}

// IsDatabase reports whether the field resolves its options externally.
func (f Field) IsDatabase() bool {
	return f.DataSource == DataSourceDatabase
}

// knownIcons backs the section icon fallback.
var knownIcons = map[Icon]struct{}{
	IconDefault:   {},
	IconUser:      {},
	IconBuilding:  {},
	IconBriefcase: {},
	IconCalendar:  {},
	IconMapPin:    {},
	IconPhone:     {},
	IconMail:      {},
	IconHeart:     {},
	IconShield:    {},
	IconClipboard: {},
	IconSettings:  {},
}

// KnownIcon reports whether icon belongs to the supported set.
func KnownIcon(icon Icon) bool {
	_, ok := knownIcons[icon]
	return ok
}

func normalizeFieldType(raw string) FieldType {
	switch FieldType(raw) {
	case FieldTypeText, FieldTypeTextarea, FieldTypeDate, FieldTypeSelect,
		FieldTypeCheckbox, FieldTypeNumber, FieldTypeEmail:
		return FieldType(raw)
	default:
		return FieldTypeText
	}
}
