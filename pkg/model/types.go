package model

import internalmodel "github.com/goliatone/go-plantillas/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeSelect   = internalmodel.FieldTypeSelect
	FieldTypeCheckbox = internalmodel.FieldTypeCheckbox
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeEmail    = internalmodel.FieldTypeEmail
)

// DataSource re-exports the option source enumeration.
type DataSource = internalmodel.DataSource

const (
	DataSourceStatic   = internalmodel.DataSourceStatic
	DataSourceDatabase = internalmodel.DataSourceDatabase
)

// Icon re-exports the section icon enumeration.
type Icon = internalmodel.Icon

const (
	IconDefault   = internalmodel.IconDefault
	IconUser      = internalmodel.IconUser
	IconBuilding  = internalmodel.IconBuilding
	IconBriefcase = internalmodel.IconBriefcase
	IconCalendar  = internalmodel.IconCalendar
	IconMapPin    = internalmodel.IconMapPin
	IconPhone     = internalmodel.IconPhone
	IconMail      = internalmodel.IconMail
	IconHeart     = internalmodel.IconHeart
	IconShield    = internalmodel.IconShield
	IconClipboard = internalmodel.IconClipboard
	IconSettings  = internalmodel.IconSettings
)

// CandidateTypesCatalog names the candidate-type catalog.
const CandidateTypesCatalog = internalmodel.CandidateTypesCatalog

type Option = internalmodel.Option
type Field = internalmodel.Field
type Section = internalmodel.Section
type FormStructure = internalmodel.FormStructure

// KnownIcon reports whether icon belongs to the supported icon set.
func KnownIcon(icon Icon) bool {
	return internalmodel.KnownIcon(icon)
}

// Check reports duplicate field names or a structure without fields.
func Check(structure FormStructure) error {
	return internalmodel.Check(structure)
}

// IsEmptyStructure reports whether err was produced by Check for a structure
// with no fields.
func IsEmptyStructure(err error) bool {
	return internalmodel.IsEmptyStructure(err)
}

// IntValue coerces a JSON/YAML scalar into an int.
func IntValue(value any) (int, bool) {
	return internalmodel.IntValue(value)
}

// StringValue returns the display form of a scalar value.
func StringValue(value any) string {
	text, _ := internalmodel.CanonicalizeValue(value)
	return text
}

// HumanizeLabel converts identifiers such as "fecha_ingreso" into labels.
func HumanizeLabel(name string) string {
	return internalmodel.HumanizeLabel(name)
}
