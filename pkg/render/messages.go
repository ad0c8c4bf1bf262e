package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-plantillas/pkg/model"
)

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// ErrMissingTranslation is returned by MapTranslator for unknown keys.
var ErrMissingTranslation = errors.New("render: missing translation")

// MapTranslator serves translations from locale -> key -> message tables.
type MapTranslator map[string]map[string]string

func (m MapTranslator) Translate(locale, key string, _ ...any) (string, error) {
	if msg, ok := m[locale][key]; ok {
		return msg, nil
	}
	return "", ErrMissingTranslation
}

// Message keys for chrome strings.
const (
	MsgLoadingOptions = "form.select.loading"
	MsgSelectPrompt   = "form.select.prompt"
	MsgSave           = "form.actions.save"
	MsgCancel         = "form.actions.cancel"
	MsgEmpty          = "form.empty"
	MsgRequired       = "form.field.required"
)

// LoadingOptionsLabel is the placeholder shown while a select loads.
const LoadingOptionsLabel = "Cargando opciones..."

var defaultMessages = map[string]string{
	MsgLoadingOptions: LoadingOptionsLabel,
	MsgSelectPrompt:   "Seleccione una opción",
	MsgSave:           "Guardar",
	MsgCancel:         "Cancelar",
	MsgEmpty:          "Esta plantilla no tiene campos configurados.",
	MsgRequired:       "Obligatorio",
}

var typeBadges = map[model.FieldType]string{
	model.FieldTypeText:     "Texto",
	model.FieldTypeTextarea: "Texto largo",
	model.FieldTypeDate:     "Fecha",
	model.FieldTypeSelect:   "Selección",
	model.FieldTypeCheckbox: "Casilla",
	model.FieldTypeNumber:   "Número",
	model.FieldTypeEmail:    "Email",
}

// Chrome holds the localised strings a renderer needs besides field data.
type Chrome struct {
	Loading  string
	Prompt   string
	Save     string
	Cancel   string
	Empty    string
	Required string
}

func buildChrome(opts RenderOptions) Chrome {
	return Chrome{
		Loading:  message(opts, MsgLoadingOptions),
		Prompt:   message(opts, MsgSelectPrompt),
		Save:     message(opts, MsgSave),
		Cancel:   message(opts, MsgCancel),
		Empty:    message(opts, MsgEmpty),
		Required: message(opts, MsgRequired),
	}
}

func message(opts RenderOptions, key string) string {
	fallback := defaultMessages[key]
	if opts.Translator == nil {
		return fallback
	}
	translated, err := opts.Translator.Translate(opts.Locale, key)
	if err != nil || strings.TrimSpace(translated) == "" {
		return fallback
	}
	return translated
}

// TypeBadge returns the display name of a field type.
func TypeBadge(kind model.FieldType) string {
	if badge, ok := typeBadges[kind]; ok {
		return badge
	}
	return typeBadges[model.FieldTypeText]
}
