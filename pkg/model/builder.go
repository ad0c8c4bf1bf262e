package model

import (
	"github.com/goliatone/go-plantillas/internal/model"
)

// Parser converts untrusted schema documents into form structures.
type Parser interface {
	Parse(raw any) FormStructure
	ParseJSON(data []byte) (FormStructure, error)
	ParseYAML(data []byte) (FormStructure, error)
}

// ParserOption configures the parser behaviour.
type ParserOption func(*parserOptions)

type parserOptions struct {
	labeler func(string) string
}

// WithLabeler overrides how labels are derived for fields that omit one.
func WithLabeler(labeler func(string) string) ParserOption {
	return func(opts *parserOptions) {
		opts.labeler = labeler
	}
}

// NewParser returns a Parser backed by the internal implementation.
func NewParser(options ...ParserOption) Parser {
	cfg := parserOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	return model.New(internalOpts)
}

// Parse normalises a decoded schema with the default parser.
func Parse(raw any) FormStructure {
	return model.New(model.Options{}).Parse(raw)
}

// ParseJSON decodes and normalises a JSON schema with the default parser.
func ParseJSON(data []byte) (FormStructure, error) {
	return model.New(model.Options{}).ParseJSON(data)
}

// ParseYAML decodes and normalises a YAML schema with the default parser.
func ParseYAML(data []byte) (FormStructure, error) {
	return model.New(model.Options{}).ParseYAML(data)
}
