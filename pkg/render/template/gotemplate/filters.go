package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerBuiltinFilters() {
	builtins := map[string]pongo2.FilterFunction{
		"trim":      filterTrim,
		"cssvalue":  filterCSSValue,
		"joinclass": filterJoinClass,
	}
	for name, fn := range builtins {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterCSSValue strips characters that could close a style declaration.
func filterCSSValue(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\'', '\\':
			return -1
		}
		return r
	}, in.String())
	return pongo2.AsValue(strings.TrimSpace(cleaned)), nil
}

// filterJoinClass appends param to a class list, skipping blanks.
func filterJoinClass(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	parts := strings.Fields(in.String())
	if param != nil {
		parts = append(parts, strings.Fields(param.String())...)
	}
	return pongo2.AsValue(strings.Join(parts, " ")), nil
}
