package vanilla

import (
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-plantillas/pkg/model"
	rendertemplate "github.com/goliatone/go-plantillas/pkg/render/template"
	"github.com/goliatone/go-plantillas/pkg/renderers/vanilla/components"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	overrides        map[string]components.Descriptor
	icons            IconSet
	classes          Classes
	assetBase        string
	stylesheet       string
	inlineStyles     bool
	catalogEndpoint  string
	logger           logrus.FieldLogger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the widget component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithComponents registers descriptors over a copy of the component
// registry, leaving the registry passed to WithComponentRegistry untouched.
func WithComponents(descriptors map[string]components.Descriptor) Option {
	return func(cfg *config) {
		if len(descriptors) == 0 {
			return
		}
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]components.Descriptor, len(descriptors))
		}
		for name, descriptor := range descriptors {
			cfg.overrides[name] = descriptor
		}
	}
}

// WithIcons overrides section icons. Markup is sanitized down to SVG.
func WithIcons(icons map[model.Icon]string) Option {
	return func(cfg *config) {
		for icon, markup := range icons {
			if cleaned := SanitizeIcon(markup); cleaned != "" {
				cfg.icons[icon] = cleaned
			}
		}
	}
}

// WithClasses overrides chrome classes. Empty entries keep the defaults.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes.withDefaults()
	}
}

// WithAssetBase sets the URL prefix for embedded assets when no theme
// resolves them.
func WithAssetBase(prefix string) Option {
	return func(cfg *config) {
		cfg.assetBase = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithStylesheet links href instead of inlining the embedded stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
		cfg.inlineStyles = false
	}
}

// WithoutStyles renders no stylesheet at all.
func WithoutStyles() Option {
	return func(cfg *config) {
		cfg.stylesheet = ""
		cfg.inlineStyles = false
	}
}

// WithCatalogEndpoint enables the browser script that loads database select
// options. The pattern must contain "{table}".
func WithCatalogEndpoint(pattern string) Option {
	return func(cfg *config) {
		cfg.catalogEndpoint = strings.TrimSpace(pattern)
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
