package catalog

import (
	"io"

	"github.com/sirupsen/logrus"
)

// ResolverOption configures resolvers.
type ResolverOption func(*config)

type config struct {
	logger   logrus.FieldLogger
	onUpdate func(table string)
}

func newConfig(opts ...ResolverOption) config {
	cfg := config{logger: discardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLogger sets the logger used to report fetch failures.
func WithLogger(logger logrus.FieldLogger) ResolverOption {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOnUpdate registers a callback invoked after a background fetch settles
// for table. It is never invoked after Close.
func WithOnUpdate(fn func(table string)) ResolverOption {
	return func(c *config) {
		c.onUpdate = fn
	}
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
