package model

// Options configures the behaviour of the Parser. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// Labeler derives a label when a field omits one. The default returns the
	// field name verbatim; HumanizeLabel is available for friendlier output.
	Labeler func(string) string
}

func defaultOptions() Options {
	return Options{
		Labeler: func(name string) string { return name },
	}
}
