package providers

import "io"

// Options carries per-invocation settings that are not configuration.
type Options struct {
	// LogWriter receives log output; nil means stderr.
	LogWriter io.Writer
	// Apply lets writers modify files. Without it every writer is a dry run.
	Apply bool
}
