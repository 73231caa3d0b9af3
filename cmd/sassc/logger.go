package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/go-sass/sassc/pkg/api"
)

// charmLogger adapts a charmbracelet/log.Logger to pkg/api.Logger: a
// "@warn"/deprecation notice becomes a Warn-level line, "@debug" output
// becomes Debug-level, matching spec.md §6's logger option in the CLI.
type charmLogger struct {
	log *charmlog.Logger
}

var _ api.Logger = (*charmLogger)(nil)

func newCLILogger(verbose bool) *charmLogger {
	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: false,
		Prefix:          "sassc",
	})
	if verbose {
		l.SetLevel(charmlog.DebugLevel)
	}
	return &charmLogger{log: l}
}

func (c *charmLogger) Warn(message string, deprecation bool) {
	if deprecation {
		c.log.Warn(message, "kind", "deprecation")
		return
	}
	c.log.Warn(message)
}

func (c *charmLogger) Debug(message string) {
	c.log.Debug(message)
}
