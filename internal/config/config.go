// Package config holds the Options a compilation runs with: resolver
// wiring, output formatting, and diagnostic policy. The shape and the
// "fill in defaults the caller left zero" helper are grounded on the
// teacher's internal/config.Options plus its applyOptionDefaults, adapted
// from a JS-bundler's mile-long options struct to the much smaller surface
// spec.md §6 actually calls for.
package config

import (
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/resolver"
	"github.com/go-sass/sassc/internal/value"
)

type OutputStyle uint8

const (
	StyleExpanded OutputStyle = iota
	StyleCompressed
)

// Function is a callback a host registers under a Sass-callable name
// ("my-fn($a, $b)"), the Go-native analog of the reference API's
// "functions" option.
type Function struct {
	Signature string // e.g. "my-fn($a, $b: null)"
	Callback  func(args []value.Value) (value.Value, error)
}

type Options struct {
	// LoadPaths are searched, in order, after the relative importer and
	// the caller's own Importers but before PackageRoots.
	LoadPaths []string

	// Importers are consulted, in order, after the implicit relative
	// importer and before LoadPaths.
	Importers []resolver.Importer

	// PackageRoots maps a "package:" package name to its directory, backing
	// PackageImporter. Left nil when the caller never expects a "package:" URL.
	PackageRoots map[string]string

	Style OutputStyle

	// Charset controls whether a leading @charset/BOM marker is emitted
	// when the generated CSS contains non-ASCII text.
	Charset bool

	Functions []Function

	// SilenceDeprecations lists deprecation IDs (spec.md §7's message IDs)
	// to downgrade to LevelSilent regardless of their default severity.
	SilenceDeprecations []logger.MsgID

	// FatalDeprecations is the inverse: IDs to upgrade to an error.
	FatalDeprecations []logger.MsgID

	// Logger receives every diagnostic raised during the compile
	// (warnings, @debug output, deprecation notices). A nil Logger means
	// "use logger.NewStderrLog with default options", matching the
	// reference API's "if you don't pass one, we pick a sane default"
	// contract.
	Logger *logger.Log

	// QuietDeps suppresses warnings and @debug/@warn output that
	// originates from a dependency (a stylesheet loaded via a load path or
	// a "package:" URL) rather than from the entrypoint's own package.
	QuietDeps bool

	// Alert-level knobs mirroring the reference implementation's notion of
	// verbosity, consulted by internal/evaluator when deciding whether to
	// report a given diagnostic at all.
	Verbose bool
}

// ApplyDefaults fills in the zero-value fields of o that must never
// actually be zero at compile time (in particular, a non-nil Logger),
// returning a new Options rather than mutating the caller's copy —
// mirroring applyOptionDefaults returning a fresh Options value.
func ApplyDefaults(o Options) Options {
	if o.Logger == nil {
		l := logger.NewStderrLog(logger.OutputOptions{})
		o.Logger = &l
	}
	return o
}

// DeprecationLevel resolves the log level a given deprecation ID should be
// reported at, honoring SilenceDeprecations/FatalDeprecations overrides
// before falling back to defaultLevel.
func (o Options) DeprecationLevel(id logger.MsgID, defaultLevel logger.LogLevel) logger.LogLevel {
	for _, silenced := range o.SilenceDeprecations {
		if silenced == id {
			return logger.LevelSilent
		}
	}
	for _, fatal := range o.FatalDeprecations {
		if fatal == id {
			return logger.LevelError
		}
	}
	return defaultLevel
}
