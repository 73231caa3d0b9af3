// Package api is the library entry point for embedding the compiler in a
// host program. It is intended for integrating sassc into other tools the
// same way esbuild's pkg/api is meant to be embedded rather than shelled
// out to.
//
// Sync API
//
// Compile and CompileString run a compilation to completion on the calling
// goroutine and return once it has finished. Use these when every Importer
// passed in Options only does in-memory or otherwise non-blocking work.
//
// Example usage:
//
//     package main
//
//     import (
//         "fmt"
//
//         "github.com/go-sass/sassc/pkg/api"
//     )
//
//     func main() {
//         result := api.Compile("input.scss", api.Options{
//             Style: api.StyleCompressed,
//         })
//
//         fmt.Printf("%d errors and %d warnings\n",
//             len(result.Errors), len(result.Warnings))
//
//         fmt.Println(result.CSS)
//     }
//
// Async API
//
// CompileAsync and CompileStringAsync run the same compilation on a
// separate goroutine and hand the result back over a channel, for hosts
// whose Importers or Functions do real I/O and must not block the caller.
package api

import (
	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/resolver"
	"github.com/go-sass/sassc/internal/value"
)

// Syntax names the surface syntax an entrypoint or in-memory source is
// written in.
type Syntax uint8

const (
	SyntaxSCSS Syntax = iota
	SyntaxIndented
	SyntaxCSS
)

// OutputStyle selects the generated CSS's formatting.
type OutputStyle uint8

const (
	StyleExpanded OutputStyle = iota
	StyleCompressed
)

// Charset selects whether a leading "@charset"/BOM marker is considered at
// all. CharsetDefault (the zero value) behaves as "true": a marker is
// emitted when, and only when, the output actually contains non-ASCII
// text. This mirrors the teacher's SourceMap-style enum convention (a
// meaningful zero value) rather than a bool that cannot distinguish
// "caller left this unset" from "caller explicitly disabled it".
type Charset uint8

const (
	CharsetDefault Charset = iota
	CharsetEnabled
	CharsetDisabled
)

// Importer is the contract a host implements to participate in the
// resolver chain (spec.md §6 "Importer contract"): Canonicalize turns a
// "@use"/"@forward"/"@import" URL plus the identifier of the file it
// appeared in into a canonical Identifier, and Load reads the stylesheet
// text and syntax a canonical Identifier refers to.
type Importer = resolver.Importer

// Identifier is a canonical, resolved stylesheet reference, as returned by
// an Importer and reported back in Result.LoadedURLs.
type Identifier = ast.Identifier

// FunctionCallback is a user-defined SassScript-callable function body.
type FunctionCallback func(args []value.Value) (value.Value, error)

// Function registers a callback under a Sass-callable signature
// ("my-fn($a, $b: null)"), the Go-native analog of the reference
// implementation's "functions" option entries.
type Function struct {
	Signature string
	Callback  FunctionCallback
}

// Options controls a single compilation. The zero value is a usable
// default: no extra importers, no load paths, expanded output style, and
// charset detection left on.
type Options struct {
	// Importers are consulted, in order, after the implicit relative
	// importer and before LoadPaths.
	Importers []Importer

	// LoadPaths are searched, in order, after Importers but before
	// PackageConfig, each wrapped as a filesystem importer over its own
	// directory.
	LoadPaths []string

	// PackageConfig maps a "package:" package name to the directory its
	// stylesheets live under.
	PackageConfig map[string]string

	// Importer is the resolver a string entrypoint (CompileString) is
	// considered to have been loaded through, consulted for any relative
	// "@use"/"@import" inside that string. Left nil, a bare-text
	// entrypoint cannot resolve relative loads at all.
	Importer Importer

	// URL is the identifier a string entrypoint (CompileString) is known
	// by; it appears in Result.LoadedURLs iff set.
	URL string

	// Syntax is the surface syntax a string entrypoint is parsed as.
	Syntax Syntax

	Style   OutputStyle
	Charset Charset

	// SilenceDeprecations lists deprecation tags (spec.md §7) to downgrade
	// to silent regardless of their default severity.
	SilenceDeprecations []string

	// FatalDeprecations is the inverse: tags to upgrade to a hard error.
	FatalDeprecations []string

	Functions []Function

	// Logger receives every diagnostic raised during the compile. A nil
	// Logger discards everything but still surfaces it through
	// Result.Errors/Result.Warnings.
	Logger Logger

	QuietDeps bool
	Verbose   bool
}

// Logger is the sink Options.Logger implements: one method per message
// kind, mirroring the reference implementation's "logger" option.
type Logger interface {
	Warn(message string, deprecation bool)
	Debug(message string)
}

// DiscardLogger is the concrete logger a caller can wire in explicitly to
// document "I want diagnostics in Result.Warnings only, nothing printed" —
// equivalent to Options.Logger's nil zero value, spelled out for callers
// who find an explicit value clearer than an implicit one.
type DiscardLogger struct{}

var _ Logger = DiscardLogger{}

func (DiscardLogger) Warn(string, bool) {}
func (DiscardLogger) Debug(string)      {}

// Result is the outcome of a compilation: the generated CSS, the ordered
// set of every canonical identifier that was loaded (spec.md §6's
// loadedUrls), and any diagnostics raised along the way.
type Result struct {
	CSS        string
	LoadedURLs []string

	Errors   []Message
	Warnings []Message
}

// Location names a span inside one source file, used to point a Message
// at the input that caused it.
type Location struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

// Message is one diagnostic: a parse error, a runtime SassScript error, a
// resolver failure, or a deprecation warning, plus the Sass call stack
// that was active when it was raised (innermost frame first), if any.
type Message struct {
	Text     string
	Location *Location
	Frames   []StackFrame
}

// StackFrame names one entry of a runtime error's Sass stack trace.
type StackFrame struct {
	FrameName string
	Location  *Location
}

// Compile reads path as an entrypoint, evaluates it and every module it
// loads, and returns the generated CSS plus any diagnostics. It is the
// synchronous entry point named in spec.md §6.
func Compile(path string, options Options) Result {
	return compileImpl(path, options)
}

// CompileString compiles source directly rather than reading it from an
// Importer, using options.Syntax/options.Importer/options.URL to give it a
// syntax, a relative-load resolver, and a reportable identifier.
func CompileString(source string, options Options) Result {
	return compileStringImpl(source, options)
}

// CompileToResult is identical to Compile; it exists under this name
// because spec.md §6 names "compile" and "compileToResult" as distinct
// entry points in the language-neutral original (a bare-CSS-string
// variant versus a structured-result variant) and Go's single Result type
// already carries everything both would, collapsing the two signatures
// spec.md describes into the one exported here.
func CompileToResult(path string, options Options) Result {
	return compileImpl(path, options)
}

// CompileStringToResult is CompileString under the spec's
// "...ToResult" name, for the same reason as CompileToResult.
func CompileStringToResult(source string, options Options) Result {
	return compileStringImpl(source, options)
}

// CompileAsync runs Compile on a separate goroutine, for callers whose
// Importers or Functions perform blocking I/O and must not stall the
// caller's goroutine across a resolver or callable suspension point
// (spec.md §5).
func CompileAsync(path string, options Options) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		out <- compileImpl(path, options)
	}()
	return out
}

// CompileStringAsync is CompileString's async counterpart.
func CompileStringAsync(source string, options Options) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		out <- compileStringImpl(source, options)
	}()
	return out
}
