package api

// This file implements the synchronous and asynchronous entry points:
// resolving an entrypoint against the real filesystem (or, for
// CompileString, registering its text as an in-memory importer target),
// wiring a Loader and evaluator.Context to it, and turning the result
// (or any diagnostics raised along the way) into a Result.

import (
	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/config"
	"github.com/go-sass/sassc/internal/css"
	"github.com/go-sass/sassc/internal/evaluator"
	internalfs "github.com/go-sass/sassc/internal/fs"
	"github.com/go-sass/sassc/internal/loader"
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/resolver"
)

// buildChain assembles the four-stage resolver chain a compilation runs
// its @use/@forward/@import targets through: relative-to-current-file,
// then the caller's own Importers, then LoadPaths, then PackageConfig.
func buildChain(fsys internalfs.FS, options Options) resolver.Chain {
	relative := &resolver.FilesystemImporter{FS: fsys}

	var loadPaths resolver.Importer
	if len(options.LoadPaths) > 0 {
		loadPaths = &resolver.FilesystemImporter{FS: fsys, LoadPaths: options.LoadPaths}
	}

	var packageImporter resolver.Importer
	if len(options.PackageConfig) > 0 {
		packageImporter = &resolver.PackageImporter{FS: fsys, Roots: options.PackageConfig}
	}

	return resolver.BuildChain(relative, options.Importers, loadPaths, packageImporter)
}

func buildConfigOptions(options Options, log logger.Log) config.Options {
	cfg := config.Options{
		LoadPaths:    options.LoadPaths,
		Importers:    options.Importers,
		PackageRoots: options.PackageConfig,
		Charset:      options.Charset != CharsetDisabled,
		QuietDeps:    options.QuietDeps,
		Verbose:      options.Verbose,
		Logger:       &log,
	}
	switch options.Style {
	case StyleCompressed:
		cfg.Style = config.StyleCompressed
	default:
		cfg.Style = config.StyleExpanded
	}

	silence := map[logger.MsgID]logger.LogLevel{}
	for _, tag := range options.SilenceDeprecations {
		logger.StringToMsgIDs(tag, logger.LevelSilent, silence)
	}
	for id := range silence {
		cfg.SilenceDeprecations = append(cfg.SilenceDeprecations, id)
	}

	fatal := map[logger.MsgID]logger.LogLevel{}
	for _, tag := range options.FatalDeprecations {
		logger.StringToMsgIDs(tag, logger.LevelError, fatal)
	}
	for id := range fatal {
		cfg.FatalDeprecations = append(cfg.FatalDeprecations, id)
	}

	for _, fn := range options.Functions {
		cfg.Functions = append(cfg.Functions, config.Function{Signature: fn.Signature, Callback: fn.Callback})
	}
	return config.ApplyDefaults(cfg)
}

func syntaxForExtension(path string, fsys internalfs.FS, fallback Syntax) ast.Syntax {
	switch fsys.Ext(path) {
	case ".sass":
		return ast.SyntaxIndented
	case ".css":
		return ast.SyntaxCSS
	}
	switch fallback {
	case SyntaxIndented:
		return ast.SyntaxIndented
	case SyntaxCSS:
		return ast.SyntaxCSS
	default:
		return ast.SyntaxSCSS
	}
}

// compileImpl resolves path against the real filesystem and runs it to
// completion, the shared body behind Compile/CompileToResult and their
// async wrappers. The entrypoint itself must be a concrete on-disk path
// (unlike @use/@forward/@import targets further down the graph, it is not
// run through the partial/extension probing candidatePaths does).
func compileImpl(path string, options Options) Result {
	fsys, err := internalfs.RealFS(internalfs.RealFSOptions{})
	if err != nil {
		return Result{Errors: []Message{{Text: err.Error()}}}
	}

	abs, ok := fsys.Abs(path)
	if !ok {
		abs = path
	}
	contents, canonicalErr, originalErr := fsys.ReadFile(abs)
	if canonicalErr != nil {
		msg := canonicalErr.Error()
		if originalErr != nil {
			msg = originalErr.Error()
		}
		return Result{Errors: []Message{{Text: msg}}}
	}

	source := ast.Source{
		Identifier: ast.Identifier{Scheme: "file", Path: abs},
		Syntax:     syntaxForExtension(abs, fsys, options.Syntax),
		Contents:   contents,
		PrettyPath: path,
	}

	return run(fsys, source, options)
}

// compileStringImpl evaluates source directly under the identifier
// options.URL names, if any, which run then lists first in
// Result.LoadedURLs. Relative loads inside it are resolved via
// options.Importer, placed at the front of the importer chain.
func compileStringImpl(source string, options Options) Result {
	fsys, err := internalfs.RealFS(internalfs.RealFSOptions{})
	if err != nil {
		return Result{Errors: []Message{{Text: err.Error()}}}
	}

	var id ast.Identifier
	if options.URL != "" {
		id = ast.ParseIdentifier(options.URL)
	}

	syntax := ast.SyntaxSCSS
	switch options.Syntax {
	case SyntaxIndented:
		syntax = ast.SyntaxIndented
	case SyntaxCSS:
		syntax = ast.SyntaxCSS
	}

	entrySource := ast.Source{
		Identifier: id,
		Syntax:     syntax,
		Contents:   source,
		PrettyPath: options.URL,
	}

	if options.Importer != nil {
		options = cloneWithImporter(options, options.Importer)
	}

	return run(fsys, entrySource, options)
}

// cloneWithImporter prepends importer to Options.Importers so a string
// entrypoint's own associated resolver is tried before the caller's other
// importers, matching spec.md §6's "importer" option ("the 'original'
// resolver associated with a string entrypoint").
func cloneWithImporter(options Options, importer Importer) Options {
	out := options
	out.Importers = append([]Importer{importer}, options.Importers...)
	return out
}

func run(fsys internalfs.FS, source ast.Source, options Options) Result {
	log := logger.NewDeferLog()
	chain := buildChain(fsys, options)
	ldr := loader.New(chain)

	cfg := buildConfigOptions(options, log)
	ldr.Evaluate = evaluator.NewLoaderEvaluate(cfg)
	sheet, err := evaluator.RenderStylesheet(ldr, source, cfg)
	if err != nil && !log.HasErrors() {
		log.AddError(nil, logger.Loc{}, err.Error())
	}

	result := finishResult(sheet, ldr, log, options, err)
	if !source.Identifier.IsZero() {
		result.LoadedURLs = append([]string{source.Identifier.String()}, result.LoadedURLs...)
	}
	return result
}

func finishResult(sheet css.Stylesheet, ldr *loader.Loader, log logger.Log, options Options, compileErr error) Result {
	style := css.Expanded
	if options.Style == StyleCompressed {
		style = css.Compressed
	}
	charset := options.Charset != CharsetDisabled

	result := Result{}
	if compileErr == nil {
		result.CSS = css.Print(sheet, css.Printer{Style: style, Charset: charset})
	}

	for _, id := range ldr.LoadedURLs() {
		result.LoadedURLs = append(result.LoadedURLs, id.String())
	}

	for _, msg := range log.Done() {
		m := toMessage(msg)
		switch msg.Kind {
		case logger.Error:
			result.Errors = append(result.Errors, m)
		default:
			result.Warnings = append(result.Warnings, m)
		}
		// Errors propagate out of the compilation (spec.md §7) rather than
		// going through the logger hook; only warnings and @debug output do.
		if options.Logger != nil && msg.Kind != logger.Error {
			if msg.Kind == logger.Note {
				options.Logger.Debug(m.Text)
			} else {
				options.Logger.Warn(m.Text, false)
			}
		}
	}
	return result
}

func toMessage(msg logger.Msg) Message {
	m := Message{Text: msg.Data.Text}
	if msg.Data.Location != nil {
		loc := msg.Data.Location
		m.Location = &Location{File: loc.File, Line: loc.Line, Column: loc.Column, Length: loc.Length, LineText: loc.LineText}
	}
	for _, f := range msg.Frames {
		sf := StackFrame{FrameName: f.FrameName}
		sf.Location = &Location{
			File:     f.Location.File,
			Line:     f.Location.Line,
			Column:   f.Location.Column,
			Length:   f.Location.Length,
			LineText: f.Location.LineText,
		}
		m.Frames = append(m.Frames, sf)
	}
	return m
}
