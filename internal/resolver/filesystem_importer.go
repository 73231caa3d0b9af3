package resolver

import (
	"fmt"
	"strings"

	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/fs"
)

// FilesystemImporter resolves "file:" URLs (and bare relative paths, which
// are treated as relative to from's directory) against a real or mock
// fs.FS, probing a candidate list for a path "P" (see candidatePaths): when
// P already ends in .scss/.sass/.css, "P" then "_P"; otherwise "P.scss",
// "_P.scss", "P.sass", "_P.sass", "P.css", "_P.css", and finally
// "P/index.ext" and "P/_index.ext" for each of those extensions in turn.
// An extensionless "P" is never tried on its own.
//
// This is grounded on the teacher's internal/resolver.Resolver, which walks
// an analogous candidate list (bare specifier, then each configured
// extension) via its own dirCache; here no cache is kept at this layer:
// Loader.Load resolves on every load request, and each Canonicalize call
// probes the candidates through fs.FS again.
type FilesystemImporter struct {
	FS fs.FS
	// LoadPaths is non-empty only for the load-path chain entry; the
	// relative-to-current-file entry uses a FilesystemImporter with this
	// left nil and resolves purely against from's directory.
	LoadPaths []string
}

var stylesheetExtensions = []string{".scss", ".sass", ".css"}

func (f *FilesystemImporter) Canonicalize(url string, from ast.Identifier) (ast.Identifier, bool, error) {
	if IsPlainCSSURL(url) {
		return ast.Identifier{}, false, nil
	}
	if strings.HasPrefix(url, "file://") {
		return f.canonicalizeAbsolute(strings.TrimPrefix(url, "file://"))
	}
	if f.FS.IsAbs(url) {
		return f.canonicalizeAbsolute(url)
	}
	if hasScheme(url) {
		// Some other importer owns this URL by its scheme alone (e.g.
		// "package:bootstrap", "sass:math"). spec.md §4.1 rule 2: an explicit
		// scheme reference is never probed as a path relative to the
		// current file or a load path, so this importer must decline
		// outright rather than joining it onto a directory.
		return ast.Identifier{}, false, nil
	}
	if f.LoadPaths != nil {
		for _, base := range f.LoadPaths {
			if id, ok, err := f.canonicalizeAbsolute(f.FS.Join(base, url)); ok || err != nil {
				return id, ok, err
			}
		}
		return ast.Identifier{}, false, nil
	}
	if from.IsZero() || from.Scheme != "file" {
		return ast.Identifier{}, false, nil
	}
	dir := f.FS.Dir(from.Path)
	return f.canonicalizeAbsolute(f.FS.Join(dir, url))
}

// canonicalizeAbsolute probes the candidate list for one absolute,
// extensionless-or-not path and returns the first match, or an error when
// more than one candidate in the first match's directory exists.
func (f *FilesystemImporter) canonicalizeAbsolute(path string) (ast.Identifier, bool, error) {
	found := f.AmbiguousCandidates(path)
	if len(found) == 0 {
		return ast.Identifier{}, false, nil
	}
	same := []string{found[0]}
	for _, c := range found[1:] {
		if f.FS.Dir(c) == f.FS.Dir(found[0]) {
			same = append(same, c)
		}
	}
	if len(same) > 1 {
		return ast.Identifier{}, false, fmt.Errorf("It's not clear which file to import. Found:\n  %s", strings.Join(same, "\n  "))
	}
	return ast.Identifier{Scheme: "file", Path: found[0]}, true, nil
}

func (f *FilesystemImporter) fileExists(path string) bool {
	dir := f.FS.Dir(path)
	base := f.FS.Base(path)
	entries, _, _ := f.FS.ReadDirectory(dir)
	entry, _ := entries.Get(base)
	return entry != nil && entry.Kind(f.FS) == fs.FileEntry
}

// candidatePaths enumerates every on-disk path that would satisfy loading
// "path" as a Sass module, in priority order. When two candidates both
// exist in the same directory (e.g. "_foo.scss" and "foo.scss") this
// ambiguity is a load error rather than silently preferring one, so every
// candidate is tried: canonicalizeAbsolute collects the existing ones via
// AmbiguousCandidates and reports the error.
func candidatePaths(filesys fs.FS, path string) []string {
	dir := filesys.Dir(path)
	base := filesys.Base(path)
	ext := filesys.Ext(base)
	hasExt := false
	for _, e := range stylesheetExtensions {
		if ext == e {
			hasExt = true
			break
		}
	}

	var names []string
	if hasExt {
		names = append(names, base, "_"+base)
	} else {
		for _, e := range stylesheetExtensions {
			names = append(names, base+e, "_"+base+e)
		}
		for _, e := range stylesheetExtensions {
			names = append(names, filesys.Join(base, "index"+e), filesys.Join(base, "_index"+e))
		}
	}

	candidates := make([]string, len(names))
	for i, n := range names {
		candidates[i] = filesys.Join(dir, n)
	}
	return candidates
}

// AmbiguousCandidates reports every candidate path from the probe list
// that actually exists, used to produce "it's not clear which file to
// import" diagnostics when more than one does (spec.md §4.1 edge case).
func (f *FilesystemImporter) AmbiguousCandidates(path string) []string {
	var found []string
	for _, candidate := range candidatePaths(f.FS, path) {
		if f.fileExists(candidate) {
			found = append(found, candidate)
		}
	}
	return found
}

func (f *FilesystemImporter) Load(id ast.Identifier) (string, ast.Syntax, error) {
	contents, canonicalErr, originalErr := f.FS.ReadFile(id.Path)
	if canonicalErr != nil {
		if originalErr != nil {
			return "", 0, fmt.Errorf("%s: %w", id.Path, originalErr)
		}
		return "", 0, canonicalErr
	}
	return contents, syntaxForPath(f.FS, id.Path), nil
}

func syntaxForPath(filesys fs.FS, path string) ast.Syntax {
	switch filesys.Ext(path) {
	case ".sass":
		return ast.SyntaxIndented
	case ".css":
		return ast.SyntaxCSS
	default:
		return ast.SyntaxSCSS
	}
}
