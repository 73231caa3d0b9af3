// Package resolver turns a load target URL written in a @use/@forward/
// @import statement into a canonical ast.Identifier plus the stylesheet
// text behind it, by walking a prioritized chain of Importers exactly the
// way the teacher's internal/resolver.Resolver walks its own prioritized
// chain (tsconfig "paths" -> node_modules -> absolute fallback): try each
// importer in turn, and the first one willing to canonicalize the URL wins.
//
// The chain order is fixed by spec.md §4.2: relative-to-the-current-file
// first, then the importer list the caller configured, then the load-path
// list, then the package: URL importer — never reordered, never merged.
package resolver

import (
	"strings"

	"github.com/go-sass/sassc/internal/ast"
)

// Importer resolves a load URL to a canonical Identifier (Canonicalize) and
// then fetches the stylesheet text behind an already-canonical Identifier
// (Load). This is the Sass analog of the teacher's plugin onResolve/onLoad
// pair, and is directly grounded on bep/godartsass's ImportResolver
// interface from the pack (CanonicalizeURL/Load), generalized from "one
// external process call" to "one Go call".
type Importer interface {
	// Canonicalize resolves url (as written in a load statement) relative
	// to the stylesheet identified by from, which is the identifier
	// of the file containing the statement. from.IsZero() when
	// resolving the compilation entrypoint itself. ok is false when this
	// importer has nothing to say about url (try the next one in chain),
	// as distinct from returning an error because it recognized the URL
	// but the target does not exist.
	Canonicalize(url string, from ast.Identifier) (id ast.Identifier, ok bool, err error)

	// Load fetches the stylesheet text for an Identifier this importer (or
	// a Canonicalize call elsewhere in the same chain) already produced.
	Load(id ast.Identifier) (contents string, syntax ast.Syntax, err error)
}

// Chain tries each Importer in order and returns the first successful
// Canonicalize/Load pair, the way the teacher's scanner tries resolve
// plugins in registration order before falling back to its built-in
// resolution.
type Chain struct {
	Importers []Importer
}

// ErrNotFound is returned (wrapped with context) when every importer in
// the chain declines a URL.
type ErrNotFound struct {
	URL string
}

func (e *ErrNotFound) Error() string {
	return "Can't find stylesheet to import: \"" + e.URL + "\""
}

// Resolve canonicalizes url relative to from by trying each importer in
// Chain.Importers, in order, stopping at the first one that claims it
// (ok == true), even if that importer then returns an error — an importer
// that recognizes a URL but fails to serve it does not fall through to the
// next one, matching spec.md §4.2's "first chain entry to claim it wins".
func (c Chain) Resolve(url string, from ast.Identifier) (ast.Identifier, Importer, error) {
	for _, imp := range c.Importers {
		id, ok, err := imp.Canonicalize(url, from)
		if err != nil {
			return ast.Identifier{}, nil, err
		}
		if ok {
			return id, imp, nil
		}
	}
	return ast.Identifier{}, nil, &ErrNotFound{URL: url}
}

// hasScheme reports whether url begins with an explicit "scheme:" prefix
// (e.g. "package:bootstrap", "sass:math"), per the URL scheme grammar (RFC 3986
// §3.1: a letter followed by letters/digits/"+"/"-"/"." up to the colon).
// Such a reference names which importer owns it by scheme alone and must
// never be resolved relative to anything.
func hasScheme(url string) bool {
	i := strings.IndexByte(url, ':')
	if i <= 0 || !isSchemeLetter(url[0]) {
		return false
	}
	for j := 1; j < i; j++ {
		c := url[j]
		if !isSchemeLetter(c) && !(c >= '0' && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isSchemeLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsPlainCSSURL reports whether url must never be resolved as a Sass
// module: it starts with "http://", "https://" or "//", ends in ".css", or
// contains "url(", per spec.md §4.1's distinction between module loads and
// passthrough CSS @import rules. Other URL schemes are not checked here.
func IsPlainCSSURL(url string) bool {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "//") {
		return true
	}
	if strings.HasSuffix(url, ".css") {
		return true
	}
	if strings.Contains(url, "url(") {
		return true
	}
	return false
}
