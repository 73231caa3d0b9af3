package ast

import "strings"

// Identifier is the canonical form of a stylesheet's source URL: a scheme,
// an opaque path, and an optional fragment. Two identifiers refer to the
// same stylesheet iff they are == after whichever Resolver produced them
// has canonicalized both (spec.md §3, "Source Identifier").
//
// This mirrors the way the teacher's logger.Path pairs a namespace with
// opaque text, generalized to carry the fragment a "file:...#foo" or
// in-memory entrypoint URL may need.
type Identifier struct {
	Scheme   string
	Path     string
	Fragment string
}

func (id Identifier) String() string {
	var sb strings.Builder
	if id.Scheme != "" {
		sb.WriteString(id.Scheme)
		sb.WriteByte(':')
	}
	sb.WriteString(id.Path)
	if id.Fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(id.Fragment)
	}
	return sb.String()
}

func (id Identifier) IsZero() bool {
	return id.Scheme == "" && id.Path == "" && id.Fragment == ""
}

// Basename is the final path segment with any known stylesheet extension
// and leading partial underscore stripped, used as the default @use/@forward
// namespace prefix.
func (id Identifier) Basename() string {
	path := id.Path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	for _, ext := range []string{".scss", ".sass", ".css"} {
		if strings.HasSuffix(path, ext) {
			path = path[:len(path)-len(ext)]
			break
		}
	}
	path = strings.TrimPrefix(path, "_")
	return path
}

// ParseIdentifier splits a well-formed canonical URL string such as
// "file:///a/b/_c.scss" or "package:foo/bar" back into its parts. Importers
// that build identifiers directly do not need this; it exists for the few
// places (error messages, the "url" option) that round-trip a string.
func ParseIdentifier(s string) Identifier {
	id := Identifier{}
	rest := s
	if i := strings.IndexByte(rest, ':'); i >= 0 && isValidScheme(rest[:i]) {
		id.Scheme, rest = rest[:i], rest[i+1:]
	}
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		id.Fragment, rest = rest[i+1:], rest[:i]
	}
	id.Path = rest
	return id
}

func isValidScheme(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
