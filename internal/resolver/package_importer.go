package resolver

import (
	"strings"

	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/fs"
)

// PackageImporter resolves "package:name/path" URLs by looking up "name" in a
// configured package root map and then running the same file-probing rules
// as FilesystemImporter against the remainder of the path, joined under the
// package's root. This is the lowest-priority chain entry (spec.md §4.2)
// and is the Go-native analog of the teacher's node_modules package
// resolution in internal/resolver.Resolver, simplified from a directory
// walk to a caller-supplied map since Sass packages have no equivalent of
// package.json "exports" remapping to honor.
type PackageImporter struct {
	FS    fs.FS
	Roots map[string]string // package name -> absolute directory
}

const packageScheme = "package"

func (p *PackageImporter) Canonicalize(url string, _ ast.Identifier) (ast.Identifier, bool, error) {
	if !strings.HasPrefix(url, packageScheme+":") {
		return ast.Identifier{}, false, nil
	}
	rest := strings.TrimPrefix(url, packageScheme+":")
	name, subpath, _ := strings.Cut(rest, "/")
	root, ok := p.Roots[name]
	if !ok {
		return ast.Identifier{}, false, &ErrNotFound{URL: url}
	}
	var target string
	if subpath != "" {
		target = p.FS.Join(root, subpath)
	} else {
		target = p.FS.Join(root, "index")
	}
	fsImporter := &FilesystemImporter{FS: p.FS}
	id, ok, err := fsImporter.canonicalizeAbsolute(target)
	if err != nil || !ok {
		return ast.Identifier{}, false, err
	}
	return id, true, nil
}

func (p *PackageImporter) Load(id ast.Identifier) (string, ast.Syntax, error) {
	fsImporter := &FilesystemImporter{FS: p.FS}
	return fsImporter.Load(id)
}
