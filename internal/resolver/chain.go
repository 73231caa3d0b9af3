package resolver

import "github.com/go-sass/sassc/internal/ast"

// BuildChain assembles the fixed four-stage importer chain from spec.md
// §4.2: relative-to-the-current-file first, then the caller's own
// importers in the order given, then load paths, then the package: URL
// importer last. The order is load-bearing — e.g. a load path can never
// shadow a relative sibling file — so this constructor is the only
// supported way to build a Chain for a real compilation.
func BuildChain(relative Importer, userImporters []Importer, loadPaths Importer, packageImporter Importer) Chain {
	importers := make([]Importer, 0, 3+len(userImporters))
	importers = append(importers, relative)
	importers = append(importers, userImporters...)
	if loadPaths != nil {
		importers = append(importers, loadPaths)
	}
	if packageImporter != nil {
		importers = append(importers, packageImporter)
	}
	return Chain{Importers: importers}
}

// InMemoryImporter serves a single stylesheet held in memory under the
// identifier it should be known by. Nothing in this module constructs one:
// compileString evaluates its text directly without registering it here.
type InMemoryImporter struct {
	ID       ast.Identifier
	Contents string
	Syntax   ast.Syntax
}

func (m *InMemoryImporter) Canonicalize(url string, from ast.Identifier) (ast.Identifier, bool, error) {
	if from.IsZero() && url == m.ID.String() {
		return m.ID, true, nil
	}
	return ast.Identifier{}, false, nil
}

func (m *InMemoryImporter) Load(id ast.Identifier) (string, ast.Syntax, error) {
	if id == m.ID {
		return m.Contents, m.Syntax, nil
	}
	return "", 0, &ErrNotFound{URL: id.String()}
}
