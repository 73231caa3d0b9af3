package api

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sass/sassc/internal/ast"
)

// stringImporter canonicalizes exactly one URL (written exactly as it
// appears in a "@use"/"@import" statement, scheme prefix included if any)
// and serves fixed text for it, standing in for a custom Importer that
// does not touch the filesystem at all.
type stringImporter struct {
	scheme string
	url    string
	body   string

	mu    sync.Mutex
	calls int
}

func (s *stringImporter) Canonicalize(url string, _ ast.Identifier) (ast.Identifier, bool, error) {
	if url != s.url {
		return ast.Identifier{}, false, nil
	}
	path := url
	if s.scheme != "" {
		path = strings.TrimPrefix(path, s.scheme+":")
	}
	return ast.Identifier{Scheme: s.scheme, Path: path}, true, nil
}

func (s *stringImporter) Load(id ast.Identifier) (string, ast.Syntax, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.body, ast.SyntaxSCSS, nil
}

func (s *stringImporter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// TestImporterOrder checks that when two custom Importers could both serve
// the same load, the one registered first wins (spec.md §4.2's fixed
// relative -> Importers -> LoadPaths -> PackageConfig chain order, applied
// here within the Importers slice itself).
func TestImporterOrder(t *testing.T) {
	first := &stringImporter{scheme: "first", url: "shared", body: `$value: "from-first";`}
	second := &stringImporter{scheme: "second", url: "shared", body: `$value: "from-second";`}

	result := CompileString(`
@use "shared" as s;
a { b: s.$value; }
`, Options{
		Importers: []Importer{first, second},
	})

	require.Empty(t, result.Errors)
	assert.Contains(t, result.CSS, "from-first")
	assert.Equal(t, 1, first.callCount())
	assert.Equal(t, 0, second.callCount())
}

// TestRelativeOverImporter checks that a configured Importer tied to a
// string entrypoint (options.Importer) is only reached because the
// implicit relative importer has nothing of its own to resolve against —
// CompileString has no backing file, so the wired-in Importer is the sole
// candidate able to serve the load.
func TestRelativeOverImporter(t *testing.T) {
	entryImporter := &stringImporter{scheme: "entry", url: "sibling", body: `$value: "from-importer";`}

	result := CompileString(`
@use "sibling" as s;
a { b: s.$value; }
`, Options{
		Importer: entryImporter,
	})

	require.Empty(t, result.Errors)
	assert.Contains(t, result.CSS, "from-importer")
	assert.Equal(t, 1, entryImporter.callCount())
}

// TestCrossImporterHandoff checks that two Importers claiming disjoint URL
// schemes are each invoked exactly once across a two-hop @use chain, with
// neither one asked to resolve a URL outside its own scheme.
func TestCrossImporterHandoff(t *testing.T) {
	firstScheme := &stringImporter{scheme: "first", url: "first:a", body: `
@use "second:b" as b;
$value: b.$value;
`}
	secondScheme := &stringImporter{scheme: "second", url: "second:b", body: `$value: "leaf";`}

	result := CompileString(`
@use "first:a" as a;
a1 { b: a.$value; }
`, Options{
		Importers: []Importer{firstScheme, secondScheme},
	})

	require.Empty(t, result.Errors)
	assert.Contains(t, result.CSS, "leaf")
	assert.Equal(t, 1, firstScheme.callCount())
	assert.Equal(t, 1, secondScheme.callCount())
}

// TestCharsetPolicy checks that a leading @charset marker tracks whether
// the output actually contains non-ASCII text, and that CharsetDisabled
// suppresses it unconditionally.
func TestCharsetPolicy(t *testing.T) {
	nonASCII := `a { content: "caf\00e9"; }`

	expanded := CompileString(nonASCII, Options{})
	require.Empty(t, expanded.Errors)
	assert.Contains(t, expanded.CSS, "@charset")

	disabled := CompileString(nonASCII, Options{Charset: CharsetDisabled})
	require.Empty(t, disabled.Errors)
	assert.NotContains(t, disabled.CSS, "@charset")

	asciiOnly := CompileString(`a { content: "plain"; }`, Options{})
	require.Empty(t, asciiOnly.Errors)
	assert.NotContains(t, asciiOnly.CSS, "@charset")
}

// TestLoadedURLsChain checks that Result.LoadedURLs reports every module
// actually visited along a multi-hop @use graph.
func TestLoadedURLsChain(t *testing.T) {
	leaf := &stringImporter{scheme: "chain", url: "chain:leaf", body: `$value: "leaf";`}
	mid := &stringImporter{scheme: "chain", url: "chain:mid", body: `
@use "chain:leaf" as l;
$value: l.$value;
`}

	result := CompileString(`
@use "chain:mid" as m;
a { b: m.$value; }
`, Options{
		Importers: []Importer{leaf, mid},
		URL:       "chain:entry",
	})

	require.Empty(t, result.Errors)
	assert.Contains(t, result.LoadedURLs, "chain:mid")
	assert.Contains(t, result.LoadedURLs, "chain:leaf")
}

// TestConcurrentAsyncCompiles checks that several CompileStringAsync calls
// sharing an Importer don't race: each compilation resolves and loads the
// shared dependency independently, and none observes another's output.
func TestConcurrentAsyncCompiles(t *testing.T) {
	shared := &stringImporter{scheme: "race", url: "race:dep", body: `$value: "dep-value";`}

	const n = 4
	var wg sync.WaitGroup
	results := make([]Result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ch := CompileStringAsync(`
@use "race:dep" as d;
a { b: d.$value; }
`, Options{Importers: []Importer{shared}})
			results[i] = <-ch
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Empty(t, r.Errors)
		assert.Contains(t, r.CSS, "dep-value")
	}
	assert.Equal(t, n, shared.callCount())
}

// TestCompileToResultAliases documents that CompileToResult and
// CompileStringToResult are plain aliases: both names produce the exact
// same Result as their non-"ToResult" counterparts.
func TestCompileToResultAliases(t *testing.T) {
	opts := Options{}
	want := CompileString(`a { b: 1px; }`, opts)
	got := CompileStringToResult(`a { b: 1px; }`, opts)
	assert.Equal(t, want.CSS, got.CSS)
}

// TestUndefinedImportReportsError checks that a URL no importer in the
// chain claims surfaces as a Result.Errors entry rather than a panic or an
// empty, silently-wrong CSS output.
func TestUndefinedImportReportsError(t *testing.T) {
	result := CompileString(`@use "does-not-exist";`, Options{})
	assert.NotEmpty(t, result.Errors)
}
