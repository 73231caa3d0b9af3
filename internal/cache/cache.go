// Package cache memoizes parsed stylesheets by canonical identifier, the
// way the teacher's internal/cache.CSSCache/JSCache memoize a parsed AST by
// file content hash. The Loader's ModuleSlot already evaluates each
// canonical identifier at most once; the one repeat parse this cache saves
// is an entrypoint, evaluated outside the slots, that is also loaded as a
// dependency within the same compilation.
package cache

import (
	"sync"

	"github.com/go-sass/sassc/internal/ast"
)

type entry struct {
	sheet ast.Stylesheet
	err   error
}

type StylesheetCache struct {
	mutex   sync.Mutex
	entries map[ast.Identifier]*entry
}

func NewStylesheetCache() *StylesheetCache {
	return &StylesheetCache{entries: make(map[ast.Identifier]*entry)}
}

// Parse calls parseFn at most once per identifier; concurrent/repeat calls
// for the same id block on and then return the first call's result. parseFn
// is expected to be internal/sassparser.Parse bound to id's source text.
func (c *StylesheetCache) Parse(id ast.Identifier, parseFn func() (ast.Stylesheet, error)) (ast.Stylesheet, error) {
	c.mutex.Lock()
	if e, ok := c.entries[id]; ok {
		c.mutex.Unlock()
		return e.sheet, e.err
	}
	c.mutex.Unlock()

	sheet, err := parseFn()

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if e, ok := c.entries[id]; ok {
		// Lost a race with a concurrent Parse for the same id; keep
		// whichever result was recorded first for determinism.
		return e.sheet, e.err
	}
	c.entries[id] = &entry{sheet: sheet, err: err}
	return sheet, err
}
