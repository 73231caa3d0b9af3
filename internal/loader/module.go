// Package loader owns the module graph: it resolves a @use/@forward/
// @import target to a canonical identifier, coalesces repeat requests for
// the same identifier into a single evaluation, and hands the evaluator
// back a Module carrying that stylesheet's exported namespace.
//
// The coalescing scheme is grounded directly on the teacher's
// bundler.scanner: a map from identifier to a slot is guarded by a mutex,
// the slot is installed *before* the (possibly recursive) evaluation that
// fills it runs, and no other caller for the same identifier re-enters the
// evaluation. The teacher runs this in parallel across goroutines (one per
// entry point); a Sass compilation evaluates modules depth-first and
// single-threaded instead (import order is observable via side effects like
// @debug), so a request that finds the slot still in progress does not wait
// on its channel: it gets ErrCycle, or, when the caller tolerates cycles
// (@import), the partially filled Module. The slot is a guard against import
// cycles rather than a concurrency primitive, but the shape of "install a
// slot, then fill it, then broadcast completion" is unchanged.
package loader

import (
	"fmt"
	"sync"

	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/cache"
	"github.com/go-sass/sassc/internal/resolver"
	"github.com/go-sass/sassc/internal/value"
)

// Module is the result of fully evaluating one stylesheet: the variables,
// functions, and mixins it defines (or forwarded further down), ready to be
// merged into a @use site's namespace.
type Module struct {
	Identifier ast.Identifier

	Variables map[string]value.Value
	Functions map[string]value.Value // holds value.Function
	Mixins    map[string]value.Value // holds value.Mixin

	// CSS is the rendered output tree contributed by this module, attached
	// by the evaluator; the loader itself never looks inside it.
	CSS interface{}

	// Upstream lists, in load order, every module this one forwarded
	// (transparently or with a prefix), needed to resolve
	// "@forward ... show/hide" visibility at a @use site two hops away.
	Upstream []*Forwarded
}

type Forwarded struct {
	Module *Module
	Prefix string
	Show   map[string]bool // nil means "forward everything"
	Hide   map[string]bool
}

func NewModule(id ast.Identifier) *Module {
	return &Module{
		Identifier: id,
		Variables:  make(map[string]value.Value),
		Functions:  make(map[string]value.Value),
		Mixins:     make(map[string]value.Value),
	}
}

// slotState is the ModuleSlot lifecycle from spec.md §5.
type slotState uint8

const (
	slotInProgress slotState = iota
	slotComplete
	slotFailed
)

type slot struct {
	state slotState
	mod   *Module
	err   error
	done  chan struct{}
}

// Evaluate is injected by internal/evaluator at wiring time so that this
// package never imports it back (evaluator imports loader, not vice versa):
// it evaluates the stylesheet at source against configuration, filling in
// mod's Variables/Functions/Mixins/CSS as it goes rather than only at the
// end, so that a tolerated @import cycle (see Load's allowCycle parameter)
// observes whatever partial bindings the in-progress evaluation has
// produced so far, exactly as the reference implementation's legacy
// @import semantics require.
type Evaluate func(ldr *Loader, source ast.Source, configuration map[string]value.Value, mod *Module) error

type Loader struct {
	Chain    resolver.Chain
	Evaluate Evaluate

	// Cache memoizes the parsed ast.Stylesheet behind each identifier this
	// Loader serves, so that an Evaluate call reached twice for the same
	// identifier never re-runs the parser against its source a second time.
	// Loads through the slots evaluate each identifier at most once; the
	// repeat that reaches the cache is an entrypoint, evaluated outside the
	// slots, that is also loaded as a dependency.
	Cache *cache.StylesheetCache

	mutex sync.Mutex
	slots map[ast.Identifier]*slot

	// importerOf records which Importer produced each loaded identifier, so
	// that a later relative reference written inside that stylesheet can be
	// resolved against the importer that actually loaded it (spec.md §4.1
	// rule 1) instead of always against the chain's static relative slot.
	importerOf map[ast.Identifier]resolver.Importer

	// loadedURLs records every canonical identifier a slot was installed for
	// during this compilation (including loads whose evaluation then
	// failed), in first-load order, surfaced to callers as the result's
	// dependency list.
	loadedURLs []ast.Identifier
}

func New(chain resolver.Chain) *Loader {
	return &Loader{
		Chain:      chain,
		slots:      make(map[ast.Identifier]*slot),
		importerOf: make(map[ast.Identifier]resolver.Importer),
		Cache:      cache.NewStylesheetCache(),
	}
}

// LoadedURLs returns every canonical identifier loaded so far, in load
// order, for the "loaded-urls" API result.
func (l *Loader) LoadedURLs() []ast.Identifier {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return append([]ast.Identifier(nil), l.loadedURLs...)
}

// ErrCycle is returned when a load graph forms a cycle: module A (directly
// or transitively) loads itself before finishing its own evaluation.
// @import tolerates this for the specific case of the reference
// implementation's legacy cycle allowance (see Load's doc comment); @use
// and @forward never do.
type ErrCycle struct {
	Identifier ast.Identifier
}

func (e *ErrCycle) Error() string {
	return fmt.Sprintf("Module loop: %s loads itself", e.Identifier)
}

// Load resolves url relative to from, then evaluates (or reuses a prior
// evaluation of) the target module, coalescing concurrent/repeat requests
// for the same canonical identifier into one Evaluate call per spec.md §5.
//
// allowCycle is set only by @import's legacy resolution: the reference
// implementation tolerates a stylesheet transitively @import-ing itself by
// treating the in-progress module's current (partial) bindings as the
// result, rather than erroring, a quirk kept for fidelity since real
// stylesheets migrating off @import rely on it.
func (l *Loader) Load(url string, from ast.Identifier, configuration map[string]value.Value, allowCycle bool) (*Module, error) {
	id, importer, err := l.resolve(url, from)
	if err != nil {
		return nil, err
	}
	return l.loadIdentifier(id, importer, configuration, allowCycle)
}

// resolve canonicalizes url against whichever Importer loaded "from" before
// falling back to the ordinary configured Chain. spec.md §4.1 rule 1: a
// relative load is resolved relative to the importer that produced the
// referring file, not always the compilation's default filesystem importer
// — which matters once a custom Importer's own stylesheets @use each other
// by relative URL. Rule 2 (an explicit "scheme:" reference never prefers
// the relative importer) is enforced by FilesystemImporter.Canonicalize
// itself declining such URLs, so no special case is needed here: "from"'s
// importer is simply asked first and, like any other importer, may decline.
func (l *Loader) resolve(url string, from ast.Identifier) (ast.Identifier, resolver.Importer, error) {
	if imp := l.importerFor(from); imp != nil {
		id, ok, err := imp.Canonicalize(url, from)
		if err != nil {
			return ast.Identifier{}, nil, err
		}
		if ok {
			return id, imp, nil
		}
	}
	return l.Chain.Resolve(url, from)
}

func (l *Loader) importerFor(id ast.Identifier) resolver.Importer {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.importerOf[id]
}

func (l *Loader) loadIdentifier(id ast.Identifier, importer resolver.Importer, configuration map[string]value.Value, allowCycle bool) (*Module, error) {
	l.mutex.Lock()
	if s, ok := l.slots[id]; ok {
		switch s.state {
		case slotInProgress:
			l.mutex.Unlock()
			if allowCycle {
				return s.mod, nil
			}
			return nil, &ErrCycle{Identifier: id}
		case slotComplete:
			l.mutex.Unlock()
			<-s.done
			if configuration != nil {
				return nil, fmt.Errorf("%s was already loaded, so it can't be configured using \"with\"", id)
			}
			return s.mod, nil
		default:
			l.mutex.Unlock()
			<-s.done
			return nil, s.err
		}
	}

	s := &slot{state: slotInProgress, mod: NewModule(id), done: make(chan struct{})}
	l.slots[id] = s
	l.importerOf[id] = importer
	l.loadedURLs = append(l.loadedURLs, id)
	l.mutex.Unlock()

	contents, syntax, err := importer.Load(id)
	if err != nil {
		l.finish(id, s, err)
		return nil, err
	}

	source := ast.Source{Identifier: id, Syntax: syntax, Contents: contents, PrettyPath: id.String()}
	err = l.Evaluate(l, source, configuration, s.mod)
	l.finish(id, s, err)
	return s.mod, err
}

func (l *Loader) finish(id ast.Identifier, s *slot, err error) {
	l.mutex.Lock()
	if err != nil {
		s.state, s.err = slotFailed, err
	} else {
		s.state = slotComplete
	}
	l.mutex.Unlock()
	close(s.done)
}
