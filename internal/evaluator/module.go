package evaluator

import (
	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/css"
	"github.com/go-sass/sassc/internal/loader"
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/value"
)

func (ctx *Context) evalConfiguration(cvars []ast.ConfigVar) map[string]value.Value {
	if len(cvars) == 0 {
		return nil
	}
	out := make(map[string]value.Value, len(cvars))
	for _, cv := range cvars {
		out[cv.Name] = ctx.eval(cv.Value)
	}
	return out
}

func (ctx *Context) execUse(d *ast.SUse, loc logger.Loc) {
	mod, err := ctx.Loader.Load(d.URL, ctx.source.Identifier, ctx.evalConfiguration(d.Configuration), false)
	if err != nil {
		ctx.errorf(loc, "%s", err.Error())
		return
	}
	ns := d.Namespace
	if ns == "" {
		ns = ast.Identifier{Path: d.URL}.Basename()
	}
	if ns == "*" {
		ctx.mergeIntoCurrentNamespace(mod)
		return
	}
	ctx.namespaces[ns] = mod
}

// mergeIntoCurrentNamespace implements "@use ... as *": the loaded
// module's members become directly visible, as if declared locally,
// rather than living behind a namespace prefix.
func (ctx *Context) mergeIntoCurrentNamespace(mod *loader.Module) {
	for k, v := range mod.Variables {
		ctx.root.variables[k] = v
	}
	for k, v := range mod.Functions {
		ctx.root.functions[k] = v
	}
	for k, v := range mod.Mixins {
		ctx.root.mixins[k] = v
	}
}

func (ctx *Context) execForward(d *ast.SForward, loc logger.Loc) {
	mod, err := ctx.Loader.Load(d.URL, ctx.source.Identifier, ctx.evalConfiguration(d.Configuration), false)
	if err != nil {
		ctx.errorf(loc, "%s", err.Error())
		return
	}

	var show, hide map[string]bool
	if d.ShowOnly != nil {
		show = toSet(d.ShowOnly)
	}
	if d.Hide != nil {
		hide = toSet(d.Hide)
	}

	forwardMember := func(name string, visible bool) bool {
		if show != nil {
			return show[name]
		}
		if hide != nil {
			return !hide[name]
		}
		return visible
	}

	for name, v := range mod.Variables {
		if forwardMember("$"+name, true) {
			ctx.Module.Variables[d.Prefix+name] = v
		}
	}
	for name, v := range mod.Functions {
		if forwardMember(name, true) {
			ctx.Module.Functions[d.Prefix+name] = v
		}
	}
	for name, v := range mod.Mixins {
		if forwardMember(name, true) {
			ctx.Module.Mixins[d.Prefix+name] = v
		}
	}
	ctx.Module.Upstream = append(ctx.Module.Upstream, &loader.Forwarded{Module: mod, Prefix: d.Prefix, Show: show, Hide: hide})

	// A @forward's members are visible within the forwarding stylesheet
	// itself too, the same way a @use would be, just without a namespace.
	for k, v := range mod.Variables {
		ctx.root.variables[k] = v
	}
	for k, v := range mod.Functions {
		ctx.root.functions[k] = v
	}
	for k, v := range mod.Mixins {
		ctx.root.mixins[k] = v
	}
}

// plainImportNode renders a passthrough CSS @import rule (an external URL,
// or a target ending in ".css") unchanged into the output, rather than
// resolving and inlining it as a Sass module.
func plainImportNode(url, media string) *css.AtRule {
	prelude := quoteIfBare(url)
	if media != "" {
		prelude += " " + media
	}
	return &css.AtRule{Name: "import", Prelude: prelude, HasBlock: false}
}

func quoteIfBare(url string) string {
	if len(url) > 0 && (url[0] == '"' || url[0] == '\'') {
		return url
	}
	if len(url) > 4 && url[:4] == "url(" {
		return url
	}
	return "\"" + url + "\""
}

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// execImport handles legacy "@import": unlike @use/@forward, importing the
// same file again emits its CSS again (the loaded module is cached, so it is
// not re-evaluated, but its output is re-emitted each time) and it shares its variables/mixins/functions directly into the importing
// scope's namespace rather than behind a module boundary, including
// tolerating the target transitively importing the file currently being
// evaluated (loader.Load's allowCycle=true).
func (ctx *Context) execImport(d *ast.SImport, loc logger.Loc) {
	for _, target := range d.Targets {
		if target.IsPlainCSS {
			mediaQuery := ctx.renderInterpolated(target.MediaQuery)
			ctx.emit(plainImportNode(target.URL, mediaQuery))
			continue
		}
		mod, err := ctx.Loader.Load(target.URL, ctx.source.Identifier, nil, true)
		if err != nil {
			ctx.errorf(loc, "%s", err.Error())
			continue
		}
		for k, v := range mod.Variables {
			ctx.root.variables[k] = v
			ctx.Module.Variables[k] = v
		}
		for k, v := range mod.Functions {
			ctx.root.functions[k] = v
			ctx.Module.Functions[k] = v
		}
		for k, v := range mod.Mixins {
			ctx.root.mixins[k] = v
			ctx.Module.Mixins[k] = v
		}
		if nodes, ok := mod.CSS.([]css.Node); ok {
			for _, n := range nodes {
				ctx.emit(n)
			}
		}
	}
}
