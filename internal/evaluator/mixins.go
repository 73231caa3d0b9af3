package evaluator

import (
	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/css"
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/value"
)

func (ctx *Context) execInclude(d *ast.SInclude, loc logger.Loc) {
	if d.Namespace == "meta" && d.Name == "load-css" && ctx.namespaces["meta"] == nil {
		ctx.execLoadCSS(d, loc)
		return
	}

	var mixinVal value.Value
	var ok bool
	if d.Namespace != "" {
		mod := ctx.namespaces[d.Namespace]
		if mod == nil {
			ctx.errorf(loc, "Undefined mixin.")
			return
		}
		mixinVal, ok = mod.Mixins[d.Name]
	} else {
		mixinVal, ok = ctx.scope.lookupMixin(d.Name)
	}
	if !ok {
		ctx.errorf(loc, "Undefined mixin.")
		return
	}

	m, ok := mixinVal.Data.(value.Mixin)
	if !ok {
		ctx.errorf(loc, "%s is not a mixin.", value.Inspect(mixinVal))
		return
	}
	um, ok := m.Callback.(userMixin)
	if !ok {
		ctx.errorf(loc, "%s cannot be called here.", m.Name)
		return
	}
	if d.Content != nil && !um.decl.AcceptsContent {
		ctx.errorf(loc, "Mixin doesn't accept a content block.")
		return
	}
	ctx.callUserMixin(um, d.Args, d.Content, loc)
}

// callUserMixin runs a mixin body in a fresh scope chained off its
// definition-site closure. A passed "@include m { ... }" content block is
// pushed onto the content stack with the *call site's* scope captured (not
// the mixin's), so "@content" sees the variables visible where it was
// written, not the mixin's internals.
func (ctx *Context) callUserMixin(um userMixin, inv ast.ArgumentInvocation, content *ast.ContentBlock, loc logger.Loc) {
	frame := newScope(um.closure)
	if !ctx.bindParams(frame, um.decl.Params, inv, loc) {
		return
	}

	if content != nil {
		ctx.contentStack = append(ctx.contentStack, contentFrame{
			body:   content.Body,
			scope:  ctx.scope,
			params: content.Params,
		})
	}

	ctx.callStack = append(ctx.callStack, logger.StackFrame{
		FrameName: "mixin " + um.decl.Name + "()",
		Location:  ctx.locationOf(loc),
	})
	defer func() {
		ctx.callStack = ctx.callStack[:len(ctx.callStack)-1]
		if content != nil {
			ctx.contentStack = ctx.contentStack[:len(ctx.contentStack)-1]
		}
		if r := recover(); r != nil {
			if _, ok := r.(controlSignal); ok {
				return
			}
			panic(r)
		}
	}()

	savedScope := ctx.scope
	ctx.scope = frame
	ctx.execStatements(um.decl.Body)
	ctx.scope = savedScope
}

// execLoadCSS implements "@include meta.load-css($module, $with: null)":
// unlike @use/@forward, it never binds a namespace and can be called more
// than once for the same target from anywhere in a stylesheet's body — it
// loads (or reuses, via the loader's slot coalescing) the target module and
// splices its rendered CSS into the output tree at the call site, rather
// than merging its variables/functions/mixins into any scope.
func (ctx *Context) execLoadCSS(d *ast.SInclude, loc logger.Loc) {
	args := ctx.evalArgsPositional(d.Args)
	module, ok := asString(arg(args, 0))
	if !ok {
		ctx.errorf(loc, "$module: %s is not a string.", value.Inspect(arg(args, 0)))
		return
	}

	var configuration map[string]value.Value
	if withExpr, ok := namedArg(d.Args, "with"); ok {
		withVal := ctx.eval(withExpr)
		m, ok := withVal.Data.(value.Map)
		if !ok {
			ctx.errorf(loc, "$with: %s is not a map.", value.Inspect(withVal))
			return
		}
		configuration = configurationFromMap(m)
	}

	mod, err := ctx.Loader.Load(module.Text, ctx.source.Identifier, configuration, false)
	if err != nil {
		ctx.errorf(loc, "%s", err.Error())
		return
	}
	if nodes, ok := mod.CSS.([]css.Node); ok {
		*ctx.output = append(*ctx.output, nodes...)
	}
}

func namedArg(inv ast.ArgumentInvocation, name string) (ast.Expr, bool) {
	for _, n := range inv.Named {
		if n.Name == name {
			return n.Value, true
		}
	}
	return ast.Expr{}, false
}

// configurationFromMap turns a "$with" map's (string key -> value) pairs
// into the variable-name -> value bindings Loader.Load's configuration
// parameter expects, the same shape "@use ... with (...)" builds out of its
// syntactic config-var list in evalConfiguration.
func configurationFromMap(m value.Map) map[string]value.Value {
	out := make(map[string]value.Value, len(m.Keys))
	for i, k := range m.Keys {
		if s, ok := k.Data.(value.SassString); ok {
			out[s.Text] = m.Values[i]
		}
	}
	return out
}
