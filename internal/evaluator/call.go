package evaluator

import (
	"strings"

	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/value"
)

// userFunction/userMixin are the Callback payload value.Function/value.Mixin
// carry for a stylesheet-defined (as opposed to built-in) callable: the
// declaration plus the scope it closed over, so a call can run with its
// definition-site bindings visible rather than its call-site ones.
type userFunction struct {
	decl    *ast.SFunctionDecl
	closure *scope
}

type userMixin struct {
	decl    *ast.SMixinDecl
	closure *scope
}

func (ctx *Context) evalFunctionCall(d *ast.EFunctionCall, loc logger.Loc) value.Value {
	if d.Namespace != "" {
		mod := ctx.namespaces[d.Namespace]
		if mod == nil {
			ctx.errorf(loc, "Undefined function.")
			return value.Null_
		}
		fn, ok := mod.Functions[d.Name]
		if !ok {
			ctx.errorf(loc, "Undefined function.")
			return value.Null_
		}
		return ctx.callFunctionValue(fn, d.Args, loc)
	}

	if fn, ok := ctx.scope.lookupFunction(d.Name); ok {
		return ctx.callFunctionValue(fn, d.Args, loc)
	}

	if builtin, ok := globalBuiltins[d.Name]; ok {
		args := ctx.evalArgsPositional(d.Args)
		v, err := builtin(args)
		if err != nil {
			ctx.errorf(loc, "%s", err.Error())
			return value.Null_
		}
		return v
	}

	// An unrecognized plain identifier-style call (most CSS functions:
	// "translate(...)", "var(...)") passes through as literal CSS text
	// rather than erroring, matching Sass' "unknown plain function" rule.
	return ctx.passthroughCall(d)
}

func (ctx *Context) passthroughCall(d *ast.EFunctionCall) value.Value {
	var sb strings.Builder
	sb.WriteString(d.Name)
	sb.WriteByte('(')
	first := true
	for _, a := range d.Args.Positional {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(value.CSSString(ctx.eval(a)))
	}
	for _, n := range d.Args.Named {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString("$" + n.Name + ": " + value.CSSString(ctx.eval(n.Value)))
	}
	sb.WriteByte(')')
	return value.UnquotedStr(sb.String())
}

func (ctx *Context) callFunctionValue(fn value.Value, inv ast.ArgumentInvocation, loc logger.Loc) value.Value {
	f, ok := fn.Data.(value.Function)
	if !ok {
		ctx.errorf(loc, "%s is not a function.", value.Inspect(fn))
		return value.Null_
	}
	uf, ok := f.Callback.(userFunction)
	if !ok {
		ctx.errorf(loc, "%s cannot be called here.", f.Name)
		return value.Null_
	}
	return ctx.callUserFunction(uf, inv, loc)
}

func (ctx *Context) callUserFunction(uf userFunction, inv ast.ArgumentInvocation, loc logger.Loc) (result value.Value) {
	frame := newScope(uf.closure)
	if !ctx.bindParams(frame, uf.decl.Params, inv, loc) {
		return value.Null_
	}

	ctx.callStack = append(ctx.callStack, logger.StackFrame{
		FrameName: "function " + uf.decl.Name + "()",
		Location:  ctx.locationOf(loc),
	})
	savedScope := ctx.scope
	defer func() {
		ctx.callStack = ctx.callStack[:len(ctx.callStack)-1]
		ctx.scope = savedScope
		if r := recover(); r != nil {
			if sig, ok := r.(controlSignal); ok {
				result = sig.value
				return
			}
			panic(r)
		}
	}()

	ctx.scope = frame
	ctx.execStatements(uf.decl.Body)
	return value.Null_
}

func (ctx *Context) locationOf(loc logger.Loc) logger.MsgLocation {
	if l := logger.LocationOrNil(&ctx.loggerSource, logger.Range{Loc: loc}); l != nil {
		return *l
	}
	return logger.MsgLocation{}
}

// bindParams matches an argument invocation against a parameter list:
// positional arguments fill left to right, named arguments fill by name,
// defaults evaluate (against the function's own closure, not the call
// site) for anything left unfilled, and a trailing rest parameter collects
// whatever positional/named arguments remain into an ArgumentList. It
// reports (and returns false for) the three "arity" error shapes a call
// site can get wrong: a required parameter left unfilled, more positional
// arguments than the signature accepts, and a named argument the signature
// never declared — none of which are recoverable enough to run the body.
func (ctx *Context) bindParams(frame *scope, params []ast.Param, inv ast.ArgumentInvocation, loc logger.Loc) bool {
	positional := ctx.evalArgsPositional(inv)
	named := map[string]value.Value{}
	for _, n := range inv.Named {
		named[n.Name] = ctx.eval(n.Value)
	}
	if inv.Rest != nil {
		spread := ctx.eval(*inv.Rest)
		switch d := spread.Data.(type) {
		case value.ArgumentList:
			positional = append(positional, d.List.Items...)
			for i, k := range d.Keywords.Keys {
				if s, ok := k.Data.(value.SassString); ok {
					named[s.Text] = d.Keywords.Values[i]
				}
			}
		case value.List:
			positional = append(positional, d.Items...)
		default:
			positional = append(positional, spread)
		}
	}

	hasRest := false
	for _, param := range params {
		if param.IsRest {
			hasRest = true
		}
	}

	var missing []string
	pi := 0
	for _, param := range params {
		if param.IsRest {
			rest := append([]value.Value(nil), positional[min(pi, len(positional)):]...)
			kw := value.Map{}
			for k, v := range named {
				kw = kw.Set(value.Str(k), v)
			}
			frame.declareLocal(param.Name, value.NewArgumentList(rest, value.SepComma, kw))
			pi = len(positional)
			continue
		}
		if pi < len(positional) {
			frame.declareLocal(param.Name, positional[pi])
			pi++
			continue
		}
		if v, ok := named[param.Name]; ok {
			frame.declareLocal(param.Name, v)
			delete(named, param.Name)
			continue
		}
		if param.Default != nil {
			frame.declareLocal(param.Name, ctx.eval(*param.Default))
			continue
		}
		missing = append(missing, "$"+param.Name)
	}

	if len(missing) > 0 {
		word := "argument"
		if len(missing) > 1 {
			word = "arguments"
		}
		ctx.errorf(loc, "Missing %s %s.", word, strings.Join(missing, ", "))
		return false
	}
	if hasRest {
		return true
	}
	if pi < len(positional) {
		ctx.errorf(loc, "Only %d positional arguments allowed, but %d were passed.", pi, len(positional))
		return false
	}
	for name := range named {
		ctx.errorf(loc, "No argument named $%s.", name)
		return false
	}
	return true
}

func (ctx *Context) evalArgsPositional(inv ast.ArgumentInvocation) []value.Value {
	out := make([]value.Value, len(inv.Positional))
	for i, a := range inv.Positional {
		out[i] = ctx.eval(a)
	}
	return out
}
