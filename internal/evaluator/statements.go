package evaluator

import (
	"strings"

	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/css"
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/value"
)

// controlSignal unwinds a statement list when @return fires inside a
// function body, the same panic/recover-to-a-sentinel-type shape the
// parser uses to unwind out of a malformed statement, applied here to
// unwind out of arbitrarily nested @if/@each/@for/@while bodies without
// threading a "did we return" bool through every call.
type controlSignal struct {
	value value.Value
}

// userError carries an "@error" message up through a panic/recover to
// wherever the compilation entrypoint is driven from, terminating the
// compile the same way a hard parse error does.
type userError struct{ message string }

func (ctx *Context) execStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		ctx.execStatement(s)
	}
}

func (ctx *Context) execStatement(s ast.Statement) {
	switch d := s.Data.(type) {
	case *ast.SVariableDecl:
		ctx.execVariableDecl(d, s.Loc)
	case *ast.SStyleRule:
		ctx.execStyleRule(d)
	case *ast.SDeclaration:
		ctx.execDeclaration(d)
	case *ast.SUse:
		ctx.execUse(d, s.Loc)
	case *ast.SForward:
		ctx.execForward(d, s.Loc)
	case *ast.SImport:
		ctx.execImport(d, s.Loc)
	case *ast.SFunctionDecl:
		ctx.scope.functions[d.Name] = value.Value{Data: value.Function{Name: d.Name, Callback: userFunction{decl: d, closure: ctx.scope}}}
	case *ast.SMixinDecl:
		ctx.scope.mixins[d.Name] = value.Value{Data: value.Mixin{Name: d.Name, Callback: userMixin{decl: d, closure: ctx.scope}}}
	case *ast.SInclude:
		ctx.execInclude(d, s.Loc)
	case *ast.SContentRule:
		ctx.execContentRule(d, s.Loc)
	case *ast.SIf:
		ctx.execIf(d)
	case *ast.SEach:
		ctx.execEach(d)
	case *ast.SFor:
		ctx.execFor(d)
	case *ast.SWhile:
		ctx.execWhile(d)
	case *ast.SReturn:
		v := ctx.eval(d.Value)
		panic(controlSignal{value: v})
	case *ast.SDebug:
		v := ctx.eval(d.Value)
		ctx.Options.Logger.AddMsg(logger.Msg{Kind: logger.Note, Data: logger.RangeData(&ctx.loggerSource, logger.Range{Loc: d.Value.Loc}, value.Inspect(v))})
	case *ast.SWarn:
		v := ctx.eval(d.Value)
		ctx.Options.Logger.AddWarning(&ctx.loggerSource, d.Value.Loc, value.Inspect(v))
	case *ast.SError:
		v := ctx.eval(d.Value)
		panic(userError{message: value.Inspect(v)})
	case *ast.SMedia:
		ctx.execMedia(d)
	case *ast.SSupports:
		ctx.execSupports(d)
	case *ast.SAtRoot:
		ctx.execAtRoot(d)
	case *ast.SPlainAtRule:
		ctx.execPlainAtRule(d)
	case *ast.SComment:
		ctx.emit(&css.Comment{Text: d.Text, Preserved: d.IsPreserved})
	}
}

func (ctx *Context) execVariableDecl(d *ast.SVariableDecl, loc logger.Loc) {
	if d.Namespace != "" {
		mod := ctx.namespaces[d.Namespace]
		if mod == nil {
			return
		}
		if d.Default {
			if _, ok := mod.Variables[d.Name]; ok {
				return
			}
		}
		mod.Variables[d.Name] = ctx.eval(d.Value)
		return
	}
	if d.Default {
		if _, ok := ctx.scope.lookupVariable(d.Name); ok {
			return
		}
	}
	v := ctx.eval(d.Value)
	if d.Global {
		if !ctx.scope.setGlobal(d.Name, v) {
			ctx.errorf(loc, "Undefined variable.")
			return
		}
		ctx.Module.Variables[d.Name] = v
	} else {
		ctx.scope.setVariable(d.Name, v)
	}
}

func (ctx *Context) execDeclaration(d *ast.SDeclaration) {
	prop := ctx.renderInterpolated(d.Property)
	if d.Value != nil {
		v := ctx.eval(*d.Value)
		if v.IsNull() {
			return
		}
		text := value.CSSString(v)
		ctx.emit(&css.Declaration{Property: prop, Value: text, Important: d.Important})
	}
	if len(d.Body) > 0 {
		prefix := prop
		ctx.withNestedProperty(prefix, d.Body)
	}
}

func (ctx *Context) withNestedProperty(prefix string, body []ast.Statement) {
	// "font: { size: 10px; }" expands to "font-size: 10px": re-run the
	// block's own declarations with the property name prefixed.
	for _, s := range body {
		if decl, ok := s.Data.(*ast.SDeclaration); ok {
			nested := *decl
			nested.Property = append([]ast.InterpolatedChunk{{Text: prefix + "-"}}, decl.Property...)
			ctx.execDeclaration(&nested)
			continue
		}
		ctx.execStatement(s)
	}
}

func (ctx *Context) execStyleRule(d *ast.SStyleRule) {
	raw := ctx.renderInterpolated(d.Selector)
	selector := ctx.combineSelector(raw)

	var nested []css.Node
	outer := ctx.output
	ctx.output = &nested
	ctx.selectorStack = append(ctx.selectorStack, selector)
	ctx.execStatements(d.Body)
	ctx.selectorStack = ctx.selectorStack[:len(ctx.selectorStack)-1]
	ctx.output = outer

	ctx.emit(&css.Rule{Selector: selector, Nodes: nested})
}

// combineSelector joins a nested selector with its enclosing one, honoring
// explicit "&" parent references and otherwise falling back to plain
// descendant nesting. Compound selector logic (e.g. "&.active" producing
// one compound selector rather than two) is handled by substring
// replacement of "&" rather than a full selector AST: good enough for the
// overwhelming majority of real-world nesting, at the cost of not handling
// multiple comma-separated parent selectors expanding against multiple
// comma-separated children.
func (ctx *Context) combineSelector(raw string) string {
	parent := ctx.currentSelector()
	if parent == "" {
		return raw
	}
	if strings.Contains(raw, "&") {
		return strings.ReplaceAll(raw, "&", parent)
	}
	return parent + " " + raw
}

func (ctx *Context) execMedia(d *ast.SMedia) {
	query := ctx.renderInterpolated(d.Query)
	ctx.execAtRuleBlock("media", query, d.Body)
}

func (ctx *Context) execSupports(d *ast.SSupports) {
	cond := ctx.renderInterpolated(d.Condition)
	ctx.execAtRuleBlock("supports", cond, d.Body)
}

func (ctx *Context) execAtRoot(d *ast.SAtRoot) {
	savedSelectors := ctx.selectorStack
	if !strings.Contains(d.Query, "with:") || strings.Contains(d.Query, "rule") {
		ctx.selectorStack = nil
	}
	ctx.execStatements(d.Body)
	ctx.selectorStack = savedSelectors
}

func (ctx *Context) execPlainAtRule(d *ast.SPlainAtRule) {
	prelude := ctx.renderInterpolated(d.Prelude)
	if d.Body == nil {
		ctx.emit(&css.AtRule{Name: d.Name, Prelude: prelude, HasBlock: false})
		return
	}
	ctx.execAtRuleBlock(d.Name, prelude, d.Body)
}

func (ctx *Context) execAtRuleBlock(name, prelude string, body []ast.Statement) {
	var nested []css.Node
	outer := ctx.output
	ctx.output = &nested
	ctx.execStatements(body)
	ctx.output = outer
	ctx.emit(&css.AtRule{Name: name, Prelude: prelude, Nodes: nested, HasBlock: true})
}

func (ctx *Context) execIf(d *ast.SIf) {
	for _, clause := range d.Clauses {
		if ctx.eval(clause.Condition).IsTruthy() {
			ctx.execInNewScope(clause.Body)
			return
		}
	}
	if d.Else != nil {
		ctx.execInNewScope(d.Else)
	}
}

func (ctx *Context) execInNewScope(body []ast.Statement) {
	saved := ctx.scope
	ctx.scope = newScope(saved)
	ctx.execStatements(body)
	ctx.scope = saved
}

func (ctx *Context) execEach(d *ast.SEach) {
	list := value.AsList(ctx.eval(d.List))
	saved := ctx.scope
	for _, item := range list.Items {
		ctx.scope = newScope(saved)
		ctx.bindEachVariables(d.Variables, item)
		ctx.execStatements(d.Body)
	}
	ctx.scope = saved
}

func (ctx *Context) bindEachVariables(names []string, item value.Value) {
	if len(names) == 1 {
		ctx.scope.declareLocal(names[0], item)
		return
	}
	parts := value.AsList(item).Items
	for i, name := range names {
		if i < len(parts) {
			ctx.scope.declareLocal(name, parts[i])
		} else {
			ctx.scope.declareLocal(name, value.Null_)
		}
	}
}

func (ctx *Context) execFor(d *ast.SFor) {
	from := ctx.eval(d.From)
	to := ctx.eval(d.To)
	fromN, _ := from.Data.(value.Number)
	toN, _ := to.Data.(value.Number)
	saved := ctx.scope
	start, end := int(fromN.Value), int(toN.Value)
	step := 1
	if start > end {
		step = -1
	}
	for i := start; (step > 0 && i <= end) || (step < 0 && i >= end); i += step {
		if d.Exclusive && i == end {
			break
		}
		ctx.scope = newScope(saved)
		ctx.scope.declareLocal(d.Variable, value.Num(float64(i)))
		ctx.execStatements(d.Body)
	}
	ctx.scope = saved
}

func (ctx *Context) execWhile(d *ast.SWhile) {
	saved := ctx.scope
	for ctx.eval(d.Condition).IsTruthy() {
		ctx.scope = newScope(saved)
		ctx.execStatements(d.Body)
	}
	ctx.scope = saved
}

func (ctx *Context) execContentRule(d *ast.SContentRule, loc logger.Loc) {
	if len(ctx.contentStack) == 0 {
		return
	}
	frame := ctx.contentStack[len(ctx.contentStack)-1]
	ctx.contentStack = ctx.contentStack[:len(ctx.contentStack)-1]

	saved := ctx.scope
	ctx.scope = newScope(frame.scope)
	if ctx.bindParams(ctx.scope, frame.params, d.Args, loc) {
		ctx.execStatements(frame.body)
	}
	ctx.scope = saved

	ctx.contentStack = append(ctx.contentStack, frame)
}

func (ctx *Context) renderInterpolated(chunks []ast.InterpolatedChunk) string {
	var sb strings.Builder
	for _, c := range chunks {
		if c.Expr != nil {
			sb.WriteString(value.CSSString(ctx.eval(*c.Expr)))
		} else {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}
