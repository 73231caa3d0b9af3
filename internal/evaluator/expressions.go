package evaluator

import (
	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/value"
)

func (ctx *Context) eval(e ast.Expr) value.Value {
	switch d := e.Data.(type) {
	case *ast.ENull:
		return value.Null_
	case *ast.EBoolean:
		return value.Bool(d.Value)
	case *ast.ENumber:
		return value.NumUnit(d.Value, d.Unit)
	case *ast.EColor:
		return value.RGB(float64(d.R), float64(d.G), float64(d.B), d.A)
	case *ast.EString:
		return ctx.evalString(d)
	case *ast.EListLiteral:
		return ctx.evalList(d)
	case *ast.EMapLiteral:
		return ctx.evalMap(d)
	case *ast.EVariable:
		return ctx.evalVariable(d)
	case *ast.EBinary:
		return ctx.evalBinary(d, e.Loc)
	case *ast.EUnary:
		return ctx.evalUnary(d)
	case *ast.ETernaryIf:
		return ctx.evalTernaryIf(d)
	case *ast.EFunctionCall:
		return ctx.evalFunctionCall(d, e.Loc)
	case *ast.ECalcExpression:
		return ctx.evalCalc(d)
	case *ast.ESelectorParent:
		return value.UnquotedStr(ctx.currentSelector())
	default:
		return value.Null_
	}
}

func (ctx *Context) evalString(d *ast.EString) value.Value {
	text := ctx.renderInterpolated(d.Chunks)
	return value.Value{Data: value.SassString{Text: text, Quoted: d.Quoted}}
}

func (ctx *Context) evalList(d *ast.EListLiteral) value.Value {
	items := make([]value.Value, len(d.Items))
	for i, item := range d.Items {
		items[i] = ctx.eval(item)
	}
	sep := value.SepUndecided
	switch d.Separator {
	case "comma":
		sep = value.SepComma
	case "space":
		sep = value.SepSpace
	case "slash":
		sep = value.SepSlash
	}
	return value.NewList(items, sep, d.Bracketed)
}

func (ctx *Context) evalMap(d *ast.EMapLiteral) value.Value {
	keys := make([]value.Value, len(d.Keys))
	values := make([]value.Value, len(d.Values))
	for i := range d.Keys {
		keys[i] = ctx.eval(d.Keys[i])
		values[i] = ctx.eval(d.Values[i])
	}
	return value.NewMap(keys, values)
}

func (ctx *Context) evalVariable(d *ast.EVariable) value.Value {
	if d.Namespace != "" {
		mod := ctx.namespaces[d.Namespace]
		if mod == nil {
			return value.Null_
		}
		if v, ok := mod.Variables[d.Name]; ok {
			return v
		}
		return value.Null_
	}
	if v, ok := ctx.scope.lookupVariable(d.Name); ok {
		return v
	}
	return value.Null_
}

func (ctx *Context) evalUnary(d *ast.EUnary) value.Value {
	operand := ctx.eval(d.Operand)
	switch d.Op {
	case ast.UnaryOpNot:
		return value.Not(operand)
	case ast.UnaryOpNeg:
		v, err := value.Neg(operand)
		if err != nil {
			return value.Null_
		}
		return v
	default:
		return operand
	}
}

func (ctx *Context) evalBinary(d *ast.EBinary, loc logger.Loc) value.Value {
	switch d.Op {
	case ast.BinOpAnd:
		left := ctx.eval(d.Left)
		if !left.IsTruthy() {
			return left
		}
		return ctx.eval(d.Right)
	case ast.BinOpOr:
		left := ctx.eval(d.Left)
		if left.IsTruthy() {
			return left
		}
		return ctx.eval(d.Right)
	}

	left := ctx.eval(d.Left)
	right := ctx.eval(d.Right)

	switch d.Op {
	case ast.BinOpEq:
		return value.Bool(value.Equal(left, right))
	case ast.BinOpNeq:
		return value.Bool(!value.Equal(left, right))
	case ast.BinOpAdd:
		v, err := value.Add(left, right)
		if err != nil {
			ctx.errorf(loc, "%s", err.Error())
			return value.Null_
		}
		return v
	case ast.BinOpSub:
		v, err := value.Sub(left, right)
		if err != nil {
			ctx.errorf(loc, "%s", err.Error())
			return value.Null_
		}
		return v
	case ast.BinOpMul:
		v, err := value.Mul(left, right)
		if err != nil {
			ctx.errorf(loc, "%s", err.Error())
			return value.Null_
		}
		return v
	case ast.BinOpDiv:
		ctx.reportSlashDivDeprecation(left, right, loc)
		v, err := value.Div(left, right)
		if err != nil {
			ctx.errorf(loc, "%s", err.Error())
			return value.Null_
		}
		return v
	case ast.BinOpMod:
		v, err := value.Mod(left, right)
		if err != nil {
			ctx.errorf(loc, "%s", err.Error())
			return value.Null_
		}
		return v
	case ast.BinOpLt, ast.BinOpLte, ast.BinOpGt, ast.BinOpGte:
		cmp, err := value.Compare(left, right)
		if err != nil {
			return value.False
		}
		switch d.Op {
		case ast.BinOpLt:
			return value.Bool(cmp < 0)
		case ast.BinOpLte:
			return value.Bool(cmp <= 0)
		case ast.BinOpGt:
			return value.Bool(cmp > 0)
		default:
			return value.Bool(cmp >= 0)
		}
	}
	return value.Null_
}

// reportSlashDivDeprecation flags "/" used as arithmetic division between
// two numbers, the reference compiler's slash-division deprecation: the
// operator still performs the division, but callers are steered toward
// math.div() since a bare "/" is kept only for legacy CSS shorthand like
// "font: 12px/1.5".
func (ctx *Context) reportSlashDivDeprecation(left, right value.Value, loc logger.Loc) {
	if _, ok := left.Data.(value.Number); !ok {
		return
	}
	if _, ok := right.Data.(value.Number); !ok {
		return
	}
	switch ctx.Options.DeprecationLevel(logger.MsgID_SlashDiv, logger.LevelWarning) {
	case logger.LevelSilent:
	case logger.LevelError:
		ctx.errorf(loc, "Using \"/\" for division outside of calc() is deprecated. Use math.div() instead.")
	default:
		ctx.Options.Logger.AddWarning(&ctx.loggerSource, loc, "Using \"/\" for division outside of calc() is deprecated. Use math.div() instead.")
	}
}

func (ctx *Context) evalTernaryIf(d *ast.ETernaryIf) value.Value {
	args := d.Args
	positional := args.Positional
	cond := value.False
	var ifTrue, ifFalse ast.Expr
	haveTrue, haveFalse := false, false
	if len(positional) > 0 {
		cond = ctx.eval(positional[0])
	}
	if len(positional) > 1 {
		ifTrue, haveTrue = positional[1], true
	}
	if len(positional) > 2 {
		ifFalse, haveFalse = positional[2], true
	}
	for _, n := range args.Named {
		switch n.Name {
		case "condition":
			cond = ctx.eval(n.Value)
		case "if-true":
			ifTrue, haveTrue = n.Value, true
		case "if-false":
			ifFalse, haveFalse = n.Value, true
		}
	}
	if cond.IsTruthy() {
		if haveTrue {
			return ctx.eval(ifTrue)
		}
		return value.Null_
	}
	if haveFalse {
		return ctx.eval(ifFalse)
	}
	return value.Null_
}

func (ctx *Context) evalCalc(d *ast.ECalcExpression) value.Value {
	operands := make([]value.CalcOperand, len(d.Args))
	for i, a := range d.Args {
		v := ctx.eval(a)
		operands[i] = value.CalcOperand{Value: v}
	}
	return value.Value{Data: value.Calculation{Name: d.Name, Arguments: operands}}
}
