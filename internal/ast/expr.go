package ast

import "github.com/go-sass/sassc/internal/logger"

// Expr is a SassScript expression node, encoded with the same Loc+Data
// marker-interface shape as Statement.
type Expr struct {
	Loc  logger.Loc
	Data E
}

type E interface{ isExpr() }

// EInterpolatedString and friends carry #{...} spans: plain text segments
// alternate with embedded Expr. Everything that can contain interpolation
// (selectors, property names, plain-CSS strings, media queries) is modeled
// as []InterpolatedChunk rather than repeating this union inline.
type InterpolatedChunk struct {
	Text string // used when Expr.Data == nil
	Expr *Expr
}

type ENull struct{}
type EBoolean struct{ Value bool }

type ENumber struct {
	Value float64
	Unit  string // raw unit text as written; numerator/denominator split happens in internal/value
}

type EColor struct {
	// Hex literal colors are kept as raw RGBA at parse time; named colors
	// ("rebeccapurple") are resolved the same way, so the evaluator never
	// needs to re-lex a color literal.
	R, G, B uint8
	A       float64
}

type EString struct {
	Chunks    []InterpolatedChunk
	Quoted    bool
}

type EListLiteral struct {
	Items     []Expr
	Separator string // "comma", "space", "slash", or "" for a single-element/bracketed list
	Bracketed bool
}

type EMapLiteral struct {
	Keys   []Expr
	Values []Expr
}

type EVariable struct {
	Namespace string
	Name      string
}

type EBinary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

type BinaryOp uint8

const (
	BinOpAdd BinaryOp = iota
	BinOpSub
	BinOpMul
	BinOpDiv
	BinOpMod
	BinOpEq
	BinOpNeq
	BinOpLt
	BinOpLte
	BinOpGt
	BinOpGte
	BinOpAnd
	BinOpOr
)

type EUnary struct {
	Op      UnaryOp
	Operand Expr
}

type UnaryOp uint8

const (
	UnaryOpNot UnaryOp = iota
	UnaryOpNeg
	UnaryOpPlus
)

type ETernaryIf struct {
	// "if($cond, $if-true, $if-false)" is a plain function call at the
	// grammar level; this node exists only for the evaluator's short-circuit
	// special case (spec.md notes "if()" must not eagerly evaluate both
	// branches), grounded the same way the teacher special-cases a handful
	// of global functions in js_parser rather than in the runtime.
	Args ArgumentInvocation
}

type EFunctionCall struct {
	Namespace string
	Name      string
	Args      ArgumentInvocation
}

// ArgumentInvocation is the call-site counterpart of []Param: positional
// expressions, named expressions, and optional rest/keyword-rest spreads.
type ArgumentInvocation struct {
	Positional []Expr
	Named      []NamedArg
	Rest       *Expr // "...$list" / "...$map" spread
	Range      logger.Range
}

type NamedArg struct {
	Name  string
	Value Expr
}

type ECalcExpression struct {
	// calc()/min()/max()/clamp(): the inner expression is not SassScript,
	// it is CSS's own calculation grammar, so it is kept as a token tree
	// rather than forced through EBinary.
	Name string
	Args []Expr
}

type ESelectorParent struct{} // "&"

func (*ENull) isExpr()            {}
func (*EBoolean) isExpr()         {}
func (*ENumber) isExpr()          {}
func (*EColor) isExpr()           {}
func (*EString) isExpr()          {}
func (*EListLiteral) isExpr()     {}
func (*EMapLiteral) isExpr()      {}
func (*EVariable) isExpr()        {}
func (*EBinary) isExpr()          {}
func (*EUnary) isExpr()           {}
func (*ETernaryIf) isExpr()       {}
func (*EFunctionCall) isExpr()    {}
func (*ECalcExpression) isExpr()  {}
func (*ESelectorParent) isExpr()  {}
