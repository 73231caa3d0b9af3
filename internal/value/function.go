package value

// Function and Mixin wrap a first-class reference to a user-defined or
// built-in callable, the payload of "get-function()" and the mixin
// equivalent used by "meta.apply". The evaluator attaches the actual
// callable body via the Callback field at definition time; this package
// only needs to carry it around and compare/serialize it.
type Function struct {
	Name     string
	Callback interface{} // set by internal/evaluator to its own function-closure type
}

func (Function) isValue()          {}
func (Function) TypeName() string { return "function" }

type Mixin struct {
	Name     string
	Callback interface{}
}

func (Mixin) isValue()          {}
func (Mixin) TypeName() string { return "mixin" }

// ArgumentList is the value bound to a "..." rest parameter: a List that
// also remembers any named arguments passed past the positional ones, so
// that "meta.keywords($args)" can recover them.
type ArgumentList struct {
	List     List
	Keywords Map
}

func (ArgumentList) isValue()          {}
func (ArgumentList) TypeName() string { return "arglist" }

func NewArgumentList(items []Value, sep Separator, keywords Map) Value {
	return Value{Data: ArgumentList{List: List{Items: items, Separator: sep}, Keywords: keywords}}
}

// Calculation is an unevaluated CSS calc()/min()/max()/clamp() expression:
// Sass can partially simplify it (constant-fold number literals) but must
// preserve the rest verbatim since the browser performs the final
// evaluation against values Sass cannot know (e.g. "100vw").
type Calculation struct {
	Name      string // "calc", "min", "max", "clamp"
	Arguments []CalcOperand
}

func (Calculation) isValue()          {}
func (Calculation) TypeName() string { return "calculation" }

// CalcOperand is either a nested Value (a Number or another Calculation) or
// raw, not-further-interpretable CSS text such as "100vw" or an operator.
type CalcOperand struct {
	Value Value
	Raw   string // non-empty means Value is zero and this text is used verbatim
}
