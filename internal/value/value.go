// Package value implements the SassScript value algebra: the closed set of
// runtime types (spec.md §4.3) plus the arithmetic/comparison/boolean
// operator table, equality, and the two serializations (CSS output and
// debug "inspect") every value must support.
//
// The sum type is encoded the way the teacher encodes js_ast.Expr and
// css_ast.Rule: a Value wrapper struct carries a narrow, unexported marker
// interface (Data) instead of a tag enum with one big union struct. Type
// switches over Data end in a default case, so a variant a switch leaves
// out falls through to that default rather than failing to compile.
package value

type Value struct {
	Data Data
}

// Data is implemented only by the types in this package; the set is closed.
type Data interface {
	isValue()
	// TypeName is the name Sass' own type-of()/error messages use ("string",
	// "list", "arglist", ...).
	TypeName() string
}

func (v Value) IsNull() bool {
	_, ok := v.Data.(Null)
	return ok
}

// IsTruthy implements Sass' truthiness rule: everything is truthy except
// null and the boolean false.
func (v Value) IsTruthy() bool {
	switch d := v.Data.(type) {
	case Null:
		return false
	case Boolean:
		return bool(d)
	default:
		return true
	}
}

var Null_ = Value{Data: Null{}}
var True = Value{Data: Boolean(true)}
var False = Value{Data: Boolean(false)}

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

type Null struct{}

func (Null) isValue()          {}
func (Null) TypeName() string { return "null" }

type Boolean bool

func (Boolean) isValue()          {}
func (Boolean) TypeName() string { return "bool" }
