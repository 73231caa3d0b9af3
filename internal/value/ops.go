package value

import "fmt"

// Equal implements Sass' "==" for every pair of types it is defined between.
// Values of different runtime type are equal only in the empty-list /
// empty-map case (spec.md §4.3 edge cases); everything else compares false
// rather than erroring, matching "==" being total over the whole algebra.
func Equal(a, b Value) bool {
	switch x := a.Data.(type) {
	case Null:
		_, ok := b.Data.(Null)
		return ok
	case Boolean:
		y, ok := b.Data.(Boolean)
		return ok && x == y
	case Number:
		y, ok := b.Data.(Number)
		return ok && x.Equal(y)
	case Color:
		y, ok := b.Data.(Color)
		return ok && x.Equal(y)
	case SassString:
		y, ok := b.Data.(SassString)
		return ok && x.Text == y.Text
	case List:
		return equalList(x, b)
	case Map:
		return equalMap(x, b)
	case ArgumentList:
		return equalList(x.List, b)
	case Calculation:
		y, ok := b.Data.(Calculation)
		return ok && equalCalc(x, y)
	case Function:
		y, ok := b.Data.(Function)
		return ok && x.Name == y.Name
	case Mixin:
		y, ok := b.Data.(Mixin)
		return ok && x.Name == y.Name
	default:
		return false
	}
}

func equalList(x List, b Value) bool {
	var y List
	switch d := b.Data.(type) {
	case List:
		y = d
	case ArgumentList:
		y = d.List
	case Map:
		// empty list == empty map
		return len(x.Items) == 0 && len(d.Keys) == 0
	default:
		return false
	}
	if len(x.Items) == 0 && len(y.Items) == 0 {
		return true
	}
	if len(x.Items) != len(y.Items) || x.Bracketed != y.Bracketed {
		return false
	}
	if len(x.Items) > 1 && x.Separator != y.Separator {
		return false
	}
	for i := range x.Items {
		if !Equal(x.Items[i], y.Items[i]) {
			return false
		}
	}
	return true
}

func equalMap(x Map, b Value) bool {
	switch d := b.Data.(type) {
	case Map:
		if len(x.Keys) != len(d.Keys) {
			return false
		}
		for i, k := range x.Keys {
			v2, ok := d.Get(k)
			if !ok || !Equal(x.Values[i], v2) {
				return false
			}
		}
		return true
	case List:
		return len(x.Keys) == 0 && len(d.Items) == 0
	default:
		return false
	}
}

func equalCalc(x, y Calculation) bool {
	if x.Name != y.Name || len(x.Arguments) != len(y.Arguments) {
		return false
	}
	for i := range x.Arguments {
		a, b := x.Arguments[i], y.Arguments[i]
		if a.Raw != "" || b.Raw != "" {
			if a.Raw != b.Raw {
				return false
			}
			continue
		}
		if !Equal(a.Value, b.Value) {
			return false
		}
	}
	return true
}

// Add implements the "+" operator: number+number adds, and every other pair
// concatenates the two operands' text into a string (a string operand
// contributes its contents, not its quote marks).
func Add(a, b Value) (Value, error) {
	if isCalculation(a) || isCalculation(b) {
		return Value{}, fmt.Errorf("%s isn't a valid CSS value", Inspect(pickCalculation(a, b)))
	}
	text := func(v Value) string {
		if s, ok := v.Data.(SassString); ok {
			return s.Text
		}
		return CSSString(v)
	}
	switch x := a.Data.(type) {
	case Number:
		if y, ok := b.Data.(Number); ok {
			sum, err := x.Add(y)
			if err != nil {
				return Value{}, err
			}
			return Value{Data: sum}, nil
		}
		return concatString(CSSString(a), text(b), isQuoted(b)), nil
	case SassString:
		return concatString(x.Text, text(b), x.Quoted || isQuoted(b)), nil
	default:
		if _, ok := b.Data.(SassString); ok {
			return concatString(CSSString(a), text(b), isQuoted(b)), nil
		}
		return concatString(CSSString(a), CSSString(b), false), nil
	}
}

func isCalculation(v Value) bool {
	_, ok := v.Data.(Calculation)
	return ok
}

// pickCalculation returns whichever operand is the Calculation, for an
// error message naming the offending value rather than both operands.
func pickCalculation(a, b Value) Value {
	if isCalculation(a) {
		return a
	}
	return b
}

func isQuoted(v Value) bool {
	s, ok := v.Data.(SassString)
	return ok && s.Quoted
}

func concatString(a, b string, quoted bool) Value {
	return Value{Data: SassString{Text: a + b, Quoted: quoted}}
}

func Sub(a, b Value) (Value, error) {
	if isCalculation(a) || isCalculation(b) {
		return Value{}, fmt.Errorf("%s isn't a valid CSS value", Inspect(pickCalculation(a, b)))
	}
	x, xok := a.Data.(Number)
	y, yok := b.Data.(Number)
	if xok && yok {
		d, err := x.Sub(y)
		if err != nil {
			return Value{}, err
		}
		return Value{Data: d}, nil
	}
	return Value{Data: SassString{Text: CSSString(a) + "-" + CSSString(b)}}, nil
}

func Mul(a, b Value) (Value, error) {
	x, xok := a.Data.(Number)
	y, yok := b.Data.(Number)
	if !xok || !yok {
		return Value{}, fmt.Errorf("%s and %s cannot be multiplied", a.Data.TypeName(), b.Data.TypeName())
	}
	return Value{Data: x.Mul(y)}, nil
}

func Div(a, b Value) (Value, error) {
	x, xok := a.Data.(Number)
	y, yok := b.Data.(Number)
	if xok && yok {
		d := x.Div(y)
		d.AsSlash = &SlashOperands{Left: x, Right: y}
		return Value{Data: d}, nil
	}
	return Value{Data: SassString{Text: CSSString(a) + "/" + CSSString(b)}}, nil
}

func Mod(a, b Value) (Value, error) {
	x, xok := a.Data.(Number)
	y, yok := b.Data.(Number)
	if !xok || !yok {
		return Value{}, fmt.Errorf("%s and %s cannot be used with %%", a.Data.TypeName(), b.Data.TypeName())
	}
	m, err := x.Mod(y)
	if err != nil {
		return Value{}, err
	}
	return Value{Data: m}, nil
}

// Compare implements "<"/"<="/">"/">=", defined only between numbers.
func Compare(a, b Value) (int, error) {
	x, xok := a.Data.(Number)
	y, yok := b.Data.(Number)
	if !xok || !yok {
		return 0, fmt.Errorf("%s and %s cannot be compared", a.Data.TypeName(), b.Data.TypeName())
	}
	return x.CompareTo(y)
}

func Neg(a Value) (Value, error) {
	switch x := a.Data.(type) {
	case Number:
		return Value{Data: x.Neg()}, nil
	default:
		return Value{Data: SassString{Text: "-" + CSSString(a)}}, nil
	}
}

func Not(a Value) Value {
	return Bool(!a.IsTruthy())
}
