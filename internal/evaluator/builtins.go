package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-sass/sassc/internal/value"
)

// globalBuiltins covers the core global-namespace built-in functions (the
// ones a stylesheet can call without a "sass:" module prefix, same as the
// reference compiler's pre-module-system global function library).
// evalFunctionCall only consults it after a namespaced lookup and a local
// scope lookup have both failed, so a stylesheet-defined function of the
// same name always wins.
var globalBuiltins = map[string]func([]value.Value) (value.Value, error){
	"quote":          fnQuote,
	"unquote":        fnUnquote,
	"to-upper-case":  fnToUpperCase,
	"to-lower-case":  fnToLowerCase,
	"str-length":     fnStrLength,
	"str-slice":      fnStrSlice,
	"str-index":      fnStrIndex,
	"str-insert":     fnStrInsert,

	"length":         fnLength,
	"nth":            fnNth,
	"list-separator": fnListSeparator,
	"is-bracketed":   fnIsBracketed,
	"append":         fnAppend,
	"join":           fnJoin,
	"index":          fnIndex,
	"set-nth":        fnSetNth,
	"zip":            fnZip,

	"map-get":     fnMapGet,
	"map-has-key": fnMapHasKey,
	"map-keys":    fnMapKeys,
	"map-values":  fnMapValues,
	"map-merge":   fnMapMerge,
	"map-remove":  fnMapRemove,

	"abs":        fnAbs,
	"ceil":       fnCeil,
	"floor":      fnFloor,
	"round":      fnRound,
	"min":        fnMin,
	"max":        fnMax,
	"percentage": fnPercentage,
	"sqrt":       fnSqrt,
	"comparable": fnComparable,

	"type-of":  fnTypeOf,
	"unit":     fnUnit,
	"unitless": fnUnitless,
	"inspect":  fnInspect,
	"not":      fnNot,

	"red":    fnRed,
	"green":  fnGreen,
	"blue":   fnBlue,
	"alpha":  fnAlpha,
	"opacity": fnAlpha,
	"rgba":   fnRGBA,
	"mix":    fnMix,
	"lighten": fnLighten,
	"darken":  fnDarken,
}

func arg(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.Null_
}

func asString(v value.Value) (value.SassString, bool) {
	s, ok := v.Data.(value.SassString)
	return s, ok
}

func asNumber(v value.Value) (value.Number, bool) {
	n, ok := v.Data.(value.Number)
	return n, ok
}

func fnQuote(args []value.Value) (value.Value, error) {
	s, _ := asString(arg(args, 0))
	return value.Str(s.Text), nil
}

func fnUnquote(args []value.Value) (value.Value, error) {
	s, _ := asString(arg(args, 0))
	return value.UnquotedStr(s.Text), nil
}

func fnToUpperCase(args []value.Value) (value.Value, error) {
	s, ok := asString(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("to-upper-case() requires a string")
	}
	return value.Value{Data: value.SassString{Text: strings.ToUpper(s.Text), Quoted: s.Quoted}}, nil
}

func fnToLowerCase(args []value.Value) (value.Value, error) {
	s, ok := asString(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("to-lower-case() requires a string")
	}
	return value.Value{Data: value.SassString{Text: strings.ToLower(s.Text), Quoted: s.Quoted}}, nil
}

func fnStrLength(args []value.Value) (value.Value, error) {
	s, ok := asString(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("str-length() requires a string")
	}
	return value.Num(float64(s.Len())), nil
}

func fnStrSlice(args []value.Value) (value.Value, error) {
	s, ok := asString(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("str-slice() requires a string")
	}
	runes := []rune(s.Text)
	start, err := sliceIndex(arg(args, 1), len(runes), 1)
	if err != nil {
		return value.Value{}, err
	}
	end := len(runes)
	if len(args) > 2 && !args[2].IsNull() {
		end, err = sliceIndex(args[2], len(runes), len(runes))
		if err != nil {
			return value.Value{}, err
		}
	}
	if start > end || start >= len(runes) {
		return value.Value{Data: value.SassString{Quoted: s.Quoted}}, nil
	}
	if end > len(runes) {
		end = len(runes)
	}
	return value.Value{Data: value.SassString{Text: string(runes[start:end]), Quoted: s.Quoted}}, nil
}

func sliceIndex(v value.Value, length, dflt int) (int, error) {
	n, ok := asNumber(v)
	if !ok {
		return dflt - 1, nil
	}
	i := int(n.Value)
	if i < 0 {
		i = length + i + 1
	}
	if i < 1 {
		i = 1
	}
	return i - 1, nil
}

func fnStrIndex(args []value.Value) (value.Value, error) {
	s, _ := asString(arg(args, 0))
	sub, _ := asString(arg(args, 1))
	idx := strings.Index(s.Text, sub.Text)
	if idx < 0 {
		return value.Null_, nil
	}
	return value.Num(float64(len([]rune(s.Text[:idx])) + 1)), nil
}

func fnStrInsert(args []value.Value) (value.Value, error) {
	s, _ := asString(arg(args, 0))
	ins, _ := asString(arg(args, 1))
	n, _ := asNumber(arg(args, 2))
	runes := []rune(s.Text)
	i := int(n.Value)
	if i < 0 {
		i = len(runes) + i + 1
	}
	if i < 1 {
		i = 1
	}
	if i > len(runes)+1 {
		i = len(runes) + 1
	}
	out := string(runes[:i-1]) + ins.Text + string(runes[i-1:])
	return value.Value{Data: value.SassString{Text: out, Quoted: s.Quoted}}, nil
}

func fnLength(args []value.Value) (value.Value, error) {
	l := value.AsList(arg(args, 0))
	return value.Num(float64(l.Len())), nil
}

func fnNth(args []value.Value) (value.Value, error) {
	l := value.AsList(arg(args, 0))
	idx, err := value.SassIndex(arg(args, 1), l.Len())
	if err != nil {
		return value.Value{}, err
	}
	return l.Items[idx], nil
}

func fnListSeparator(args []value.Value) (value.Value, error) {
	l := value.AsList(arg(args, 0))
	switch l.Separator {
	case value.SepComma:
		return value.Str("comma"), nil
	case value.SepSlash:
		return value.Str("slash"), nil
	case value.SepSpace:
		return value.Str("space"), nil
	default:
		return value.Str("space"), nil
	}
}

func fnIsBracketed(args []value.Value) (value.Value, error) {
	l := value.AsList(arg(args, 0))
	return value.Bool(l.Bracketed), nil
}

func fnAppend(args []value.Value) (value.Value, error) {
	l := value.AsList(arg(args, 0))
	sep := l.Separator
	if sepArg, ok := asString(arg(args, 2)); ok {
		switch sepArg.Text {
		case "comma":
			sep = value.SepComma
		case "space":
			sep = value.SepSpace
		case "slash":
			sep = value.SepSlash
		}
	}
	items := append(append([]value.Value(nil), l.Items...), arg(args, 1))
	return value.NewList(items, sep, l.Bracketed), nil
}

func fnJoin(args []value.Value) (value.Value, error) {
	a := value.AsList(arg(args, 0))
	b := value.AsList(arg(args, 1))
	sep := a.Separator
	if sep == value.SepUndecided {
		sep = b.Separator
	}
	if sepArg, ok := asString(arg(args, 2)); ok {
		switch sepArg.Text {
		case "comma":
			sep = value.SepComma
		case "space":
			sep = value.SepSpace
		case "slash":
			sep = value.SepSlash
		}
	}
	bracketed := a.Bracketed
	items := append(append([]value.Value(nil), a.Items...), b.Items...)
	return value.NewList(items, sep, bracketed), nil
}

func fnIndex(args []value.Value) (value.Value, error) {
	l := value.AsList(arg(args, 0))
	needle := arg(args, 1)
	for i, item := range l.Items {
		if value.Equal(item, needle) {
			return value.Num(float64(i + 1)), nil
		}
	}
	return value.Null_, nil
}

func fnSetNth(args []value.Value) (value.Value, error) {
	l := value.AsList(arg(args, 0))
	idx, err := value.SassIndex(arg(args, 1), l.Len())
	if err != nil {
		return value.Value{}, err
	}
	items := append([]value.Value(nil), l.Items...)
	items[idx] = arg(args, 2)
	return value.NewList(items, l.Separator, l.Bracketed), nil
}

func fnZip(args []value.Value) (value.Value, error) {
	lists := make([]value.List, len(args))
	minLen := -1
	for i, a := range args {
		lists[i] = value.AsList(a)
		if minLen == -1 || lists[i].Len() < minLen {
			minLen = lists[i].Len()
		}
	}
	if minLen < 0 {
		minLen = 0
	}
	out := make([]value.Value, minLen)
	for i := 0; i < minLen; i++ {
		row := make([]value.Value, len(lists))
		for j, l := range lists {
			row[j] = l.Items[i]
		}
		out[i] = value.NewList(row, value.SepSpace, false)
	}
	return value.NewList(out, value.SepComma, false), nil
}

func fnMapGet(args []value.Value) (value.Value, error) {
	m, ok := arg(args, 0).Data.(value.Map)
	if !ok {
		return value.Null_, nil
	}
	v, ok := m.Get(arg(args, 1))
	if !ok {
		return value.Null_, nil
	}
	return v, nil
}

func fnMapHasKey(args []value.Value) (value.Value, error) {
	m, ok := arg(args, 0).Data.(value.Map)
	if !ok {
		return value.False, nil
	}
	_, ok = m.Get(arg(args, 1))
	return value.Bool(ok), nil
}

func fnMapKeys(args []value.Value) (value.Value, error) {
	m, _ := arg(args, 0).Data.(value.Map)
	return value.NewList(append([]value.Value(nil), m.Keys...), value.SepComma, false), nil
}

func fnMapValues(args []value.Value) (value.Value, error) {
	m, _ := arg(args, 0).Data.(value.Map)
	return value.NewList(append([]value.Value(nil), m.Values...), value.SepComma, false), nil
}

func fnMapMerge(args []value.Value) (value.Value, error) {
	a, _ := arg(args, 0).Data.(value.Map)
	b, _ := arg(args, 1).Data.(value.Map)
	result := a
	for i, k := range b.Keys {
		result = result.Set(k, b.Values[i])
	}
	return value.Value{Data: result}, nil
}

func fnMapRemove(args []value.Value) (value.Value, error) {
	m, _ := arg(args, 0).Data.(value.Map)
	keys, values := []value.Value{}, []value.Value{}
	for i, k := range m.Keys {
		remove := false
		for _, r := range args[1:] {
			if value.Equal(k, r) {
				remove = true
				break
			}
		}
		if !remove {
			keys = append(keys, k)
			values = append(values, m.Values[i])
		}
	}
	return value.NewMap(keys, values), nil
}

func fnAbs(args []value.Value) (value.Value, error) {
	n, ok := asNumber(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("abs() requires a number")
	}
	n.Value = math.Abs(n.Value)
	return value.Value{Data: n}, nil
}

func fnCeil(args []value.Value) (value.Value, error) {
	n, ok := asNumber(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("ceil() requires a number")
	}
	n.Value = math.Ceil(n.Value)
	return value.Value{Data: n}, nil
}

func fnFloor(args []value.Value) (value.Value, error) {
	n, ok := asNumber(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("floor() requires a number")
	}
	n.Value = math.Floor(n.Value)
	return value.Value{Data: n}, nil
}

func fnRound(args []value.Value) (value.Value, error) {
	n, ok := asNumber(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("round() requires a number")
	}
	n.Value = math.Round(n.Value)
	return value.Value{Data: n}, nil
}

func fnMin(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Value{}, fmt.Errorf("min() requires at least one argument")
	}
	best, ok := asNumber(args[0])
	if !ok {
		return value.Value{}, fmt.Errorf("min() requires numbers")
	}
	for _, a := range args[1:] {
		n, ok := asNumber(a)
		if !ok {
			return value.Value{}, fmt.Errorf("min() requires numbers")
		}
		cmp, err := best.CompareTo(n)
		if err != nil {
			return value.Value{}, err
		}
		if cmp > 0 {
			best = n
		}
	}
	return value.Value{Data: best}, nil
}

func fnMax(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Value{}, fmt.Errorf("max() requires at least one argument")
	}
	best, ok := asNumber(args[0])
	if !ok {
		return value.Value{}, fmt.Errorf("max() requires numbers")
	}
	for _, a := range args[1:] {
		n, ok := asNumber(a)
		if !ok {
			return value.Value{}, fmt.Errorf("max() requires numbers")
		}
		cmp, err := best.CompareTo(n)
		if err != nil {
			return value.Value{}, err
		}
		if cmp < 0 {
			best = n
		}
	}
	return value.Value{Data: best}, nil
}

func fnPercentage(args []value.Value) (value.Value, error) {
	n, ok := asNumber(arg(args, 0))
	if !ok || n.HasUnits() {
		return value.Value{}, fmt.Errorf("percentage() requires a unitless number")
	}
	return value.NumUnit(n.Value*100, "%"), nil
}

func fnSqrt(args []value.Value) (value.Value, error) {
	n, ok := asNumber(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("sqrt() requires a number")
	}
	n.Value = math.Sqrt(n.Value)
	return value.Value{Data: n}, nil
}

func fnComparable(args []value.Value) (value.Value, error) {
	a, ok1 := asNumber(arg(args, 0))
	b, ok2 := asNumber(arg(args, 1))
	if !ok1 || !ok2 {
		return value.False, nil
	}
	_, err := a.CompareTo(b)
	return value.Bool(err == nil), nil
}

func fnTypeOf(args []value.Value) (value.Value, error) {
	v := arg(args, 0)
	if v.Data == nil {
		return value.Str("null"), nil
	}
	return value.Str(v.Data.TypeName()), nil
}

func fnUnit(args []value.Value) (value.Value, error) {
	n, ok := asNumber(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("unit() requires a number")
	}
	return value.Str(n.Unit()), nil
}

func fnUnitless(args []value.Value) (value.Value, error) {
	n, ok := asNumber(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("unitless() requires a number")
	}
	return value.Bool(n.IsUnitless()), nil
}

func fnInspect(args []value.Value) (value.Value, error) {
	return value.UnquotedStr(value.Inspect(arg(args, 0))), nil
}

func fnNot(args []value.Value) (value.Value, error) {
	return value.Not(arg(args, 0)), nil
}

func asColor(v value.Value) (value.Color, bool) {
	c, ok := v.Data.(value.Color)
	return c, ok
}

func fnRed(args []value.Value) (value.Value, error) {
	c, ok := asColor(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("red() requires a color")
	}
	r, _, _ := c.RGB()
	return value.Num(math.Round(r)), nil
}

func fnGreen(args []value.Value) (value.Value, error) {
	c, ok := asColor(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("green() requires a color")
	}
	_, g, _ := c.RGB()
	return value.Num(math.Round(g)), nil
}

func fnBlue(args []value.Value) (value.Value, error) {
	c, ok := asColor(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("blue() requires a color")
	}
	_, _, b := c.RGB()
	return value.Num(math.Round(b)), nil
}

func fnAlpha(args []value.Value) (value.Value, error) {
	c, ok := asColor(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("alpha() requires a color")
	}
	return value.Num(c.Alpha), nil
}

func fnRGBA(args []value.Value) (value.Value, error) {
	c, ok := asColor(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("rgba() requires a color")
	}
	a, ok := asNumber(arg(args, 1))
	if !ok {
		return value.Value{}, fmt.Errorf("rgba() requires a number alpha")
	}
	return value.Value{Data: c.WithAlpha(a.Value)}, nil
}

func fnMix(args []value.Value) (value.Value, error) {
	c1, ok1 := asColor(arg(args, 0))
	c2, ok2 := asColor(arg(args, 1))
	if !ok1 || !ok2 {
		return value.Value{}, fmt.Errorf("mix() requires two colors")
	}
	weight := 50.0
	if w, ok := asNumber(arg(args, 2)); ok {
		weight = w.Value
	}
	r1, g1, b1 := c1.RGB()
	r2, g2, b2 := c2.RGB()
	p := weight / 100
	w1 := ((p*2 - 1)*(c1.Alpha-c2.Alpha) + 1) / 2
	if c1.Alpha == c2.Alpha {
		w1 = p
	}
	w2 := 1 - w1
	r := r1*w1 + r2*w2
	g := g1*w1 + g2*w2
	b := b1*w1 + b2*w2
	a := c1.Alpha*p + c2.Alpha*(1-p)
	return value.RGB(r, g, b, a), nil
}

func fnLighten(args []value.Value) (value.Value, error) {
	return adjustLightness(args, 1)
}

func fnDarken(args []value.Value) (value.Value, error) {
	return adjustLightness(args, -1)
}

func adjustLightness(args []value.Value, sign float64) (value.Value, error) {
	c, ok := asColor(arg(args, 0))
	if !ok {
		return value.Value{}, fmt.Errorf("requires a color")
	}
	amount, ok := asNumber(arg(args, 1))
	if !ok {
		return value.Value{}, fmt.Errorf("requires a number amount")
	}
	h, s, l := c.HSL()
	l += sign * amount.Value
	if l < 0 {
		l = 0
	}
	if l > 100 {
		l = 100
	}
	return value.HSL(h, s, l, c.Alpha), nil
}
