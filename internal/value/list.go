package value

// Separator is how a List's CSS serialization joins its items.
type Separator uint8

const (
	SepUndecided Separator = iota // single-element or empty list: no separator has been chosen yet
	SepSpace
	SepComma
	SepSlash
)

type List struct {
	Items     []Value
	Separator Separator
	Bracketed bool
}

func (List) isValue()          {}
func (List) TypeName() string { return "list" }

func NewList(items []Value, sep Separator, bracketed bool) Value {
	return Value{Data: List{Items: items, Separator: sep, Bracketed: bracketed}}
}

func EmptyList() Value { return NewList(nil, SepUndecided, false) }

// AsList coerces any value to its list view: a list is itself, a map is its
// list of [key, value] pairs, and anything else is a single-element list.
// This backs the many Sass functions ("nth", "length", "@each") documented
// as "treats its argument as a list".
func AsList(v Value) List {
	switch d := v.Data.(type) {
	case List:
		return d
	case Map:
		items := make([]Value, 0, len(d.Keys))
		for i, k := range d.Keys {
			items = append(items, NewList([]Value{k, d.Values[i]}, SepSpace, false).Data.(List).asValue())
		}
		return List{Items: items, Separator: SepComma}
	default:
		return List{Items: []Value{v}}
	}
}

func (l List) asValue() Value { return Value{Data: l} }

func (l List) Len() int { return len(l.Items) }

type Map struct {
	Keys   []Value
	Values []Value
}

func (Map) isValue()          {}
func (Map) TypeName() string { return "map" }

func NewMap(keys, values []Value) Value {
	return Value{Data: Map{Keys: keys, Values: values}}
}

func EmptyMap() Value { return NewMap(nil, nil) }

// Get looks up a key by Sass equality (not Go ==, since e.g. 1 and 1.0 and
// 1px/1px must compare equal).
func (m Map) Get(key Value) (Value, bool) {
	for i, k := range m.Keys {
		if Equal(k, key) {
			return m.Values[i], true
		}
	}
	return Value{}, false
}

// Set returns a new Map with key bound to val, replacing any existing
// binding for an equal key. Maps are otherwise immutable once built.
func (m Map) Set(key, val Value) Map {
	for i, k := range m.Keys {
		if Equal(k, key) {
			values := append([]Value(nil), m.Values...)
			values[i] = val
			return Map{Keys: m.Keys, Values: values}
		}
	}
	return Map{Keys: append(append([]Value(nil), m.Keys...), key), Values: append(append([]Value(nil), m.Values...), val)}
}
