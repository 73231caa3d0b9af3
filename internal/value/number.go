package value

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Number is a double together with a multiset of numerator and denominator
// units ("px", "px*deg", "px/s"). Units of the same dimension (all absolute
// lengths, all angles, ...) convert against each other via unitConversions;
// units of different dimensions never cancel and make the number "complex".
//
// Grounded on the way the teacher's internal/compat package tables
// browser/engine feature support by name rather than by ad hoc booleans:
// conversions here are likewise driven by a lookup table (unitConversions),
// not a chain of if/switch statements per unit.
type Number struct {
	Value       float64
	Numerator   []string
	Denominator []string

	// AsSlash remembers the two operands of a "/" division so the result
	// can still serialize in its legacy "L/R" form if nothing else ever
	// touches it — the accommodation that lets a deprecated arithmetic
	// "/" keep producing shorthand like "font: 12px/1.5" while it's
	// phased out in favor of math.div(). Any other operation on a Number
	// builds a fresh value and so drops this, as it should.
	AsSlash *SlashOperands
}

// SlashOperands holds the pre-division operands of a Number computed via
// the "/" operator.
type SlashOperands struct {
	Left, Right Number
}

func (Number) isValue()          {}
func (Number) TypeName() string { return "number" }

func Num(v float64) Value { return Value{Data: Number{Value: v}} }

func NumUnit(v float64, unit string) Value {
	if unit == "" {
		return Num(v)
	}
	return Value{Data: Number{Value: v, Numerator: []string{unit}}}
}

func NumWithUnits(v float64, numerator, denominator []string) Value {
	return Value{Data: Number{Value: v, Numerator: numerator, Denominator: denominator}}
}

// HasUnits reports whether this number carries any unit at all.
func (n Number) HasUnits() bool {
	return len(n.Numerator) > 0 || len(n.Denominator) > 0
}

// IsUnitless reports whether this number carries no unit at all, the Sass
// notion behind "unitless($n)".
func (n Number) IsUnitless() bool { return !n.HasUnits() }

func (n Number) Unit() string {
	switch {
	case len(n.Numerator) == 0 && len(n.Denominator) == 0:
		return ""
	case len(n.Denominator) == 0:
		return strings.Join(n.Numerator, "*")
	case len(n.Numerator) == 0:
		return "/" + strings.Join(n.Denominator, "/")
	default:
		return strings.Join(n.Numerator, "*") + "/" + strings.Join(n.Denominator, "/")
	}
}

// unitConversions is a pairwise table within each dimension:
// unitConversions[a][b] is how many a's make one b. Units absent from the table never convert and never cancel with
// anything but an identical unit string, matching Sass' "unknown unit"
// behavior for the many CSS units (vw, fr, %, ...) that have no fixed
// physical ratio.
var unitConversions = map[string]map[string]float64{
	// length, base unit px
	"px": {"px": 1, "cm": 96.0 / 2.54, "mm": 96.0 / 25.4, "q": 96.0 / 101.6, "in": 96, "pt": 96.0 / 72, "pc": 16},
	"cm": {"px": 2.54 / 96.0, "cm": 1, "mm": 0.1, "q": 0.025, "in": 2.54, "pt": 2.54 / 72, "pc": 2.54 / 6},
	"mm": {"px": 25.4 / 96.0, "cm": 10, "mm": 1, "q": 0.25, "in": 25.4, "pt": 25.4 / 72, "pc": 25.4 / 6},
	"q":  {"px": 101.6 / 96.0, "cm": 40, "mm": 4, "q": 1, "in": 101.6, "pt": 101.6 / 72, "pc": 101.6 / 6},
	"in": {"px": 1.0 / 96, "cm": 1.0 / 2.54, "mm": 1.0 / 25.4, "q": 1.0 / 101.6, "in": 1, "pt": 1.0 / 72, "pc": 1.0 / 6},
	"pt": {"px": 72.0 / 96, "cm": 72.0 / 2.54, "mm": 72.0 / 25.4, "q": 72.0 / 101.6, "in": 72, "pt": 1, "pc": 6},
	"pc": {"px": 6.0 / 96, "cm": 6.0 / 2.54, "mm": 6.0 / 25.4, "q": 6.0 / 101.6, "in": 6, "pt": 1.0 / 6, "pc": 1},

	// angle, base unit deg
	"deg":  {"deg": 1, "grad": 0.9, "rad": 180 / math.Pi, "turn": 360},
	"grad": {"deg": 400.0 / 360, "grad": 1, "rad": 200 / math.Pi, "turn": 400},
	"rad":  {"deg": math.Pi / 180, "grad": math.Pi / 200, "rad": 1, "turn": 2 * math.Pi},
	"turn": {"deg": 1.0 / 360, "grad": 1.0 / 400, "rad": 1.0 / (2 * math.Pi), "turn": 1},

	// time, base unit s
	"s":  {"s": 1, "ms": 0.001},
	"ms": {"s": 1000, "ms": 1},

	// frequency, base unit hz
	"hz":  {"hz": 1, "khz": 1000},
	"khz": {"hz": 0.001, "khz": 1},

	// resolution, base unit dpi
	"dpi":  {"dpi": 1, "dpcm": 2.54, "dppx": 96},
	"dpcm": {"dpi": 1.0 / 2.54, "dpcm": 1, "dppx": 96.0 / 2.54},
	"dppx": {"dpi": 1.0 / 96, "dpcm": 2.54 / 96, "dppx": 1},
}

func canonicalUnit(unit string) string { return strings.ToLower(unit) }

// conversionFactor returns the factor f such that 1 "from" == f "to", and
// whether the two units are known to be in the same dimension.
//
// unitConversions is keyed the other way around (table[a][b] is how many
// a's make one b, e.g. table["px"]["in"] == 96), so this inverts the raw
// table entry to get the "1 from == f to" factor the callers want.
func conversionFactor(from, to string) (float64, bool) {
	from, to = canonicalUnit(from), canonicalUnit(to)
	if from == to {
		return 1, true
	}
	table, ok := unitConversions[from]
	if !ok {
		return 0, false
	}
	f, ok := table[to]
	if !ok {
		return 0, false
	}
	return 1 / f, true
}

func compatible(a, b []string) bool {
	usedB := make([]bool, len(b))
outer:
	for _, ua := range a {
		for i, ub := range b {
			if usedB[i] {
				continue
			}
			if _, ok := conversionFactor(ua, ub); ok {
				usedB[i] = true
				continue outer
			}
		}
		return false
	}
	return len(a) == len(b)
}

// ConvertibleTo reports whether n's units can be converted to the given
// units at all. No builtin in this module calls it.
func (n Number) ConvertibleTo(numerator, denominator []string) bool {
	return compatible(n.Numerator, numerator) && compatible(n.Denominator, denominator)
}

// ConvertTo converts n into the given units, returning false if the
// dimensions are incompatible.
func (n Number) ConvertTo(numerator, denominator []string) (Number, bool) {
	v := n.Value
	factor, ok := matchAndFactor(n.Numerator, numerator, v != 0)
	if !ok {
		return Number{}, false
	}
	v *= factor
	factor, ok = matchAndFactor(n.Denominator, denominator, v != 0)
	if !ok {
		return Number{}, false
	}
	if factor != 0 {
		v /= factor
	}
	return Number{Value: v, Numerator: numerator, Denominator: denominator}, true
}

// matchAndFactor pairs up "from" units against "to" units (order
// insensitive) and returns the combined conversion factor.
func matchAndFactor(from, to []string, _ bool) (float64, bool) {
	if len(from) != len(to) {
		return 0, false
	}
	if len(from) == 0 {
		return 1, true
	}
	usedTo := make([]bool, len(to))
	total := 1.0
	for _, uf := range from {
		matched := false
		for i, ut := range to {
			if usedTo[i] {
				continue
			}
			if f, ok := conversionFactor(uf, ut); ok {
				total *= f
				usedTo[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return 0, false
		}
	}
	return total, true
}

// simplify cancels any unit that appears in both the numerator and the
// denominator (after conversion), e.g. "5px*s/s" -> "5px". This runs after
// every multiplication/division, matching the reference implementation's
// SassNumber arithmetic.
func (n Number) simplify() Number {
	num := append([]string(nil), n.Numerator...)
	den := append([]string(nil), n.Denominator...)
	value := n.Value

	for i := 0; i < len(num); i++ {
		for j := 0; j < len(den); j++ {
			if f, ok := conversionFactor(num[i], den[j]); ok {
				value *= f
				num = append(num[:i], num[i+1:]...)
				den = append(den[:j], den[j+1:]...)
				i--
				break
			}
		}
	}
	sort.Strings(num)
	sort.Strings(den)
	return Number{Value: value, Numerator: num, Denominator: den}
}

func (n Number) Add(o Number) (Number, error) {
	return n.combineAdditive(o, func(a, b float64) float64 { return a + b })
}

func (n Number) Sub(o Number) (Number, error) {
	return n.combineAdditive(o, func(a, b float64) float64 { return a - b })
}

func (n Number) combineAdditive(o Number, op func(a, b float64) float64) (Number, error) {
	if !n.HasUnits() && !o.HasUnits() {
		return Number{Value: op(n.Value, o.Value)}, nil
	}
	converted, ok := o.ConvertTo(n.Numerator, n.Denominator)
	if !ok {
		return Number{}, fmt.Errorf("%s and %s have incompatible units", n.CSSString(), o.CSSString())
	}
	return Number{Value: op(n.Value, converted.Value), Numerator: n.Numerator, Denominator: n.Denominator}, nil
}

func (n Number) Mul(o Number) Number {
	return Number{
		Value:       n.Value * o.Value,
		Numerator:   append(append([]string(nil), n.Numerator...), o.Numerator...),
		Denominator: append(append([]string(nil), n.Denominator...), o.Denominator...),
	}.simplify()
}

func (n Number) Div(o Number) Number {
	return Number{
		Value:       n.Value / o.Value,
		Numerator:   append(append([]string(nil), n.Numerator...), o.Denominator...),
		Denominator: append(append([]string(nil), n.Denominator...), o.Numerator...),
	}.simplify()
}

func (n Number) Mod(o Number) (Number, error) {
	converted, ok := o.ConvertTo(n.Numerator, n.Denominator)
	if !ok {
		return Number{}, fmt.Errorf("%s and %s have incompatible units", n.CSSString(), o.CSSString())
	}
	r := math.Mod(n.Value, converted.Value)
	if r != 0 && (r < 0) != (converted.Value < 0) {
		r += converted.Value
	}
	return Number{Value: r, Numerator: n.Numerator, Denominator: n.Denominator}, nil
}

func (n Number) Neg() Number {
	return Number{Value: -n.Value, Numerator: n.Numerator, Denominator: n.Denominator}
}

// CompareTo returns -1/0/1, or an error if the units are incompatible.
func (n Number) CompareTo(o Number) (int, error) {
	converted, ok := o.ConvertTo(n.Numerator, n.Denominator)
	if !ok {
		return 0, fmt.Errorf("%s and %s have incompatible units", n.CSSString(), o.CSSString())
	}
	switch {
	case n.Value < converted.Value:
		return -1, nil
	case n.Value > converted.Value:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal implements Sass number equality: units must be compatible and, once
// converted, the values must match within floating point fuzz.
func (n Number) Equal(o Number) bool {
	converted, ok := o.ConvertTo(n.Numerator, n.Denominator)
	if !ok {
		return false
	}
	return math.Abs(n.Value-converted.Value) < 1e-11
}

const maxSerializationDigits = 10

// CSSString renders a number the way it appears in compiled CSS output:
// up to 10 fractional digits, no trailing zeros, and a leading zero
// dropped for fractional values.
func (n Number) CSSString() string {
	if n.AsSlash != nil {
		return n.AsSlash.Left.CSSString() + "/" + n.AsSlash.Right.CSSString()
	}
	s := formatFloat(n.Value)
	unit := n.Unit()
	if unit == "" {
		return s
	}
	return s + unit
}

func formatFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	if math.IsInf(v, -1) {
		return "-Infinity"
	}
	if math.IsNaN(v) {
		return "NaN"
	}
	s := strconvFormat(v)
	return s
}

func strconvFormat(v float64) string {
	neg := v < 0 || (v == 0 && math.Signbit(v))
	if neg {
		v = -v
	}
	s := trimFloat(v)
	if strings.HasPrefix(s, "0.") {
		s = s[1:]
	}
	if neg && s != "0" {
		s = "-" + s
	}
	return s
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.*f", maxSerializationDigits, v)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-" {
		s = "0"
	}
	return s
}
