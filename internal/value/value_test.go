package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthiness(t *testing.T) {
	assert.False(t, Null_.IsTruthy())
	assert.False(t, False.IsTruthy())
	assert.True(t, True.IsTruthy())
	assert.True(t, Num(0).IsTruthy())
	assert.True(t, Str("").IsTruthy())
}

func TestNumberUnitConversion(t *testing.T) {
	inches := NumUnit(1, "in").Data.(Number)
	px, ok := inches.ConvertTo([]string{"px"}, nil)
	require.True(t, ok)
	assert.Equal(t, float64(96), px.Value)

	_, ok = inches.ConvertTo([]string{"deg"}, nil)
	assert.False(t, ok, "length and angle units must not convert")
}

func TestNumberArithmeticSimplifiesUnits(t *testing.T) {
	px := NumUnit(10, "px").Data.(Number)
	s := NumUnit(2, "s").Data.(Number)
	perSecond := Number{Value: 5, Numerator: []string{"px"}, Denominator: []string{"s"}}

	product := perSecond.Mul(s)
	assert.Equal(t, float64(10), product.Value)
	assert.Equal(t, "px", product.Unit())

	sum, err := px.Add(NumUnit(1, "cm").Data.(Number))
	require.NoError(t, err)
	assert.InDelta(t, 10+96.0/2.54, sum.Value, 1e-9)

	_, err = px.Add(s)
	assert.Error(t, err, "incompatible units must not add")
}

func TestSassIndexBoundaries(t *testing.T) {
	const length = 5

	_, err := SassIndex(Num(0), length)
	assert.Error(t, err, "index 0 is always an error")

	i, err := SassIndex(Num(-length), length)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	i, err = SassIndex(Num(length), length)
	require.NoError(t, err)
	assert.Equal(t, length-1, i)

	_, err = SassIndex(Num(length+1), length)
	assert.Error(t, err, "index beyond length is an error")

	_, err = SassIndex(Num(-(length + 1)), length)
	assert.Error(t, err, "negative index beyond -length is an error")
}

func TestEqualEmptyListEqualsEmptyMap(t *testing.T) {
	assert.True(t, Equal(EmptyList(), EmptyMap()))
	assert.True(t, Equal(EmptyMap(), EmptyList()))
	assert.False(t, Equal(NewList([]Value{Num(1)}, SepComma, false), EmptyMap()))
}

func TestMapSetReplacesByValueEquality(t *testing.T) {
	m := EmptyMap().Data.(Map)
	m = m.Set(Num(1), Str("one"))
	m = m.Set(Num(1), Str("still one"))

	v, ok := m.Get(Num(1))
	require.True(t, ok)
	assert.Equal(t, "still one", v.Data.(SassString).Text)
	assert.Len(t, m.Keys, 1)
}

func TestAddConcatenatesNonNumbers(t *testing.T) {
	got, err := Add(Str("foo"), Num(1))
	require.NoError(t, err)
	assert.Equal(t, "foo1", got.Data.(SassString).Text)
	assert.True(t, got.Data.(SassString).Quoted)
}

func TestColorRoundTripsThroughHSL(t *testing.T) {
	red := RGB(255, 0, 0, 1).Data.(Color)
	h, s, l := red.HSL()
	assert.InDelta(t, 0, h, 1e-6)
	assert.InDelta(t, 100, s, 1e-6)
	assert.InDelta(t, 50, l, 1e-6)

	back := HSL(h, s, l, 1).Data.(Color)
	r, g, b := back.RGB()
	assert.InDelta(t, 255, r, 1e-6)
	assert.InDelta(t, 0, g, 1e-6)
	assert.InDelta(t, 0, b, 1e-6)
}

func TestCSSStringFormatsBareNumbers(t *testing.T) {
	assert.Equal(t, ".5", CSSString(Num(0.5)))
	assert.Equal(t, "-.5", CSSString(Num(-0.5)))
	assert.Equal(t, "10px", CSSString(NumUnit(10, "px")))
}

func TestInspectQuotesStrings(t *testing.T) {
	assert.Equal(t, `"hello"`, Inspect(Str("hello")))
	assert.Equal(t, "hello", Inspect(UnquotedStr("hello")))
	assert.Equal(t, "null", Inspect(Null_))
}
