package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintExpanded(t *testing.T) {
	sheet := Stylesheet{Nodes: []Node{
		&Rule{Selector: "a", Nodes: []Node{
			&Declaration{Property: "color", Value: "red"},
			&Declaration{Property: "width", Value: "1px", Important: true},
		}},
	}}

	out := Print(sheet, Printer{Style: Expanded})
	assert.Equal(t, "a {\n  color: red;\n  width: 1px !important;\n}\n", out)
}

func TestPrintCompressedOmitsLastSemicolon(t *testing.T) {
	sheet := Stylesheet{Nodes: []Node{
		&Rule{Selector: "a", Nodes: []Node{
			&Declaration{Property: "color", Value: "red"},
			&Declaration{Property: "width", Value: "1px"},
		}},
	}}

	out := Print(sheet, Printer{Style: Compressed})
	assert.Equal(t, "a{color:red;width:1px}", out)
}

func TestPrintDropsEmptyRules(t *testing.T) {
	sheet := Stylesheet{Nodes: []Node{
		&Rule{Selector: "a", Nodes: nil},
		&Rule{Selector: "b", Nodes: []Node{&Declaration{Property: "color", Value: "blue"}}},
	}}

	out := Print(sheet, Printer{Style: Expanded})
	assert.NotContains(t, out, "a {")
	assert.Contains(t, out, "b {")
}

func TestCharsetOnlyWhenNonASCIIAndRequested(t *testing.T) {
	ascii := Stylesheet{Nodes: []Node{&Declaration{Property: "content", Value: `"plain"`}}}
	nonASCII := Stylesheet{Nodes: []Node{&Declaration{Property: "content", Value: `"café"`}}}

	assert.NotContains(t, Print(ascii, Printer{Charset: true}), "@charset")
	assert.Contains(t, Print(nonASCII, Printer{Charset: true}), "@charset")
	assert.NotContains(t, Print(nonASCII, Printer{Charset: false}), "@charset")
}

func TestAtRuleWithoutBlock(t *testing.T) {
	sheet := Stylesheet{Nodes: []Node{
		&AtRule{Name: "import", Prelude: `"foo.css"`, HasBlock: false},
	}}
	out := Print(sheet, Printer{Style: Expanded})
	assert.Equal(t, "@import \"foo.css\";\n", out)
}
