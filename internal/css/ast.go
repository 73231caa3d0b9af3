// Package css is the output side of the compiler: the flat tree of CSS
// rules the evaluator builds as it walks a Stylesheet, and the Printer that
// renders it to text in either output style. It deliberately knows nothing
// about SassScript — by the time a value reaches this package it has
// already been serialized to a string by internal/value — the same
// separation the teacher keeps between css_ast (presentation) and the JS
// side that feeds it.
package css

// Node is a top-level-or-nested item in the output tree: the same
// Loc-less, marker-interface sum type shape as internal/ast, trimmed of the
// location tracking the input tree needs but the output tree does not
// (diagnostics always point at the *source* stylesheet, never at generated
// CSS).
type Node interface{ isNode() }

type Stylesheet struct {
	Nodes []Node
}

type Rule struct {
	Selector string
	Nodes    []Node
}

func (*Rule) isNode() {}

type Declaration struct {
	Property string
	Value    string
	Important bool
}

func (*Declaration) isNode() {}

// AtRule is any at-rule the printer does not need to give special meaning
// to beyond "does it have a block": @media, @supports, @font-face,
// @keyframes, @page, vendor at-rules, ...
type AtRule struct {
	Name    string
	Prelude string
	Nodes   []Node // the block's contents; whether a block is printed at all is HasBlock's call
	HasBlock bool
}

func (*AtRule) isNode() {}

type Comment struct {
	Text      string
	Preserved bool // "/*! ... */": survives the compressed output style
}

func (*Comment) isNode() {}

// IsEmpty reports whether a rule would print as "selector {}" with no
// useful content, used by the printer's "an empty rule outputs nothing"
// behavior (mirrors how the teacher's css_printer drops childless rules
// produced by dead CSS after minification).
func IsEmpty(nodes []Node) bool {
	for _, n := range nodes {
		switch v := n.(type) {
		case *Comment:
			if v.Preserved {
				return false
			}
		default:
			return false
		}
	}
	return true
}
