package css

import "strings"

// Style selects the output formatting, the same two-value choice the
// reference compiler exposes as the "style" option.
type Style uint8

const (
	Expanded Style = iota
	Compressed
)

// Printer renders a Stylesheet to text. It is a plain value-receiver
// function object rather than something instantiated with New(), matching
// the teacher's css_printer.Print(tree, options) top-level function shape.
type Printer struct {
	Style Style
	// Charset controls whether a leading @charset/BOM marker is emitted
	// when the output contains non-ASCII text (spec.md §4.4). Callers that
	// already know the document is pure ASCII can leave this true; the
	// printer only emits the marker when it is both requested and needed.
	Charset bool
}

func Print(sheet Stylesheet, p Printer) string {
	var sb strings.Builder
	body := strings.Builder{}
	pb := &printState{sb: &body, style: p.Style}
	for i, n := range sheet.Nodes {
		pb.printNode(n, 0, i == len(sheet.Nodes)-1)
	}
	text := body.String()

	if p.Charset && containsNonASCII(text) {
		if p.Style == Compressed {
			sb.WriteString("﻿")
		} else {
			sb.WriteString("@charset \"UTF-8\";\n")
		}
	}
	sb.WriteString(text)
	return sb.String()
}

func containsNonASCII(s string) bool {
	for _, r := range s {
		if r > 0x7F {
			return true
		}
	}
	return false
}

type printState struct {
	sb    *strings.Builder
	style Style
}

func (p *printState) indent(depth int) {
	if p.style == Compressed {
		return
	}
	p.sb.WriteString(strings.Repeat("  ", depth))
}

func (p *printState) newline() {
	if p.style != Compressed {
		p.sb.WriteByte('\n')
	}
}

func (p *printState) printNode(n Node, depth int, last bool) {
	switch v := n.(type) {
	case *Rule:
		p.printRule(v, depth)
	case *Declaration:
		p.printDeclaration(v, depth, last)
	case *AtRule:
		p.printAtRule(v, depth)
	case *Comment:
		p.printComment(v, depth)
	}
}

func (p *printState) printRule(r *Rule, depth int) {
	if IsEmpty(r.Nodes) {
		return
	}
	p.indent(depth)
	p.sb.WriteString(r.Selector)
	p.openBlock()
	p.printBody(r.Nodes, depth+1)
	p.closeBlock(depth)
}

func (p *printState) printAtRule(a *AtRule, depth int) {
	if !a.HasBlock {
		p.indent(depth)
		p.sb.WriteByte('@')
		p.sb.WriteString(a.Name)
		if a.Prelude != "" {
			p.sb.WriteByte(' ')
			p.sb.WriteString(a.Prelude)
		}
		p.sb.WriteByte(';')
		p.newline()
		return
	}
	if IsEmpty(a.Nodes) {
		return
	}
	p.indent(depth)
	p.sb.WriteByte('@')
	p.sb.WriteString(a.Name)
	if a.Prelude != "" {
		p.sb.WriteByte(' ')
		p.sb.WriteString(a.Prelude)
	}
	p.openBlock()
	p.printBody(a.Nodes, depth+1)
	p.closeBlock(depth)
}

func (p *printState) printBody(nodes []Node, depth int) {
	for i, n := range nodes {
		p.printNode(n, depth, i == len(nodes)-1)
	}
}

func (p *printState) openBlock() {
	if p.style == Compressed {
		p.sb.WriteByte('{')
		return
	}
	p.sb.WriteString(" {\n")
}

func (p *printState) closeBlock(depth int) {
	p.indent(depth)
	p.sb.WriteByte('}')
	p.newline()
}

func (p *printState) printDeclaration(d *Declaration, depth int, last bool) {
	p.indent(depth)
	p.sb.WriteString(d.Property)
	p.sb.WriteByte(':')
	if p.style != Compressed {
		p.sb.WriteByte(' ')
	}
	p.sb.WriteString(d.Value)
	if d.Important {
		p.sb.WriteString(" !important")
	}
	if p.style != Compressed || !last {
		p.sb.WriteByte(';')
	}
	p.newline()
}

func (p *printState) printComment(c *Comment, depth int) {
	if p.style == Compressed && !c.Preserved {
		return
	}
	p.indent(depth)
	p.sb.WriteString(c.Text)
	p.newline()
}
