package sassparser

import (
	"strings"

	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/sasslexer"
)

// parseExpression parses a full SassScript expression: "or" binds loosest,
// then "and", then the comparisons, then "+"/"-", then "*"/"/"/"%", then
// unary, then postfix/primary. This is the same precedence-climbing shape
// the teacher's js_parser uses for binary expressions, specialized to
// Sass' (much smaller, non-assignment) operator set.
func (p *parser) parseExpression() ast.Expr {
	return p.parseCommaList()
}

func (p *parser) parseCommaList() ast.Expr {
	loc := p.loc()
	first := p.parseSpaceList()
	if !p.isAt(sasslexer.TComma) {
		return first
	}
	items := []ast.Expr{first}
	for p.isAt(sasslexer.TComma) {
		p.advance()
		items = append(items, p.parseSpaceList())
	}
	return ast.Expr{Loc: loc, Data: &ast.EListLiteral{Items: items, Separator: "comma"}}
}

func (p *parser) parseSpaceList() ast.Expr {
	loc := p.loc()
	first := p.parseOr()
	var items []ast.Expr
	for p.startsOperand() {
		items = append(items, p.parseOr())
	}
	if items == nil {
		return first
	}
	return ast.Expr{Loc: loc, Data: &ast.EListLiteral{Items: append([]ast.Expr{first}, items...), Separator: "space"}}
}

// startsOperand reports whether the current token can begin another operand
// in a space-separated list, used to tell "1px solid red" (three operands)
// apart from a single operand followed by whatever comes after the
// expression.
func (p *parser) startsOperand() bool {
	switch p.tok.Type {
	case sasslexer.TVariable, sasslexer.TNumber, sasslexer.TString, sasslexer.THash,
		sasslexer.THashBrace, sasslexer.TOpenParen, sasslexer.TOpenBracket, sasslexer.TAmpersand,
		sasslexer.TMinus, sasslexer.TIdent:
		return true
	default:
		return false
	}
}

func (p *parser) parseOr() ast.Expr {
	loc := p.loc()
	left := p.parseAnd()
	for isKeyword(p.tok, "or") {
		p.advance()
		right := p.parseAnd()
		left = ast.Expr{Loc: loc, Data: &ast.EBinary{Op: ast.BinOpOr, Left: left, Right: right}}
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	loc := p.loc()
	left := p.parseEquality()
	for isKeyword(p.tok, "and") {
		p.advance()
		right := p.parseEquality()
		left = ast.Expr{Loc: loc, Data: &ast.EBinary{Op: ast.BinOpAnd, Left: left, Right: right}}
	}
	return left
}

func (p *parser) parseEquality() ast.Expr {
	loc := p.loc()
	left := p.parseRelational()
	for p.isAt(sasslexer.TEqEq) || p.isAt(sasslexer.TNeq) {
		op := ast.BinOpEq
		if p.tok.Type == sasslexer.TNeq {
			op = ast.BinOpNeq
		}
		p.advance()
		right := p.parseRelational()
		left = ast.Expr{Loc: loc, Data: &ast.EBinary{Op: op, Left: left, Right: right}}
	}
	return left
}

func (p *parser) parseRelational() ast.Expr {
	loc := p.loc()
	left := p.parseAdditive()
	for {
		var op ast.BinaryOp
		switch p.tok.Type {
		case sasslexer.TLt:
			op = ast.BinOpLt
		case sasslexer.TLte:
			op = ast.BinOpLte
		case sasslexer.TGt:
			op = ast.BinOpGt
		case sasslexer.TGte:
			op = ast.BinOpGte
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		left = ast.Expr{Loc: loc, Data: &ast.EBinary{Op: op, Left: left, Right: right}}
	}
}

func (p *parser) parseAdditive() ast.Expr {
	loc := p.loc()
	left := p.parseMultiplicative()
	for p.isAt(sasslexer.TPlus) || p.isAt(sasslexer.TMinus) {
		op := ast.BinOpAdd
		if p.tok.Type == sasslexer.TMinus {
			op = ast.BinOpSub
		}
		p.advance()
		right := p.parseMultiplicative()
		left = ast.Expr{Loc: loc, Data: &ast.EBinary{Op: op, Left: left, Right: right}}
	}
	return left
}

func (p *parser) parseMultiplicative() ast.Expr {
	loc := p.loc()
	left := p.parseUnary()
	for p.isAt(sasslexer.TStar) || p.isAt(sasslexer.TSlash) || p.isAt(sasslexer.TPercent) {
		var op ast.BinaryOp
		switch p.tok.Type {
		case sasslexer.TStar:
			op = ast.BinOpMul
		case sasslexer.TSlash:
			op = ast.BinOpDiv
		default:
			op = ast.BinOpMod
		}
		p.advance()
		right := p.parseUnary()
		left = ast.Expr{Loc: loc, Data: &ast.EBinary{Op: op, Left: left, Right: right}}
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	loc := p.loc()
	if isKeyword(p.tok, "not") {
		p.advance()
		return ast.Expr{Loc: loc, Data: &ast.EUnary{Op: ast.UnaryOpNot, Operand: p.parseUnary()}}
	}
	if p.isAt(sasslexer.TMinus) {
		p.advance()
		return ast.Expr{Loc: loc, Data: &ast.EUnary{Op: ast.UnaryOpNeg, Operand: p.parseUnary()}}
	}
	if p.isAt(sasslexer.TPlus) {
		p.advance()
		return ast.Expr{Loc: loc, Data: &ast.EUnary{Op: ast.UnaryOpPlus, Operand: p.parseUnary()}}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() ast.Expr {
	loc := p.loc()
	switch p.tok.Type {
	case sasslexer.TOpenParen:
		p.advance()
		if p.isAt(sasslexer.TCloseParen) {
			p.advance()
			return ast.Expr{Loc: loc, Data: &ast.EListLiteral{}}
		}
		inner := p.tryParseMapLiteral()
		if inner == nil {
			e := p.parseExpression()
			inner = &e
		}
		p.expect(sasslexer.TCloseParen, "\")\"")
		return *inner
	case sasslexer.TOpenBracket:
		p.advance()
		if p.isAt(sasslexer.TCloseBracket) {
			p.advance()
			return ast.Expr{Loc: loc, Data: &ast.EListLiteral{Bracketed: true}}
		}
		inner := p.parseCommaList()
		p.expect(sasslexer.TCloseBracket, "\"]\"")
		if l, ok := inner.Data.(*ast.EListLiteral); ok {
			l.Bracketed = true
			return ast.Expr{Loc: loc, Data: l}
		}
		return ast.Expr{Loc: loc, Data: &ast.EListLiteral{Items: []ast.Expr{inner}, Bracketed: true}}
	case sasslexer.TVariable:
		name := p.tok.Text[1:]
		p.advance()
		if p.isAt(sasslexer.TDot) {
			p.advance()
			member := p.expect(sasslexer.TVariable, "a variable name").Text[1:]
			return ast.Expr{Loc: loc, Data: &ast.EVariable{Namespace: name, Name: member}}
		}
		return ast.Expr{Loc: loc, Data: &ast.EVariable{Name: name}}
	case sasslexer.TNumber:
		text := p.tok.Text
		p.advance()
		v, unit := parseFloat(text)
		return ast.Expr{Loc: loc, Data: &ast.ENumber{Value: v, Unit: unit}}
	case sasslexer.TString:
		return p.parseStringLiteral()
	case sasslexer.THash:
		return p.parseHashColor()
	case sasslexer.THashBrace:
		return p.parseStringLiteral()
	case sasslexer.TAmpersand:
		p.advance()
		return ast.Expr{Loc: loc, Data: &ast.ESelectorParent{}}
	case sasslexer.TIdent:
		return p.parseIdentOrCall()
	default:
		p.failAt(loc, "Expected expression.")
		return ast.Expr{}
	}
}

// tryParseMapLiteral speculatively parses "(key: value, ...)"; returns nil
// (without consuming anything observable beyond normal backtracking inside
// one paren group) if what follows "(" does not look like a map entry.
func (p *parser) tryParseMapLiteral() *ast.Expr {
	loc := p.loc()
	saveLex := *p.lex
	saveTok := p.tok

	first := p.parseSpaceList()
	if !p.isAt(sasslexer.TColon) {
		*p.lex = saveLex
		p.tok = saveTok
		return nil
	}
	p.advance()
	firstVal := p.parseSpaceList()
	keys := []ast.Expr{first}
	values := []ast.Expr{firstVal}
	for p.isAt(sasslexer.TComma) {
		p.advance()
		if p.isAt(sasslexer.TCloseParen) {
			break
		}
		k := p.parseSpaceList()
		p.expect(sasslexer.TColon, "\":\"")
		v := p.parseSpaceList()
		keys = append(keys, k)
		values = append(values, v)
	}
	e := ast.Expr{Loc: loc, Data: &ast.EMapLiteral{Keys: keys, Values: values}}
	return &e
}

func (p *parser) parseStringLiteral() ast.Expr {
	loc := p.loc()
	var chunks []ast.InterpolatedChunk
	quoted := false
	if p.isAt(sasslexer.TString) {
		quoted = true
		chunks = append(chunks, ast.InterpolatedChunk{Text: p.parseQuotedStringLiteral()})
	}
	for p.isAt(sasslexer.THashBrace) {
		p.advance()
		e := p.parseExpression()
		chunks = append(chunks, ast.InterpolatedChunk{Expr: &e})
		p.expect(sasslexer.TCloseBrace, "\"}\"")
		if p.isAt(sasslexer.TString) {
			chunks = append(chunks, ast.InterpolatedChunk{Text: p.parseQuotedStringLiteral()})
		}
	}
	return ast.Expr{Loc: loc, Data: &ast.EString{Chunks: chunks, Quoted: quoted}}
}

func (p *parser) parseHashColor() ast.Expr {
	loc := p.loc()
	text := p.tok.Text[1:]
	p.advance()
	r, g, b, a := hexToRGBA(text)
	return ast.Expr{Loc: loc, Data: &ast.EColor{R: r, G: g, B: b, A: a}}
}

func hexToRGBA(hex string) (r, g, b uint8, a float64) {
	expand := func(s string) string {
		if len(s) == 1 {
			return s + s
		}
		return s
	}
	a = 1
	switch len(hex) {
	case 3, 4:
		r = hexByte(expand(string(hex[0])))
		g = hexByte(expand(string(hex[1])))
		b = hexByte(expand(string(hex[2])))
		if len(hex) == 4 {
			a = float64(hexByte(expand(string(hex[3])))) / 255
		}
	case 6, 8:
		r = hexByte(hex[0:2])
		g = hexByte(hex[2:4])
		b = hexByte(hex[4:6])
		if len(hex) == 8 {
			a = float64(hexByte(hex[6:8])) / 255
		}
	}
	return
}

func hexByte(s string) uint8 {
	v := 0
	for _, c := range s {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= int(c - '0')
		case c >= 'a' && c <= 'f':
			v |= int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= int(c-'A') + 10
		}
	}
	return uint8(v)
}

// parseIdentOrCall handles bare identifiers ("true", "null", named colors,
// unquoted string atoms) and function calls ("rgba(...)", "ns.fn(...)").
func (p *parser) parseIdentOrCall() ast.Expr {
	loc := p.loc()
	name := p.tok.Text
	p.advance()

	if p.isAt(sasslexer.TDot) {
		p.advance()
		if p.isAt(sasslexer.TVariable) {
			member := p.tok.Text[1:]
			p.advance()
			return ast.Expr{Loc: loc, Data: &ast.EVariable{Namespace: name, Name: member}}
		}
		member := p.expect(sasslexer.TIdent, "a function name").Text
		args := p.parseArgumentInvocation()
		return ast.Expr{Loc: loc, Data: &ast.EFunctionCall{Namespace: name, Name: member, Args: args}}
	}

	if p.isAt(sasslexer.TOpenParen) {
		switch strings.ToLower(name) {
		case "calc", "min", "max", "clamp":
			return p.parseCalcExpression(loc, strings.ToLower(name))
		case "if":
			args := p.parseArgumentInvocation()
			return ast.Expr{Loc: loc, Data: &ast.ETernaryIf{Args: args}}
		}
		args := p.parseArgumentInvocation()
		return ast.Expr{Loc: loc, Data: &ast.EFunctionCall{Name: name, Args: args}}
	}

	switch strings.ToLower(name) {
	case "true":
		return ast.Expr{Loc: loc, Data: &ast.EBoolean{Value: true}}
	case "false":
		return ast.Expr{Loc: loc, Data: &ast.EBoolean{Value: false}}
	case "null":
		return ast.Expr{Loc: loc, Data: &ast.ENull{}}
	}
	return ast.Expr{Loc: loc, Data: &ast.EString{Chunks: []ast.InterpolatedChunk{{Text: name}}}}
}

// parseCalcExpression parses the contents of calc()/min()/max()/clamp() as
// raw CSS-calculation text rather than SassScript, splicing in any
// SassScript expression that appears inside its own "#{...}" the same way
// the reference implementation allows interpolation inside calc().
func (p *parser) parseCalcExpression(loc logger.Loc, name string) ast.Expr {
	p.expect(sasslexer.TOpenParen, "\"(\"")
	var args []ast.Expr
	for !p.isAt(sasslexer.TCloseParen) {
		args = append(args, p.parseSpaceList())
		if p.isAt(sasslexer.TComma) {
			p.advance()
		}
	}
	p.expect(sasslexer.TCloseParen, "\")\"")
	return ast.Expr{Loc: loc, Data: &ast.ECalcExpression{Name: name, Args: args}}
}

func (p *parser) parseArgumentInvocation() ast.ArgumentInvocation {
	startLoc := p.loc()
	p.expect(sasslexer.TOpenParen, "\"(\"")
	inv := ast.ArgumentInvocation{}
	for !p.isAt(sasslexer.TCloseParen) {
		if p.isAt(sasslexer.TDotDotDot) {
			p.advance()
			e := p.parseSpaceList()
			inv.Rest = &e
		} else if p.isAt(sasslexer.TVariable) {
			savedLex := *p.lex
			savedTok := p.tok
			name := p.tok.Text[1:]
			p.advance()
			if p.isAt(sasslexer.TColon) {
				p.advance()
				v := p.parseSpaceList()
				inv.Named = append(inv.Named, ast.NamedArg{Name: name, Value: v})
			} else {
				*p.lex = savedLex
				p.tok = savedTok
				inv.Positional = append(inv.Positional, p.parseSpaceList())
			}
		} else {
			inv.Positional = append(inv.Positional, p.parseSpaceList())
		}
		if p.isAt(sasslexer.TComma) {
			p.advance()
		} else {
			break
		}
	}
	end := p.loc()
	p.expect(sasslexer.TCloseParen, "\")\"")
	inv.Range = logger.Range{Loc: startLoc, Len: end.Start - startLoc.Start}
	return inv
}
