package sassparser

import (
	"strings"

	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/sasslexer"
)

func (p *parser) parseAtRule() ast.Statement {
	loc := p.loc()
	name := strings.ToLower(p.tok.Text[1:])
	startRange := p.tok.Range
	p.advance()

	switch name {
	case "use":
		return ast.Statement{Loc: loc, Data: p.parseUse(startRange)}
	case "forward":
		return ast.Statement{Loc: loc, Data: p.parseForward(startRange)}
	case "import":
		return ast.Statement{Loc: loc, Data: p.parseImport(startRange)}
	case "function":
		return ast.Statement{Loc: loc, Data: p.parseFunctionDecl()}
	case "mixin":
		return ast.Statement{Loc: loc, Data: p.parseMixinDecl()}
	case "include":
		return ast.Statement{Loc: loc, Data: p.parseInclude()}
	case "content":
		args := ast.ArgumentInvocation{}
		if p.isAt(sasslexer.TOpenParen) {
			args = p.parseArgumentInvocation()
		}
		p.consumeSemicolon()
		return ast.Statement{Loc: loc, Data: &ast.SContentRule{Args: args}}
	case "if":
		return ast.Statement{Loc: loc, Data: p.parseIf()}
	case "each":
		return ast.Statement{Loc: loc, Data: p.parseEach()}
	case "for":
		return ast.Statement{Loc: loc, Data: p.parseFor()}
	case "while":
		cond := p.parseExpression()
		body := p.parseBlock()
		return ast.Statement{Loc: loc, Data: &ast.SWhile{Condition: cond, Body: body}}
	case "return":
		v := p.parseExpression()
		p.consumeSemicolon()
		return ast.Statement{Loc: loc, Data: &ast.SReturn{Value: v}}
	case "debug":
		v := p.parseExpression()
		p.consumeSemicolon()
		return ast.Statement{Loc: loc, Data: &ast.SDebug{Value: v}}
	case "warn":
		v := p.parseExpression()
		p.consumeSemicolon()
		return ast.Statement{Loc: loc, Data: &ast.SWarn{Value: v}}
	case "error":
		v := p.parseExpression()
		p.consumeSemicolon()
		return ast.Statement{Loc: loc, Data: &ast.SError{Value: v}}
	case "media":
		chunks, _ := p.parseInterpolatedChunksUntil(sasslexer.TOpenBrace)
		body := p.parseBlock()
		return ast.Statement{Loc: loc, Data: &ast.SMedia{Query: chunks, Body: body}}
	case "supports":
		chunks, _ := p.parseInterpolatedChunksUntil(sasslexer.TOpenBrace)
		body := p.parseBlock()
		return ast.Statement{Loc: loc, Data: &ast.SSupports{Condition: chunks, Body: body}}
	case "at-root":
		query, _ := p.parseInterpolatedChunksUntil(sasslexer.TOpenBrace)
		body := p.parseBlock()
		raw := ""
		for _, c := range query {
			raw += c.Text
		}
		return ast.Statement{Loc: loc, Data: &ast.SAtRoot{Query: raw, Body: body}}
	case "else":
		p.failAt(loc, "This at-rule is not allowed here.")
		return ast.Statement{}
	default:
		return p.parsePlainAtRule(loc, name)
	}
}

func (p *parser) parsePlainAtRule(loc logger.Loc, name string) ast.Statement {
	chunks, stop := p.parseInterpolatedChunksUntil(sasslexer.TOpenBrace, sasslexer.TSemicolon)
	var body []ast.Statement
	hasBody := stop == sasslexer.TOpenBrace
	if hasBody {
		body = p.parseBlock()
	} else {
		p.consumeSemicolon()
	}
	return ast.Statement{Loc: loc, Data: &ast.SPlainAtRule{Name: name, Prelude: chunks, Body: body}}
}

func parseURL(p *parser) string {
	if p.isAt(sasslexer.TString) {
		return p.parseQuotedStringLiteral()
	}
	p.failAt(p.loc(), "Expected string.")
	return ""
}

func (p *parser) parseUse(r logger.Range) *ast.SUse {
	url := parseURL(p)
	use := &ast.SUse{URL: url, Range: r}
	if isKeyword(p.tok, "as") {
		p.advance()
		if p.tok.Type == sasslexer.TStar {
			use.Namespace = "*"
			p.advance()
		} else {
			use.Namespace = p.expect(sasslexer.TIdent, "a namespace").Text
		}
	}
	if isKeyword(p.tok, "with") {
		p.advance()
		use.Configuration = p.parseConfiguration()
	}
	p.consumeSemicolon()
	return use
}

func (p *parser) parseForward(r logger.Range) *ast.SForward {
	url := parseURL(p)
	fwd := &ast.SForward{URL: url, Range: r}
	if isKeyword(p.tok, "as") {
		p.advance()
		fwd.Prefix = p.expect(sasslexer.TIdent, "a prefix").Text
		// consume the trailing "*" of "as prefix-*"
		if p.isAt(sasslexer.TStar) {
			p.advance()
		}
	}
	if isKeyword(p.tok, "show") {
		p.advance()
		fwd.ShowOnly = p.parseIdentList()
	} else if isKeyword(p.tok, "hide") {
		p.advance()
		fwd.Hide = p.parseIdentList()
	}
	if isKeyword(p.tok, "with") {
		p.advance()
		fwd.Configuration = p.parseConfiguration()
	}
	p.consumeSemicolon()
	return fwd
}

func (p *parser) parseIdentList() []string {
	var names []string
	for {
		if p.isAt(sasslexer.TVariable) {
			names = append(names, "$"+p.tok.Text[1:])
			p.advance()
		} else {
			names = append(names, p.expect(sasslexer.TIdent, "a name").Text)
		}
		if !p.isAt(sasslexer.TComma) {
			break
		}
		p.advance()
	}
	return names
}

func (p *parser) parseConfiguration() []ast.ConfigVar {
	p.expect(sasslexer.TOpenParen, "\"(\"")
	var vars []ast.ConfigVar
	for !p.isAt(sasslexer.TCloseParen) {
		name := p.expect(sasslexer.TVariable, "a variable").Text[1:]
		p.expect(sasslexer.TColon, "\":\"")
		v := p.parseSpaceList()
		cv := ast.ConfigVar{Name: name, Value: v}
		if p.isAt(sasslexer.TExclaimDefault) {
			cv.Default = true
			p.advance()
		}
		vars = append(vars, cv)
		if p.isAt(sasslexer.TComma) {
			p.advance()
		}
	}
	p.expect(sasslexer.TCloseParen, "\")\"")
	return vars
}

func (p *parser) parseImport(r logger.Range) *ast.SImport {
	imp := &ast.SImport{Range: r}
	for {
		url := parseURL(p)
		isPlain := strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") ||
			strings.HasSuffix(url, ".css") || strings.Contains(url, "://")
		target := ast.ImportTarget{URL: url, IsPlainCSS: isPlain}
		if !p.isAt(sasslexer.TComma) && !p.isAt(sasslexer.TSemicolon) && !p.isAt(sasslexer.TEOF) {
			chunks, _ := p.parseInterpolatedChunksUntil(sasslexer.TComma, sasslexer.TSemicolon)
			target.MediaQuery = chunks
		}
		imp.Targets = append(imp.Targets, target)
		if p.isAt(sasslexer.TComma) {
			p.advance()
			continue
		}
		break
	}
	p.consumeSemicolon()
	return imp
}

func (p *parser) parseParams() []ast.Param {
	p.expect(sasslexer.TOpenParen, "\"(\"")
	var params []ast.Param
	for !p.isAt(sasslexer.TCloseParen) {
		name := p.expect(sasslexer.TVariable, "a parameter").Text[1:]
		param := ast.Param{Name: name}
		if p.isAt(sasslexer.TDotDotDot) {
			p.advance()
			param.IsRest = true
		} else if p.isAt(sasslexer.TColon) {
			p.advance()
			v := p.parseSpaceList()
			param.Default = &v
		}
		params = append(params, param)
		if p.isAt(sasslexer.TComma) {
			p.advance()
		}
	}
	p.expect(sasslexer.TCloseParen, "\")\"")
	return params
}

func (p *parser) parseFunctionDecl() *ast.SFunctionDecl {
	name := p.expect(sasslexer.TIdent, "a function name").Text
	params := p.parseParams()
	body := p.parseBlock()
	return &ast.SFunctionDecl{Name: name, Params: params, Body: body}
}

func (p *parser) parseMixinDecl() *ast.SMixinDecl {
	name := p.expect(sasslexer.TIdent, "a mixin name").Text
	var params []ast.Param
	if p.isAt(sasslexer.TOpenParen) {
		params = p.parseParams()
	}
	body := p.parseBlock()
	return &ast.SMixinDecl{Name: name, Params: params, Body: body, AcceptsContent: bodyUsesContent(body)}
}

// bodyUsesContent scans for a top-level-or-nested @content so the evaluator
// can reject "@include mixin { ... }" against a mixin that never calls it,
// without a forward declaration pass.
func bodyUsesContent(body []ast.Statement) bool {
	for _, s := range body {
		switch d := s.Data.(type) {
		case *ast.SContentRule:
			return true
		case *ast.SStyleRule:
			if bodyUsesContent(d.Body) {
				return true
			}
		case *ast.SIf:
			for _, c := range d.Clauses {
				if bodyUsesContent(c.Body) {
					return true
				}
			}
			if bodyUsesContent(d.Else) {
				return true
			}
		case *ast.SEach:
			if bodyUsesContent(d.Body) {
				return true
			}
		case *ast.SFor:
			if bodyUsesContent(d.Body) {
				return true
			}
		case *ast.SWhile:
			if bodyUsesContent(d.Body) {
				return true
			}
		}
	}
	return false
}

func (p *parser) parseInclude() *ast.SInclude {
	name := p.expect(sasslexer.TIdent, "a mixin name").Text
	namespace := ""
	if p.isAt(sasslexer.TDot) {
		p.advance()
		namespace = name
		name = p.expect(sasslexer.TIdent, "a mixin name").Text
	}
	inc := &ast.SInclude{Namespace: namespace, Name: name}
	if p.isAt(sasslexer.TOpenParen) {
		inc.Args = p.parseArgumentInvocation()
	}
	if isKeyword(p.tok, "using") {
		p.advance()
		params := p.parseParams()
		body := p.parseBlock()
		inc.Content = &ast.ContentBlock{Params: params, Body: body}
		return inc
	}
	if p.isAt(sasslexer.TOpenBrace) {
		body := p.parseBlock()
		inc.Content = &ast.ContentBlock{Body: body}
		return inc
	}
	p.consumeSemicolon()
	return inc
}

func (p *parser) parseIf() *ast.SIf {
	cond := p.parseExpression()
	body := p.parseBlock()
	sif := &ast.SIf{Clauses: []ast.IfClause{{Condition: cond, Body: body}}}
	for p.isAt(sasslexer.TAt) && strings.EqualFold(p.tok.Text[1:], "else") {
		p.advance()
		if isKeyword(p.tok, "if") {
			p.advance()
			c := p.parseExpression()
			b := p.parseBlock()
			sif.Clauses = append(sif.Clauses, ast.IfClause{Condition: c, Body: b})
			continue
		}
		sif.Else = p.parseBlock()
		break
	}
	return sif
}

func (p *parser) parseEach() *ast.SEach {
	var names []string
	for {
		names = append(names, p.expect(sasslexer.TVariable, "a variable").Text[1:])
		if !p.isAt(sasslexer.TComma) {
			break
		}
		p.advance()
	}
	if !isKeyword(p.tok, "in") {
		p.failAt(p.loc(), "Expected \"in\".")
	}
	p.advance()
	list := p.parseExpression()
	body := p.parseBlock()
	return &ast.SEach{Variables: names, List: list, Body: body}
}

func (p *parser) parseFor() *ast.SFor {
	v := p.expect(sasslexer.TVariable, "a variable").Text[1:]
	if !isKeyword(p.tok, "from") {
		p.failAt(p.loc(), "Expected \"from\".")
	}
	p.advance()
	from := p.parseOr() // "through"/"to" sit at a lower binding than comparisons would allow
	exclusive := true
	if isKeyword(p.tok, "to") {
		exclusive = true
	} else if isKeyword(p.tok, "through") {
		exclusive = false
	} else {
		p.failAt(p.loc(), "Expected \"to\" or \"through\".")
	}
	p.advance()
	to := p.parseOr()
	body := p.parseBlock()
	return &ast.SFor{Variable: v, From: from, To: to, Exclusive: exclusive, Body: body}
}
