// Package sassparser turns a token stream from internal/sasslexer into an
// internal/ast.Stylesheet. It is a single recursive-descent parser with one
// token of lookahead, the same shape the teacher's (now-retired) CSS parser
// used: a `p *parser` receiver, a `p.current`/`p.advance()` pair, and
// panic/recover around a sentinel error to unwind out of a malformed
// statement without the caller threading errors through every call.
package sassparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/sasslexer"
)

type parser struct {
	source *ast.Source
	log    logger.Log
	lex    *sasslexer.Lexer
	tok    sasslexer.Token
}

type parseError struct{}

// Parse lexes and parses a stylesheet. Lex/parse errors are reported to log;
// the first parse error stops parsing and leaves the stylesheet without a
// body. The returned error is always nil, so callers check log.HasErrors()
// before trusting the result.
func Parse(source ast.Source, log logger.Log) (ast.Stylesheet, error) {
	loggerSource := source.LoggerSource()
	p := &parser{source: &source, log: log, lex: sasslexer.New(&loggerSource, log)}
	p.advance()

	sheet := ast.Stylesheet{Source: source}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(parseError); !ok {
					panic(r)
				}
			}
		}()
		sheet.Body = p.parseStatements(true)
	}()
	hoistLoads(&sheet)
	return sheet, nil
}

func hoistLoads(sheet *ast.Stylesheet) {
	var walk func(stmts []ast.Statement)
	walk = func(stmts []ast.Statement) {
		for i, s := range stmts {
			switch d := s.Data.(type) {
			case *ast.SUse:
				sheet.Loads = append(sheet.Loads, ast.LoadRecord{Kind: ast.LoadUse, URL: d.URL, Range: d.Range, StmtIndex: i})
			case *ast.SForward:
				sheet.Loads = append(sheet.Loads, ast.LoadRecord{Kind: ast.LoadForward, URL: d.URL, Range: d.Range, StmtIndex: i})
			case *ast.SImport:
				for _, t := range d.Targets {
					if !t.IsPlainCSS {
						sheet.Loads = append(sheet.Loads, ast.LoadRecord{Kind: ast.LoadImport, URL: t.URL, Range: d.Range, StmtIndex: i})
					}
				}
			}
		}
	}
	walk(sheet.Body)
}

func (p *parser) advance() {
	p.tok = p.lex.Next()
}

func (p *parser) loc() logger.Loc { return p.tok.Loc }

func (p *parser) failAt(loc logger.Loc, format string, args ...interface{}) {
	p.log.AddError(p.loggerSource(), loc, fmt.Sprintf(format, args...))
	panic(parseError{})
}

func (p *parser) loggerSource() *logger.Source {
	s := p.source.LoggerSource()
	return &s
}

func (p *parser) expect(t sasslexer.T, what string) sasslexer.Token {
	if p.tok.Type != t {
		p.failAt(p.loc(), "Expected %s.", what)
	}
	tok := p.tok
	p.advance()
	return tok
}

func (p *parser) isAt(t sasslexer.T) bool { return p.tok.Type == t }

// parseStatements parses a sequence of statements until a closing brace
// (or, at the top level, EOF).
func (p *parser) parseStatements(topLevel bool) []ast.Statement {
	var stmts []ast.Statement
	for {
		if p.isAt(sasslexer.TEOF) {
			if !topLevel {
				p.failAt(p.loc(), "Expected \"}\".")
			}
			return stmts
		}
		if p.isAt(sasslexer.TCloseBrace) {
			if topLevel {
				p.failAt(p.loc(), "Unmatched \"}\".")
			}
			return stmts
		}
		stmts = append(stmts, p.parseStatement())
	}
}

func (p *parser) parseBlock() []ast.Statement {
	p.expect(sasslexer.TOpenBrace, "\"{\"")
	body := p.parseStatements(false)
	p.expect(sasslexer.TCloseBrace, "\"}\"")
	return body
}

func (p *parser) parseStatement() ast.Statement {
	loc := p.loc()
	switch p.tok.Type {
	case sasslexer.TVariable:
		return ast.Statement{Loc: loc, Data: p.parseVariableDecl()}
	case sasslexer.TAt:
		return p.parseAtRule()
	case sasslexer.TComment:
		text := p.tok.Text
		p.advance()
		return ast.Statement{Loc: loc, Data: &ast.SComment{Text: text, IsPreserved: strings.HasPrefix(text, "/*!")}}
	default:
		return p.parseStyleRuleOrDeclaration()
	}
}

func (p *parser) parseVariableDecl() *ast.SVariableDecl {
	name := p.tok.Text[1:]
	p.advance()
	namespace := ""
	if p.isAt(sasslexer.TDot) {
		p.advance()
		namespace = name
		name = p.expect(sasslexer.TVariable, "a variable name").Text[1:]
	}
	p.expect(sasslexer.TColon, "\":\"")
	value := p.parseExpression()
	decl := &ast.SVariableDecl{Namespace: namespace, Name: name, Value: value}
	for p.isAt(sasslexer.TExclaimDefault) || p.isAt(sasslexer.TExclaimGlobal) {
		if p.tok.Type == sasslexer.TExclaimDefault {
			decl.Default = true
		} else {
			decl.Global = true
		}
		p.advance()
	}
	p.consumeSemicolon()
	return decl
}

func (p *parser) consumeSemicolon() {
	if p.isAt(sasslexer.TSemicolon) {
		p.advance()
	}
}

// parseStyleRuleOrDeclaration disambiguates "selector { ... }" from
// "property: value;" by scanning raw interpolated-text chunks up to the
// first unnested "{" (a rule), ";"/EOF/"}" (a declaration), matching the
// reference grammar's own lookahead-free trick of treating both as "a
// sequence of text and interpolation, then decide by what follows".
func (p *parser) parseStyleRuleOrDeclaration() ast.Statement {
	loc := p.loc()
	chunks, stop := p.parseInterpolatedChunksUntil(sasslexer.TOpenBrace, sasslexer.TColon)
	switch stop {
	case sasslexer.TOpenBrace:
		body := p.parseBlock()
		return ast.Statement{Loc: loc, Data: &ast.SStyleRule{Selector: chunks, Body: body}}
	case sasslexer.TColon:
		p.advance() // consume ":"
		if p.isAt(sasslexer.TOpenBrace) {
			body := p.parseBlock()
			return ast.Statement{Loc: loc, Data: &ast.SDeclaration{Property: chunks, Body: body}}
		}
		value := p.parseExpression()
		decl := &ast.SDeclaration{Property: chunks, Value: &value}
		if p.isAt(sasslexer.TImportant) {
			decl.Important = true
			p.advance()
		}
		p.consumeSemicolon()
		return ast.Statement{Loc: loc, Data: decl}
	default:
		p.failAt(p.loc(), "Expected \"{\" or \":\".")
		return ast.Statement{}
	}
}

// parseInterpolatedChunksUntil accumulates raw token text, splicing in
// #{...} expressions, until it sees one of the stop token types at brace
// depth 0.
func (p *parser) parseInterpolatedChunksUntil(stops ...sasslexer.T) ([]ast.InterpolatedChunk, sasslexer.T) {
	var chunks []ast.InterpolatedChunk
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			chunks = append(chunks, ast.InterpolatedChunk{Text: text.String()})
			text.Reset()
		}
	}
	depth := 0
	for {
		if depth == 0 {
			for _, s := range stops {
				if p.tok.Type == s {
					flush()
					return chunks, s
				}
			}
		}
		if p.isAt(sasslexer.TEOF) {
			flush()
			return chunks, sasslexer.TEOF
		}
		if p.isAt(sasslexer.THashBrace) {
			p.advance()
			expr := p.parseExpression()
			flush()
			chunks = append(chunks, ast.InterpolatedChunk{Expr: &expr})
			p.expect(sasslexer.TCloseBrace, "\"}\"")
			continue
		}
		if p.isAt(sasslexer.TOpenParen) || p.isAt(sasslexer.TOpenBracket) {
			depth++
		}
		if p.isAt(sasslexer.TCloseParen) || p.isAt(sasslexer.TCloseBracket) {
			depth--
		}
		if text.Len() > 0 {
			text.WriteByte(' ')
		}
		text.WriteString(p.tok.Text)
		p.advance()
	}
}

func (p *parser) parseQuotedStringLiteral() string {
	tok := p.expect(sasslexer.TString, "a string")
	s := tok.Text
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	return s
}

func isKeyword(tok sasslexer.Token, word string) bool {
	return tok.Type == sasslexer.TIdent && strings.EqualFold(tok.Text, word)
}

func parseFloat(text string) (float64, string) {
	i := 0
	for i < len(text) && (isDigitByte(text[i]) || text[i] == '.' || text[i] == '+' || text[i] == '-' || text[i] == 'e' || text[i] == 'E') {
		// only allow sign right after exponent marker or at the very start;
		// this is adequate for the numeric literals the lexer itself emits.
		if (text[i] == '+' || text[i] == '-') && i != 0 && text[i-1] != 'e' && text[i-1] != 'E' {
			break
		}
		i++
	}
	v, _ := strconv.ParseFloat(text[:i], 64)
	return v, text[i:]
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }
