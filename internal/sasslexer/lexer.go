// Package sasslexer tokenizes SCSS source text. It covers the SCSS dialect
// only; the indented syntax is not handled here or anywhere else:
// internal/sassparser lexes every source as SCSS, whatever its declared
// syntax.
//
// Structurally this follows the teacher's (now-retired) CSS lexer: a single
// forward-only scanner over the rune stream with a Next()-based token
// protocol, rather than building a full token slice up front.
package sasslexer

import (
	"strings"

	"github.com/go-sass/sassc/internal/logger"
)

type T uint8

const (
	TEOF T = iota
	TIdent
	TVariable // $name
	TNumber
	TString
	THash        // literal color, "#abc" not followed by "{"
	THashBrace   // "#{"
	TCloseBrace
	TOpenBrace
	TOpenParen
	TCloseParen
	TOpenBracket
	TCloseBracket
	TColon
	TSemicolon
	TComma
	TDot
	TDotDotDot
	TAt // "@word"
	TAmpersand
	TPlus
	TMinus
	TStar
	TSlash
	TPercent
	TEq
	TEqEq
	TNeq
	TLt
	TLte
	TGt
	TGte
	TExclaimDefault // "!default"
	TExclaimGlobal  // "!global"
	TImportant      // "!important"
	TComment
	TOther // a single character the parser interprets contextually (e.g. selector combinators)
)

type Token struct {
	Type T
	Text string
	Loc  logger.Loc
	Range logger.Range
}

type Lexer struct {
	source *logger.Source
	log    logger.Log
	src    []byte
	pos    int
}

func New(source *logger.Source, log logger.Log) *Lexer {
	return &Lexer{source: source, log: log, src: []byte(source.Contents)}
}

func (l *Lexer) loc() logger.Loc { return logger.Loc{Start: int32(l.pos)} }

func (l *Lexer) errorAt(loc logger.Loc, text string) {
	l.log.AddError(l.source, loc, text)
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

// Next scans and returns the next token, skipping whitespace and every
// comment, preserved ("/*!") ones included: no TComment token is produced,
// so no source comment reaches the output tree.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndComments()
	start := l.loc()
	if l.pos >= len(l.src) {
		return l.token(TEOF, start)
	}
	c := l.src[l.pos]
	switch {
	case c == '$':
		return l.scanVariable(start)
	case c == '"', c == '\'':
		return l.scanString(start, c)
	case c >= '0' && c <= '9':
		return l.scanNumber(start)
	case c == '.' && isDigit(l.peekByteAt(1)):
		return l.scanNumber(start)
	case isIdentStart(c):
		return l.scanIdentLike(start)
	case c == '#' && l.peekByteAt(1) == '{':
		l.pos += 2
		return l.token(THashBrace, start)
	case c == '#':
		return l.scanHashColor(start)
	default:
		return l.scanPunctuation(start)
	}
}

func (l *Lexer) token(t T, start logger.Loc) Token {
	tok := Token{Type: t, Text: string(l.src[start.Start:l.pos]), Loc: start, Range: logger.Range{Loc: start, Len: int32(l.pos) - start.Start}}
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		case '/':
			if l.peekByteAt(1) == '/' {
				for l.pos < len(l.src) && l.src[l.pos] != '\n' {
					l.pos++
				}
			} else if l.peekByteAt(1) == '*' {
				l.pos += 2
				for l.pos < len(l.src) && !(l.src[l.pos] == '*' && l.peekByteAt(1) == '/') {
					l.pos++
				}
				if l.pos < len(l.src) {
					l.pos += 2
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) scanVariable(start logger.Loc) Token {
	l.pos++ // '$'
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return l.token(TVariable, start)
}

func (l *Lexer) scanHashColor(start logger.Loc) Token {
	l.pos++
	for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
		l.pos++
	}
	return l.token(THash, start)
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *Lexer) scanNumber(start logger.Loc) Token {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if (l.peekByte() == 'e' || l.peekByte() == 'E') &&
		(isDigit(l.peekByteAt(1)) || ((l.peekByteAt(1) == '+' || l.peekByteAt(1) == '-') && isDigit(l.peekByteAt(2)))) {
		l.pos++
		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.pos++
		}
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	// trailing unit, e.g. "10px", "50%"
	if l.peekByte() == '%' {
		l.pos++
	} else {
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
	}
	return l.token(TNumber, start)
}

func (l *Lexer) scanIdentLike(start logger.Loc) Token {
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return l.token(TIdent, start)
}

func (l *Lexer) scanString(start logger.Loc, quote byte) Token {
	l.pos++
	for l.pos < len(l.src) && l.src[l.pos] != quote {
		if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
			l.pos++
		}
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++ // closing quote
	} else {
		l.errorAt(start, "Unterminated string")
	}
	return l.token(TString, start)
}

func (l *Lexer) scanPunctuation(start logger.Loc) Token {
	c := l.src[l.pos]
	two := string(c) + string(l.peekByteAt(1))
	switch c {
	case '@':
		l.pos++
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return l.token(TAt, start)
	case '{':
		l.pos++
		return l.token(TOpenBrace, start)
	case '}':
		l.pos++
		return l.token(TCloseBrace, start)
	case '(':
		l.pos++
		return l.token(TOpenParen, start)
	case ')':
		l.pos++
		return l.token(TCloseParen, start)
	case '[':
		l.pos++
		return l.token(TOpenBracket, start)
	case ']':
		l.pos++
		return l.token(TCloseBracket, start)
	case ';':
		l.pos++
		return l.token(TSemicolon, start)
	case ',':
		l.pos++
		return l.token(TComma, start)
	case '&':
		l.pos++
		return l.token(TAmpersand, start)
	case '+':
		l.pos++
		return l.token(TPlus, start)
	case '*':
		l.pos++
		return l.token(TStar, start)
	case '/':
		l.pos++
		return l.token(TSlash, start)
	case '%':
		l.pos++
		return l.token(TPercent, start)
	case '.':
		if strings.HasPrefix(string(l.src[l.pos:]), "...") {
			l.pos += 3
			return l.token(TDotDotDot, start)
		}
		l.pos++
		return l.token(TDot, start)
	case ':':
		l.pos++
		return l.token(TColon, start)
	case '-':
		l.pos++
		return l.token(TMinus, start)
	case '=':
		if two == "==" {
			l.pos += 2
			return l.token(TEqEq, start)
		}
		l.pos++
		return l.token(TEq, start)
	case '!':
		return l.scanBang(start)
	case '<':
		if l.peekByteAt(1) == '=' {
			l.pos += 2
			return l.token(TLte, start)
		}
		l.pos++
		return l.token(TLt, start)
	case '>':
		if l.peekByteAt(1) == '=' {
			l.pos += 2
			return l.token(TGte, start)
		}
		l.pos++
		return l.token(TGt, start)
	default:
		l.pos++
		return l.token(TOther, start)
	}
}

func (l *Lexer) scanBang(start logger.Loc) Token {
	l.pos++
	if l.pos < len(l.src) && l.src[l.pos] == '=' {
		l.pos++
		return l.token(TNeq, start)
	}
	for l.pos < len(l.src) && l.src[l.pos] == ' ' {
		l.pos++
	}
	identStart := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	word := strings.ToLower(string(l.src[identStart:l.pos]))
	switch word {
	case "default":
		return l.token(TExclaimDefault, start)
	case "global":
		return l.token(TExclaimGlobal, start)
	case "important":
		return l.token(TImportant, start)
	default:
		l.errorAt(start, "Expected \"default\", \"global\", or \"important\"")
		return l.token(TOther, start)
	}
}
