package queryparse

import (
	"strings"

	"github.com/wikitools/pagelistbot/internal/ast"
	"github.com/wikitools/pagelistbot/internal/span"
)

// lexer scans a query string into Tokens, one NextToken call at a
// time, tracking byte offsets so every Token carries a Span.
type lexer struct {
	input string
	pos   int // byte offset of the next unread rune
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) eof() bool { return l.pos >= len(l.input) }

func (l *lexer) peekByte() byte {
	if l.eof() {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) skipWhitespace() {
	for !l.eof() {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// NextToken returns the next lexical token, or a TokEOF token once the
// input is exhausted. A malformed string literal is reported through
// *ast.ParseError rather than silently returned as TokIllegal, so the
// parser can surface it immediately.
func (l *lexer) NextToken() (Token, *ast.ParseError) {
	l.skipWhitespace()
	begin := l.pos
	if l.eof() {
		return Token{Kind: TokEOF, Span: span.New(begin, begin)}, nil
	}

	b := l.input[l.pos]
	switch {
	case b == '"':
		return l.scanString()
	case isIdentStart(b):
		return l.scanIdent(), nil
	case isDigit(b):
		return l.scanNumber(), nil
	case (b == '+' || b == '-') && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]):
		// A sign immediately followed by a digit, with no space, is a
		// signed number literal (modifier arguments like .limit(-1)
		// are the only place this can occur). A bare '-' with
		// whitespace or an expression after it is the difference
		// operator, handled by the single-character table below.
		return l.scanNumber(), nil
	}

	single := map[byte]TokenKind{
		'&': TokAmp, '|': TokPipe, '-': TokMinus, '^': TokCaret,
		'(': TokLParen, ')': TokRParen, ',': TokComma, '.': TokDot,
	}
	if kind, ok := single[b]; ok {
		l.pos++
		return Token{Kind: kind, Literal: string(b), Span: span.New(begin, l.pos)}, nil
	}

	l.pos++
	return Token{Kind: TokIllegal, Literal: string(b), Span: span.New(begin, l.pos)}, &ast.ParseError{
		Kind:    ast.UnexpectedToken,
		Span:    span.New(begin, l.pos),
		Message: "unrecognized character " + string(b),
	}
}

func (l *lexer) scanIdent() Token {
	begin := l.pos
	for !l.eof() && isIdentCont(l.input[l.pos]) {
		l.pos++
	}
	lit := l.input[begin:l.pos]
	return Token{Kind: TokIdent, Literal: lit, Span: span.New(begin, l.pos)}
}

func (l *lexer) scanNumber() Token {
	begin := l.pos
	if l.peekByte() == '+' || l.peekByte() == '-' {
		l.pos++
	}
	for !l.eof() && isDigit(l.input[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokNumber, Literal: l.input[begin:l.pos], Span: span.New(begin, l.pos)}
}

func (l *lexer) scanString() (Token, *ast.ParseError) {
	begin := l.pos
	l.pos++ // opening quote
	var b strings.Builder
	for {
		if l.eof() {
			return Token{}, &ast.ParseError{
				Kind:    ast.UnterminatedString,
				Span:    span.New(begin, l.pos),
				Message: "unterminated string literal",
			}
		}
		c := l.input[l.pos]
		if c == '"' {
			l.pos++
			return Token{Kind: TokString, Literal: b.String(), Span: span.New(begin, l.pos)}, nil
		}
		if c == '\\' && l.pos+1 < len(l.input) {
			next := l.input[l.pos+1]
			switch next {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
			l.pos += 2
			continue
		}
		b.WriteByte(c)
		l.pos++
	}
}
