package queryparse

import "github.com/wikitools/pagelistbot/internal/span"

// TokenKind enumerates the query language's lexical categories. The
// scanner is hand-written over raw bytes rather than table-driven
// through a regex-DFA engine (see DESIGN.md for why lexmachine was
// not pulled in here): eight single-character operators plus
// idents/strings/numbers do not need one.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokString
	TokNumber
	TokAmp    // &
	TokPipe   // |
	TokMinus  // -
	TokCaret  // ^
	TokLParen // (
	TokRParen // )
	TokComma  // ,
	TokDot    // .
	TokIllegal
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokIdent:
		return "Ident"
	case TokString:
		return "String"
	case TokNumber:
		return "Number"
	case TokAmp:
		return "'&'"
	case TokPipe:
		return "'|'"
	case TokMinus:
		return "'-'"
	case TokCaret:
		return "'^'"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokComma:
		return "','"
	case TokDot:
		return "'.'"
	default:
		return "Illegal"
	}
}

// Token is one lexed unit: its kind, the literal text it covers
// (unescaped, for strings), and the span it occupies in the source.
type Token struct {
	Kind    TokenKind
	Literal string
	Span    span.Span
}
