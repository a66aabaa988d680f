package queryparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := newLexer(input)
	var toks []Token
	for {
		tok, err := l.NextToken()
		require.Nil(t, err)
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestLexerSingleCharOperators(t *testing.T) {
	toks := lexAll(t, "& | - ^ ( ) , .")
	kinds := make([]TokenKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokAmp, TokPipe, TokMinus, TokCaret, TokLParen, TokRParen, TokComma, TokDot, TokEOF,
	}, kinds)
}

func TestLexerStringEscapes(t *testing.T) {
	toks := lexAll(t, `"quote \" backslash \\ end"`)
	require.Len(t, toks, 2)
	assert.Equal(t, TokString, toks[0].Kind)
	assert.Equal(t, `quote " backslash \ end`, toks[0].Literal)
}

func TestLexerSignedNumberInModifierPosition(t *testing.T) {
	toks := lexAll(t, "-1")
	require.Len(t, toks, 2)
	assert.Equal(t, TokNumber, toks[0].Kind)
	assert.Equal(t, "-1", toks[0].Literal)
}

func TestLexerBareMinusIsOperator(t *testing.T) {
	toks := lexAll(t, "- 1")
	require.Len(t, toks, 3)
	assert.Equal(t, TokMinus, toks[0].Kind)
	assert.Equal(t, TokNumber, toks[1].Kind)
}

func TestLexerIdentVsNumber(t *testing.T) {
	toks := lexAll(t, "linkto 123")
	require.Len(t, toks, 3)
	assert.Equal(t, TokIdent, toks[0].Kind)
	assert.Equal(t, "linkto", toks[0].Literal)
	assert.Equal(t, TokNumber, toks[1].Kind)
	assert.Equal(t, "123", toks[1].Literal)
}

func TestLexerTracksByteSpans(t *testing.T) {
	toks := lexAll(t, `  "A"`)
	require.Len(t, toks, 2)
	assert.Equal(t, 2, toks[0].Span.Begin)
	assert.Equal(t, 5, toks[0].Span.End)
}
