package queryparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikitools/pagelistbot/internal/ast"
	"github.com/wikitools/pagelistbot/internal/queryparse"
)

func TestParsePageLiteral(t *testing.T) {
	n, err := queryparse.Parse(`"Main Page"`)
	require.NoError(t, err)
	require.NotNil(t, n.Expr.Page)
	assert.Equal(t, []string{"Main Page"}, n.Expr.Page.Titles)
	assert.Equal(t, 0, n.Span.Begin)
	assert.Equal(t, len(`"Main Page"`), n.Span.End)
}

func TestParsePageLiteralList(t *testing.T) {
	n, err := queryparse.Parse(`"A", "B", "C"`)
	require.NoError(t, err)
	require.NotNil(t, n.Expr.Page)
	assert.Equal(t, []string{"A", "B", "C"}, n.Expr.Page.Titles)
}

func TestParsePrimitiveFunctionsCaseInsensitive(t *testing.T) {
	cases := map[string]ast.UnaryKind{
		"linkto":     ast.LinkTo,
		"LinkTo":     ast.LinkTo,
		"link":       ast.BackLink,
		"linked":     ast.BackLink,
		"embed":      ast.EmbeddedIn,
		"incat":      ast.InCategory,
		"prefix":     ast.Prefix,
		"toggle":     ast.Toggle,
		"TOGGLE":     ast.Toggle,
	}
	for text, want := range cases {
		n, err := queryparse.Parse(text + `("Main Page")`)
		require.NoErrorf(t, err, "parsing %s(...)", text)
		require.NotNil(t, n.Expr.Unary)
		assert.Equal(t, want, n.Expr.Unary.Kind)
	}
}

func TestParsePageFunctionIsTransparent(t *testing.T) {
	n, err := queryparse.Parse(`page("A", "B")`)
	require.NoError(t, err)
	require.NotNil(t, n.Expr.Page)
	assert.Equal(t, []string{"A", "B"}, n.Expr.Page.Titles)
}

// Precedence, per spec.md §4.1, from tightest to loosest: modifiers
// bind to their atom, then &, then |, then -, then ^ loosest.
func TestBinaryPrecedence(t *testing.T) {
	n, err := queryparse.Parse(`"A" | "B" & "C"`)
	require.NoError(t, err)
	require.NotNil(t, n.Expr.Binary)
	assert.Equal(t, ast.Union, n.Expr.Binary.Op)
	require.NotNil(t, n.Expr.Binary.Left.Expr.Page)
	assert.Equal(t, []string{"A"}, n.Expr.Binary.Left.Expr.Page.Titles)
	require.NotNil(t, n.Expr.Binary.Right.Expr.Binary)
	assert.Equal(t, ast.Intersection, n.Expr.Binary.Right.Expr.Binary.Op)
}

func TestBinaryPrecedenceUnionBindsTighterThanDiff(t *testing.T) {
	n, err := queryparse.Parse(`"A" | "B" - "C"`)
	require.NoError(t, err)
	require.NotNil(t, n.Expr.Binary)
	assert.Equal(t, ast.Difference, n.Expr.Binary.Op)
	require.NotNil(t, n.Expr.Binary.Left.Expr.Binary)
	assert.Equal(t, ast.Union, n.Expr.Binary.Left.Expr.Binary.Op)
}

func TestBinaryPrecedenceXorIsLoosest(t *testing.T) {
	n, err := queryparse.Parse(`"A" ^ "B" | "C"`)
	require.NoError(t, err)
	require.NotNil(t, n.Expr.Binary)
	assert.Equal(t, ast.XOr, n.Expr.Binary.Op)
	require.NotNil(t, n.Expr.Binary.Right.Expr.Binary)
	assert.Equal(t, ast.Union, n.Expr.Binary.Right.Expr.Binary.Op)
}

func TestBinaryLeftAssociativity(t *testing.T) {
	n, err := queryparse.Parse(`"A" | "B" | "C"`)
	require.NoError(t, err)
	require.NotNil(t, n.Expr.Binary)
	// ("A" | "B") | "C": the left child is itself a Union, not "A" alone.
	require.NotNil(t, n.Expr.Binary.Left.Expr.Binary)
	assert.Equal(t, ast.Union, n.Expr.Binary.Left.Expr.Binary.Op)
	require.NotNil(t, n.Expr.Binary.Right.Expr.Page)
	assert.Equal(t, []string{"C"}, n.Expr.Binary.Right.Expr.Page.Titles)
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	n, err := queryparse.Parse(`("A" | "B") & "C"`)
	require.NoError(t, err)
	require.NotNil(t, n.Expr.Binary)
	assert.Equal(t, ast.Intersection, n.Expr.Binary.Op)
	require.NotNil(t, n.Expr.Binary.Left.Expr.Binary)
	assert.Equal(t, ast.Union, n.Expr.Binary.Left.Expr.Binary.Op)
}

func TestModifierChainFoldsIntoOneRecord(t *testing.T) {
	n, err := queryparse.Parse(`linkto("Main Page").ns(0).limit(5)`)
	require.NoError(t, err)
	require.NotNil(t, n.Expr.Modified)
	mod := n.Expr.Modified.Modifier

	require.True(t, mod.HasNamespace)
	assert.Equal(t, map[int32]struct{}{0: {}}, mod.Namespace)

	require.True(t, mod.HasResultLimit)
	lim, ok := mod.ResultLimit.Int()
	require.True(t, ok)
	assert.Equal(t, int64(5), lim)
}

func TestModifierLastClauseWinsForSameField(t *testing.T) {
	n, err := queryparse.Parse(`linkto("Main Page").limit(5).limit(10)`)
	require.NoError(t, err)
	require.NotNil(t, n.Expr.Modified)
	lim, ok := n.Expr.Modified.Modifier.ResultLimit.Int()
	require.True(t, ok)
	assert.Equal(t, int64(10), lim)
}

func TestModifierLimitAcceptsInf(t *testing.T) {
	n, err := queryparse.Parse(`linkto("Main Page").limit(inf)`)
	require.NoError(t, err)
	require.True(t, n.Expr.Modified.Modifier.ResultLimit.IsInf())
}

func TestModifierNamespaceAcceptsMultipleArgs(t *testing.T) {
	n, err := queryparse.Parse(`linkto("Main Page").ns(0, 1, 14)`)
	require.NoError(t, err)
	assert.Equal(t, map[int32]struct{}{0: {}, 1: {}, 14: {}}, n.Expr.Modified.Modifier.Namespace)
}

func TestModifierNoredirOnlyredirDirect(t *testing.T) {
	n, err := queryparse.Parse(`linkto("Main Page").noredir`)
	require.NoError(t, err)
	assert.Equal(t, ast.NoRedirect, n.Expr.Modified.Modifier.FilterRedirects)

	n, err = queryparse.Parse(`linkto("Main Page").onlyredir`)
	require.NoError(t, err)
	assert.Equal(t, ast.OnlyRedirect, n.Expr.Modified.Modifier.FilterRedirects)

	n, err = queryparse.Parse(`link("Main Page").direct`)
	require.NoError(t, err)
	require.True(t, n.Expr.Modified.Modifier.HasTraceRedirects)
	assert.False(t, n.Expr.Modified.Modifier.TraceRedirects)
}

func TestUnknownModifierIsAnError(t *testing.T) {
	_, err := queryparse.Parse(`linkto("Main Page").bogus`)
	require.Error(t, err)
	var pe *ast.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ast.UnknownIdentifier, pe.Kind)
}

func TestUnknownFunctionIsAnError(t *testing.T) {
	_, err := queryparse.Parse(`bogus("Main Page")`)
	require.Error(t, err)
	var pe *ast.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ast.UnknownIdentifier, pe.Kind)
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	_, err := queryparse.Parse(`"Main Page`)
	require.Error(t, err)
	var pe *ast.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ast.UnterminatedString, pe.Kind)
}

func TestTrailingInputIsAnError(t *testing.T) {
	_, err := queryparse.Parse(`"A" "B"`)
	require.Error(t, err)
	var pe *ast.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ast.TrailingInput, pe.Kind)
}

func TestSpanCoversWholeExpression(t *testing.T) {
	text := `"A" | "B"`
	n, err := queryparse.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, text, n.Span.Slice(text))
}

func TestNegativeLimitArgumentParses(t *testing.T) {
	// A sign immediately followed by a digit inside a modifier's
	// argument list is a signed number literal, never the difference
	// operator (queryparse/lexer.go's NextToken).
	n, err := queryparse.Parse(`linkto("A").limit(-1)`)
	require.NoError(t, err)
	lim, ok := n.Expr.Modified.Modifier.ResultLimit.Int()
	require.True(t, ok)
	assert.Equal(t, int64(-1), lim)
}
