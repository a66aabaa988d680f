package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wikitools/pagelistbot/internal/ast"
	"github.com/wikitools/pagelistbot/internal/numinf"
)

func TestModifierMergeLastWins(t *testing.T) {
	first := ast.Modifier{ResultLimit: numinf.Finite(5), HasResultLimit: true}
	second := ast.Modifier{ResultLimit: numinf.Finite(10), HasResultLimit: true}

	merged := first.Merge(second)
	n, ok := merged.ResultLimit.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(10), n)
}

func TestModifierMergeUnsetFieldsPreserved(t *testing.T) {
	first := ast.Modifier{ResultLimit: numinf.Finite(5), HasResultLimit: true}
	second := ast.Modifier{RecursionDepth: numinf.Finite(2), HasRecursionDepth: true}

	merged := first.Merge(second)
	n, ok := merged.ResultLimit.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(5), n, "merge must not clobber a field next never set")

	d, ok := merged.RecursionDepth.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(2), d)
}

func TestModifierMergeNamespaceReplacesWholeSet(t *testing.T) {
	first := ast.Modifier{Namespace: map[int32]struct{}{0: {}, 1: {}}, HasNamespace: true}
	second := ast.Modifier{Namespace: map[int32]struct{}{14: {}}, HasNamespace: true}

	merged := first.Merge(second)
	assert.Equal(t, map[int32]struct{}{14: {}}, merged.Namespace, "a later .ns() replaces, not unions with, the earlier set")
}

func TestNodeKindNamesEachVariant(t *testing.T) {
	cases := []struct {
		name string
		node ast.Node
		want string
	}{
		{"page", ast.Node{Expr: ast.Expr{Page: &ast.PageExpr{}}}, "page"},
		{"unary", ast.Node{Expr: ast.Expr{Unary: &ast.UnaryExpr{Kind: ast.LinkTo}}}, "unary:linkto"},
		{"binary", ast.Node{Expr: ast.Expr{Binary: &ast.BinaryExpr{Op: ast.Union}}}, "binary:|"},
		{"modified", ast.Node{Expr: ast.Expr{Modified: &ast.ModifiedExpr{}}}, "modified"},
		{"invalid", ast.Node{}, "invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.node.Kind())
		})
	}
}
