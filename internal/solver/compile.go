package solver

import (
	"context"

	"github.com/wikitools/pagelistbot/internal/ast"
	"github.com/wikitools/pagelistbot/internal/provider"
)

// compile walks node bottom-up, turning each AST node into a running
// producer goroutine and wiring its output through fuse so that no
// descendant ever emits an item after a fatal Err (spec §4.2 "Errors").
// eff is the modifier context inherited from the enclosing Modified
// node, or RootModifier at the top of the tree.
func compile(ctx context.Context, node *ast.Node, eff EffectiveModifier, p provider.Provider) <-chan Item {
	switch {
	case node.Expr.Page != nil:
		return fuse(producePage(ctx, node, p))

	case node.Expr.Unary != nil:
		u := node.Expr.Unary
		inner := compile(ctx, u.Inner, eff, p)
		switch u.Kind {
		case ast.LinkTo, ast.BackLink, ast.EmbeddedIn, ast.Prefix:
			return fuse(produceUnary(ctx, node, eff, inner, p))
		case ast.InCategory:
			return fuse(produceCategory(ctx, node, eff, inner, p))
		case ast.Toggle:
			return fuse(produceToggle(ctx, inner, p))
		default:
			return closedChan()
		}

	case node.Expr.Binary != nil:
		b := node.Expr.Binary
		left := compile(ctx, b.Left, eff, p)
		right := compile(ctx, b.Right, eff, p)
		switch b.Op {
		case ast.Union:
			return fuse(produceUnion(ctx, left, right))
		case ast.Intersection:
			return fuse(produceIntersection(ctx, left, right))
		case ast.Difference:
			return fuse(produceDifference(ctx, left, right))
		case ast.XOr:
			return fuse(produceXOr(ctx, left, right))
		default:
			return closedChan()
		}

	case node.Expr.Modified != nil:
		m := node.Expr.Modified
		childEff := eff.Apply(m.Modifier)
		inner := compile(ctx, m.Inner, childEff, p)
		return fuse(produceModifierFilter(ctx, node.Span, childEff, inner, p))

	default:
		return closedChan()
	}
}

func closedChan() <-chan Item {
	out := make(chan Item)
	close(out)
	return out
}
