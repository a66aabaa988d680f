package solver

import (
	"github.com/wikitools/pagelistbot/internal/ast"
	"github.com/wikitools/pagelistbot/internal/provider"
	"github.com/wikitools/pagelistbot/internal/title"

	"context"
)

// produceCategory implements InCategory: a breadth-first walk of the
// category tree rooted at the input titles, bounded by the effective
// recursion depth and guarded against cycles. Ported in spirit from the
// original source's category expansion (lib/solver/src/category.rs),
// which the same closed provider.CategoryMemberStream contract (member
// vs. subcategory) maps onto directly.
func produceCategory(ctx context.Context, node *ast.Node, eff EffectiveModifier, inner <-chan Item, p provider.Provider) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		roots, ok := drainInner(ctx, inner, out)
		if !ok {
			return
		}
		if len(roots) == 0 {
			return
		}

		depthN, hasDepthLimit := eff.RecursionDepth.Int()

		seen := map[string]struct{}{}        // emitted member titles
		visitedCats := map[string]struct{}{} // categories ever placed in a frontier
		for _, c := range roots {
			visitedCats[c.Key()] = struct{}{}
		}

		frontier := roots
		for depth := int64(0); len(frontier) > 0; depth++ {
			stream := p.GetCategoryMembersOf(ctx, frontier)
			var nextFrontier []title.Title
			for {
				m, ok, err := stream.Next(ctx)
				if err != nil {
					trySend(ctx, out, errItem(classifyProviderError(node.Span, err)))
					return
				}
				if !ok {
					break
				}
				if m.IsSubcat {
					key := m.Title.Key()
					if _, dup := visitedCats[key]; dup {
						if !trySend(ctx, out, warnItem(Warning{Kind: CategoryCycleDetected, Span: node.Span, Title: m.Title})) {
							return
						}
						continue
					}
					if hasDepthLimit && depth >= depthN {
						continue
					}
					visitedCats[key] = struct{}{}
					nextFrontier = append(nextFrontier, m.Title)
					continue
				}
				key := m.Title.Key()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				if !trySend(ctx, out, okItem(m.Title)) {
					return
				}
			}
			frontier = nextFrontier
		}
	}()
	return out
}
