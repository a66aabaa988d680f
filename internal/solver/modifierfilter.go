package solver

import (
	"context"

	"github.com/wikitools/pagelistbot/internal/ast"
	"github.com/wikitools/pagelistbot/internal/provider"
	"github.com/wikitools/pagelistbot/internal/span"
)

// produceModifierFilter applies the effective-modifier pipeline that
// governs one producer step — the root of the tree, or an ast.Modified
// node — to the raw stream underneath it, in the fixed order spec §4.2
// requires: namespace filter, redirect classification, redirect
// resolution, then per-step limit enforcement (the worked example in
// spec.md §8 — linkto(...).ns(0).limit(3) over five raw links emitting
// three Ok plus one LimitExceeded — only holds if the limit is counted
// against namespace-filtered items, so that is the order implemented
// here; see DESIGN.md for the reasoning). Dedup is each primitive
// producer's own concern further down the tree (spec §4.2
// "Deduplication"), not this pipeline's.
func produceModifierFilter(ctx context.Context, sp span.Span, eff EffectiveModifier, inner <-chan Item, p provider.Provider) <-chan Item {
	out := make(chan Item)
	needsClassify := eff.FilterRedirects != ast.All || eff.ResolveRedirects
	limitN, hasLimit := eff.ResultLimit.Int()

	go func() {
		defer close(out)
		var passed int64
		for item := range inner {
			v, isOk := item.Ok()
			if !isOk {
				if !trySend(ctx, out, item) {
					drain(inner)
					return
				}
				if item.IsErr() {
					return
				}
				continue
			}

			if eff.Namespace != nil {
				if _, in := eff.Namespace[v.Namespace()]; !in {
					continue
				}
			}

			status := provider.NotARedirect
			if needsClassify {
				var err error
				status, err = p.ClassifyRedirect(ctx, v)
				if err != nil {
					trySend(ctx, out, errItem(classifyProviderError(sp, err)))
					drain(inner)
					return
				}
			}

			switch eff.FilterRedirects {
			case ast.NoRedirect:
				if status == provider.IsRedirect {
					continue
				}
			case ast.OnlyRedirect:
				if status != provider.IsRedirect {
					continue
				}
			}

			if eff.ResolveRedirects && status == provider.IsRedirect {
				target, ok, err := p.ResolveRedirect(ctx, v)
				if err != nil {
					trySend(ctx, out, errItem(classifyProviderError(sp, err)))
					drain(inner)
					return
				}
				if !ok {
					if !trySend(ctx, out, warnItem(Warning{Kind: RedirectResolutionFailed, Span: sp, Title: v})) {
						drain(inner)
						return
					}
					continue
				}
				v = target
			}

			passed++
			if hasLimit && passed > limitN {
				trySend(ctx, out, warnItem(Warning{Kind: LimitExceeded, Span: sp, Limit: limitN}))
				drain(inner)
				return
			}

			if !trySend(ctx, out, okItem(v)) {
				drain(inner)
				return
			}
		}
	}()
	return out
}
