package solver

import (
	"context"

	"github.com/wikitools/pagelistbot/internal/ast"
	"github.com/wikitools/pagelistbot/internal/provider"
	"github.com/wikitools/pagelistbot/internal/span"
	"github.com/wikitools/pagelistbot/internal/title"
)

// concatTitleStream sequences several provider.TitleStream values —
// one per input title — into a single stream, so LinkTo/BackLink/
// EmbeddedIn/Prefix can each be described as "for each input title, ask
// the Provider, interleave the results" (spec §4.2) while still sharing
// one uniqueStream dedup set across the whole producer step.
type concatTitleStream struct {
	titles   []title.Title
	idx      int
	fetchOne func(context.Context, title.Title) provider.TitleStream
	current  provider.TitleStream
}

func (c *concatTitleStream) Next(ctx context.Context) (title.Title, bool, error) {
	for {
		if c.current == nil {
			if c.idx >= len(c.titles) {
				return title.Title{}, false, nil
			}
			c.current = c.fetchOne(ctx, c.titles[c.idx])
			c.idx++
		}
		t, ok, err := c.current.Next(ctx)
		if err != nil {
			return title.Title{}, false, err
		}
		if !ok {
			c.current = nil
			continue
		}
		return t, true, nil
	}
}

// drainInner fully consumes a compiled child stream, forwarding its
// Warn items onward and collecting its Ok titles. If the child yields
// an Err, it is forwarded and ok is false: the caller must stop without
// issuing any Provider call of its own (spec §4.2 "Errors": "a unary
// parent terminates with the same error").
func drainInner(ctx context.Context, inner <-chan Item, out chan<- Item) (titles []title.Title, ok bool) {
	for item := range inner {
		if v, isOk := item.Ok(); isOk {
			titles = append(titles, v)
			continue
		}
		if w, isWarn := item.Warn(); isWarn {
			if !trySend(ctx, out, warnItem(w)) {
				drain(inner)
				return nil, false
			}
			continue
		}
		e, _ := item.Err()
		trySend(ctx, out, errItem(e))
		return nil, false
	}
	return titles, true
}

// streamDeduped drains a uniqueStream to out, translating a terminal
// error into an Err item.
func streamDeduped(ctx context.Context, out chan<- Item, sp span.Span, u *uniqueStream) {
	for {
		t, ok, err := u.Next(ctx)
		if err != nil {
			trySend(ctx, out, errItem(classifyProviderError(sp, err)))
			return
		}
		if !ok {
			return
		}
		if !trySend(ctx, out, okItem(t)) {
			return
		}
	}
}

func producePage(ctx context.Context, node *ast.Node, p provider.Provider) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		for _, raw := range node.Expr.Page.Titles {
			t, err := p.NormaliseTitle(ctx, raw)
			if err != nil {
				if isNotFoundErr(err) {
					if !trySend(ctx, out, warnItem(Warning{Kind: TitleNotFound, Span: node.Span, Title: t})) {
						return
					}
					continue
				}
				trySend(ctx, out, errItem(classifyProviderError(node.Span, err)))
				return
			}
			if !trySend(ctx, out, okItem(t)) {
				return
			}
		}
	}()
	return out
}

func produceUnary(ctx context.Context, node *ast.Node, eff EffectiveModifier, inner <-chan Item, p provider.Provider) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		titles, ok := drainInner(ctx, inner, out)
		if !ok {
			return
		}
		if len(titles) == 0 {
			return
		}
		var fetchOne func(context.Context, title.Title) provider.TitleStream
		switch node.Expr.Unary.Kind {
		case ast.LinkTo:
			fetchOne = func(ctx context.Context, t title.Title) provider.TitleStream {
				return p.GetLinksOf(ctx, []title.Title{t})
			}
		case ast.BackLink:
			fetchOne = func(ctx context.Context, t title.Title) provider.TitleStream {
				return p.GetBacklinksOf(ctx, []title.Title{t}, eff.TraceRedirects)
			}
		case ast.EmbeddedIn:
			fetchOne = func(ctx context.Context, t title.Title) provider.TitleStream {
				return p.GetEmbeddingsOf(ctx, []title.Title{t})
			}
		case ast.Prefix:
			fetchOne = func(ctx context.Context, t title.Title) provider.TitleStream {
				return p.GetPrefixMatchesOf(ctx, t)
			}
		default:
			return
		}
		combined := &concatTitleStream{titles: titles, fetchOne: fetchOne}
		streamDeduped(ctx, out, node.Span, newUnique(combined))
	}()
	return out
}

func isNotFoundErr(err error) bool {
	pe, ok := err.(*provider.Error)
	return ok && pe.Kind == provider.NotFound
}
