package solver

import (
	"context"

	"github.com/wikitools/pagelistbot/internal/provider"
)

// produceToggle implements Toggle: each input title is replaced by its
// talk/subject-namespace companion, or silently dropped if the title's
// namespace has no companion (spec §4.2 "Toggle"). Unlike the other
// unary transforms it never calls the Provider for a stream — the
// mapping is namespace-local and synchronous — so it is its own
// producer rather than going through produceUnary.
func produceToggle(ctx context.Context, inner <-chan Item, p provider.Provider) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		for item := range inner {
			if v, isOk := item.Ok(); isOk {
				companion, ok := p.CompanionNamespaceTitle(v)
				if !ok {
					continue
				}
				if !trySend(ctx, out, okItem(companion)) {
					drain(inner)
					return
				}
				continue
			}
			if !trySend(ctx, out, item) {
				drain(inner)
				return
			}
			if item.IsErr() {
				return
			}
		}
	}()
	return out
}
