package solver

import (
	"context"
	"sync"

	"github.com/wikitools/pagelistbot/internal/title"
	"golang.org/x/sync/errgroup"
)

// produceUnion streams the left and right operands concurrently,
// deduping by title key as each side's items arrive — neither side
// waits on the other, since membership needs no information the other
// side owns (spec §4.2 "Union"). Modelled on the concurrent fan-out the
// teacher's worker pool uses for independent branches, adapted here to
// two producer channels sharing one dedup set under a mutex instead of
// a fixed-size job queue.
func produceUnion(ctx context.Context, left, right <-chan Item) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		var mu sync.Mutex
		seen := map[string]struct{}{}
		emit := func(item Item) bool {
			if v, ok := item.Ok(); ok {
				mu.Lock()
				_, dup := seen[v.Key()]
				if !dup {
					seen[v.Key()] = struct{}{}
				}
				mu.Unlock()
				if dup {
					return true
				}
			}
			ok := trySend(ctx, out, item)
			if !ok || item.IsErr() {
				cancel()
			}
			return ok
		}

		g, _ := errgroup.WithContext(ctx)
		g.Go(func() error {
			for item := range left {
				if !emit(item) {
					drain(left)
					break
				}
			}
			return nil
		})
		g.Go(func() error {
			for item := range right {
				if !emit(item) {
					drain(right)
					break
				}
			}
			return nil
		})
		_ = g.Wait()
	}()
	return out
}

// materialize fully drains ch, forwarding Warn items to out immediately
// and collecting Ok items both as an order-preserving slice and a
// lookup set. If ch yields an Err it is forwarded and ok is false. On
// either failure path ch itself is drained before returning, so its
// producer tree never blocks on a send nobody is reading (spec §5) —
// callers only need to worry about draining the *other* side.
func materialize(ctx context.Context, ch <-chan Item, out chan<- Item) (order []title.Title, set map[string]struct{}, ok bool) {
	set = map[string]struct{}{}
	for item := range ch {
		if v, isOk := item.Ok(); isOk {
			order = append(order, v)
			set[v.Key()] = struct{}{}
			continue
		}
		if w, isWarn := item.Warn(); isWarn {
			if !trySend(ctx, out, warnItem(w)) {
				drain(ch)
				return nil, nil, false
			}
			continue
		}
		e, _ := item.Err()
		trySend(ctx, out, errItem(e))
		drain(ch)
		return nil, nil, false
	}
	return order, set, true
}

// produceIntersection requires the right operand fully known before the
// left can be filtered, so it materializes right first (spec §4.2
// "Intersection/Difference require full right-side consumption" —
// decided for NumberOrInf-unbounded right operands the same way the
// original source drains its inner HashSet before filtering).
func produceIntersection(ctx context.Context, left, right <-chan Item) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		_, rightSet, ok := materialize(ctx, right, out)
		if !ok {
			drain(left)
			return
		}
		seen := map[string]struct{}{}
		for item := range left {
			if v, isOk := item.Ok(); isOk {
				if _, in := rightSet[v.Key()]; !in {
					continue
				}
				if _, dup := seen[v.Key()]; dup {
					continue
				}
				seen[v.Key()] = struct{}{}
				if !trySend(ctx, out, okItem(v)) {
					drain(left)
					return
				}
				continue
			}
			if w, isWarn := item.Warn(); isWarn {
				if !trySend(ctx, out, warnItem(w)) {
					drain(left)
					return
				}
				continue
			}
			e, _ := item.Err()
			trySend(ctx, out, errItem(e))
			drain(left)
			return
		}
	}()
	return out
}

func produceDifference(ctx context.Context, left, right <-chan Item) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		_, rightSet, ok := materialize(ctx, right, out)
		if !ok {
			drain(left)
			return
		}
		seen := map[string]struct{}{}
		for item := range left {
			if v, isOk := item.Ok(); isOk {
				if _, in := rightSet[v.Key()]; in {
					continue
				}
				if _, dup := seen[v.Key()]; dup {
					continue
				}
				seen[v.Key()] = struct{}{}
				if !trySend(ctx, out, okItem(v)) {
					drain(left)
					return
				}
				continue
			}
			if w, isWarn := item.Warn(); isWarn {
				if !trySend(ctx, out, warnItem(w)) {
					drain(left)
					return
				}
				continue
			}
			e, _ := item.Err()
			trySend(ctx, out, errItem(e))
			drain(left)
			return
		}
	}()
	return out
}

// produceXOr emits titles present on exactly one side. Both operands
// must be fully known to decide membership, so it materializes left
// then right, then emits each side's exclusive titles in that order.
func produceXOr(ctx context.Context, left, right <-chan Item) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		leftOrder, leftSet, ok := materialize(ctx, left, out)
		if !ok {
			drain(right)
			return
		}
		rightOrder, rightSet, ok := materialize(ctx, right, out)
		if !ok {
			return
		}
		for _, t := range leftOrder {
			if _, in := rightSet[t.Key()]; in {
				continue
			}
			if !trySend(ctx, out, okItem(t)) {
				return
			}
		}
		for _, t := range rightOrder {
			if _, in := leftSet[t.Key()]; in {
				continue
			}
			if !trySend(ctx, out, okItem(t)) {
				return
			}
		}
	}()
	return out
}
