package solver

import "context"

// trySend delivers item on out unless ctx is cancelled first, reporting
// whether the send happened. Every producer goroutine calls this at
// every point it would otherwise block on a channel send, which is
// this implementation's suspension/cancellation checkpoint (spec §5).
func trySend(ctx context.Context, out chan<- Item, item Item) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- item:
		return true
	}
}

// fuse wraps a raw producer channel with the "CutError" contract
// (ported from the original source's lib/solver/src/streams/cut.rs):
// once an Err item is forwarded, the stream ends immediately, even if
// the underlying producer goroutine would otherwise keep sending.
// Anything still in flight from the wrapped producer after that point
// is drained in the background so its goroutine can exit instead of
// blocking forever on a send nobody will read.
func fuse(in <-chan Item) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		for item := range in {
			out <- item
			if item.IsErr() {
				go func() {
					for range in {
					}
				}()
				return
			}
		}
	}()
	return out
}

// drain discards every remaining item on ch in the background. A
// binary-operator producer that stops reading one side before that
// side's channel closes must call this for the abandoned side: fuse's
// own forwarding send (above) has no select on ctx, so once nobody
// reads ch, the producer tree feeding it blocks forever rather than
// reaching a terminal state (spec §5).
func drain(ch <-chan Item) {
	go func() {
		for range ch {
		}
	}()
}
