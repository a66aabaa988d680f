package solver

import (
	"context"

	"github.com/wikitools/pagelistbot/internal/provider"
	"github.com/wikitools/pagelistbot/internal/title"
)

// uniqueStream drops titles already seen earlier in this producer's
// lifetime. Dedup sets are owned exclusively by the producer that
// maintains them (spec §4.2 "Deduplication": "every transformation
// producer maintains a set of emitted normalised titles") — no sharing
// across sibling producers. Ported from the original source's `Unique`
// stream (lib/solver/src/streams/unique.rs).
type uniqueStream struct {
	inner provider.TitleStream
	seen  map[string]struct{}
}

func newUnique(inner provider.TitleStream) *uniqueStream {
	return &uniqueStream{inner: inner, seen: map[string]struct{}{}}
}

func (u *uniqueStream) Next(ctx context.Context) (title.Title, bool, error) {
	for {
		t, ok, err := u.inner.Next(ctx)
		if err != nil || !ok {
			return title.Title{}, false, err
		}
		key := t.Key()
		if _, dup := u.seen[key]; dup {
			continue
		}
		u.seen[key] = struct{}{}
		return t, true, nil
	}
}
