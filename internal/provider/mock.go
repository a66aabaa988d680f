package provider

import (
	"context"
	"fmt"

	"github.com/wikitools/pagelistbot/internal/title"
)

// Mock is an in-memory Provider backed by plain maps, used by the
// solver's tests and by cmd/pagelistbot's "run --mock" demo mode. It
// never paginates and never fails unless explicitly configured to via
// Fail*, mirroring the teacher's map-backed object.Environment: a small
// store callers populate directly before use.
type Mock struct {
	Links      map[string][]title.Title
	Backlinks  map[string][]title.Title
	Embeddings map[string][]title.Title
	Categories map[string][]CategoryMember
	Prefixes   map[string][]title.Title
	Redirects  map[string]title.Title // source key -> target
	Companions map[string]title.Title
	Existing   map[string]title.Title // normalised raw text -> Title

	// FailTitles causes NormaliseTitle to return a NotFound Error for
	// these raw input strings. No other method consults it.
	FailTitles map[string]bool

	// Fail causes GetLinksOf, GetBacklinksOf, GetEmbeddingsOf,
	// GetCategoryMembersOf, and GetPrefixMatchesOf to return the given
	// fatal Error instead of fixture data whenever any of their input
	// titles has a matching key, so tests can exercise Provider error
	// classification (spec §4.2/§7) without a live connection.
	Fail map[string]*Error
}

// NewMock builds an empty Mock ready for the caller to populate.
func NewMock() *Mock {
	return &Mock{
		Links:      map[string][]title.Title{},
		Backlinks:  map[string][]title.Title{},
		Embeddings: map[string][]title.Title{},
		Categories: map[string][]CategoryMember{},
		Prefixes:   map[string][]title.Title{},
		Redirects:  map[string]title.Title{},
		Companions: map[string]title.Title{},
		Existing:   map[string]title.Title{},
		FailTitles: map[string]bool{},
		Fail:       map[string]*Error{},
	}
}

// failFor returns the fatal error registered for any of titles, or nil.
func (m *Mock) failFor(titles []title.Title) *Error {
	for _, t := range titles {
		if err, ok := m.Fail[t.Key()]; ok {
			return err
		}
	}
	return nil
}

// failingTitleStream reports err on its first Next call.
type failingTitleStream struct{ err error }

func (s failingTitleStream) Next(ctx context.Context) (title.Title, bool, error) {
	return title.Title{}, false, s.err
}

// failingMemberStream is failingTitleStream's CategoryMemberStream analogue.
type failingMemberStream struct{ err error }

func (s failingMemberStream) Next(ctx context.Context) (CategoryMember, bool, error) {
	return CategoryMember{}, false, s.err
}

type sliceStream[T any] struct {
	items []T
	pos   int
}

func (s *sliceStream[T]) next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if s.pos >= len(s.items) {
		return zero, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item, true, nil
}

type titleSliceStream struct{ sliceStream[title.Title] }

func (s *titleSliceStream) Next(ctx context.Context) (title.Title, bool, error) {
	return s.next(ctx)
}

type memberSliceStream struct{ sliceStream[CategoryMember] }

func (s *memberSliceStream) Next(ctx context.Context) (CategoryMember, bool, error) {
	return s.next(ctx)
}

func (m *Mock) GetLinksOf(ctx context.Context, titles []title.Title) TitleStream {
	if err := m.failFor(titles); err != nil {
		return failingTitleStream{err}
	}
	var out []title.Title
	for _, t := range titles {
		out = append(out, m.Links[t.Key()]...)
	}
	return &titleSliceStream{sliceStream[title.Title]{items: out}}
}

func (m *Mock) GetBacklinksOf(ctx context.Context, titles []title.Title, traceRedirects bool) TitleStream {
	if err := m.failFor(titles); err != nil {
		return failingTitleStream{err}
	}
	var out []title.Title
	for _, t := range titles {
		out = append(out, m.Backlinks[t.Key()]...)
	}
	return &titleSliceStream{sliceStream[title.Title]{items: out}}
}

func (m *Mock) GetEmbeddingsOf(ctx context.Context, titles []title.Title) TitleStream {
	if err := m.failFor(titles); err != nil {
		return failingTitleStream{err}
	}
	var out []title.Title
	for _, t := range titles {
		out = append(out, m.Embeddings[t.Key()]...)
	}
	return &titleSliceStream{sliceStream[title.Title]{items: out}}
}

func (m *Mock) GetCategoryMembersOf(ctx context.Context, categories []title.Title) CategoryMemberStream {
	if err := m.failFor(categories); err != nil {
		return failingMemberStream{err}
	}
	var out []CategoryMember
	for _, t := range categories {
		out = append(out, m.Categories[t.Key()]...)
	}
	return &memberSliceStream{sliceStream[CategoryMember]{items: out}}
}

func (m *Mock) GetPrefixMatchesOf(ctx context.Context, prefix title.Title) TitleStream {
	if err := m.failFor([]title.Title{prefix}); err != nil {
		return failingTitleStream{err}
	}
	return &titleSliceStream{sliceStream[title.Title]{items: m.Prefixes[prefix.Key()]}}
}

func (m *Mock) ResolveRedirect(ctx context.Context, t title.Title) (title.Title, bool, error) {
	target, ok := m.Redirects[t.Key()]
	return target, ok, nil
}

func (m *Mock) ClassifyRedirect(ctx context.Context, t title.Title) (RedirectStatus, error) {
	if _, ok := m.Redirects[t.Key()]; ok {
		return IsRedirect, nil
	}
	return NotARedirect, nil
}

func (m *Mock) CompanionNamespaceTitle(t title.Title) (title.Title, bool) {
	companion, ok := m.Companions[t.Key()]
	return companion, ok
}

func (m *Mock) NormaliseTitle(ctx context.Context, raw string) (title.Title, error) {
	if m.FailTitles[raw] {
		return title.Title{}, &Error{Kind: NotFound, Message: fmt.Sprintf("title not found: %s", raw)}
	}
	if t, ok := m.Existing[raw]; ok {
		return t, nil
	}
	// Default normalisation for titles the test never registered
	// explicitly: treat the raw text as namespace 0.
	return title.New(0, raw), nil
}
