// Package provider defines the capability the solver calls to realise
// primitives and transformations against an unspecified data source
// (spec §4.3, §6). How a concrete Provider talks to MediaWiki — over
// RPC to the out-of-scope api_daemon, or any other transport — is
// deliberately not this package's concern; it only defines the
// contract and, for tests, an in-memory implementation of it.
package provider

import (
	"context"

	"github.com/wikitools/pagelistbot/internal/title"
)

// RedirectStatus classifies a title's redirect status.
type RedirectStatus int

const (
	NotARedirect RedirectStatus = iota
	IsRedirect
	UnknownRedirectStatus
)

// CategoryMember pairs a category member's title with whether it is
// itself a subcategory (spec §4.3: get_category_members_of).
type CategoryMember struct {
	Title    title.Title
	IsSubcat bool
}

// Error classifies a failure returned by a Provider call so solver
// producers can decide whether to degrade it to a Warn or propagate it
// as a fatal Err (spec §7).
type Error struct {
	Kind    ErrorKind
	Title   title.Title // zero value if not associated with one input title
	Message string
}

func (e *Error) Error() string { return e.Message }

// ErrorKind is the closed set of ways a Provider call can fail.
type ErrorKind int

const (
	Unavailable ErrorKind = iota
	Unauthorized
	Malformed
	NotFound // a single input title does not exist; always degrades to a Warn
)

// Provider is the capability the solver depends on. Every stream
// method is pull-driven: Next blocks until an item, an error, or
// context cancellation. No method is required to preserve relative
// order between distinct input titles (spec §4.3).
type Provider interface {
	// GetLinksOf streams the outgoing links of the given titles.
	GetLinksOf(ctx context.Context, titles []title.Title) TitleStream

	// GetBacklinksOf streams every page that links to the given
	// titles. traceRedirects controls whether redirects to an input
	// title are also traced for their own backlinks.
	GetBacklinksOf(ctx context.Context, titles []title.Title, traceRedirects bool) TitleStream

	// GetEmbeddingsOf streams every page that transcludes one of the
	// given titles.
	GetEmbeddingsOf(ctx context.Context, titles []title.Title) TitleStream

	// GetCategoryMembersOf streams the direct members of the given
	// category titles, each tagged with whether it is a subcategory.
	GetCategoryMembersOf(ctx context.Context, categories []title.Title) CategoryMemberStream

	// GetPrefixMatchesOf streams every page whose title starts with
	// prefix.
	GetPrefixMatchesOf(ctx context.Context, prefix title.Title) TitleStream

	// ResolveRedirect returns the redirect target of t, or ok=false if
	// t is not a redirect.
	ResolveRedirect(ctx context.Context, t title.Title) (target title.Title, ok bool, err error)

	// ClassifyRedirect reports t's redirect status.
	ClassifyRedirect(ctx context.Context, t title.Title) (RedirectStatus, error)

	// CompanionNamespaceTitle returns t's talk/subject companion, or
	// ok=false if it has none.
	CompanionNamespaceTitle(t title.Title) (companion title.Title, ok bool)

	// NormaliseTitle parses and normalises raw input text into a Title.
	NormaliseTitle(ctx context.Context, raw string) (title.Title, error)
}

// TitleStream is a pull-driven, lazily paginated sequence of titles.
type TitleStream interface {
	// Next returns the next title. ok is false once the stream is
	// exhausted; err is non-nil if the underlying fetch failed.
	Next(ctx context.Context) (t title.Title, ok bool, err error)
}

// CategoryMemberStream is TitleStream's analogue for category listings.
type CategoryMemberStream interface {
	Next(ctx context.Context) (m CategoryMember, ok bool, err error)
}
