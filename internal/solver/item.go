// Package solver walks an internal/ast tree bottom-up, compiling one
// asynchronous title-producer per node and composing them into a
// single top-level item stream (spec §4.2).
package solver

import (
	"errors"
	"fmt"

	"github.com/wikitools/pagelistbot/internal/provider"
	"github.com/wikitools/pagelistbot/internal/span"
	"github.com/wikitools/pagelistbot/internal/title"
	"github.com/wikitools/pagelistbot/internal/trio"
)

// Item is the value every producer channel carries: a title, a
// warning, or a terminal error (spec §3 TrioResult).
type Item = trio.Result[title.Title, Warning, Error]

func okItem(t title.Title) Item { return trio.OkOf[title.Title, Warning, Error](t) }
func warnItem(w Warning) Item   { return trio.WarnOf[title.Title, Warning, Error](w) }
func errItem(e Error) Item      { return trio.ErrOf[title.Title, Warning, Error](e) }

// WarningKind is the closed set of non-fatal notices a producer may
// interleave with Ok items (spec §4.2 "Warnings").
type WarningKind int

const (
	LimitExceeded WarningKind = iota
	TimeoutApproaching
	TimeoutElapsed
	TitleNotFound
	RedirectResolutionFailed
	CategoryCycleDetected
)

func (k WarningKind) String() string {
	switch k {
	case LimitExceeded:
		return "LimitExceeded"
	case TimeoutApproaching:
		return "TimeoutApproaching"
	case TimeoutElapsed:
		return "TimeoutElapsed"
	case TitleNotFound:
		return "TitleNotFound"
	case RedirectResolutionFailed:
		return "RedirectResolutionFailed"
	case CategoryCycleDetected:
		return "CategoryCycleDetected"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a non-fatal notice. Only the fields relevant to Kind are
// populated.
type Warning struct {
	Kind  WarningKind
	Span  span.Span
	Limit int64 // LimitExceeded
	Title title.Title
}

func (w Warning) String() string {
	switch w.Kind {
	case LimitExceeded:
		return fmt.Sprintf("limit of %d exceeded at %s", w.Limit, w.Span)
	case TitleNotFound:
		return fmt.Sprintf("title not found: %s", w.Title)
	case RedirectResolutionFailed:
		return fmt.Sprintf("redirect resolution failed for %s", w.Title)
	case CategoryCycleDetected:
		return fmt.Sprintf("category cycle detected at %s", w.Title)
	default:
		return w.Kind.String()
	}
}

// ErrorKind is the closed set of ways a producer can fail fatally
// (spec §4.2 "Errors", §7).
type ErrorKind int

const (
	ProviderUnavailable ErrorKind = iota
	Unauthorized
	MalformedResponse
	InternalInvariantViolated
)

func (k ErrorKind) String() string {
	switch k {
	case ProviderUnavailable:
		return "ProviderUnavailable"
	case Unauthorized:
		return "Unauthorized"
	case MalformedResponse:
		return "MalformedResponse"
	case InternalInvariantViolated:
		return "InternalInvariantViolated"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a terminal error: it ends the sub-stream that produced it.
// A unary or binary parent that observes one in a child terminates with
// the same error rather than salvaging a sibling (spec §4.2 "Errors").
type Error struct {
	Kind    ErrorKind
	Span    span.Span
	Message string
}

func (e Error) Error() string { return fmt.Sprintf("%s at %s: %s", e.Kind, e.Span, e.Message) }

// classifyProviderError turns a raw Provider error into a solver Error,
// preserving the Kind distinction the Provider supplied (spec §7: "each
// producer is responsible for classifying Provider errors it
// receives"). A NotFound error is never expected here — callers handle
// it as a Warn at the call site instead, since it is per-title and
// non-fatal.
func classifyProviderError(sp span.Span, err error) Error {
	var pe *provider.Error
	if errors.As(err, &pe) {
		switch pe.Kind {
		case provider.Unauthorized:
			return Error{Kind: Unauthorized, Span: sp, Message: pe.Message}
		case provider.Malformed:
			return Error{Kind: MalformedResponse, Span: sp, Message: pe.Message}
		default:
			return Error{Kind: ProviderUnavailable, Span: sp, Message: pe.Message}
		}
	}
	return Error{Kind: ProviderUnavailable, Span: sp, Message: err.Error()}
}
