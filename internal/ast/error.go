package ast

import (
	"fmt"

	"github.com/wikitools/pagelistbot/internal/span"
)

// ErrorKind enumerates the parser's closed set of failure reasons.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnterminatedString
	UnknownIdentifier
	BadNumber
	TrailingInput
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnterminatedString:
		return "UnterminatedString"
	case UnknownIdentifier:
		return "UnknownIdentifier"
	case BadNumber:
		return "BadNumber"
	case TrailingInput:
		return "TrailingInput"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is returned synchronously by the parser; no partial parse
// is ever handed back alongside it.
type ParseError struct {
	Kind    ErrorKind
	Span    span.Span
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Span, e.Message)
}
