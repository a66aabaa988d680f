// Package ast defines the query language's abstract syntax tree: a
// closed, tagged variant of expressions, each wrapped in a Node that
// carries the byte span it was parsed from.
package ast

import (
	"fmt"

	"github.com/wikitools/pagelistbot/internal/numinf"
	"github.com/wikitools/pagelistbot/internal/span"
)

// UnaryKind enumerates the unary transformation operators.
type UnaryKind int

const (
	LinkTo UnaryKind = iota
	BackLink
	EmbeddedIn
	InCategory
	Prefix
	Toggle
)

func (k UnaryKind) String() string {
	switch k {
	case LinkTo:
		return "linkto"
	case BackLink:
		return "backlink"
	case EmbeddedIn:
		return "embeddedin"
	case InCategory:
		return "incategory"
	case Prefix:
		return "prefix"
	case Toggle:
		return "toggle"
	default:
		return fmt.Sprintf("UnaryKind(%d)", int(k))
	}
}

// BinaryOp enumerates the binary set operators.
type BinaryOp int

const (
	Union BinaryOp = iota
	Intersection
	Difference
	XOr
)

func (op BinaryOp) String() string {
	switch op {
	case Union:
		return "|"
	case Intersection:
		return "&"
	case Difference:
		return "-"
	case XOr:
		return "^"
	default:
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
}

// FilterRedirects classifies pages by redirect status.
type FilterRedirects int

const (
	All FilterRedirects = iota
	NoRedirect
	OnlyRedirect
)

// Modifier is a record of recognized postfix-clause options. A field
// left at its zero value with the corresponding Has* flag false means
// "inherit from the enclosing context" (see EffectiveModifier in
// internal/solver).
type Modifier struct {
	ResultLimit         numinf.NumberOrInf
	HasResultLimit      bool
	ResolveRedirects     bool
	HasResolveRedirects  bool
	Namespace            map[int32]struct{}
	HasNamespace         bool
	RecursionDepth       numinf.NumberOrInf
	HasRecursionDepth    bool
	FilterRedirects      FilterRedirects
	HasFilterRedirects   bool
	TraceRedirects       bool
	HasTraceRedirects    bool
}

// Merge folds `next` into `m`, with `next`'s set fields overwriting the
// corresponding field in `m`: "the LAST one wins" (spec §3/§4.1).
func (m Modifier) Merge(next Modifier) Modifier {
	out := m
	if next.HasResultLimit {
		out.ResultLimit = next.ResultLimit
		out.HasResultLimit = true
	}
	if next.HasResolveRedirects {
		out.ResolveRedirects = next.ResolveRedirects
		out.HasResolveRedirects = true
	}
	if next.HasNamespace {
		out.Namespace = next.Namespace
		out.HasNamespace = true
	}
	if next.HasRecursionDepth {
		out.RecursionDepth = next.RecursionDepth
		out.HasRecursionDepth = true
	}
	if next.HasFilterRedirects {
		out.FilterRedirects = next.FilterRedirects
		out.HasFilterRedirects = true
	}
	if next.HasTraceRedirects {
		out.TraceRedirects = next.TraceRedirects
		out.HasTraceRedirects = true
	}
	return out
}

// Expr is the closed set of expression shapes. Exactly one non-nil
// field is set per Node; callers dispatch with Node.Kind / a type
// switch on the concrete field, never by adding new Expr shapes from
// outside this package.
type Expr struct {
	Page     *PageExpr
	Unary    *UnaryExpr
	Binary   *BinaryExpr
	Modified *ModifiedExpr
}

// PageExpr is a literal set of titles.
type PageExpr struct {
	Titles []string
}

// UnaryExpr is a single-argument transformation over Inner's output.
type UnaryExpr struct {
	Inner *Node
	Kind  UnaryKind
}

// BinaryExpr combines the output of Left and Right with Op.
type BinaryExpr struct {
	Left  *Node
	Right *Node
	Op    BinaryOp
}

// ModifiedExpr decorates Inner with a folded Modifier chain.
type ModifiedExpr struct {
	Inner    *Node
	Modifier Modifier
}

// Node pairs an Expr with the byte span of text it was parsed from.
type Node struct {
	Span span.Span
	Expr Expr
}

// Kind names which Expr variant is populated, for logging and error
// messages.
func (n *Node) Kind() string {
	switch {
	case n.Expr.Page != nil:
		return "page"
	case n.Expr.Unary != nil:
		return "unary:" + n.Expr.Unary.Kind.String()
	case n.Expr.Binary != nil:
		return "binary:" + n.Expr.Binary.Op.String()
	case n.Expr.Modified != nil:
		return "modified"
	default:
		return "invalid"
	}
}
