package solver

import (
	"github.com/wikitools/pagelistbot/internal/ast"
	"github.com/wikitools/pagelistbot/internal/numinf"
)

// EffectiveModifier is the fully-resolved modifier context in force for
// a sub-expression, after inheritance from the root and overrides from
// enclosing Modified wrappers (spec §3 "Effective modifier", §4.2
// "Effective modifier at root").
type EffectiveModifier struct {
	ResultLimit     numinf.NumberOrInf
	ResolveRedirects bool
	Namespace        map[int32]struct{} // nil means "all namespaces"
	RecursionDepth   numinf.NumberOrInf
	FilterRedirects  ast.FilterRedirects
	TraceRedirects   bool
}

// RootModifier seeds the effective context at the top of the tree
// (spec §4.2): result_limit = the caller's default limit L, every other
// field at its spec-documented default.
func RootModifier(defaultLimit numinf.NumberOrInf) EffectiveModifier {
	return EffectiveModifier{
		ResultLimit:      defaultLimit,
		ResolveRedirects: false,
		Namespace:        nil,
		RecursionDepth:   numinf.Finite(0),
		FilterRedirects:  ast.All,
		TraceRedirects:   true,
	}
}

// Apply folds an ast.Modifier's explicitly-set fields over eff,
// leaving fields the Modifier didn't mention untouched (inherited).
func (eff EffectiveModifier) Apply(m ast.Modifier) EffectiveModifier {
	out := eff
	if m.HasResultLimit {
		out.ResultLimit = m.ResultLimit
	}
	if m.HasResolveRedirects {
		out.ResolveRedirects = m.ResolveRedirects
	}
	if m.HasNamespace {
		out.Namespace = m.Namespace
	}
	if m.HasRecursionDepth {
		out.RecursionDepth = m.RecursionDepth
	}
	if m.HasFilterRedirects {
		out.FilterRedirects = m.FilterRedirects
	}
	if m.HasTraceRedirects {
		out.TraceRedirects = m.TraceRedirects
	}
	return out
}
