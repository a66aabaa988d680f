// Package title implements Title, the opaque normalised page
// identifier the solver and Provider exchange: a namespace id plus a
// base name, comparable and orderable by their canonical form.
package title

import (
	"strconv"
	"strings"
)

// Title is a normalised MediaWiki page name: a namespace id (0 =
// main/article, 1 = Talk:, ...) plus the base name within that
// namespace. Two Titles are equal iff their canonical forms match.
type Title struct {
	ns   int32
	base string
}

// New builds a Title from an already-normalised namespace and base
// name. Providers are responsible for normalisation (case folding,
// underscores-vs-spaces, stripping a redundant namespace prefix); this
// package only stores the result.
func New(ns int32, base string) Title {
	return Title{ns: ns, base: base}
}

// Namespace returns the namespace id.
func (t Title) Namespace() int32 { return t.ns }

// Base returns the base name within the namespace.
func (t Title) Base() string { return t.base }

// Key is the canonical string form used for equality and as a map key
// in dedup sets throughout internal/solver.
func (t Title) Key() string {
	var b strings.Builder
	b.Grow(len(t.base) + 8)
	b.WriteString(strconv.FormatInt(int64(t.ns), 10))
	b.WriteByte(':')
	b.WriteString(t.base)
	return b.String()
}

func (t Title) String() string { return t.Key() }

// Less gives a total order over titles, first by namespace id
// (numerically) then by base name. This is not the lexicographic order
// of Key() strings: namespace 10 sorts after namespace 2 here.
func (t Title) Less(other Title) bool {
	if t.ns != other.ns {
		return t.ns < other.ns
	}
	return t.base < other.base
}
