package scriptfile

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wikitools/pagelistbot/internal/numinf"
	"github.com/wikitools/pagelistbot/internal/provider"
	"github.com/wikitools/pagelistbot/internal/queryparse"
	"github.com/wikitools/pagelistbot/internal/solver"
	"github.com/wikitools/pagelistbot/internal/title"
)

// nameRef matches a "$name" reference to an earlier assignment inside a
// later assignment's query text.
var nameRef = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// NamedResult is one assignment's resolved output, in script order.
type NamedResult struct {
	Name     string
	Titles   []title.Title
	Warnings []solver.Warning
}

// Resolve runs every assignment in sf in order against p, substituting
// "$name" references with the page-literal form of an earlier
// assignment's already-resolved titles before parsing and solving each
// query. It stops at the first assignment whose query fails to parse or
// whose solve emits a fatal error.
func Resolve(ctx context.Context, sf *ScriptFile, p provider.Provider, defaultLimit numinf.NumberOrInf) ([]NamedResult, error) {
	byName := map[string][]title.Title{}
	results := make([]NamedResult, 0, len(sf.Assigns))

	for _, a := range sf.Assigns {
		text, err := substituteRefs(a.Query, byName)
		if err != nil {
			return results, fmt.Errorf("scriptfile: %s: %w", a.Name, err)
		}

		root, err := queryparse.Parse(text)
		if err != nil {
			return results, fmt.Errorf("scriptfile: %s: %w", a.Name, err)
		}

		res := NamedResult{Name: a.Name}
		stream := solver.Solve(ctx, root, p, solver.Options{DefaultLimit: defaultLimit})
		for item := range stream {
			if v, ok := item.Ok(); ok {
				res.Titles = append(res.Titles, v)
				continue
			}
			if w, ok := item.Warn(); ok {
				res.Warnings = append(res.Warnings, w)
				continue
			}
			e, _ := item.Err()
			return results, fmt.Errorf("scriptfile: %s: %s", a.Name, e.Error())
		}

		byName[a.Name] = res.Titles
		results = append(results, res)
	}
	return results, nil
}

// substituteRefs replaces every "$name" in text with a quoted,
// comma-separated page literal built from that name's resolved titles:
// a namespace-0 title is written as its base name, any other title as
// its Key().
// A reference to a name not yet assigned (forward or unknown reference)
// is an error.
func substituteRefs(text string, byName map[string][]title.Title) (string, error) {
	var outerErr error
	substituted := nameRef.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1:]
		titles, ok := byName[name]
		if !ok {
			outerErr = fmt.Errorf("reference to undefined or forward name %q", name)
			return match
		}
		if len(titles) == 0 {
			return `""`
		}
		var b strings.Builder
		for i, t := range titles {
			if i > 0 {
				b.WriteByte(',')
			}
			raw := t.Key()
			if t.Namespace() == 0 {
				raw = t.Base()
			}
			b.WriteByte('"')
			b.WriteString(raw)
			b.WriteByte('"')
		}
		return b.String()
	})
	if outerErr != nil {
		return "", outerErr
	}
	return substituted, nil
}
