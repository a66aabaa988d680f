package main

import (
	"fmt"

	"github.com/wikitools/pagelistbot/internal/provider"
	"github.com/wikitools/pagelistbot/internal/title"
)

// buildProvider constructs the Provider named by cfg.Provider. "mock"
// is the only one implemented in this repository (spec.md §1 puts the
// credentialed MediaWiki RPC client out of scope); it comes pre-loaded
// with a small illustrative wiki so `run --mock` and `script --mock`
// have something to evaluate against.
func buildProvider() (provider.Provider, error) {
	switch cfg.Provider {
	case "mock", "":
		return demoMock(), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q (only \"mock\" is built in)", cfg.Provider)
	}
}

// registerTitle records raw's normalised form in m.Existing and returns
// it, so both NormaliseTitle lookups and direct Key()-based fixture
// wiring refer to the same Title value.
func registerTitle(m *provider.Mock, raw string, ns int32, base string) title.Title {
	t := title.New(ns, base)
	m.Existing[raw] = t
	return t
}

// demoMock builds a *provider.Mock describing a tiny wiki: a Main Page
// linking to two articles and a talk page, one article redirecting to
// another, and a category with both articles as members — enough to
// exercise every primitive once.
func demoMock() *provider.Mock {
	m := provider.NewMock()

	mainPage := registerTitle(m, "Main Page", 0, "Main Page")
	articleA := registerTitle(m, "Article A", 0, "Article A")
	articleB := registerTitle(m, "Article B", 0, "Article B")
	oldName := registerTitle(m, "Old Name", 0, "Old Name")
	talkA := registerTitle(m, "Talk:Article A", 1, "Article A")
	category := registerTitle(m, "Category:Demo", 14, "Demo")
	prefixArticle := registerTitle(m, "Article", 0, "Article")

	m.Links[mainPage.Key()] = []title.Title{articleA, talkA, articleB}
	m.Backlinks[articleA.Key()] = []title.Title{mainPage}
	m.Backlinks[articleB.Key()] = []title.Title{mainPage}
	m.Embeddings[articleA.Key()] = []title.Title{articleB}
	m.Prefixes[prefixArticle.Key()] = []title.Title{articleA, articleB}
	m.Categories[category.Key()] = []provider.CategoryMember{
		{Title: articleA, IsSubcat: false},
		{Title: articleB, IsSubcat: false},
	}
	m.Redirects[oldName.Key()] = articleA
	m.Companions[articleA.Key()] = talkA
	m.Companions[talkA.Key()] = articleA

	return m
}
