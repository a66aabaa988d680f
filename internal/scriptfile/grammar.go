// Package scriptfile parses a saved-query script: a sequence of named
// query assignments that a batch run can resolve in order, each later
// assignment allowed to reference an earlier one by name.
//
// Grammar (informally):
//
//	script   := assign*
//	assign   := Ident "=" query_text ";"
//
// query_text is handed verbatim to internal/queryparse, except that any
// "$name" token inside it is first substituted with the titles already
// resolved for that earlier name (see resolve.go).
package scriptfile

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// scriptLexer tokenizes assignment heads (Ident, '=', ';') in its
// default state, then switches to a state that captures everything up
// to the next ';' as one QueryText token — the query text itself is
// not this package's grammar to parse, internal/queryparse's is.
var scriptLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Equals", Pattern: `=`, Action: lexer.Push("Query")},
		{Name: "Semi", Pattern: `;`},
	},
	"Query": {
		// Stops short of ';' and immediately pops, so the ';' itself is
		// matched by Root's own Semi rule on the next token.
		{Name: "QueryText", Pattern: `[^;]+`, Action: lexer.Pop()},
	},
})

// ScriptFile is the parsed form of a whole script.
type ScriptFile struct {
	Assigns []*Assign `parser:"@@*"`
}

// Assign is one "name = query text;" statement.
type Assign struct {
	Name  string `parser:"@Ident Equals"`
	Query string `parser:"@QueryText ';'"`
}

var parser = participle.MustBuild[ScriptFile](
	participle.Lexer(scriptLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Parse parses a whole script's source text.
func Parse(data string) (*ScriptFile, error) {
	sf, err := parser.ParseString("script", data)
	if err != nil {
		return nil, fmt.Errorf("scriptfile: %w", err)
	}
	return sf, nil
}
