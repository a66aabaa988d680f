// Package queryparse turns a query string into an internal/ast tree:
// a hand-written recursive-descent parser, one method per grammar
// production, over a hand-written byte scanner. See DESIGN.md for why
// this is hand-rolled rather than built on the teacher repo's
// participle dependency.
package queryparse

import (
	"strconv"
	"strings"

	"github.com/wikitools/pagelistbot/internal/ast"
	"github.com/wikitools/pagelistbot/internal/numinf"
	"github.com/wikitools/pagelistbot/internal/span"
)

// primitive functions recognized by parseAtom's IDENT "(" expr ")" form,
// case-insensitive (spec §4.1).
var primitiveUnary = map[string]ast.UnaryKind{
	"linkto": ast.LinkTo,
	"link":   ast.BackLink,
	"linked": ast.BackLink,
	"embed":  ast.EmbeddedIn,
	"incat":  ast.InCategory,
	"prefix": ast.Prefix,
	"toggle": ast.Toggle,
}

type parser struct {
	lex  *lexer
	look Token
	err  *ast.ParseError
}

// Parse turns a query string into its AST root. Parser failures are
// returned synchronously; no partial tree is ever handed back alongside
// an error (spec §4.1 "Errors").
func Parse(input string) (*ast.Node, error) {
	p := &parser{lex: newLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	if p.look.Kind != TokEOF {
		return nil, &ast.ParseError{
			Kind:    ast.TrailingInput,
			Span:    p.look.Span,
			Message: "trailing input after a complete query: " + p.look.Literal,
		}
	}
	return node, nil
}

func (p *parser) advance() error {
	tok, perr := p.lex.NextToken()
	if perr != nil {
		return perr
	}
	p.look = tok
	return nil
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	if p.look.Kind != kind {
		return Token{}, &ast.ParseError{
			Kind:    ast.UnexpectedToken,
			Span:    p.look.Span,
			Message: "expected " + kind.String() + ", found " + p.look.Kind.String(),
		}
	}
	tok := p.look
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// binaryLevel parses one left-associative precedence level: `next (op
// next)*`. This is the same head+trailing-pairs shape as the teacher's
// own participle grammar (Expr{Left,Rest []*OpTerm}), just driven by
// hand instead of by struct tags.
func (p *parser) binaryLevel(tok TokenKind, op ast.BinaryOp, next func() (*ast.Node, error)) (*ast.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.look.Kind == tok {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{
			Span: span.Cover(left.Span, right.Span),
			Expr: ast.Expr{Binary: &ast.BinaryExpr{Left: left, Right: right, Op: op}},
		}
	}
	return left, nil
}

func (p *parser) parseXor() (*ast.Node, error) {
	return p.binaryLevel(TokCaret, ast.XOr, p.parseDiff)
}

func (p *parser) parseDiff() (*ast.Node, error) {
	return p.binaryLevel(TokMinus, ast.Difference, p.parseUnion)
}

func (p *parser) parseUnion() (*ast.Node, error) {
	return p.binaryLevel(TokPipe, ast.Union, p.parseInter)
}

func (p *parser) parseInter() (*ast.Node, error) {
	return p.binaryLevel(TokAmp, ast.Intersection, p.parsePrimary)
}

// parsePrimary parses `modified := atom modifier*`, folding the
// modifier chain into a single Modifier record as it goes (later
// clauses overwrite earlier ones for the same field — spec §3/§4.1).
func (p *parser) parsePrimary() (*ast.Node, error) {
	node, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	folded := ast.Modifier{}
	any := false
	end := node.Span.End
	for p.look.Kind == TokDot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		clause, clauseEnd, err := p.parseModifierClause()
		if err != nil {
			return nil, err
		}
		folded = folded.Merge(clause)
		any = true
		end = clauseEnd
	}
	if !any {
		return node, nil
	}
	return &ast.Node{
		Span: span.New(node.Span.Begin, end),
		Expr: ast.Expr{Modified: &ast.ModifiedExpr{Inner: node, Modifier: folded}},
	}, nil
}

func (p *parser) parseModifierClause() (ast.Modifier, int, error) {
	nameTok, err := p.expect(TokIdent)
	if err != nil {
		return ast.Modifier{}, 0, err
	}
	name := strings.ToLower(nameTok.Literal)
	end := nameTok.Span.End

	hasParen := p.look.Kind == TokLParen
	var args []Token
	if hasParen {
		if err := p.advance(); err != nil {
			return ast.Modifier{}, 0, err
		}
		for p.look.Kind != TokRParen {
			args = append(args, p.look)
			if err := p.advance(); err != nil {
				return ast.Modifier{}, 0, err
			}
			if p.look.Kind == TokComma {
				if err := p.advance(); err != nil {
					return ast.Modifier{}, 0, err
				}
			}
		}
		closeTok, err := p.expect(TokRParen)
		if err != nil {
			return ast.Modifier{}, 0, err
		}
		end = closeTok.Span.End
	}

	m := ast.Modifier{}
	switch name {
	case "limit":
		if len(args) != 1 {
			return ast.Modifier{}, 0, clauseArgError(nameTok, "limit", 1, len(args))
		}
		n, err := parseNumberOrInf(args[0])
		if err != nil {
			return ast.Modifier{}, 0, err
		}
		m.ResultLimit, m.HasResultLimit = n, true
	case "resolve":
		m.ResolveRedirects, m.HasResolveRedirects = true, true
	case "ns":
		if len(args) == 0 {
			return ast.Modifier{}, 0, clauseArgError(nameTok, "ns", 1, 0)
		}
		set := make(map[int32]struct{}, len(args))
		for _, a := range args {
			n, err := strconv.ParseInt(a.Literal, 10, 32)
			if err != nil {
				return ast.Modifier{}, 0, &ast.ParseError{Kind: ast.BadNumber, Span: a.Span, Message: "invalid namespace id " + a.Literal}
			}
			set[int32(n)] = struct{}{}
		}
		m.Namespace, m.HasNamespace = set, true
	case "depth":
		if len(args) != 1 {
			return ast.Modifier{}, 0, clauseArgError(nameTok, "depth", 1, len(args))
		}
		n, err := parseNumberOrInf(args[0])
		if err != nil {
			return ast.Modifier{}, 0, err
		}
		m.RecursionDepth, m.HasRecursionDepth = n, true
	case "noredir":
		m.FilterRedirects, m.HasFilterRedirects = ast.NoRedirect, true
	case "onlyredir":
		m.FilterRedirects, m.HasFilterRedirects = ast.OnlyRedirect, true
	case "direct":
		m.TraceRedirects, m.HasTraceRedirects = false, true
	default:
		return ast.Modifier{}, 0, &ast.ParseError{
			Kind:    ast.UnknownIdentifier,
			Span:    nameTok.Span,
			Message: "unknown modifier ." + nameTok.Literal,
		}
	}
	return m, end, nil
}

func clauseArgError(tok Token, name string, want, got int) error {
	bound := "at least "
	if got > want {
		bound = "at most "
	}
	return &ast.ParseError{
		Kind:    ast.UnexpectedToken,
		Span:    tok.Span,
		Message: name + "() takes " + bound + strconv.Itoa(want) + " argument(s), found " + strconv.Itoa(got),
	}
}

func parseNumberOrInf(tok Token) (numinf.NumberOrInf, error) {
	n, err := numinf.Parse(tok.Literal)
	if err != nil {
		return numinf.NumberOrInf{}, &ast.ParseError{Kind: ast.BadNumber, Span: tok.Span, Message: err.Error()}
	}
	return n, nil
}

// parseAtom parses `string_set | IDENT "(" expr ")" | "(" expr ")"`.
func (p *parser) parseAtom() (*ast.Node, error) {
	switch p.look.Kind {
	case TokString:
		return p.parseStringSet()
	case TokIdent:
		return p.parseFuncCall()
	case TokLParen:
		return p.parseParen()
	default:
		return nil, &ast.ParseError{
			Kind:    ast.UnexpectedToken,
			Span:    p.look.Span,
			Message: "expected a page set, function call, or parenthesized expression, found " + p.look.Kind.String(),
		}
	}
}

func (p *parser) parseStringSet() (*ast.Node, error) {
	first, err := p.expect(TokString)
	if err != nil {
		return nil, err
	}
	titles := []string{first.Literal}
	end := first.Span.End
	for p.look.Kind == TokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		tok, err := p.expect(TokString)
		if err != nil {
			return nil, err
		}
		titles = append(titles, tok.Literal)
		end = tok.Span.End
	}
	return &ast.Node{
		Span: span.New(first.Span.Begin, end),
		Expr: ast.Expr{Page: &ast.PageExpr{Titles: titles}},
	}, nil
}

func (p *parser) parseParen() (*ast.Node, error) {
	open, err := p.expect(TokLParen)
	if err != nil {
		return nil, err
	}
	inner, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expect(TokRParen)
	if err != nil {
		return nil, err
	}
	return &ast.Node{Span: span.New(open.Span.Begin, closeTok.Span.End), Expr: inner.Expr}, nil
}

func (p *parser) parseFuncCall() (*ast.Node, error) {
	nameTok, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	name := strings.ToLower(nameTok.Literal)

	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	inner, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expect(TokRParen)
	if err != nil {
		return nil, err
	}
	outer := span.New(nameTok.Span.Begin, closeTok.Span.End)

	if name == "page" {
		return &ast.Node{Span: outer, Expr: inner.Expr}, nil
	}
	if kind, ok := primitiveUnary[name]; ok {
		return &ast.Node{Span: outer, Expr: ast.Expr{Unary: &ast.UnaryExpr{Inner: inner, Kind: kind}}}, nil
	}
	return nil, &ast.ParseError{
		Kind:    ast.UnknownIdentifier,
		Span:    nameTok.Span,
		Message: "unknown function " + nameTok.Literal,
	}
}
