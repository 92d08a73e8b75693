// Package parser builds the arena syntax tree of one source file.
//
//	program     := stmt* EOF
//	stmt        := ['let'] IDENT '=' expr ';'
//	expr        := abstraction | application
//	abstraction := ('λ' | '\') IDENT ([','] IDENT)* ('.' | '->') expr
//	application := operand+ [abstraction]
//	operand     := IDENT | '(' expr ')'
//
// Application is left associative. A trailing abstraction extends as far
// right as possible, so "f λx.x y" applies f to λx.(x y).
package parser

import (
	"slices"

	"skc/internal/ast"
	"skc/internal/diag"
	"skc/internal/lexer"
	"skc/internal/source"
	"skc/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit is reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program ast.ProgramID
	Stmts   int
	// Errors counts syntax errors, lexer errors excluded.
	Errors uint
	// Invalid is set when the lexer produced an invalid token.
	Invalid bool
}

// Failed reports whether the file did not parse cleanly.
func (r Result) Failed() bool {
	return r.Errors > 0 || r.Invalid || !r.Program.IsValid()
}

// Parser is the per-file parser state.
type Parser struct {
	lx       *lexer.Lexer
	tree     *ast.Tree
	file     *source.File
	opts     Options
	lastSpan source.Span // span of the last consumed token
	invalid  bool
}

// ParseFile parses every statement of file into tree and wraps them in a
// Program. Statements with syntax errors are skipped after resynchronising
// on the next ';'.
func ParseFile(file *source.File, lx *lexer.Lexer, tree *ast.Tree, opts Options) Result {
	p := Parser{
		lx:       lx,
		tree:     tree,
		file:     file,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}

	stmts := p.parseStmts()
	res := Result{Stmts: len(stmts), Errors: p.opts.CurrentErrors, Invalid: p.invalid}
	if tree.Err() != nil {
		return res
	}
	res.Program = tree.NewProgram(file.Path, stmts)
	return res
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) parseStmts() []ast.StmtID {
	var stmts []ast.StmtID
	for !p.at(token.EOF) {
		if p.opts.Enough() || p.tree.Err() != nil {
			break
		}
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncTop()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	if p.at(token.KwLet) {
		p.advance()
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier to bind")
	if !ok {
		return ast.NoStmtID, false
	}
	name := p.tree.NewIdent(p.newToken(nameTok), ast.NoIdentID)

	if _, ok = p.expect(token.Assign, diag.SynExpectAssign, "expected '=' after "+nameTok.Text); !ok {
		return ast.NoStmtID, false
	}
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression")
	if !ok {
		return ast.NoStmtID, false
	}
	stmt := p.tree.NewStmt(name, expr, start.Cover(semi.Span))
	return stmt, stmt.IsValid()
}

// newToken records tok in the tree with its row and columns.
func (p *Parser) newToken(tok token.Token) ast.TokenID {
	start := p.file.LineCol(tok.Span.Start)
	end := p.file.LineCol(tok.Span.End)
	return p.tree.NewToken(tok.Text, start.Line, start.Col, end.Col, tok.Span)
}
