package parser

import (
	"skc/internal/diag"
	"skc/internal/source"
	"skc/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind == token.Invalid {
		p.invalid = true
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan points at the next token, or just past the last consumed
// one when the input ended.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports code. Invalid tokens were
// already reported by the lexer and are not reported twice.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	peek := p.lx.Peek()
	if peek.Kind == token.Invalid {
		p.invalid = true
		return token.Token{Kind: token.Invalid, Span: peek.Span, Text: peek.Text}, false
	}
	sp := p.diagnosticSpan()
	p.report(code, sp, msg+", found "+describe(peek))
	return token.Token{Kind: token.Invalid, Span: sp, Text: peek.Text}, false
}

func describe(tok token.Token) string {
	if tok.Kind == token.Ident {
		return "identifier " + tok.Text
	}
	return tok.Kind.Describe()
}

func (p *Parser) err(code diag.Code, msg string, notes ...diag.Note) {
	peek := p.lx.Peek()
	if peek.Kind == token.Invalid {
		p.invalid = true
		return
	}
	p.report(code, p.diagnosticSpan(), msg+", found "+describe(peek), notes...)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string, notes ...diag.Note) {
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil || p.opts.MaxErrors > 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
		return
	}
	b := diag.ReportError(p.opts.Reporter, code, sp, msg)
	for _, n := range notes {
		b.WithNote(n.Span, n.Msg)
	}
	b.Emit()
}

// resyncUntil skips tokens until one of kinds or EOF is next.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(kinds...) {
		p.advance()
	}
}
