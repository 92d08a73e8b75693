package parser

import (
	"skc/internal/ast"
	"skc/internal/diag"
	"skc/internal/token"
)

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	if p.at(token.Lambda) {
		return p.parseAbstraction()
	}
	return p.parseApplication()
}

func (p *Parser) atOperand() bool {
	return p.atOr(token.Ident, token.LParen)
}

func (p *Parser) parseApplication() (ast.ExprID, bool) {
	if !p.atOperand() {
		p.err(diag.SynExpectExpression, "expected expression")
		return ast.NoExprID, false
	}
	expr, ok := p.parseOperand()
	if !ok {
		return ast.NoExprID, false
	}
	for p.atOperand() {
		arg, ok := p.parseOperand()
		if !ok {
			return ast.NoExprID, false
		}
		expr = p.tree.NewApplication(expr, arg)
	}
	if p.at(token.Lambda) {
		arg, ok := p.parseAbstraction()
		if !ok {
			return ast.NoExprID, false
		}
		expr = p.tree.NewApplication(expr, arg)
	}
	return expr, expr.IsValid()
}

func (p *Parser) parseOperand() (ast.ExprID, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		id := p.tree.NewIdentRef(p.tree.NewIdent(p.newToken(tok), ast.NoIdentID))
		return id, id.IsValid()
	}

	open, ok := p.expect(token.LParen, diag.SynExpectExpression, "expected identifier or '('")
	if !ok {
		return ast.NoExprID, false
	}
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.RParen) {
		p.err(diag.SynUnclosedParen, "expected ')'", diag.Note{Span: open.Span, Msg: "parenthesis opened here"})
		return ast.NoExprID, false
	}
	p.advance()
	return inner, true
}

func (p *Parser) parseAbstraction() (ast.ExprID, bool) {
	lambda := p.advance()

	var params []token.Token
	for {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return ast.NoExprID, false
		}
		params = append(params, tok)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if !p.at(token.Ident) {
			break
		}
	}
	if !p.atOr(token.Dot, token.Arrow) {
		p.err(diag.SynExpectParamsClose, "expected '.' or '->' after parameters")
		return ast.NoExprID, false
	}
	p.advance()

	body, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// chain is built back to front so every identifier links to the next
	chain := ast.NoIdentID
	for i := len(params) - 1; i >= 0; i-- {
		chain = p.tree.NewIdent(p.newToken(params[i]), chain)
	}
	if !chain.IsValid() {
		return ast.NoExprID, false
	}
	sp := lambda.Span.Cover(p.tree.ExprSpan(body))
	id := p.tree.NewAbstraction(sp, chain, body)
	return id, id.IsValid()
}
