package sema

import (
	"fmt"

	"skc/internal/ast"
	"skc/internal/diag"
	"skc/internal/source"
	"skc/internal/symbols"
)

// Options configure a scope check.
type Options struct {
	Reporter diag.Reporter
	Hints    symbols.Hints
}

// Result is what the checker leaves behind. Table is populated even when
// diagnostics were reported.
type Result struct {
	Table      *symbols.Table
	Undeclared int
	Rebound    int
	Shadowed   int
}

// OK reports whether every reference resolved. Rebinding and shadowing are
// reported but do not fail the check.
func (r Result) OK() bool { return r.Undeclared == 0 }

// Check walks every statement in order. A statement's name is inserted into
// the table before its body is checked, so a body may refer to its own name
// and to every earlier one but not to later ones.
func Check(tree *ast.Tree, prog ast.ProgramID, opts Options) (Result, error) {
	hints := opts.Hints
	if hints.Buckets == 0 {
		hints = symbols.DefaultHints
	}
	table, err := symbols.NewTable(hints)
	if err != nil {
		return Result{}, fmt.Errorf("sema: %w", err)
	}

	c := checker{
		tree:     tree,
		reporter: opts.Reporter,
		binders:  symbols.NewBinders(),
		res:      Result{Table: table},
	}
	for _, stmt := range tree.Stmts(prog) {
		c.stmt(stmt)
	}
	return c.res, nil
}

type checker struct {
	tree     *ast.Tree
	reporter diag.Reporter
	binders  *symbols.Binders
	res      Result
}

func (c *checker) stmt(id ast.StmtID) {
	st := c.tree.Stmt(id)
	name := c.tree.Name(st.Var)
	if c.res.Table.Insert(name, id) {
		c.res.Rebound++
		c.report(diag.SevWarning, diag.CheckRebinding, c.tree.Ident(st.Var).Span,
			"reassigning expression to const variable", name)
	}
	c.binders.Clear()
	c.expr(st.Expr)
	c.binders.Clear()
}

// expr reports every undeclared reference below id and returns whether all
// of them resolved.
func (c *checker) expr(id ast.ExprID) bool {
	switch e := c.tree.Expr(id).(type) {
	case ast.IdentRef:
		name := c.tree.Name(e.Var)
		if c.binders.Exists(name) || c.res.Table.Exists(name) {
			return true
		}
		c.res.Undeclared++
		c.report(diag.SevError, diag.CheckUndeclared, e.Span, "non declared identifier used", name)
		return false

	case ast.Abstraction:
		pushed := 0
		for p := range c.tree.Chain(e.Params) {
			ident := c.tree.Ident(p)
			name := c.tree.Name(p)
			if c.binders.Exists(name) {
				c.res.Shadowed++
				c.report(diag.SevWarning, diag.CheckShadowedBinder, ident.Span,
					"parameter shadows a bound variable", name)
			}
			c.binders.Push(name, ident.Token)
			pushed++
		}
		ok := c.expr(e.Body)
		for range pushed {
			c.binders.Pop()
		}
		return ok

	case ast.Application:
		boundary := c.tree.ExprKindOf(e.Left) == ast.ExprAbstraction
		if boundary {
			c.binders.PushBoundary()
		}
		left := c.expr(e.Left)
		if boundary {
			c.binders.Pop()
		}
		right := c.expr(e.Right)
		return left && right
	}
	panic(fmt.Sprintf("sema: unknown expression kind %v", c.tree.ExprKindOf(id)))
}

func (c *checker) report(sev diag.Severity, code diag.Code, sp source.Span, msg, subject string) {
	if c.reporter == nil {
		return
	}
	diag.NewReportBuilder(c.reporter, sev, code, sp, msg).WithSubject(subject).Emit()
}
