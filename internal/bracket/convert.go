package bracket

import (
	"errors"
	"fmt"
	"slices"

	"skc/internal/arena"
	"skc/internal/ast"
	"skc/internal/diag"
	"skc/internal/hashmap"
	"skc/internal/sk"
	"skc/internal/source"
	"skc/internal/symbols"
)

// ErrUnreachable is returned when the converter met a term it has no rule
// for. The tree it was working on is not trusted afterwards.
var ErrUnreachable = errors.New("bracket: unreachable converter state")

type Options struct {
	Reporter diag.Reporter
}

// unreachable is panicked inside the converter and recovered by Convert.
type unreachable struct {
	span source.Span
	what string
}

// Convert compiles every statement of prog, in order, and stores each
// result in the statement's compiled slot. The forest holds one root per
// statement.
//
// Names are resolved through table. A name whose statement is not compiled
// yet is reported as used before defined and kept as a placeholder leaf.
func Convert(st *sk.Store, prog ast.ProgramID, table *symbols.Table, opts Options) (forest *sk.Forest, err error) {
	tree := st.Tree()
	forest, err = st.NewForest(tree.Count(prog))
	if err != nil {
		return nil, err
	}
	done, err := hashmap.New[ast.StmtID](max(table.Len(), 1), hashmap.MinLoadFactor)
	if err != nil {
		return nil, fmt.Errorf("bracket: %w", err)
	}
	defer done.Free()

	c := converter{
		st:       st,
		tree:     tree,
		table:    table,
		done:     done,
		reporter: opts.Reporter,
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		u, ok := r.(unreachable)
		if !ok {
			panic(r)
		}
		c.report(diag.SevFatal, diag.ConvUnreachable, u.span, "unreachable state reached converting", u.what)
		forest, err = nil, ErrUnreachable
	}()

	for i, stmt := range tree.Stmts(prog) {
		s := tree.Stmt(stmt)
		root := c.compile(s.Expr)
		if err := st.Err(); err != nil {
			return nil, fmt.Errorf("bracket: %s: %w", tree.Name(s.Var), err)
		}
		tree.SetCompiled(stmt, arena.Ptr(root))
		done.Insert(tree.Name(s.Var), stmt)
		forest.Set(i, sk.Root{Stmt: stmt, Ident: s.Var, Node: root})
	}
	return forest, nil
}

type converter struct {
	st       *sk.Store
	tree     *ast.Tree
	table    *symbols.Table
	done     *hashmap.Map[ast.StmtID] // latest compiled statement per name
	reporter diag.Reporter
	pending  []string // variables of the enclosing abstractions
}

// compile turns an expression into a combinator term in which the
// variables of enclosing abstractions are still free leaves.
func (c *converter) compile(id ast.ExprID) sk.NodeID {
	switch e := c.tree.Expr(id).(type) {
	case ast.IdentRef:
		return c.ident(e)
	case ast.Application:
		left := c.compile(e.Left)
		right := c.compile(e.Right)
		return c.st.App(left, right)
	case ast.Abstraction:
		if c.tree.ChainLen(e.Params) != 1 {
			panic(unreachable{span: e.Span, what: "uncurried abstraction"})
		}
		name := c.tree.Name(e.Params)
		c.pending = append(c.pending, name)
		body := c.compile(e.Body)
		c.pending = c.pending[:len(c.pending)-1]
		return c.abstract(name, body, e.Span)
	}
	panic(unreachable{span: c.tree.ExprSpan(id), what: "expression"})
}

func (c *converter) ident(e ast.IdentRef) sk.NodeID {
	name := c.tree.Name(e.Var)
	if slices.Contains(c.pending, name) {
		return c.st.FreeLeaf(e.Var)
	}
	if stmt, ok := c.resolve(name); ok {
		return c.st.Ref(sk.NodeID(c.tree.Compiled(stmt)), stmt)
	}
	c.report(diag.SevError, diag.ConvUsedBeforeDefined, e.Span, "identifier used before being defined", name)
	return c.st.FreeLeaf(e.Var)
}

// resolve finds the compiled statement bound to name. A name rebound later
// in the file still resolves to the binding compiled last.
func (c *converter) resolve(name string) (ast.StmtID, bool) {
	if stmt, ok := c.table.Lookup(name); ok && !c.tree.Compiled(stmt).IsNil() {
		return stmt, true
	}
	return c.done.Get(name)
}

// abstract removes the free leaf name from term.
func (c *converter) abstract(name string, term sk.NodeID, sp source.Span) sk.NodeID {
	if c.st.Err() != nil {
		return sk.NoNodeID
	}
	if !c.st.ContainsFree(term, name) {
		return c.st.App(c.st.K(), term)
	}
	switch n := c.st.Node(term).(type) {
	case sk.FreeLeaf:
		return c.st.Identity()
	case sk.App:
		// eta: λx.E x is E when x is not free in E. This is what turns
		// λx y.x into K. Without it the result would be S (K K) (S K K),
		// which also reduces to K, never to K (S K K) = λx y.y.
		if leaf, ok := c.st.Node(n.Right).(sk.FreeLeaf); ok && c.tree.Name(leaf.Ident) == name &&
			!c.st.ContainsFree(n.Left, name) {
			return n.Left
		}
		left := c.abstract(name, n.Left, sp)
		right := c.abstract(name, n.Right, sp)
		return c.st.App(c.st.App(c.st.S(), left), right)
	}
	panic(unreachable{span: sp, what: c.st.KindOf(term).String()})
}

func (c *converter) report(sev diag.Severity, code diag.Code, sp source.Span, msg, subject string) {
	if c.reporter == nil {
		return
	}
	diag.NewReportBuilder(c.reporter, sev, code, sp, msg).WithSubject(subject).Emit()
}
