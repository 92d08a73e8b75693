package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"skc/internal/ast"
	"skc/internal/sk"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// renderTree writes node's children below a header line, drawing the
// branches with box characters. The last child of every level gets "└──".
func renderTree(w io.Writer, node *treeNode) {
	fmt.Fprintln(w, node.label)
	for i, child := range node.children {
		renderBranch(w, child, "", i == len(node.children)-1)
	}
}

func renderBranch(w io.Writer, node *treeNode, prefix string, last bool) {
	connector, indent := "├── ", "│   "
	if last {
		connector, indent = "└── ", "    "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, connector, node.label)
	for i, child := range node.children {
		renderBranch(w, child, prefix+indent, i == len(node.children)-1)
	}
}

type palette struct {
	app, lambda, name, comb, ref *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		app:    color.New(color.FgYellow),
		lambda: color.New(color.FgCyan, color.Bold),
		name:   color.New(color.FgGreen, color.Bold),
		comb:   color.New(color.FgMagenta),
		ref:    color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.app, p.lambda, p.name, p.comb, p.ref} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// FormatAST prints every statement as its name followed by the expression
// tree: "@" for an application, "λx,y" for an abstraction and the lexeme
// for an identifier.
func FormatAST(w io.Writer, tree *ast.Tree, prog ast.ProgramID, opts TreeOpts) {
	pal := newPalette(opts.Color)
	for _, stmt := range tree.Stmts(prog) {
		st := tree.Stmt(stmt)
		root := &treeNode{
			label:    pal.name.Sprint(tree.Name(st.Var)),
			children: []*treeNode{exprNode(tree, st.Expr, pal)},
		}
		renderTree(w, root)
	}
}

func exprNode(tree *ast.Tree, id ast.ExprID, pal palette) *treeNode {
	switch e := tree.Expr(id).(type) {
	case ast.Application:
		return &treeNode{
			label:    pal.app.Sprint("@"),
			children: []*treeNode{exprNode(tree, e.Left, pal), exprNode(tree, e.Right, pal)},
		}
	case ast.Abstraction:
		var names []string
		for p := range tree.Chain(e.Params) {
			names = append(names, tree.Name(p))
		}
		return &treeNode{
			label:    pal.lambda.Sprint("λ" + strings.Join(names, ",")),
			children: []*treeNode{exprNode(tree, e.Body, pal)},
		}
	case ast.IdentRef:
		return &treeNode{label: tree.Name(e.Var)}
	}
	return &treeNode{label: "?"}
}

// FormatForest prints one line per compiled statement: "name = term".
func FormatForest(w io.Writer, forest *sk.Forest, opts TreeOpts) {
	pal := newPalette(opts.Color)
	st := forest.Store()
	for _, r := range forest.All() {
		fmt.Fprintf(w, "%s = %s\n", pal.name.Sprint(st.Tree().Name(r.Ident)), st.Format(r.Node))
	}
}

// FormatForestTree prints every compiled statement as a tree. References
// print as "→name" and are not expanded.
func FormatForestTree(w io.Writer, forest *sk.Forest, opts TreeOpts) {
	pal := newPalette(opts.Color)
	st := forest.Store()
	for _, r := range forest.All() {
		root := &treeNode{
			label:    pal.name.Sprint(st.Tree().Name(r.Ident)),
			children: []*treeNode{skNode(st, r.Node, pal)},
		}
		renderTree(w, root)
	}
}

func skNode(st *sk.Store, id sk.NodeID, pal palette) *treeNode {
	switch n := st.Node(id).(type) {
	case sk.S:
		return &treeNode{label: pal.comb.Sprint("S")}
	case sk.K:
		return &treeNode{label: pal.comb.Sprint("K")}
	case sk.App:
		return &treeNode{
			label:    pal.app.Sprint("@"),
			children: []*treeNode{skNode(st, n.Left, pal), skNode(st, n.Right, pal)},
		}
	case sk.Ref:
		return &treeNode{label: pal.ref.Sprint("→" + st.Tree().StmtName(n.Stmt))}
	case sk.FreeLeaf:
		return &treeNode{label: "?" + st.Tree().Name(n.Ident)}
	}
	return &treeNode{label: "?"}
}
