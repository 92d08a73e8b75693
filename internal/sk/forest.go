package sk

import (
	"fmt"
	"iter"

	"skc/internal/arena"
	"skc/internal/ast"
)

// Root is one compiled statement: the statement, its bound identifier and
// the root of its combinator tree.
type Root struct {
	Stmt  ast.StmtID
	Ident ast.IdentID
	Node  NodeID
}

// Forest is the ordered array of roots, one entry per statement, stored in
// the arena.
type Forest struct {
	store   *Store
	entries arena.Ptr
	n       int
}

// NewForest allocates an empty forest with n slots.
func (st *Store) NewForest(n int) (*Forest, error) {
	f := &Forest{store: st, n: n}
	if n == 0 {
		return f, nil
	}
	p, err := st.tree.Arena().AllocArray(entrySize, uint64(n))
	if err != nil {
		return nil, fmt.Errorf("sk: forest: %w", err)
	}
	f.entries = p
	return f, nil
}

func (f *Forest) Store() *Store { return f.store }

func (f *Forest) Len() int { return f.n }

func (f *Forest) slot(i int) []byte {
	if i < 0 || i >= f.n {
		panic(fmt.Sprintf("sk: forest index %d out of range [0,%d)", i, f.n))
	}
	b := f.store.record(f.entries, uint64(f.n)*entrySize)
	return b[i*entrySize : (i+1)*entrySize]
}

func (f *Forest) Set(i int, r Root) {
	b := f.slot(i)
	arena.PutPtr(b, 0, arena.Ptr(r.Stmt))
	arena.PutPtr(b, 8, arena.Ptr(r.Ident))
	arena.PutPtr(b, 16, arena.Ptr(r.Node))
}

func (f *Forest) Root(i int) Root {
	b := f.slot(i)
	return Root{
		Stmt:  ast.StmtID(arena.ReadPtr(b, 0)),
		Ident: ast.IdentID(arena.ReadPtr(b, 8)),
		Node:  NodeID(arena.ReadPtr(b, 16)),
	}
}

// All yields the roots in statement order.
func (f *Forest) All() iter.Seq2[int, Root] {
	return func(yield func(int, Root) bool) {
		for i := range f.n {
			if !yield(i, f.Root(i)) {
				return
			}
		}
	}
}
