package sk

import (
	"fmt"

	"skc/internal/arena"
	"skc/internal/ast"
)

// NodeID addresses a combinator node.
type NodeID arena.Ptr

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

type Kind uint32

const (
	KindInvalid Kind = iota
	KindS
	KindK
	KindApp
	KindRef
	KindFreeLeaf
)

func (k Kind) String() string {
	switch k {
	case KindS:
		return "S"
	case KindK:
		return "K"
	case KindApp:
		return "App"
	case KindRef:
		return "Ref"
	case KindFreeLeaf:
		return "FreeLeaf"
	}
	return "Invalid"
}

const (
	nodeSize  = 24
	nodeKind  = 0
	nodeA     = 8
	nodeB     = 16
	entrySize = 24
)

// Node is a decoded combinator node: S, K, App, Ref or FreeLeaf.
type Node interface {
	isNode()
}

type (
	S   struct{}
	K   struct{}
	App struct{ Left, Right NodeID }
	// Ref points at the compiled tree of Stmt.
	Ref struct {
		Target NodeID
		Stmt   ast.StmtID
	}
	FreeLeaf struct{ Ident ast.IdentID }
)

func (S) isNode()        {}
func (K) isNode()        {}
func (App) isNode()      {}
func (Ref) isNode()      {}
func (FreeLeaf) isNode() {}

// Store allocates combinator nodes in the arena of a syntax tree. S and K
// are allocated once per store and shared. Allocation errors are sticky.
type Store struct {
	tree *ast.Tree
	s, k NodeID
	err  error
}

func NewStore(tree *ast.Tree) *Store {
	return &Store{tree: tree}
}

// Tree returns the syntax tree the store resolves names against.
func (st *Store) Tree() *ast.Tree { return st.tree }

func (st *Store) Err() error { return st.err }

func (st *Store) newNode(kind Kind, a, b arena.Ptr) NodeID {
	if st.err != nil {
		return NoNodeID
	}
	p, err := st.tree.Arena().Alloc(nodeSize)
	if err != nil {
		st.err = fmt.Errorf("sk: %w", err)
		return NoNodeID
	}
	rec := st.record(p, nodeSize)
	arena.PutU32(rec, nodeKind, uint32(kind))
	arena.PutPtr(rec, nodeA, a)
	arena.PutPtr(rec, nodeB, b)
	return NodeID(p)
}

func (st *Store) record(p arena.Ptr, size uint64) []byte {
	b, err := st.tree.Arena().Bytes(p)
	if err != nil {
		panic(fmt.Errorf("sk: bad handle %s: %w", p, err))
	}
	if uint64(len(b)) < size {
		panic(fmt.Errorf("sk: handle %s addresses %d bytes, want %d", p, len(b), size))
	}
	return b
}

func (st *Store) S() NodeID {
	if !st.s.IsValid() {
		st.s = st.newNode(KindS, arena.Nil, arena.Nil)
	}
	return st.s
}

func (st *Store) K() NodeID {
	if !st.k.IsValid() {
		st.k = st.newNode(KindK, arena.Nil, arena.Nil)
	}
	return st.k
}

func (st *Store) App(left, right NodeID) NodeID {
	if st.err != nil {
		return NoNodeID
	}
	if !left.IsValid() || !right.IsValid() {
		panic("sk: application with a missing operand")
	}
	return st.newNode(KindApp, arena.Ptr(left), arena.Ptr(right))
}

// Ref links to the compiled tree of stmt.
func (st *Store) Ref(target NodeID, stmt ast.StmtID) NodeID {
	if st.err != nil {
		return NoNodeID
	}
	if !target.IsValid() || !stmt.IsValid() {
		panic("sk: reference without target")
	}
	return st.newNode(KindRef, arena.Ptr(target), arena.Ptr(stmt))
}

func (st *Store) FreeLeaf(id ast.IdentID) NodeID {
	if st.err != nil {
		return NoNodeID
	}
	if !id.IsValid() {
		panic("sk: free leaf without identifier")
	}
	return st.newNode(KindFreeLeaf, arena.Ptr(id), arena.Nil)
}

// Identity returns S K K.
func (st *Store) Identity() NodeID {
	return st.App(st.App(st.S(), st.K()), st.K())
}

// KindOf returns the stored discriminant.
func (st *Store) KindOf(id NodeID) Kind {
	return Kind(arena.ReadU32(st.record(arena.Ptr(id), nodeSize), nodeKind))
}

// Node decodes a node record; an unknown kind decodes to nil.
func (st *Store) Node(id NodeID) Node {
	rec := st.record(arena.Ptr(id), nodeSize)
	a, b := arena.ReadPtr(rec, nodeA), arena.ReadPtr(rec, nodeB)
	switch Kind(arena.ReadU32(rec, nodeKind)) {
	case KindS:
		return S{}
	case KindK:
		return K{}
	case KindApp:
		return App{Left: NodeID(a), Right: NodeID(b)}
	case KindRef:
		return Ref{Target: NodeID(a), Stmt: ast.StmtID(b)}
	case KindFreeLeaf:
		return FreeLeaf{Ident: ast.IdentID(a)}
	}
	return nil
}
