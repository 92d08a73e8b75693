// Package emit stores a compiled forest as a binary artifact and reads it
// back.
//
// Layout of an artifact file:
//
//	magic      [4]byte  "SKB\x01"
//	codec      uint8    none, lz4 or zstd
//	rawSize    uint32   LE, size of the msgpack payload
//	packedSize uint32   LE, 0 when the payload is stored uncompressed
//	payload
//
// The payload is a msgpack encoded Artifact. Nodes are stored once each,
// children before parents, so a Ref keeps pointing at the very node of the
// statement it names.
package emit

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"skc/internal/ast"
	"skc/internal/sk"
)

const schemaVersion uint16 = 1

// NodeKind mirrors sk.Kind in the artifact.
type NodeKind uint8

const (
	NodeS NodeKind = iota + 1
	NodeK
	NodeApp
	NodeRef
	NodeFree
)

// Node is one flattened combinator node. For NodeApp, A and B index the
// children. For NodeRef, A indexes the target node and B the root it
// belongs to. For NodeFree, Name is the placeholder identifier.
type Node struct {
	Kind NodeKind `msgpack:"k"`
	A    int32    `msgpack:"a,omitempty"`
	B    int32    `msgpack:"b,omitempty"`
	Name string   `msgpack:"n,omitempty"`
}

type Root struct {
	Name string `msgpack:"name"`
	Node int32  `msgpack:"node"`
}

type Artifact struct {
	Schema uint16 `msgpack:"schema"`
	Source string `msgpack:"source"`
	Nodes  []Node `msgpack:"nodes"`
	Roots  []Root `msgpack:"roots"`
}

var (
	ErrBadMagic  = errors.New("emit: not an skc artifact")
	ErrSchema    = errors.New("emit: unsupported artifact schema")
	ErrCorrupt   = errors.New("emit: corrupt artifact")
	ErrDangling  = errors.New("emit: reference to a statement outside the forest")
	ErrBadCodec  = errors.New("emit: unknown codec")
	ErrTruncated = errors.New("emit: truncated artifact")
)

// Build flattens forest. Nodes shared between roots, the S and K
// singletons included, are emitted once.
func Build(forest *sk.Forest, sourceName string) (*Artifact, error) {
	b := builder{
		store: forest.Store(),
		index: make(map[sk.NodeID]int32),
		roots: make(map[ast.StmtID]int32),
		art:   &Artifact{Schema: schemaVersion, Source: sourceName},
	}
	for i, r := range forest.All() {
		idx, err := b.node(r.Node)
		if err != nil {
			return nil, err
		}
		ri, err := safecast.Conv[int32](i)
		if err != nil {
			return nil, fmt.Errorf("emit: root index: %w", err)
		}
		b.roots[r.Stmt] = ri
		b.art.Roots = append(b.art.Roots, Root{Name: b.store.Tree().Name(r.Ident), Node: idx})
	}
	return b.art, nil
}

type builder struct {
	store *sk.Store
	index map[sk.NodeID]int32
	roots map[ast.StmtID]int32
	art   *Artifact
}

func (b *builder) node(id sk.NodeID) (int32, error) {
	if idx, ok := b.index[id]; ok {
		return idx, nil
	}
	var n Node
	switch v := b.store.Node(id).(type) {
	case sk.S:
		n.Kind = NodeS
	case sk.K:
		n.Kind = NodeK
	case sk.App:
		left, err := b.node(v.Left)
		if err != nil {
			return 0, err
		}
		right, err := b.node(v.Right)
		if err != nil {
			return 0, err
		}
		n = Node{Kind: NodeApp, A: left, B: right}
	case sk.Ref:
		target, ok := b.index[v.Target]
		root, known := b.roots[v.Stmt]
		if !ok || !known {
			return 0, fmt.Errorf("%w: %s", ErrDangling, b.store.Tree().StmtName(v.Stmt))
		}
		n = Node{Kind: NodeRef, A: target, B: root}
	case sk.FreeLeaf:
		n = Node{Kind: NodeFree, Name: b.store.Tree().Name(v.Ident)}
	default:
		return 0, fmt.Errorf("%w: node kind %v", ErrCorrupt, b.store.KindOf(id))
	}
	idx, err := safecast.Conv[int32](len(b.art.Nodes))
	if err != nil {
		return 0, fmt.Errorf("emit: node index: %w", err)
	}
	b.art.Nodes = append(b.art.Nodes, n)
	b.index[id] = idx
	return idx, nil
}

// Validate checks that every index points backwards into the node table
// and that every reference names an earlier root.
func (a *Artifact) Validate() error {
	if a.Schema != schemaVersion {
		return fmt.Errorf("%w: %d", ErrSchema, a.Schema)
	}
	for i, n := range a.Nodes {
		at := int32(i) // #nosec G115 -- bounded by the decoder
		switch n.Kind {
		case NodeS, NodeK, NodeFree:
		case NodeApp:
			if n.A < 0 || n.A >= at || n.B < 0 || n.B >= at {
				return fmt.Errorf("%w: node %d", ErrCorrupt, i)
			}
		case NodeRef:
			if n.A < 0 || n.A >= at || n.B < 0 || int(n.B) >= len(a.Roots) || a.Roots[n.B].Node != n.A {
				return fmt.Errorf("%w: reference at node %d", ErrCorrupt, i)
			}
		default:
			return fmt.Errorf("%w: node %d has kind %d", ErrCorrupt, i, n.Kind)
		}
	}
	for i, r := range a.Roots {
		if r.Node < 0 || int(r.Node) >= len(a.Nodes) {
			return fmt.Errorf("%w: root %d", ErrCorrupt, i)
		}
	}
	return nil
}

// Format renders root i the way sk.Store.Format does.
func (a *Artifact) Format(i int) string {
	var sb strings.Builder
	a.format(&sb, a.Roots[i].Node, false)
	return sb.String()
}

func (a *Artifact) format(sb *strings.Builder, idx int32, paren bool) {
	n := a.Nodes[idx]
	switch n.Kind {
	case NodeS:
		sb.WriteString("S")
	case NodeK:
		sb.WriteString("K")
	case NodeRef:
		sb.WriteString(a.Roots[n.B].Name)
	case NodeFree:
		sb.WriteString(n.Name)
	case NodeApp:
		if paren {
			sb.WriteByte('(')
		}
		a.format(sb, n.A, false)
		sb.WriteByte(' ')
		a.format(sb, n.B, true)
		if paren {
			sb.WriteByte(')')
		}
	default:
		sb.WriteString("?")
	}
}
