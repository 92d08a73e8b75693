package symbols

import (
	"fmt"

	"skc/internal/ast"
	"skc/internal/hashmap"
)

// Hints configure the bucket array of a Table.
type Hints struct {
	Buckets    int
	LoadFactor float64
}

// DefaultHints match the driver defaults.
var DefaultHints = Hints{Buckets: 1 << 5, LoadFactor: hashmap.MinLoadFactor}

// Table maps top-level names to the statement that binds them. Statements are
// arena-owned, so the map never releases its values.
type Table struct {
	defs *hashmap.Map[ast.StmtID]
}

// NewTable builds an empty table.
func NewTable(h Hints) (*Table, error) {
	m, err := hashmap.New[ast.StmtID](h.Buckets, h.LoadFactor)
	if err != nil {
		return nil, fmt.Errorf("symbols: %w", err)
	}
	return &Table{defs: m}, nil
}

// Insert binds name to stmt and reports whether the name was already bound.
// A rebinding replaces the earlier statement.
func (t *Table) Insert(name string, stmt ast.StmtID) bool {
	return t.defs.Insert(name, stmt)
}

func (t *Table) Lookup(name string) (ast.StmtID, bool) {
	return t.defs.Get(name)
}

func (t *Table) Exists(name string) bool {
	return t.defs.Exists(name)
}

func (t *Table) Len() int { return t.defs.Len() }

// Range calls fn for every binding in unspecified order.
func (t *Table) Range(fn func(name string, stmt ast.StmtID) bool) {
	t.defs.Range(fn)
}

// Free drops every binding.
func (t *Table) Free() { t.defs.Free() }
