// Package intern assigns small sequential integers to first-seen opaque
// identifiers. A table is scoped to one pass and never persisted across
// passes, so the integers stay stable between document revisions as long
// as the relative first-seen order is stable.
package intern

import (
	plcerrors "github.com/luksan/plc-diff/errors"
)

// MaxIdentifierLen bounds identifier text, sized for the GUID form
// "8bff0fc0-0ad4-40a4-a4c7-c6a5c1df96b7".
const MaxIdentifierLen = 36

// Table maps identifiers to sequential integers in insertion order.
// The zero value is not usable; call NewTable.
type Table struct {
	ids  map[string]uint32
	next uint32
}

// NewTable returns an empty interner table.
func NewTable() *Table {
	return &Table{ids: make(map[string]uint32)}
}

// InternOrLookup returns the integer previously assigned to id, assigning
// the next sequential integer on first sight. Identifiers longer than
// MaxIdentifierLen are a fatal capacity error.
func (t *Table) InternOrLookup(id []byte) (uint32, error) {
	if len(id) > MaxIdentifierLen {
		return 0, plcerrors.NewCapacity(id, MaxIdentifierLen)
	}
	if n, ok := t.ids[string(id)]; ok {
		return n, nil
	}
	t.next++
	t.ids[string(id)] = t.next
	return t.next, nil
}

// Len reports the number of interned identifiers.
func (t *Table) Len() int {
	return len(t.ids)
}
