// Package nametrack maintains the hierarchical name context of a PLC
// document during the collection pass: a depth-indexed stack of
// human-readable names used to label substructures with their containment
// path, plus the address-to-symbol table and per-control-node display
// labels consumed by the transform pass.
package nametrack

import (
	"strings"

	plcerrors "github.com/luksan/plc-diff/errors"
	"github.com/luksan/plc-diff/internal/pipeline"
	"github.com/luksan/plc-diff/internal/plcxml"
)

// MaxSymbolLen bounds IO address and symbol text.
const MaxSymbolLen = 30

// Rung pairs a breadcrumb path with the comment captured since the
// previous rung closed.
type Rung struct {
	Breadcrumb string
	Comment    string
}

type entry struct {
	depth int
	name  string
}

// Tracker is a collection-pass visitor. It owns all its state; after the
// pass completes the accessors hand the accumulated tables to the
// transform pass read-only.
type Tracker struct {
	separator string

	stack   []entry
	depth   int
	comment []byte

	rungs  []Rung
	labels []string

	nodeOpenDepth int

	symbols      map[string]string
	pendingAddr  string
	pendingDepth int
}

// New returns a tracker joining breadcrumb names with separator.
func New(separator string) *Tracker {
	return &Tracker{
		separator: separator,
		symbols:   make(map[string]string),
	}
}

// Rungs returns the rung records in document order.
func (t *Tracker) Rungs() []Rung {
	return t.rungs
}

// NodeLabels returns one display label per control node, in the order the
// node elements closed. Fork and junction nodes record an empty label.
func (t *Tracker) NodeLabels() []string {
	return t.labels
}

// Symbol returns the symbol recorded for an IO address, if any.
func (t *Tracker) Symbol(address []byte) (string, bool) {
	s, ok := t.symbols[string(address)]
	return s, ok
}

// Visit implements pipeline.Visitor. Events always pass through unchanged.
func (t *Tracker) Visit(ev plcxml.Event, tag plcxml.Tag) (pipeline.Processing, error) {
	switch ev.Kind {
	case plcxml.KindCharData:
		if err := t.text(ev.Text, tag); err != nil {
			return pipeline.Processing{}, err
		}

	case plcxml.KindStartElement:
		t.depth++
		if tag.IsControlNode() {
			t.nodeOpenDepth = t.depth
		}

	case plcxml.KindEndElement:
		t.close(tag)
	}
	return pipeline.Continue(ev), nil
}

func (t *Tracker) text(text []byte, tag plcxml.Tag) error {
	switch tag {
	case plcxml.TagName:
		// A name at depth d supersedes every sibling or earlier-sibling
		// name at depth >= d.
		for len(t.stack) > 0 && t.stack[len(t.stack)-1].depth >= t.depth {
			t.stack = t.stack[:len(t.stack)-1]
		}
		t.stack = append(t.stack, entry{depth: t.depth, name: string(text)})

	case plcxml.TagMainComment:
		t.comment = append(t.comment[:0], text...)

	case plcxml.TagAddress:
		if len(text) > MaxSymbolLen {
			return plcerrors.NewCapacity(text, MaxSymbolLen)
		}
		t.pendingAddr = string(text)
		t.pendingDepth = t.depth

	case plcxml.TagSymbol:
		if len(text) > MaxSymbolLen {
			return plcerrors.NewCapacity(text, MaxSymbolLen)
		}
		if t.pendingAddr != "" {
			t.symbols[t.pendingAddr] = string(text)
			t.pendingAddr = ""
		}
	}
	return nil
}

func (t *Tracker) close(tag plcxml.Tag) {
	keep := t.stack[:0]
	for _, e := range t.stack {
		if e.depth <= t.depth+1 {
			keep = append(keep, e)
		}
	}
	t.stack = keep
	t.depth--

	switch {
	case tag == plcxml.TagRungEntity:
		t.rungs = append(t.rungs, Rung{
			Breadcrumb: t.breadcrumb(),
			Comment:    string(t.comment),
		})
		t.comment = t.comment[:0]

	case tag == plcxml.TagGrafcetNodeStep:
		// Step labels live inside the step's subtree: take the first
		// stacked name strictly below the node's open depth.
		label := ""
		for _, e := range t.stack {
			if e.depth > t.nodeOpenDepth {
				label = e.name
				break
			}
		}
		t.labels = append(t.labels, label)

	case tag == plcxml.TagGrafcetTransition:
		label := ""
		if len(t.stack) > 0 {
			label = t.stack[len(t.stack)-1].name
		}
		t.labels = append(t.labels, label)

	case tag.IsControlNode():
		// Fork and junction nodes are never labeled; their edges resolve
		// through a nameable neighbor instead.
		t.labels = append(t.labels, "")
	}

	// An address whose enclosing scope closed without a symbol is dropped.
	if t.pendingAddr != "" && t.depth < t.pendingDepth-1 {
		t.pendingAddr = ""
	}
}

// breadcrumb joins the stacked names excluding the document-root entry.
func (t *Tracker) breadcrumb() string {
	if len(t.stack) <= 1 {
		return ""
	}
	names := make([]string, 0, len(t.stack)-1)
	for _, e := range t.stack[1:] {
		names = append(names, e.name)
	}
	return strings.Join(names, t.separator)
}
