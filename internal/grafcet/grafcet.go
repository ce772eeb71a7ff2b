// Package grafcet reconstructs the sequential-function-chart control-flow
// graph from the From/To/Id reference texts scattered through a PLC
// document. The builder runs during the collection pass; the resulting
// Graph is read-only input to the transform pass.
package grafcet

import (
	plcerrors "github.com/luksan/plc-diff/errors"
	"github.com/luksan/plc-diff/internal/intern"
	"github.com/luksan/plc-diff/internal/pipeline"
	"github.com/luksan/plc-diff/internal/plcxml"
)

// Node is one control-flow node with its raw reference edges. The fan
// invariant holds for every completed node: at least one of From and To
// has exactly one element.
type Node struct {
	ID   string
	From []string
	To   []string
}

// Ambiguous reports whether the node is a fork or junction side that
// cannot be labeled directly.
func (n *Node) Ambiguous() bool {
	return n == nil || len(n.From) != 1 || len(n.To) != 1
}

// Hub reports whether the node has a many side. Hub nodes carry no direct
// display name of their own; name resolution walks through them.
func (n *Node) Hub() bool {
	return n != nil && (len(n.From) > 1 || len(n.To) > 1)
}

// Tracer accumulates control-flow nodes during the collection pass.
type Tracer struct {
	nodes    map[string]*Node
	sequence []string

	depth        int
	pending      Node
	pendingDepth int
}

// NewTracer returns an empty tracer.
func NewTracer() *Tracer {
	return &Tracer{nodes: make(map[string]*Node)}
}

// Visit implements pipeline.Visitor. Events always pass through unchanged.
func (t *Tracer) Visit(ev plcxml.Event, tag plcxml.Tag) (pipeline.Processing, error) {
	switch ev.Kind {
	case plcxml.KindCharData:
		switch tag {
		case plcxml.TagId:
			if len(ev.Text) > intern.MaxIdentifierLen {
				return pipeline.Processing{}, plcerrors.NewCapacity(ev.Text, intern.MaxIdentifierLen)
			}
			t.pending.ID = string(ev.Text)
			t.pendingDepth = t.depth
		case plcxml.TagFrom:
			if len(ev.Text) > intern.MaxIdentifierLen {
				return pipeline.Processing{}, plcerrors.NewCapacity(ev.Text, intern.MaxIdentifierLen)
			}
			t.pending.From = append(t.pending.From, string(ev.Text))
		case plcxml.TagTo:
			if len(ev.Text) > intern.MaxIdentifierLen {
				return pipeline.Processing{}, plcerrors.NewCapacity(ev.Text, intern.MaxIdentifierLen)
			}
			t.pending.To = append(t.pending.To, string(ev.Text))
		}

	case plcxml.KindStartElement:
		t.depth++

	case plcxml.KindEndElement:
		if err := t.close(tag); err != nil {
			return pipeline.Processing{}, err
		}
	}
	return pipeline.Continue(ev), nil
}

func (t *Tracer) close(tag plcxml.Tag) error {
	// Reference fields must not leak out of the subtree that opened them:
	// closing above the depth where the pending id was seen means the
	// enclosing node element never arrived.
	if t.pending.ID != "" && t.depth+1 < t.pendingDepth {
		return t.structuralf(plcerrors.CodeNodeDepth,
			"control-node references leaked from subtree")
	}
	if tag.IsControlNode() {
		if len(t.pending.From) != 1 && len(t.pending.To) != 1 {
			return t.structuralf(plcerrors.CodeNodeFan,
				"control node needs exactly one incoming or one outgoing edge")
		}
		node := t.pending
		t.pending = Node{}
		t.sequence = append(t.sequence, node.ID)
		t.nodes[node.ID] = &node
	}
	t.depth--
	return nil
}

func (t *Tracer) structuralf(code plcerrors.Code, msg string) error {
	return &plcerrors.StructuralError{
		Code:    code,
		Message: msg,
		NodeID:  t.pending.ID,
		From:    t.pending.From,
		To:      t.pending.To,
		Depth:   t.depth,
	}
}

// Graph hands over the accumulated node table and document sequence.
// The tracer must not be reused afterwards.
func (t *Tracer) Graph() *Graph {
	return &Graph{nodes: t.nodes, sequence: t.sequence}
}

// Graph is the read-only control-flow graph produced by a collection pass.
type Graph struct {
	nodes    map[string]*Node
	sequence []string
}

// Len reports the number of recorded control nodes.
func (g *Graph) Len() int {
	return len(g.sequence)
}

// NodeAt returns the node for the position-th node-bearing element of the
// document, 1-based. Both passes traverse identical document order, so the
// transform pass aligns with collection-pass data by counting elements.
func (g *Graph) NodeAt(position int) (*Node, error) {
	if position < 1 || position > len(g.sequence) {
		return nil, plcerrors.NewStructuralf(plcerrors.CodeSequenceMiss,
			"position %d outside document sequence of %d nodes", position, len(g.sequence))
	}
	node, ok := g.nodes[g.sequence[position-1]]
	if !ok {
		return nil, plcerrors.NewStructuralf(plcerrors.CodeNodeMiss,
			"sequence id %q absent from node table", g.sequence[position-1])
	}
	return node, nil
}

// Neighbor returns the hub identifier reachable from a node: the single
// element of whichever side has cardinality one. The many side of a fork
// or junction is never chased.
func (g *Graph) Neighbor(id string) (string, error) {
	node, ok := g.nodes[id]
	if !ok {
		return "", plcerrors.NewStructuralf(plcerrors.CodeNodeMiss,
			"reference to unknown control node %q", id)
	}
	if len(node.To) == 1 {
		return node.To[0], nil
	}
	if len(node.From) == 1 {
		return node.From[0], nil
	}
	return "", &plcerrors.StructuralError{
		Code:    plcerrors.CodeNodeFan,
		Message: "control node has no unambiguous side",
		NodeID:  node.ID,
		From:    node.From,
		To:      node.To,
	}
}

// DisplayName resolves an identifier to a display name. A non-hub node
// resolves to its recorded label, empty when the element carries no name;
// hub nodes (forks and junctions) are walked through to the nearest
// non-hub neighbor. The walk is guarded against malformed cyclic
// references: revisiting an identifier is a structural-invariant
// violation.
func (g *Graph) DisplayName(id string, names map[string]string) (string, error) {
	visited := make(map[string]struct{})
	for {
		node, ok := g.nodes[id]
		if !ok {
			return "", plcerrors.NewStructuralf(plcerrors.CodeNodeMiss,
				"reference to unknown control node %q", id)
		}
		if !node.Hub() {
			return names[id], nil
		}
		if _, seen := visited[id]; seen {
			return "", plcerrors.NewStructuralf(plcerrors.CodeFlowCycle,
				"cyclic references while resolving name for %q", id)
		}
		visited[id] = struct{}{}
		next, err := g.Neighbor(id)
		if err != nil {
			return "", err
		}
		id = next
	}
}
