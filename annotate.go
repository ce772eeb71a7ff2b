package plcdiff

import (
	"fmt"

	plcerrors "github.com/luksan/plc-diff/errors"
	"github.com/luksan/plc-diff/internal/grafcet"
	"github.com/luksan/plc-diff/internal/nametrack"
	"github.com/luksan/plc-diff/internal/pipeline"
	"github.com/luksan/plc-diff/internal/plcxml"
)

// annotator injects the collection-pass context into the output: rung
// elements get their breadcrumb, transition elements get their resolved
// control-flow neighbors. Records are consumed strictly in document order;
// the position counter re-aligns the transform pass with the graph data
// recorded in the earlier pass.
type annotator struct {
	rungs    []nametrack.Rung
	graph    *grafcet.Graph
	names    map[string]string
	ctxAttr  string
	flowAttr string

	rungIndex int
	position  int
}

func newAnnotator(a *Analysis) *annotator {
	return &annotator{
		rungs:    a.rungs,
		graph:    a.graph,
		names:    a.names,
		ctxAttr:  a.cfg.ctxAttr,
		flowAttr: a.cfg.flowAttr,
	}
}

func (an *annotator) Visit(ev plcxml.Event, tag plcxml.Tag) (pipeline.Processing, error) {
	if ev.Kind != plcxml.KindStartElement {
		return pipeline.Continue(ev), nil
	}

	switch {
	case tag == plcxml.TagRungEntity:
		if an.rungIndex >= len(an.rungs) {
			return pipeline.Processing{}, plcerrors.NewStructuralf(plcerrors.CodeRungMiss,
				"rung element %d has no recorded breadcrumb", an.rungIndex+1)
		}
		rung := an.rungs[an.rungIndex]
		an.rungIndex++
		ev.Attrs = appendAttr(ev.Attrs, an.ctxAttr, rung.Breadcrumb)

	case tag == plcxml.TagGrafcetTransition:
		an.position++
		value, err := an.flowAnnotation()
		if err != nil {
			return pipeline.Processing{}, err
		}
		ev.Attrs = appendAttr(ev.Attrs, an.flowAttr, value)

	case tag.IsControlNode():
		an.position++
	}
	return pipeline.Continue(ev), nil
}

// flowAnnotation resolves "from->[edge]->to" for the current transition.
// Transitions are never ambiguous by construction; ambiguity belongs only
// to fork and junction nodes, which are walked through to a nameable
// neighbor.
func (an *annotator) flowAnnotation() (string, error) {
	node, err := an.graph.NodeAt(an.position)
	if err != nil {
		return "", err
	}
	if node.Ambiguous() {
		return "", &plcerrors.StructuralError{
			Code:    plcerrors.CodeNodeFan,
			Message: "transition must have exactly one incoming and one outgoing edge",
			NodeID:  node.ID,
			From:    node.From,
			To:      node.To,
		}
	}
	from, err := an.graph.DisplayName(node.From[0], an.names)
	if err != nil {
		return "", err
	}
	to, err := an.graph.DisplayName(node.To[0], an.names)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s->[%s]->%s", from, an.names[node.ID], to), nil
}

// appendAttr returns a new attribute slice; start-element attributes alias
// decoder buffers and must not be grown in place.
func appendAttr(attrs []plcxml.Attr, name, value string) []plcxml.Attr {
	out := make([]plcxml.Attr, 0, len(attrs)+1)
	out = append(out, attrs...)
	return append(out, plcxml.Attr{Name: name, Value: value})
}
