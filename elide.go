package plcdiff

import (
	"github.com/luksan/plc-diff/internal/pipeline"
	"github.com/luksan/plc-diff/internal/plcxml"
)

// elider removes configured subtrees from the transform pass in full:
// open tag, contents, and close tag. It runs first in the chain so later
// visitors never observe elided events.
type elider struct {
	tags     map[plcxml.Tag]bool
	skipping bool
	depth    int
}

func newElider(tags map[plcxml.Tag]bool) *elider {
	return &elider{tags: tags}
}

func (e *elider) Visit(ev plcxml.Event, tag plcxml.Tag) (pipeline.Processing, error) {
	if e.skipping {
		switch ev.Kind {
		case plcxml.KindStartElement:
			e.depth++
		case plcxml.KindEndElement:
			if e.depth == 0 {
				e.skipping = false
			} else {
				e.depth--
			}
		case plcxml.KindEOF:
			// Unbalanced input is caught by the decoder before this point.
			return pipeline.Continue(ev), nil
		}
		return pipeline.NextEvent(), nil
	}

	if ev.Kind == plcxml.KindStartElement && e.tags[tag] {
		e.skipping = true
		e.depth = 0
		return pipeline.NextEvent(), nil
	}
	return pipeline.Continue(ev), nil
}
