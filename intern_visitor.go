package plcdiff

import (
	"fmt"

	"github.com/luksan/plc-diff/internal/intern"
	"github.com/luksan/plc-diff/internal/pipeline"
	"github.com/luksan/plc-diff/internal/plcxml"
)

// internVisitor rewrites identifier text inside Id, From, and To elements
// as small stable integers, so identifier churn between revisions does not
// create diff noise. The table is fresh per transform pass.
type internVisitor struct {
	table *intern.Table
}

func newInternVisitor() *internVisitor {
	return &internVisitor{table: intern.NewTable()}
}

func (v *internVisitor) Visit(ev plcxml.Event, tag plcxml.Tag) (pipeline.Processing, error) {
	if ev.Kind != plcxml.KindCharData {
		return pipeline.Continue(ev), nil
	}
	switch tag {
	case plcxml.TagId, plcxml.TagFrom, plcxml.TagTo:
		n, err := v.table.InternOrLookup(ev.Text)
		if err != nil {
			return pipeline.Processing{}, err
		}
		ev.Text = fmt.Appendf(nil, "==%d==", n)
	}
	return pipeline.Continue(ev), nil
}
