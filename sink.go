package plcdiff

import (
	"io"

	"github.com/luksan/plc-diff/internal/pipeline"
	"github.com/luksan/plc-diff/internal/plcxml"
)

// sink is the final pipeline stage: it serializes every event it receives.
// The EOF event flushes the output.
type sink struct {
	w *plcxml.Writer
}

func newSink(w io.Writer) *sink {
	return &sink{w: plcxml.NewWriter(w)}
}

func (s *sink) Visit(ev plcxml.Event, _ plcxml.Tag) (pipeline.Processing, error) {
	if err := s.w.WriteEvent(ev); err != nil {
		return pipeline.Processing{}, err
	}
	return pipeline.Continue(ev), nil
}
