// Package plcdiff transforms a PLC project XML export into a semantically
// equivalent, diff-friendly rendering: opaque identifiers become small
// stable integers, instruction text is whitespace-canonicalized, ladder
// diagram subtrees are elided, and structural context (rung breadcrumbs,
// resolved control-flow neighbors) is injected as inline attributes.
//
// The source stream is forward-only, so the conversion is two passes over
// the same input: Analyze accumulates whole-document tables (name context,
// symbol table, control-flow graph), then Transform re-reads the input and
// rewrites it using those tables.
package plcdiff

import (
	"fmt"
	"io"
	"os"

	"github.com/luksan/plc-diff/internal/grafcet"
	"github.com/luksan/plc-diff/internal/nametrack"
	"github.com/luksan/plc-diff/internal/pipeline"
	"github.com/luksan/plc-diff/internal/plcxml"
)

// Analysis holds the read-only tables produced by a collection pass. It is
// borrowed by Transform and never mutated afterwards.
type Analysis struct {
	cfg     config
	rungs   []nametrack.Rung
	graph   *grafcet.Graph
	names   map[string]string
	symbols *nametrack.Tracker
}

// Analyze runs the collection pass over one traversal of r.
func Analyze(r io.Reader, opts ...Option) (*Analysis, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	tracker := nametrack.New(cfg.separator)
	tracer := grafcet.NewTracer()
	if err := pipeline.Run(plcxml.NewStreamDecoder(r), tracker, tracer); err != nil {
		return nil, fmt.Errorf("collection pass: %w", err)
	}

	graph := tracer.Graph()
	labels := tracker.NodeLabels()
	if len(labels) != graph.Len() {
		return nil, fmt.Errorf("collection pass: %d node labels for %d control nodes", len(labels), graph.Len())
	}
	// Every control node keeps its label entry, empty labels included: an
	// unnamed step resolves to the empty string rather than to a neighbor.
	names := make(map[string]string, len(labels))
	for i := 1; i <= graph.Len(); i++ {
		node, err := graph.NodeAt(i)
		if err != nil {
			return nil, fmt.Errorf("collection pass: %w", err)
		}
		names[node.ID] = labels[i-1]
	}

	return &Analysis{
		cfg:     cfg,
		rungs:   tracker.Rungs(),
		graph:   graph,
		names:   names,
		symbols: tracker,
	}, nil
}

// Transform runs the transform pass over a second traversal of the same
// input, writing the converted document to w.
func (a *Analysis) Transform(r io.Reader, w io.Writer) error {
	if a == nil {
		return fmt.Errorf("nil analysis")
	}
	err := pipeline.Run(plcxml.NewStreamDecoder(r),
		newElider(a.cfg.elideTags()),
		newInternVisitor(),
		newAnnotator(a),
		newNormalizer(a.symbols),
		newSink(w),
	)
	if err != nil {
		return fmt.Errorf("transform pass: %w", err)
	}
	return nil
}

// ConvertFile runs both passes over the file at path, writing the
// converted document to w. The input is opened once per pass.
func ConvertFile(path string, w io.Writer, opts ...Option) error {
	analysis, err := analyzeFile(path, opts)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := analysis.Transform(f, w); err != nil {
		return fmt.Errorf("convert %s: %w", path, err)
	}
	return nil
}

func analyzeFile(path string, opts []Option) (*Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	analysis, err := Analyze(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}
	return analysis, nil
}
