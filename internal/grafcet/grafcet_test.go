package grafcet

import (
	"errors"
	"strings"
	"testing"

	plcerrors "github.com/luksan/plc-diff/errors"
	"github.com/luksan/plc-diff/internal/pipeline"
	"github.com/luksan/plc-diff/internal/plcxml"
)

func trace(t *testing.T, input string) (*Graph, error) {
	t.Helper()
	tracer := NewTracer()
	err := pipeline.Run(plcxml.NewStreamDecoder(strings.NewReader(input)), tracer)
	if err != nil {
		return nil, err
	}
	return tracer.Graph(), nil
}

func mustTrace(t *testing.T, input string) *Graph {
	t.Helper()
	g, err := trace(t, input)
	if err != nil {
		t.Fatalf("collection error = %v", err)
	}
	return g
}

func TestTracerBuildsSequence(t *testing.T) {
	g := mustTrace(t, `<G>`+
		`<GrafcetNodeStep><Id>s1</Id><To>t1</To></GrafcetNodeStep>`+
		`<GrafcetTransition><Id>t1</Id><From>s1</From><To>s2</To></GrafcetTransition>`+
		`<GrafcetNodeStep><Id>s2</Id><From>t1</From></GrafcetNodeStep>`+
		`</G>`)

	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	for i, want := range []string{"s1", "t1", "s2"} {
		node, err := g.NodeAt(i + 1)
		if err != nil {
			t.Fatalf("NodeAt(%d) error = %v", i+1, err)
		}
		if node.ID != want {
			t.Errorf("NodeAt(%d).ID = %q, want %q", i+1, node.ID, want)
		}
	}
}

func TestTracerAcceptsFork(t *testing.T) {
	// A fork with one incoming and three outgoing edges has a single hub
	// side and must be accepted.
	g := mustTrace(t, `<G><GrafcetOrFork><Id>f1</Id><From>t1</From><To>a</To><To>b</To><To>c</To></GrafcetOrFork></G>`)

	node, err := g.NodeAt(1)
	if err != nil {
		t.Fatalf("NodeAt(1) error = %v", err)
	}
	if len(node.From) != 1 || len(node.To) != 3 {
		t.Errorf("node fan = %d/%d, want 1/3", len(node.From), len(node.To))
	}
	if !node.Ambiguous() {
		t.Error("fork with three outgoing edges should be ambiguous")
	}
}

func TestTracerRejectsDoubleFan(t *testing.T) {
	_, err := trace(t, `<G><GrafcetOrJunction><Id>j1</Id><From>a</From><From>b</From><To>x</To><To>y</To></GrafcetOrJunction></G>`)

	var structErr *plcerrors.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("error = %v, want *StructuralError", err)
	}
	if structErr.Code != plcerrors.CodeNodeFan {
		t.Errorf("code = %q, want %q", structErr.Code, plcerrors.CodeNodeFan)
	}
	if structErr.NodeID != "j1" {
		t.Errorf("partial node id = %q, want %q", structErr.NodeID, "j1")
	}
}

func TestTracerRejectsEmptyFan(t *testing.T) {
	_, err := trace(t, `<G><GrafcetNodeStep><Id>s1</Id></GrafcetNodeStep></G>`)

	var structErr *plcerrors.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("error = %v, want *StructuralError", err)
	}
	if structErr.Code != plcerrors.CodeNodeFan {
		t.Errorf("code = %q, want %q", structErr.Code, plcerrors.CodeNodeFan)
	}
}

func TestTracerRejectsLeakedReferences(t *testing.T) {
	// The Id lives in a subtree that closes before any control-node
	// element arrives; closing above it must be fatal.
	_, err := trace(t, `<G><Wrapper><Inner><Id>s1</Id><To>t1</To></Inner></Wrapper></G>`)

	var structErr *plcerrors.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("error = %v, want *StructuralError", err)
	}
	if structErr.Code != plcerrors.CodeNodeDepth {
		t.Errorf("code = %q, want %q", structErr.Code, plcerrors.CodeNodeDepth)
	}
}

func TestNodeAtOutOfRange(t *testing.T) {
	g := mustTrace(t, `<G><GrafcetNodeStep><Id>s1</Id><To>t1</To></GrafcetNodeStep></G>`)

	_, err := g.NodeAt(2)
	var structErr *plcerrors.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("error = %v, want *StructuralError", err)
	}
	if structErr.Code != plcerrors.CodeSequenceMiss {
		t.Errorf("code = %q, want %q", structErr.Code, plcerrors.CodeSequenceMiss)
	}
}

func TestNeighborPrefersUnambiguousSide(t *testing.T) {
	g := mustTrace(t, `<G>`+
		`<GrafcetOrFork><Id>f1</Id><From>t1</From><To>a</To><To>b</To></GrafcetOrFork>`+
		`<GrafcetOrJunction><Id>j1</Id><From>a</From><From>b</From><To>t2</To></GrafcetOrJunction>`+
		`</G>`)

	if got, err := g.Neighbor("f1"); err != nil || got != "t1" {
		t.Errorf("Neighbor(f1) = %q, %v; want t1, nil", got, err)
	}
	if got, err := g.Neighbor("j1"); err != nil || got != "t2" {
		t.Errorf("Neighbor(j1) = %q, %v; want t2, nil", got, err)
	}
}

func TestNeighborUnknownNode(t *testing.T) {
	g := mustTrace(t, `<G><GrafcetNodeStep><Id>s1</Id><To>t1</To></GrafcetNodeStep></G>`)

	_, err := g.Neighbor("missing")
	var structErr *plcerrors.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("error = %v, want *StructuralError", err)
	}
	if structErr.Code != plcerrors.CodeNodeMiss {
		t.Errorf("code = %q, want %q", structErr.Code, plcerrors.CodeNodeMiss)
	}
}

func TestDisplayNameWalksThroughFork(t *testing.T) {
	g := mustTrace(t, `<G>`+
		`<GrafcetNodeStep><Id>s1</Id><To>f1</To></GrafcetNodeStep>`+
		`<GrafcetOrFork><Id>f1</Id><From>s1</From><To>a</To><To>b</To></GrafcetOrFork>`+
		`</G>`)
	names := map[string]string{"s1": "Start"}

	got, err := g.DisplayName("f1", names)
	if err != nil {
		t.Fatalf("DisplayName(f1) error = %v", err)
	}
	if got != "Start" {
		t.Errorf("DisplayName(f1) = %q, want %q", got, "Start")
	}
}

func TestDisplayNameUnnamedNodeResolvesEmpty(t *testing.T) {
	// A step or transition without a name resolves to the empty string
	// directly; only hub nodes resolve through a neighbor.
	g := mustTrace(t, `<G>`+
		`<GrafcetNodeStep><Id>s1</Id><To>t1</To></GrafcetNodeStep>`+
		`<GrafcetTransition><Id>t1</Id><From>s1</From><To>s2</To></GrafcetTransition>`+
		`<GrafcetNodeStep><Id>s2</Id><From>t1</From></GrafcetNodeStep>`+
		`</G>`)
	names := map[string]string{"s1": "", "t1": "", "s2": "Stop"}

	for _, id := range []string{"s1", "t1"} {
		got, err := g.DisplayName(id, names)
		if err != nil {
			t.Fatalf("DisplayName(%s) error = %v", id, err)
		}
		if got != "" {
			t.Errorf("DisplayName(%s) = %q, want empty", id, got)
		}
	}
}

func TestDisplayNameUnknownNode(t *testing.T) {
	g := mustTrace(t, `<G><GrafcetNodeStep><Id>s1</Id><To>t1</To></GrafcetNodeStep></G>`)

	_, err := g.DisplayName("missing", map[string]string{})
	var structErr *plcerrors.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("error = %v, want *StructuralError", err)
	}
	if structErr.Code != plcerrors.CodeNodeMiss {
		t.Errorf("code = %q, want %q", structErr.Code, plcerrors.CodeNodeMiss)
	}
}

func TestDisplayNameCycleGuard(t *testing.T) {
	// Two hub nodes referencing each other through their single sides can
	// never reach a nameable neighbor; the walk must fail, not loop.
	g := mustTrace(t, `<G>`+
		`<GrafcetOrFork><Id>f1</Id><From>f2</From><To>a</To><To>b</To></GrafcetOrFork>`+
		`<GrafcetOrFork><Id>f2</Id><From>f1</From><To>c</To><To>d</To></GrafcetOrFork>`+
		`</G>`)

	_, err := g.DisplayName("f1", map[string]string{})
	var structErr *plcerrors.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("error = %v, want *StructuralError", err)
	}
	if structErr.Code != plcerrors.CodeFlowCycle {
		t.Errorf("code = %q, want %q", structErr.Code, plcerrors.CodeFlowCycle)
	}
}
