package plcdiff

import (
	"github.com/luksan/plc-diff/internal/nametrack"
	"github.com/luksan/plc-diff/internal/pipeline"
	"github.com/luksan/plc-diff/internal/plcxml"
)

// normalizer flattens InstructionLineEntity subtrees into canonical text:
// the entity's own open and close tags are swallowed, its text is split on
// ASCII whitespace and re-joined with single spaces, and addresses with a
// recorded symbol get the symbol appended in brackets. Free-form layout
// inside instruction text is intentionally destroyed.
type normalizer struct {
	symbols  *nametrack.Tracker
	inEntity bool
	text     []byte
	word     []byte
}

func newNormalizer(symbols *nametrack.Tracker) *normalizer {
	return &normalizer{symbols: symbols}
}

func (n *normalizer) Visit(ev plcxml.Event, tag plcxml.Tag) (pipeline.Processing, error) {
	if !n.inEntity {
		if ev.Kind == plcxml.KindStartElement && tag == plcxml.TagInstructionLineEntity {
			n.inEntity = true
			return pipeline.NextEvent(), nil
		}
		return pipeline.Continue(ev), nil
	}

	switch {
	case ev.Kind == plcxml.KindEndElement && tag == plcxml.TagInstructionLineEntity:
		n.inEntity = false
		text := n.text
		n.text = nil
		return pipeline.Continue(plcxml.Event{
			Kind:   plcxml.KindCharData,
			Text:   text,
			Offset: ev.Offset,
		}), nil

	case ev.Kind == plcxml.KindCharData:
		line := n.normalizeText(ev.Text)
		if len(n.text) > 0 && len(line) > 0 {
			n.text = append(n.text, '\t')
		}
		n.text = append(n.text, line...)
	}
	return pipeline.NextEvent(), nil
}

// normalizeText joins the whitespace-separated words of text with single
// spaces, appending " [SYMBOL]" after any word recorded as an IO address.
func (n *normalizer) normalizeText(text []byte) []byte {
	var out []byte
	n.word = n.word[:0]
	flush := func() {
		if len(n.word) == 0 {
			return
		}
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, n.word...)
		if symbol, ok := n.symbols.Symbol(n.word); ok {
			out = append(out, ' ', '[')
			out = append(out, symbol...)
			out = append(out, ']')
		}
		n.word = n.word[:0]
	}
	for _, c := range text {
		if asciiSpace(c) {
			flush()
			continue
		}
		n.word = append(n.word, c)
	}
	flush()
	return out
}

func asciiSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
