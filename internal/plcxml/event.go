// Package plcxml provides the streaming event interface over a PLC project
// XML export. It wraps the XML tokenizer and serializer so the rest of the
// module never interprets raw bytes beyond the closed tag classification.
package plcxml

// Kind identifies the kind of streaming XML event.
type Kind byte

const (
	KindNone Kind = iota
	KindStartElement
	KindEndElement
	KindCharData
	KindEOF
)

// String returns a stable name for the kind, suitable for debugging.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindStartElement:
		return "StartElement"
	case KindEndElement:
		return "EndElement"
	case KindCharData:
		return "CharData"
	case KindEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Attr is a name/value attribute pair on a start element.
type Attr struct {
	Name  string
	Value string
}

// Event represents a single structural token of the document.
// Text is only valid until the next Next call; visitors that buffer an
// event past the current step must copy it.
type Event struct {
	Kind   Kind
	Name   string
	Attrs  []Attr
	Text   []byte
	Offset int64
}
