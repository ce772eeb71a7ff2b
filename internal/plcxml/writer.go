package plcxml

import (
	"bufio"
	"fmt"
	"io"
)

// Writer serializes events back to XML. Output is structurally valid under
// the same grammar as the input. Text escapes only the markup characters;
// whitespace is written through untouched so the rendering stays
// line-diffable.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteEvent serializes a single event. An EOF event flushes the output.
func (w *Writer) WriteEvent(ev Event) error {
	if w == nil || w.w == nil {
		return fmt.Errorf("nil XML writer")
	}
	switch ev.Kind {
	case KindStartElement:
		w.w.WriteByte('<')
		w.w.WriteString(ev.Name)
		for _, attr := range ev.Attrs {
			w.w.WriteByte(' ')
			w.w.WriteString(attr.Name)
			w.w.WriteString(`="`)
			writeEscaped(w.w, []byte(attr.Value), true)
			w.w.WriteByte('"')
		}
		return w.w.WriteByte('>')
	case KindEndElement:
		w.w.WriteString("</")
		w.w.WriteString(ev.Name)
		return w.w.WriteByte('>')
	case KindCharData:
		writeEscaped(w.w, ev.Text, false)
		return nil
	case KindEOF:
		return w.w.Flush()
	default:
		return fmt.Errorf("unsupported event kind %v", ev.Kind)
	}
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil || w.w == nil {
		return fmt.Errorf("nil XML writer")
	}
	return w.w.Flush()
}

func writeEscaped(w *bufio.Writer, data []byte, attr bool) {
	for _, c := range data {
		switch c {
		case '&':
			w.WriteString("&amp;")
		case '<':
			w.WriteString("&lt;")
		case '>':
			w.WriteString("&gt;")
		case '"':
			if attr {
				w.WriteString("&quot;")
				continue
			}
			w.WriteByte(c)
		default:
			w.WriteByte(c)
		}
	}
}
