package plcxml

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	plcerrors "github.com/luksan/plc-diff/errors"
)

const streamDecoderBufferSize = 64 * 1024

// SyntaxError reports a malformed byte stream with positional context.
// Transport errors carry the parse code so callers can classify them
// alongside structural errors.
type SyntaxError struct {
	Code   plcerrors.Code
	Offset int64
	Err    error
}

// Error formats the syntax error with location and cause.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("[%s] xml syntax error at offset %d: %v", e.Code, e.Offset, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StreamDecoder provides a forward-only streaming event interface over an
// XML document. It cannot be rewound; whole-document knowledge requires a
// second decoder over the same source.
type StreamDecoder struct {
	dec     *xml.Decoder
	attrBuf []Attr
	textBuf []byte
	done    bool
}

// NewStreamDecoder creates a new streaming decoder for the reader.
func NewStreamDecoder(r io.Reader) *StreamDecoder {
	dec := xml.NewDecoder(bufio.NewReaderSize(r, streamDecoderBufferSize))
	return &StreamDecoder{
		dec:     dec,
		attrBuf: make([]Attr, 0, 8),
		textBuf: make([]byte, 0, 256),
	}
}

// Next returns the next structural event. Comments, processing
// instructions, and directives are not part of the event model and are
// skipped. After the end of the document an EOF event is returned once.
func (d *StreamDecoder) Next() (Event, error) {
	if d == nil || d.dec == nil {
		return Event{}, fmt.Errorf("nil XML decoder")
	}
	if d.done {
		return Event{Kind: KindEOF, Offset: d.dec.InputOffset()}, nil
	}
	for {
		tok, err := d.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.done = true
				return Event{Kind: KindEOF, Offset: d.dec.InputOffset()}, nil
			}
			return Event{}, &SyntaxError{
				Code:   plcerrors.CodeXMLParse,
				Offset: d.dec.InputOffset(),
				Err:    err,
			}
		}
		offset := d.dec.InputOffset()

		switch t := tok.(type) {
		case xml.StartElement:
			d.attrBuf = d.attrBuf[:0]
			for _, attr := range t.Attr {
				d.attrBuf = append(d.attrBuf, Attr{Name: attr.Name.Local, Value: attr.Value})
			}
			return Event{
				Kind:   KindStartElement,
				Name:   t.Name.Local,
				Attrs:  d.attrBuf,
				Offset: offset,
			}, nil

		case xml.EndElement:
			return Event{
				Kind:   KindEndElement,
				Name:   t.Name.Local,
				Offset: offset,
			}, nil

		case xml.CharData:
			d.textBuf = append(d.textBuf[:0], t...)
			return Event{
				Kind:   KindCharData,
				Text:   d.textBuf,
				Offset: offset,
			}, nil
		}
	}
}

// InputOffset returns the byte offset of the most recent token.
func (d *StreamDecoder) InputOffset() int64 {
	if d == nil || d.dec == nil {
		return 0
	}
	return d.dec.InputOffset()
}
