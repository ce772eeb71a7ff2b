// Package pipeline implements the visitor chain driven over one streaming
// traversal of a PLC document. Visitors run strictly in order for each
// event; a visitor never observes a future event and no buffering or
// reordering happens in the driver.
package pipeline

import (
	"fmt"

	"github.com/luksan/plc-diff/internal/plcxml"
)

// Processing is the visitor verdict for one event: forward a (possibly
// rewritten) event to the next visitor, or discard it and fetch the next
// raw event.
type Processing struct {
	event plcxml.Event
	next  bool
}

// Continue forwards ev to the next visitor in the chain.
func Continue(ev plcxml.Event) Processing {
	return Processing{event: ev}
}

// NextEvent discards the current event for all remaining visitors and
// makes the driver fetch the next raw event.
func NextEvent() Processing {
	return Processing{next: true}
}

// Visitor is a unit of state and transform logic invoked once per event.
type Visitor interface {
	Visit(ev plcxml.Event, tag plcxml.Tag) (Processing, error)
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(ev plcxml.Event, tag plcxml.Tag) (Processing, error)

// Visit calls f.
func (f VisitorFunc) Visit(ev plcxml.Event, tag plcxml.Tag) (Processing, error) {
	return f(ev, tag)
}

// Run drives the visitors over one full traversal of the decoder.
//
// The current tag is recomputed from the raw event: a start element sets
// it, an end element sets it for the duration of the chain and resets it
// to none only after all visitors have run, so every visitor observes the
// same tag context for a given event regardless of chain position. The
// EOF event is delivered to the chain before Run returns.
func Run(d *plcxml.StreamDecoder, visitors ...Visitor) error {
	if d == nil {
		return fmt.Errorf("nil stream decoder")
	}
	tag := plcxml.TagNone
	for {
		ev, err := d.Next()
		if err != nil {
			return err
		}
		raw := ev.Kind
		switch raw {
		case plcxml.KindStartElement, plcxml.KindEndElement:
			tag = plcxml.ClassifyTag(ev.Name)
		}

		for _, v := range visitors {
			p, err := v.Visit(ev, tag)
			if err != nil {
				return err
			}
			if p.next {
				break
			}
			ev = p.event
		}

		if raw == plcxml.KindEndElement {
			tag = plcxml.TagNone
		}
		if raw == plcxml.KindEOF {
			return nil
		}
	}
}
