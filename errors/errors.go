// Package errors defines the coded error taxonomy for PLC document
// conversion. Every error is fatal: the first one aborts the running pass
// and the whole conversion.
package errors

import (
	"fmt"
	"strings"
)

// Code classifies a conversion failure.
type Code string

const (
	// CodeXMLParse indicates a malformed byte stream from the tokenizer.
	CodeXMLParse Code = "plc-xml-parse"
	// CodeValueTooLong indicates an identifier, address, or symbol exceeds
	// its fixed maximum length.
	CodeValueTooLong Code = "plc-value-too-long"
	// CodeNodeFan indicates a control node whose fan-in and fan-out violate
	// the single-hub invariant.
	CodeNodeFan Code = "plc-node-fan"
	// CodeNodeDepth indicates control-node reference fields that leaked
	// across subtree boundaries.
	CodeNodeDepth Code = "plc-node-depth"
	// CodeNodeMiss indicates a reference to a control node absent from the
	// node table.
	CodeNodeMiss Code = "plc-node-miss"
	// CodeFlowCycle indicates neighbor resolution revisited a control node.
	CodeFlowCycle Code = "plc-flow-cycle"
	// CodeSequenceMiss indicates the transform-pass position counter ran
	// past the recorded document sequence.
	CodeSequenceMiss Code = "plc-sequence-miss"
	// CodeRungMiss indicates a rung element with no recorded breadcrumb.
	CodeRungMiss Code = "plc-rung-miss"
)

// CapacityError reports a value exceeding its fixed maximum length.
type CapacityError struct {
	Code  Code
	Value string
	Limit int
}

// Error formats the capacity error with the offending value.
func (e *CapacityError) Error() string {
	if e == nil {
		return "capacity <nil>"
	}
	return fmt.Sprintf("[%s] value %q exceeds %d bytes", e.Code, e.Value, e.Limit)
}

// NewCapacity builds a CapacityError for an over-length value.
func NewCapacity(value []byte, limit int) *CapacityError {
	return &CapacityError{Code: CodeValueTooLong, Value: string(value), Limit: limit}
}

// StructuralError reports a structural-invariant violation with enough
// partial state to locate the defect in the source document.
type StructuralError struct {
	Code    Code
	Message string
	NodeID  string
	From    []string
	To      []string
	Depth   int
}

// Error formats the structural error including the accumulated partial node.
func (e *StructuralError) Error() string {
	if e == nil {
		return "structural <nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.NodeID != "" || len(e.From) > 0 || len(e.To) > 0 {
		fmt.Fprintf(&b, " (node %q from=%v to=%v)", e.NodeID, e.From, e.To)
	}
	if e.Depth > 0 {
		fmt.Fprintf(&b, " at depth %d", e.Depth)
	}
	return b.String()
}

// NewStructuralf formats a message and builds a StructuralError.
func NewStructuralf(code Code, format string, args ...any) *StructuralError {
	return &StructuralError{Code: code, Message: fmt.Sprintf(format, args...)}
}
