package plcxml

// Tag classifies the innermost open element against the closed set of
// element names the conversion cares about. It is not a path: exactly one
// Tag value is current per event, recomputed by the pipeline driver on
// every start and end element.
type Tag byte

const (
	TagNone Tag = iota
	TagAddress
	TagId
	TagFrom
	TagTo
	TagGrafcetNodeStep
	TagGrafcetOrFork
	TagGrafcetOrJunction
	TagGrafcetTransition
	TagInstructionLine
	TagInstructionLineEntity
	TagLadderElements
	TagMainComment
	TagName
	TagRungEntity
	TagSymbol
	TagOther
)

// ClassifyTag maps a local element name to its Tag classification.
func ClassifyTag(name string) Tag {
	switch name {
	case "Address":
		return TagAddress
	case "Id":
		return TagId
	case "From":
		return TagFrom
	case "To":
		return TagTo
	case "GrafcetNodeStep":
		return TagGrafcetNodeStep
	case "GrafcetOrFork":
		return TagGrafcetOrFork
	case "GrafcetOrJunction":
		return TagGrafcetOrJunction
	case "GrafcetTransition":
		return TagGrafcetTransition
	case "InstructionLine":
		return TagInstructionLine
	case "InstructionLineEntity":
		return TagInstructionLineEntity
	case "LadderElements":
		return TagLadderElements
	case "MainComment":
		return TagMainComment
	case "Name":
		return TagName
	case "RungEntity":
		return TagRungEntity
	case "Symbol":
		return TagSymbol
	default:
		return TagOther
	}
}

// IsControlNode reports whether the tag is one of the sequential
// function chart node kinds.
func (t Tag) IsControlNode() bool {
	switch t {
	case TagGrafcetNodeStep, TagGrafcetTransition, TagGrafcetOrFork, TagGrafcetOrJunction:
		return true
	default:
		return false
	}
}

// String returns the element name for classified tags, suitable for
// diagnostics.
func (t Tag) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagAddress:
		return "Address"
	case TagId:
		return "Id"
	case TagFrom:
		return "From"
	case TagTo:
		return "To"
	case TagGrafcetNodeStep:
		return "GrafcetNodeStep"
	case TagGrafcetOrFork:
		return "GrafcetOrFork"
	case TagGrafcetOrJunction:
		return "GrafcetOrJunction"
	case TagGrafcetTransition:
		return "GrafcetTransition"
	case TagInstructionLine:
		return "InstructionLine"
	case TagInstructionLineEntity:
		return "InstructionLineEntity"
	case TagLadderElements:
		return "LadderElements"
	case TagMainComment:
		return "MainComment"
	case TagName:
		return "Name"
	case TagRungEntity:
		return "RungEntity"
	case TagSymbol:
		return "Symbol"
	case TagOther:
		return "Other"
	default:
		return "Unknown"
	}
}
