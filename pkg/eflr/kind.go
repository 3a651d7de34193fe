// Package eflr classifies parsed Explicitly Formatted Logical Records by
// their logical-record-type code and exposes per-Set.type label schemas,
// the way rockridge.go dispatches a System Use Entry by its two-byte
// signature to a per-extension field table.
package eflr

// Kind is the semantic class a logical-record-type code maps to.
type Kind int

const (
	KindUnknown Kind = iota
	KindFileHeader
	KindOrigin
	KindAxis
	KindChannel
	KindFrame
	KindStatic
	KindScript
	KindUpdate
	KindUDI
	KindLongName
	KindSpecification
	KindDictionary
	KindPrivate
)

func (k Kind) String() string {
	switch k {
	case KindFileHeader:
		return "File-Header"
	case KindOrigin:
		return "Origin"
	case KindAxis:
		return "Axis"
	case KindChannel:
		return "Channel"
	case KindFrame:
		return "Frame"
	case KindStatic:
		return "Static"
	case KindScript:
		return "Script"
	case KindUpdate:
		return "Update"
	case KindUDI:
		return "UDI"
	case KindLongName:
		return "Long-Name"
	case KindSpecification:
		return "Specification"
	case KindDictionary:
		return "Dictionary"
	case KindPrivate:
		return "Private"
	default:
		return "Unknown"
	}
}

// Classify maps a Logical Record Segment's logical-record-type code to its
// EFLR kind. Code 11 has no named kind and maps to KindUnknown; codes
// above 12 are vendor-private (KindPrivate) and carry no known schema.
func Classify(lrType uint8) Kind {
	switch lrType {
	case 0:
		return KindFileHeader
	case 1:
		return KindOrigin
	case 2:
		return KindAxis
	case 3:
		return KindChannel
	case 4:
		return KindFrame
	case 5:
		return KindStatic
	case 6:
		return KindScript
	case 7:
		return KindUpdate
	case 8:
		return KindUDI
	case 9:
		return KindLongName
	case 10:
		return KindSpecification
	case 12:
		return KindDictionary
	default:
		if lrType > 11 {
			return KindPrivate
		}
		return KindUnknown
	}
}
