// Package dliserr defines the FormatError sum type shared by every
// decoding layer: physical framing, the Component grammar, and the
// representation-code codecs.
package dliserr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a FormatError.
type Kind int

const (
	// ShortRead means the byte source ran out before a field could be read.
	ShortRead Kind = iota
	// BadMagic means a fixed marker or structure field didn't match what RP66 V1 requires.
	BadMagic
	// BadVersion means a version field was present but not the only value this decoder accepts.
	BadVersion
	// FramingInvariant means a structural assertion about Visible Record or
	// Logical Record Segment framing failed (even length, predecessor/successor
	// consistency, trailing-length equality, ...).
	FramingInvariant
	// UnsupportedCode means a representation code outside 1..27 was encountered.
	UnsupportedCode
	// BadDescriptor means a Component descriptor byte encoded a role or
	// presence-bit combination the grammar doesn't allow in context.
	BadDescriptor
	// EncodingFallbackExhausted means ASCII, CP-1252, and ISO-8859-1 all
	// failed to decode a text field.
	EncodingFallbackExhausted
	// DanglingFrameRef means a Frame Data record referenced a frame Object
	// Name with no matching Frame EFLR in the owning Logical File.
	DanglingFrameRef
	// EncryptedUnsupported means a caller asked to decode a record body
	// that is marked encrypted; this decoder never decrypts.
	EncryptedUnsupported
)

func (k Kind) String() string {
	switch k {
	case ShortRead:
		return "ShortRead"
	case BadMagic:
		return "BadMagic"
	case BadVersion:
		return "BadVersion"
	case FramingInvariant:
		return "FramingInvariant"
	case UnsupportedCode:
		return "UnsupportedCode"
	case BadDescriptor:
		return "BadDescriptor"
	case EncodingFallbackExhausted:
		return "EncodingFallbackExhausted"
	case DanglingFrameRef:
		return "DanglingFrameRef"
	case EncryptedUnsupported:
		return "EncryptedUnsupported"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FormatError is the single error type every decoding layer returns for a
// structural or encoding problem in the input stream. Offset is the
// absolute byte position in the source where the problem was detected.
type FormatError struct {
	Kind   Kind
	Offset int64
	Msg    string
	Cause  error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at offset %d: %s: %v", e.Kind, e.Offset, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// New builds a FormatError with no wrapped cause.
func New(kind Kind, offset int64, msg string) *FormatError {
	return &FormatError{Kind: kind, Offset: offset, Msg: msg}
}

// Wrap builds a FormatError around an underlying error, preserving it for
// errors.Is/errors.As via Unwrap.
func Wrap(kind Kind, offset int64, msg string, cause error) *FormatError {
	return &FormatError{Kind: kind, Offset: offset, Msg: msg, Cause: cause}
}

// Is reports whether err wraps a FormatError of the given kind.
func Is(err error, kind Kind) bool {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}
