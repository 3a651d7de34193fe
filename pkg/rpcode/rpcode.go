// Package rpcode implements the 27 RP66 V1 Representation-Code codecs: a
// family of typed readers over an in-memory byte window, each consuming a
// prefix of the window and returning a typed Go value.
package rpcode

import (
	"fmt"
	"math"

	"github.com/bgrewell/dlis-kit/pkg/dliserr"
	"github.com/bgrewell/dlis-kit/pkg/logging"
)

// Reader decodes representation-code values from a byte slice, tracking
// both a cursor into that slice and the slice's absolute offset within the
// file (used only to annotate errors; the Reader itself never seeks).
type Reader struct {
	data   []byte
	pos    int
	base   int64
	logger *logging.Logger
}

// NewReader wraps data (already materialized in memory by the physical
// framing layer) for codec-level decoding. base is the absolute file
// offset of data[0], used to report accurate error offsets.
func NewReader(data []byte, base int64, logger *logging.Logger) *Reader {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Reader{data: data, base: base, logger: logger}
}

// Pos returns the current cursor position within the window.
func (r *Reader) Pos() int { return r.pos }

// SeekTo repositions the cursor within the window, used by callers that
// need to peek a descriptor byte without consuming it.
func (r *Reader) SeekTo(pos int) { r.pos = pos }

// Len returns the number of unread bytes remaining in the window.
func (r *Reader) Len() int { return len(r.data) - r.pos }

// Remaining returns a copy-free view of the unread bytes.
func (r *Reader) Remaining() []byte { return r.data[r.pos:] }

// Slice returns the raw bytes between two cursor positions previously
// obtained from Pos, used by callers that need to fingerprint or
// re-examine a byte range they've already parsed.
func (r *Reader) Slice(start, end int) []byte { return r.data[start:end] }

func (r *Reader) offset() int64 { return r.base + int64(r.pos) }

func (r *Reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, dliserr.New(dliserr.ShortRead, r.offset(),
			fmt.Sprintf("need %d bytes, have %d", n, r.Len()))
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadByte reads the single next byte without any representation-code interpretation.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// FSHORT (code 1): 16-bit signed fixed-point value per Appendix B, stored
// here as the signed 16-bit integer it encodes.
func (r *Reader) FSHORT() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	v := int16(uint16(b[0])<<8 | uint16(b[1]))
	r.logger.Trace("decoded FSHORT", "offset", r.offset()-2, "value", v)
	return v, nil
}

// FSINGL (code 2): IEEE 754 single precision.
func (r *Reader) FSINGL() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	bits := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return math.Float32frombits(bits), nil
}

// FSING1 (code 3): value and half-width, validated (half-width >= 0).
type FSing1 struct {
	Value     float32
	HalfWidth float32
}

func (r *Reader) FSING1() (FSing1, error) {
	v, err := r.FSINGL()
	if err != nil {
		return FSing1{}, err
	}
	hw, err := r.FSINGL()
	if err != nil {
		return FSing1{}, err
	}
	if hw < 0 {
		return FSing1{}, dliserr.New(dliserr.BadDescriptor, r.offset(), "FSING1 half-width is negative")
	}
	return FSing1{Value: v, HalfWidth: hw}, nil
}

// FSING2 (code 4): value, lower bound, upper bound (validated lower <= value <= upper).
type FSing2 struct {
	Value, LowerBound, UpperBound float32
}

func (r *Reader) FSING2() (FSing2, error) {
	v, err := r.FSINGL()
	if err != nil {
		return FSing2{}, err
	}
	lo, err := r.FSINGL()
	if err != nil {
		return FSing2{}, err
	}
	hi, err := r.FSINGL()
	if err != nil {
		return FSing2{}, err
	}
	if lo > v || v > hi {
		return FSing2{}, dliserr.New(dliserr.BadDescriptor, r.offset(), "FSING2 bounds do not contain value")
	}
	return FSing2{Value: v, LowerBound: lo, UpperBound: hi}, nil
}

// ISINGL (code 5): IBM/370 single-precision hexadecimal floating point,
// 4 bytes: sign + 7-bit exponent (excess 64), 24-bit fraction, base 16.
func (r *Reader) ISINGL() (float64, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	sign := 1.0
	if b[0]&0x80 != 0 {
		sign = -1.0
	}
	exponent := int(b[0]&0x7F) - 64
	fraction := float64(uint32(b[1])<<16|uint32(b[2])<<8|uint32(b[3])) / float64(1<<24)
	return sign * fraction * math.Pow(16, float64(exponent)), nil
}

// VSINGL (code 6): VAX single-precision floating point, reinterpreted here
// as IEEE 754 single precision after the VAX word-swap.
func (r *Reader) VSINGL() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	// VAX F_floating stores words swapped relative to IEEE: swap 16-bit halves.
	bits := uint32(b[2])<<24 | uint32(b[3])<<16 | uint32(b[0])<<8 | uint32(b[1])
	return math.Float32frombits(bits), nil
}

// FDOUBL (code 7): IEEE 754 double precision.
func (r *Reader) FDOUBL() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	var bits uint64
	for _, x := range b {
		bits = bits<<8 | uint64(x)
	}
	return math.Float64frombits(bits), nil
}

// FDOUB1 (code 8): double value and half-width.
type FDoub1 struct {
	Value     float64
	HalfWidth float64
}

func (r *Reader) FDOUB1() (FDoub1, error) {
	v, err := r.FDOUBL()
	if err != nil {
		return FDoub1{}, err
	}
	hw, err := r.FDOUBL()
	if err != nil {
		return FDoub1{}, err
	}
	return FDoub1{Value: v, HalfWidth: hw}, nil
}

// FDOUB2 (code 9): double value, lower bound, upper bound.
type FDoub2 struct {
	Value, LowerBound, UpperBound float64
}

func (r *Reader) FDOUB2() (FDoub2, error) {
	v, err := r.FDOUBL()
	if err != nil {
		return FDoub2{}, err
	}
	lo, err := r.FDOUBL()
	if err != nil {
		return FDoub2{}, err
	}
	hi, err := r.FDOUBL()
	if err != nil {
		return FDoub2{}, err
	}
	return FDoub2{Value: v, LowerBound: lo, UpperBound: hi}, nil
}

// Complex is a real/imaginary pair shared by CSINGL and CDOUBL.
type Complex struct {
	Real, Imaginary float64
}

// CSINGL (code 10): single-precision complex pair.
func (r *Reader) CSINGL() (Complex, error) {
	re, err := r.FSINGL()
	if err != nil {
		return Complex{}, err
	}
	im, err := r.FSINGL()
	if err != nil {
		return Complex{}, err
	}
	return Complex{Real: float64(re), Imaginary: float64(im)}, nil
}

// CDOUBL (code 11): double-precision complex pair.
func (r *Reader) CDOUBL() (Complex, error) {
	re, err := r.FDOUBL()
	if err != nil {
		return Complex{}, err
	}
	im, err := r.FDOUBL()
	if err != nil {
		return Complex{}, err
	}
	return Complex{Real: re, Imaginary: im}, nil
}

// SSHORT (code 12): signed 8-bit integer.
func (r *Reader) SSHORT() (int8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// SNORM (code 13): signed 16-bit integer.
func (r *Reader) SNORM() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return int16(uint16(b[0])<<8 | uint16(b[1])), nil
}

// SLONG (code 14): signed 32-bit integer.
func (r *Reader) SLONG() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])), nil
}

// USHORT (code 15): unsigned 8-bit integer.
func (r *Reader) USHORT() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// UNORM (code 16): unsigned 16-bit integer.
func (r *Reader) UNORM() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// ULONG (code 17): unsigned 32-bit integer.
func (r *Reader) ULONG() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// UVARI (code 18): variable-length unsigned integer. The top bits of the
// first byte select the encoding width: a clear top bit means 7 usable
// bits in 1 byte; "10" means 14 usable bits in 2 bytes; "11" means 30
// usable bits in 4 bytes.
func (r *Reader) UVARI() (uint32, error) {
	first, err := r.take(1)
	if err != nil {
		return 0, err
	}
	lead := first[0]
	switch {
	case lead&0x80 == 0:
		return uint32(lead), nil
	case lead&0xC0 == 0x80:
		rest, err := r.take(1)
		if err != nil {
			return 0, err
		}
		return uint32(lead&0x3F)<<8 | uint32(rest[0]), nil
	default: // 0xC0
		rest, err := r.take(3)
		if err != nil {
			return 0, err
		}
		return uint32(lead&0x3F)<<24 | uint32(rest[0])<<16 | uint32(rest[1])<<8 | uint32(rest[2]), nil
	}
}

// IDENT (code 19): 1-byte length prefix followed by text, decoded with the
// ASCII -> CP-1252 -> ISO-8859-1 fallback chain.
func (r *Reader) IDENT() (string, error) {
	n, err := r.take(1)
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n[0]))
	if err != nil {
		return "", err
	}
	s, ok := decodeText(b)
	if !ok {
		return "", dliserr.New(dliserr.EncodingFallbackExhausted, r.offset(), "IDENT text decode failed")
	}
	return s, nil
}

// ASCII (code 20): UVARI-prefixed length followed by text, same fallback
// chain as IDENT.
func (r *Reader) ASCII() (string, error) {
	n, err := r.UVARI()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	s, ok := decodeText(b)
	if !ok {
		return "", dliserr.New(dliserr.EncodingFallbackExhausted, r.offset(), "ASCII text decode failed")
	}
	return s, nil
}

// DTimeZone is the DLIS time-zone tag carried in DTIME's month byte.
type DTimeZone uint8

const (
	LocalStandardTime DTimeZone = iota
	LocalDaylightTime
	GreenwichMeanTime
)

func (z DTimeZone) String() string {
	switch z {
	case LocalStandardTime:
		return "LocalStandardTime"
	case LocalDaylightTime:
		return "LocalDaylightSavings"
	case GreenwichMeanTime:
		return "GMT"
	default:
		return fmt.Sprintf("DTimeZone(%d)", uint8(z))
	}
}

// DTime is the decoded value of representation code 21: a calendar
// date/time with a DLIS-specific time-zone tag and millisecond precision.
type DTime struct {
	Year        int
	Zone        DTimeZone
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// DTIME (code 21): 8 bytes — year (+1900), a byte whose high nibble is the
// time-zone tag and low nibble the month, day, hour, minute, second, and
// a 2-byte millisecond count scaled to microseconds by the caller if needed.
func (r *Reader) DTIME() (DTime, error) {
	b, err := r.take(8)
	if err != nil {
		return DTime{}, err
	}
	zone := DTimeZone(b[1] >> 4)
	month := int(b[1] & 0x0F)
	ms := int(b[6])<<8 | int(b[7])
	return DTime{
		Year:        int(b[0]) + 1900,
		Zone:        zone,
		Month:       month,
		Day:         int(b[2]),
		Hour:        int(b[3]),
		Minute:      int(b[4]),
		Second:      int(b[5]),
		Millisecond: ms,
	}, nil
}

// ORIGIN (code 22): alias of UVARI.
func (r *Reader) ORIGIN() (uint32, error) { return r.UVARI() }

// ObName is an Object Name: the (origin, copy, identifier) triple used as
// an Object's name and as a map key wherever Sets and Frame Data refer to
// objects by name. It is directly comparable, so it can be used as a map
// key without a custom hash.
type ObName struct {
	Origin     uint32
	Copy       uint8
	Identifier string
}

func (o ObName) String() string {
	return fmt.Sprintf("%d-%d-%s", o.Origin, o.Copy, o.Identifier)
}

// OBNAME (code 23): origin (UVARI), copy (USHORT), identifier (IDENT).
func (r *Reader) OBNAME() (ObName, error) {
	origin, err := r.ORIGIN()
	if err != nil {
		return ObName{}, err
	}
	copyNum, err := r.USHORT()
	if err != nil {
		return ObName{}, err
	}
	ident, err := r.IDENT()
	if err != nil {
		return ObName{}, err
	}
	return ObName{Origin: origin, Copy: copyNum, Identifier: ident}, nil
}

// ObjRef is an Object Reference: a type name plus the Object Name it points to.
type ObjRef struct {
	Type string
	Name ObName
}

// OBJREF (code 24): type (IDENT), origin (ORIGIN), copy (UVARI), identifier (IDENT).
func (r *Reader) OBJREF() (ObjRef, error) {
	typ, err := r.IDENT()
	if err != nil {
		return ObjRef{}, err
	}
	origin, err := r.ORIGIN()
	if err != nil {
		return ObjRef{}, err
	}
	copyNum, err := r.UVARI()
	if err != nil {
		return ObjRef{}, err
	}
	ident, err := r.IDENT()
	if err != nil {
		return ObjRef{}, err
	}
	return ObjRef{Type: typ, Name: ObName{Origin: origin, Copy: uint8(copyNum), Identifier: ident}}, nil
}

// AttRef is an Attribute Reference: an OBJREF plus the label of the
// specific attribute within the referenced object.
type AttRef struct {
	ObjRef
	Label string
}

// ATTREF (code 25): OBJREF followed by a trailing label (IDENT).
func (r *Reader) ATTREF() (AttRef, error) {
	ref, err := r.OBJREF()
	if err != nil {
		return AttRef{}, err
	}
	label, err := r.IDENT()
	if err != nil {
		return AttRef{}, err
	}
	return AttRef{ObjRef: ref, Label: label}, nil
}

// STATUS (code 26): a 1-byte boolean; 1 means allowed/true/on.
func (r *Reader) STATUS() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	return b[0] == 1, nil
}

// UNITS (code 27): alias of ASCII.
func (r *Reader) UNITS() (string, error) { return r.ASCII() }

// ReadValue reads a single value of the given representation code and
// returns it boxed as interface{}, for callers (Attribute decode, Frame
// Data decode) that dispatch on a runtime code rather than a compile-time
// codec name.
func (r *Reader) ReadValue(code int) (interface{}, error) {
	switch code {
	case 1:
		return r.FSHORT()
	case 2:
		return r.FSINGL()
	case 3:
		return r.FSING1()
	case 4:
		return r.FSING2()
	case 5:
		return r.ISINGL()
	case 6:
		return r.VSINGL()
	case 7:
		return r.FDOUBL()
	case 8:
		return r.FDOUB1()
	case 9:
		return r.FDOUB2()
	case 10:
		return r.CSINGL()
	case 11:
		return r.CDOUBL()
	case 12:
		return r.SSHORT()
	case 13:
		return r.SNORM()
	case 14:
		return r.SLONG()
	case 15:
		return r.USHORT()
	case 16:
		return r.UNORM()
	case 17:
		return r.ULONG()
	case 18:
		return r.UVARI()
	case 19:
		return r.IDENT()
	case 20:
		return r.ASCII()
	case 21:
		return r.DTIME()
	case 22:
		return r.ORIGIN()
	case 23:
		return r.OBNAME()
	case 24:
		return r.OBJREF()
	case 25:
		return r.ATTREF()
	case 26:
		return r.STATUS()
	case 27:
		return r.UNITS()
	default:
		return nil, dliserr.New(dliserr.UnsupportedCode, r.offset(), fmt.Sprintf("representation code %d", code))
	}
}
