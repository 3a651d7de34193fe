package physical

import (
	"fmt"
	"io"

	"github.com/bgrewell/dlis-kit/pkg/consts"
	"github.com/bgrewell/dlis-kit/pkg/dliserr"
	"github.com/bgrewell/dlis-kit/pkg/logging"
)

// EncryptionPacket is the optional header carried by an encrypted
// Logical Record Segment. Its length and producer code are decoded;
// payload bytes are preserved verbatim since this decoder never decrypts.
type EncryptionPacket struct {
	Length      uint16
	ProducerCode uint16
	Payload     []byte
}

// totalLen is the number of bytes the encryption packet occupies,
// including its own 2+2 byte header, as declared by Length.
func (p *EncryptionPacket) totalLen() int { return int(p.Length) }

// LogicalRecordSegment is one physically-framed chunk of a Logical
// Record: a header, an optional encryption packet, a body, and an
// optional trailer (padding, checksum, trailing length).
type LogicalRecordSegment struct {
	StartPos int64
	SegLen   uint16

	IsEFLR              bool
	HasPredecessor      bool
	HasSuccessor        bool
	Encrypted           bool
	HasEncryptionPacket bool
	HasChecksum         bool
	HasTrailingLength   bool
	HasPadding          bool

	LRType uint8

	Encryption *EncryptionPacket

	// Body holds the eagerly-read record body for unencrypted EFLR
	// segments. BodyOffset/BodyLen describe where to lazily read the
	// body from for everything else (IFLR segments, encrypted EFLRs).
	Body       []byte
	BodyOffset int64
	BodyLen    int

	PadCount       uint8
	Checksum       uint16
	TrailingLength uint16
}

// EndPos is the absolute offset one past the last byte of this segment.
func (s *LogicalRecordSegment) EndPos() int64 { return s.StartPos + int64(s.SegLen) }

func (s *LogicalRecordSegment) hasTrailer() bool {
	return s.HasPadding || s.HasChecksum || s.HasTrailingLength
}

// ParseLRS reads one Logical Record Segment starting at the reader's
// current position. r must support Seek: the trailer's padding-count
// byte is read out of order (at a computed offset near the segment's
// end) before the body is read, then the cursor is restored.
func ParseLRS(r io.ReadSeeker, logger *logging.Logger) (*LogicalRecordSegment, error) {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	startPos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	hdr := make([]byte, consts.LRS_HEADER_LENGTH)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, dliserr.Wrap(dliserr.ShortRead, startPos, "reading LRS header", err)
	}

	segLen := uint16(hdr[0])<<8 | uint16(hdr[1])
	if segLen%2 != 0 || segLen < consts.LRS_MIN_LENGTH {
		return nil, dliserr.New(dliserr.FramingInvariant, startPos,
			fmt.Sprintf("illegal LRS length %d (must be even and >= %d)", segLen, consts.LRS_MIN_LENGTH))
	}

	attrs := hdr[2]
	seg := &LogicalRecordSegment{
		StartPos:            startPos,
		SegLen:              segLen,
		IsEFLR:              attrs&consts.LRS_ATTR_IS_EFLR != 0,
		HasPredecessor:      attrs&consts.LRS_ATTR_HAS_PREDECESSOR != 0,
		HasSuccessor:        attrs&consts.LRS_ATTR_HAS_SUCCESSOR != 0,
		Encrypted:           attrs&consts.LRS_ATTR_ENCRYPTED != 0,
		HasEncryptionPacket: attrs&consts.LRS_ATTR_HAS_ENCRYPTION_PACKET != 0,
		HasChecksum:         attrs&consts.LRS_ATTR_HAS_CHECKSUM != 0,
		HasTrailingLength:   attrs&consts.LRS_ATTR_HAS_TRAILING_LENGTH != 0,
		HasPadding:          attrs&consts.LRS_ATTR_HAS_PADDING != 0,
		LRType:              hdr[3],
	}

	dataLen := int(segLen) - consts.LRS_HEADER_LENGTH

	trailerLen, err := computeTrailerLength(r, seg)
	if err != nil {
		return nil, err
	}
	dataLen -= trailerLen

	if seg.HasEncryptionPacket {
		pkt, err := readEncryptionPacket(r)
		if err != nil {
			return nil, err
		}
		seg.Encryption = pkt
		dataLen -= pkt.totalLen()
	}

	if !seg.Encrypted && dataLen < 0 {
		return nil, dliserr.New(dliserr.FramingInvariant, startPos,
			fmt.Sprintf("negative data length %d", dataLen))
	}

	if err := readBody(r, seg, dataLen); err != nil {
		return nil, err
	}

	if err := readTrailer(r, seg); err != nil {
		return nil, err
	}

	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	if pos != seg.EndPos() {
		return nil, dliserr.New(dliserr.FramingInvariant, pos,
			fmt.Sprintf("LRS parse ended at %d, expected %d", pos, seg.EndPos()))
	}

	logger.Trace("parsed LRS", "start", startPos, "len", segLen, "isEFLR", seg.IsEFLR,
		"hasSuccessor", seg.HasSuccessor, "lrType", seg.LRType)
	return seg, nil
}

// computeTrailerLength determines the number of trailer bytes (padding +
// checksum + trailing length) without disturbing the reader's position
// relative to the header, since the pad-count byte lives near the
// segment's end and must be read out of order.
func computeTrailerLength(r io.ReadSeeker, seg *LogicalRecordSegment) (int, error) {
	trailerLen := 0
	if seg.HasTrailingLength {
		trailerLen += consts.LRS_TRAILING_LENGTH_LENGTH
	}
	if seg.HasChecksum {
		trailerLen += consts.LRS_CHECKSUM_LENGTH
	}
	if seg.HasPadding {
		currPos, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, err
		}

		padCountPos := seg.EndPos() - 1
		switch {
		case seg.HasTrailingLength && seg.HasChecksum:
			padCountPos -= int64(consts.LRS_TRAILING_LENGTH_LENGTH + consts.LRS_CHECKSUM_LENGTH)
		case seg.HasTrailingLength:
			padCountPos -= int64(consts.LRS_TRAILING_LENGTH_LENGTH)
		case seg.HasChecksum:
			padCountPos -= int64(consts.LRS_CHECKSUM_LENGTH)
		}

		if _, err := r.Seek(padCountPos, io.SeekStart); err != nil {
			return 0, err
		}
		var padByte [1]byte
		if _, err := io.ReadFull(r, padByte[:]); err != nil {
			return 0, dliserr.Wrap(dliserr.ShortRead, padCountPos, "reading LRS pad count", err)
		}
		seg.PadCount = padByte[0]

		if _, err := r.Seek(currPos, io.SeekStart); err != nil {
			return 0, err
		}
	}
	trailerLen += int(seg.PadCount)
	return trailerLen, nil
}

func readEncryptionPacket(r io.ReadSeeker) (*EncryptionPacket, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, dliserr.Wrap(dliserr.ShortRead, 0, "reading encryption packet header", err)
	}
	length := uint16(hdr[0])<<8 | uint16(hdr[1])
	prodCode := uint16(hdr[2])<<8 | uint16(hdr[3])
	payLen := int(length) - 4
	if payLen < 0 {
		return nil, dliserr.New(dliserr.FramingInvariant, 0, fmt.Sprintf("negative encryption payload %d", payLen))
	}
	payload := make([]byte, payLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, dliserr.Wrap(dliserr.ShortRead, 0, "reading encryption payload", err)
	}
	return &EncryptionPacket{Length: length, ProducerCode: prodCode, Payload: payload}, nil
}

func readBody(r io.ReadSeeker, seg *LogicalRecordSegment, dataLen int) error {
	if !seg.IsEFLR || seg.Encrypted {
		pos, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		seg.BodyOffset = pos
		seg.BodyLen = dataLen
		if _, err := r.Seek(int64(dataLen), io.SeekCurrent); err != nil {
			return err
		}
		return nil
	}
	body := make([]byte, dataLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return dliserr.Wrap(dliserr.ShortRead, seg.StartPos, "reading EFLR body", err)
	}
	seg.Body = body
	return nil
}

func readTrailer(r io.ReadSeeker, seg *LogicalRecordSegment) error {
	if !seg.hasTrailer() {
		return nil
	}
	if seg.HasPadding {
		if _, err := r.Seek(int64(seg.PadCount), io.SeekCurrent); err != nil {
			return err
		}
	}
	if seg.HasChecksum {
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return dliserr.Wrap(dliserr.ShortRead, 0, "reading LRS checksum", err)
		}
		seg.Checksum = uint16(b[0])<<8 | uint16(b[1])
	}
	if seg.HasTrailingLength {
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return dliserr.Wrap(dliserr.ShortRead, 0, "reading LRS trailing length", err)
		}
		seg.TrailingLength = uint16(b[0])<<8 | uint16(b[1])
		if seg.TrailingLength != seg.SegLen {
			return dliserr.New(dliserr.FramingInvariant, 0,
				fmt.Sprintf("trailing length %d does not match header length %d", seg.TrailingLength, seg.SegLen))
		}
	}
	return nil
}

// MaterializeBody returns this segment's body, reading it from src on
// first call and caching the result. Eagerly-read EFLR bodies are
// returned immediately without touching src.
func (s *LogicalRecordSegment) MaterializeBody(src io.ReaderAt) ([]byte, error) {
	if s.Body != nil {
		return s.Body, nil
	}
	if s.BodyLen == 0 {
		return nil, nil
	}
	buf := make([]byte, s.BodyLen)
	if _, err := src.ReadAt(buf, s.BodyOffset); err != nil {
		return nil, dliserr.Wrap(dliserr.ShortRead, s.BodyOffset, "materializing lazy LRS body", err)
	}
	s.Body = buf
	return buf, nil
}
