package physical

import (
	"fmt"
	"io"

	"github.com/bgrewell/dlis-kit/pkg/consts"
	"github.com/bgrewell/dlis-kit/pkg/dliserr"
	"github.com/bgrewell/dlis-kit/pkg/logging"
)

// VisibleRecord is one length-prefixed outer frame containing one or more
// back-to-back Logical Record Segments.
type VisibleRecord struct {
	StartPos int64
	Length   uint16
	Segments []*LogicalRecordSegment
}

// EndPos is the absolute offset one past this Visible Record.
func (v *VisibleRecord) EndPos() int64 { return v.StartPos + int64(v.Length) }

// ReadVR reads one Visible Record starting at r's current position: a
// 4-byte header (length, marker, version) followed by Logical Record
// Segments until the record's declared byte budget is exhausted.
func ReadVR(r io.ReadSeeker, logger *logging.Logger) (*VisibleRecord, error) {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	startPos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	hdr := make([]byte, consts.VR_HEADER_LENGTH)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, dliserr.Wrap(dliserr.ShortRead, startPos, "reading Visible Record header", err)
	}

	length := uint16(hdr[0])<<8 | uint16(hdr[1])
	marker := hdr[2]
	version := hdr[3]

	if marker != consts.VR_MARKER {
		return nil, dliserr.New(dliserr.BadMagic, startPos+2, fmt.Sprintf("expected VR marker 0x%02X, got 0x%02X", consts.VR_MARKER, marker))
	}
	if version != consts.VR_VERSION {
		return nil, dliserr.New(dliserr.BadVersion, startPos+3, fmt.Sprintf("unsupported VR version %d", version))
	}

	vr := &VisibleRecord{StartPos: startPos, Length: length}

	for {
		pos, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}
		if pos >= vr.EndPos() {
			break
		}
		seg, err := ParseLRS(r, logger)
		if err != nil {
			return nil, err
		}
		vr.Segments = append(vr.Segments, seg)
	}

	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	if pos != vr.EndPos() {
		return nil, dliserr.New(dliserr.FramingInvariant, pos,
			fmt.Sprintf("Visible Record parse ended at %d, expected %d", pos, vr.EndPos()))
	}

	logger.Debug("parsed Visible Record", "start", startPos, "length", length, "segments", len(vr.Segments))
	return vr, nil
}
