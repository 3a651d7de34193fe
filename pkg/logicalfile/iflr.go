package logicalfile

import (
	"io"

	"github.com/bgrewell/dlis-kit/pkg/dliserr"
	"github.com/bgrewell/dlis-kit/pkg/logging"
	"github.com/bgrewell/dlis-kit/pkg/logicalrecord"
	"github.com/bgrewell/dlis-kit/pkg/rpcode"
)

// ChannelValue is one channel's decoded slot within a Frame-Data IFLR: a
// scalar when the channel's elementsPerSlot is 1, or an ordered
// []interface{} otherwise.
type ChannelValue struct {
	Channel rpcode.ObName
	Value   interface{}
}

// FrameData is a decoded Frame-Data IFLR (logical-record type 0).
type FrameData struct {
	Frame       rpcode.ObName
	FrameNumber uint32
	Channels    []ChannelValue
}

// UnformattedData is a decoded Unformatted-Data IFLR (logical-record type
// 1): a data-descriptor reference plus the remaining bytes, preserved
// verbatim. The data-descriptor is not resolved against the UDI EFLR here;
// callers that need the NO-FORMAT object look it up by name themselves.
type UnformattedData struct {
	DataDescriptor rpcode.ObName
	Blob           []byte
}

// EndOfData is a decoded End-of-Data IFLR (logical-record type 127).
type EndOfData struct {
	DataDescriptor rpcode.ObName
	// EndedType is the logical-record type of the record this marks the
	// end of, when present; nil when the trailing USHORT byte is absent.
	EndedType *uint8
}

// PrivateIFLR is an IFLR whose type code this decoder doesn't know how to
// interpret (anything other than 0, 1, 127), preserved as opaque bytes.
type PrivateIFLR struct {
	LRType uint8
	Data   []byte
}

// DecodeFrameData decodes a Frame-Data IFLR body against lf's Channels/
// Frames side-tables. Returns a dliserr.DanglingFrameRef error (non-fatal
// to the owning Logical File; callers log and skip) when the frame or one
// of its channels is unknown.
func DecodeFrameData(data []byte, base int64, lf *LogicalFile, logger *logging.Logger) (*FrameData, error) {
	r := rpcode.NewReader(data, base, logger)

	frameName, err := r.OBNAME()
	if err != nil {
		return nil, err
	}
	frame, ok := lf.Frames[frameName]
	if !ok {
		return nil, dliserr.New(dliserr.DanglingFrameRef, base,
			"frame data references unknown frame "+frameName.String())
	}
	if frame.Encrypted {
		return nil, dliserr.New(dliserr.EncryptedUnsupported, base,
			"frame "+frameName.String()+" is encrypted; skipping its frame data")
	}

	frameNumber, err := r.UVARI()
	if err != nil {
		return nil, err
	}

	fd := &FrameData{Frame: frameName, FrameNumber: frameNumber}
	for _, chName := range frame.ChannelNames {
		ch, ok := lf.Channels[chName]
		if !ok {
			return nil, dliserr.New(dliserr.DanglingFrameRef, base,
				"frame data references unknown channel "+chName.String())
		}
		n := ch.ElementsPerSlot
		if n <= 0 {
			n = 1
		}
		if n == 1 {
			v, err := r.ReadValue(ch.RepCode)
			if err != nil {
				return nil, err
			}
			fd.Channels = append(fd.Channels, ChannelValue{Channel: chName, Value: v})
			continue
		}
		values := make([]interface{}, n)
		for i := 0; i < n; i++ {
			v, err := r.ReadValue(ch.RepCode)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		fd.Channels = append(fd.Channels, ChannelValue{Channel: chName, Value: values})
	}
	return fd, nil
}

// decodeIFLRRecord decodes one IFLR, already materialized into body,
// against lf's side-tables and appends the result to lf's collections.
// Dangling frame/channel references and encrypted frames are logged and
// dropped rather than treated as fatal; shared by Split's eager path and
// LoadIFLR's deferred path so the dispatch logic lives in exactly one
// place.
func decodeIFLRRecord(lr *logicalrecord.LogicalRecord, body []byte, base int64, lf *LogicalFile, logger *logging.Logger) error {
	switch lr.LRType {
	case 0:
		fd, err := DecodeFrameData(body, base, lf, logger)
		if err != nil {
			if dliserr.Is(err, dliserr.DanglingFrameRef) || dliserr.Is(err, dliserr.EncryptedUnsupported) {
				logger.Error(err, "dropping frame data record")
				return nil
			}
			return err
		}
		lf.FrameData = append(lf.FrameData, fd)
	case 1:
		ud, err := DecodeUnformattedData(body, base, logger)
		if err != nil {
			return err
		}
		lf.UnformattedData = append(lf.UnformattedData, ud)
	case 127:
		eod, err := DecodeEndOfData(body, base, logger)
		if err != nil {
			return err
		}
		lf.EndOfData = append(lf.EndOfData, eod)
	default:
		lf.PrivateIFLRs = append(lf.PrivateIFLRs, &PrivateIFLR{LRType: lr.LRType, Data: body})
	}
	return nil
}

// LoadIFLR materializes and decodes every IFLR Split deferred for lf
// (because decodeIFLRs was false), reading each one's body from src
// exactly once. Idempotent: a second call, or a call on a Logical File
// with nothing deferred, is a no-op.
func (lf *LogicalFile) LoadIFLR(src io.ReaderAt) error {
	if lf.iflrLoaded {
		return nil
	}

	logger := lf.logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	for _, lr := range lf.pendingIFLRs {
		body, err := lr.Body(src)
		if err != nil {
			return err
		}
		base := lr.Segments[0].BodyOffset
		if err := decodeIFLRRecord(lr, body, base, lf, logger); err != nil {
			return err
		}
	}

	lf.pendingIFLRs = nil
	lf.iflrLoaded = true
	return nil
}

// DecodeUnformattedData decodes an Unformatted-Data IFLR body: a
// data-descriptor OBNAME followed by the verbatim blob.
func DecodeUnformattedData(data []byte, base int64, logger *logging.Logger) (*UnformattedData, error) {
	r := rpcode.NewReader(data, base, logger)
	name, err := r.OBNAME()
	if err != nil {
		return nil, err
	}
	blob := make([]byte, len(r.Remaining()))
	copy(blob, r.Remaining())
	return &UnformattedData{DataDescriptor: name, Blob: blob}, nil
}

// DecodeEndOfData decodes an End-of-Data IFLR body: a data-descriptor
// OBNAME, then an optional trailing USHORT naming the ended record's
// logical-record type.
func DecodeEndOfData(data []byte, base int64, logger *logging.Logger) (*EndOfData, error) {
	r := rpcode.NewReader(data, base, logger)
	name, err := r.OBNAME()
	if err != nil {
		return nil, err
	}
	eod := &EndOfData{DataDescriptor: name}
	if r.Len() > 0 {
		b, err := r.USHORT()
		if err != nil {
			return nil, err
		}
		ended := uint8(b)
		eod.EndedType = &ended
	}
	return eod, nil
}
