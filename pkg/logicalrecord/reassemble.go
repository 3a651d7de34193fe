// Package logicalrecord reassembles the ordered sequence of Logical
// Record Segments produced by physical framing into complete Logical
// Records.
package logicalrecord

import (
	"fmt"
	"io"

	"github.com/bgrewell/dlis-kit/pkg/dliserr"
	"github.com/bgrewell/dlis-kit/pkg/logging"
	"github.com/bgrewell/dlis-kit/pkg/physical"
)

// LogicalRecord is the concatenation of one or more Logical Record
// Segments sharing a single record's isEFLR/encrypted/hasTrailingLength
// attributes.
type LogicalRecord struct {
	IsEFLR    bool
	Encrypted bool
	LRType    uint8
	Segments  []*physical.LogicalRecordSegment
}

// Body returns the concatenation of every segment's body, materializing
// lazy (IFLR or encrypted) bodies from src on demand.
func (lr *LogicalRecord) Body(src io.ReaderAt) ([]byte, error) {
	if len(lr.Segments) == 1 {
		return lr.Segments[0].MaterializeBody(src)
	}
	var out []byte
	for _, seg := range lr.Segments {
		b, err := seg.MaterializeBody(src)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// Reassemble buffers segs (the ordered segment stream from one or more
// Visible Records) into complete Logical Records, one per
// hasSuccessor=false boundary. Any framing-invariant violation aborts
// reassembly: callers that want to recover by skipping to the next
// Visible Record should catch the FormatError and resume from the next
// VR's segments rather than retrying Reassemble on the same slice.
func Reassemble(segs []*physical.LogicalRecordSegment, logger *logging.Logger) ([]*LogicalRecord, error) {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	var records []*LogicalRecord
	var pending []*physical.LogicalRecordSegment

	for _, seg := range segs {
		if len(pending) == 0 {
			if seg.HasPredecessor {
				return nil, dliserr.New(dliserr.FramingInvariant, seg.StartPos,
					"first segment of a Logical Record has hasPredecessor=true")
			}
		} else {
			if !seg.HasPredecessor {
				return nil, dliserr.New(dliserr.FramingInvariant, seg.StartPos,
					"non-first segment of a Logical Record has hasPredecessor=false")
			}
			first := pending[0]
			if seg.IsEFLR != first.IsEFLR || seg.Encrypted != first.Encrypted || seg.HasTrailingLength != first.HasTrailingLength {
				return nil, dliserr.New(dliserr.FramingInvariant, seg.StartPos,
					"segment does not share isEFLR/encrypted/hasTrailingLength with its Logical Record")
			}
		}

		pending = append(pending, seg)

		if !seg.HasSuccessor {
			first := pending[0]
			records = append(records, &LogicalRecord{
				IsEFLR:    first.IsEFLR,
				Encrypted: first.Encrypted,
				LRType:    first.LRType,
				Segments:  pending,
			})
			pending = nil
		}
	}

	if len(pending) > 0 {
		return nil, dliserr.New(dliserr.FramingInvariant, pending[len(pending)-1].EndPos(),
			fmt.Sprintf("%d dangling segment(s) with no terminating hasSuccessor=false", len(pending)))
	}

	logger.Debug("reassembled logical records", "count", len(records))
	return records, nil
}
