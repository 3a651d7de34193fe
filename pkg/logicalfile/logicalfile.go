// Package logicalfile groups reassembled Logical Records into Logical
// Files (one File-Header EFLR opens each) and decodes the Implicit
// Formatted Logical Records (IFLRs) that follow against the Channel/Frame
// side-tables their owning Logical File accumulated in pass 1.
package logicalfile

import (
	"fmt"

	"github.com/bgrewell/dlis-kit/pkg/eflr"
	"github.com/bgrewell/dlis-kit/pkg/logging"
	"github.com/bgrewell/dlis-kit/pkg/logicalrecord"
	"github.com/bgrewell/dlis-kit/pkg/rpcode"
)

// LogicalFile is every Logical Record between one File-Header EFLR and
// the next (or end of input), with Channel/Frame side-tables resolved and
// every IFLR decoded against them (eagerly, or deferred to LoadIFLR).
type LogicalFile struct {
	FileHeader *eflr.ClassifiedEFLR
	EFLRs      []*eflr.ClassifiedEFLR

	Channels map[rpcode.ObName]eflr.ChannelInfo
	Frames   map[rpcode.ObName]eflr.FrameInfo

	FrameData       []*FrameData
	UnformattedData []*UnformattedData
	EndOfData       []*EndOfData
	PrivateIFLRs    []*PrivateIFLR

	// EncryptedEFLRs holds opaque EFLRs this file could not classify
	// because they were encrypted; only their producer code survives.
	EncryptedEFLRs []*OpaqueEFLR

	// pendingIFLRs holds IFLRs Split captured lazily (offset+length only,
	// via their LogicalRecord's Segments) when decodeIFLRs was false.
	// LoadIFLR materializes and decodes each of these exactly once.
	pendingIFLRs []*logicalrecord.LogicalRecord
	iflrLoaded   bool
	logger       *logging.Logger
}

// newLogicalFile starts a Logical File rooted at header.
func newLogicalFile(header *eflr.ClassifiedEFLR, logger *logging.Logger) *LogicalFile {
	return &LogicalFile{
		FileHeader: header,
		EFLRs:      []*eflr.ClassifiedEFLR{header},
		Channels:   make(map[rpcode.ObName]eflr.ChannelInfo),
		Frames:     make(map[rpcode.ObName]eflr.FrameInfo),
		logger:     logger,
	}
}

// FrameDataByName groups FrameData by the Frame Object Name it belongs
// to (spec.md's frameDataDict), preserving each frame's row order.
func (lf *LogicalFile) FrameDataByName() map[rpcode.ObName][]*FrameData {
	byFrame := make(map[rpcode.ObName][]*FrameData, len(lf.Frames))
	for _, fd := range lf.FrameData {
		byFrame[fd.Frame] = append(byFrame[fd.Frame], fd)
	}
	return byFrame
}

// ID returns the File-Header EFLR's ID attribute value: the identifier a
// bundled writer names this Logical File's output after.
func (lf *LogicalFile) ID() (string, bool) {
	return lf.fileHeaderString("ID")
}

// SeqNum returns the File-Header EFLR's SEQUENCE-NUMBER attribute value.
func (lf *LogicalFile) SeqNum() (string, bool) {
	return lf.fileHeaderString("SEQUENCE-NUMBER")
}

// fileHeaderString resolves label against the File-Header EFLR's single
// object, formatting whatever value it holds as a string.
func (lf *LogicalFile) fileHeaderString(label string) (string, bool) {
	if lf.FileHeader == nil || len(lf.FileHeader.Set.Objects) == 0 {
		return "", false
	}
	attr, ok := lf.FileHeader.Set.ObjectAttribute(lf.FileHeader.Set.Objects[0], label)
	if !ok || attr.Absent || attr.Value == nil {
		return "", false
	}
	return fmt.Sprintf("%v", attr.Value), true
}

// OpaqueEFLR is an EFLR this decoder could not (or chose not to) parse:
// an encrypted record of any type, retained only by its producer code.
type OpaqueEFLR struct {
	LRType       uint8
	ProducerCode uint16
}
