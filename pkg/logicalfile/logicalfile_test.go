package logicalfile

import (
	"bytes"
	"testing"

	"github.com/bgrewell/dlis-kit/pkg/eflr"
	"github.com/bgrewell/dlis-kit/pkg/logicalrecord"
	"github.com/bgrewell/dlis-kit/pkg/physical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(s string) []byte {
	return append([]byte{byte(len(s))}, []byte(s)...)
}

func obname(origin byte, copyNum byte, identifier string) []byte {
	b := []byte{origin, copyNum}
	return append(b, ident(identifier)...)
}

func fileHeaderBody() []byte {
	var b []byte
	b = append(b, 0xF0)
	b = append(b, ident("FILE-HEADER")...)
	b = append(b, 0x30) // Attribute + hasLabel
	b = append(b, ident("SEQUENCE-NUMBER")...)
	b = append(b, 0x70) // Object + hasName
	b = append(b, obname(1, 0, "FILE")...)
	b = append(b, 0x21) // Attribute + hasValue (default RepCode IDENT)
	b = append(b, ident("1")...)
	return b
}

func channelBody() []byte {
	var b []byte
	b = append(b, 0xF0)
	b = append(b, ident("CHANNEL")...)
	for _, label := range []string{"REPRESENTATION-CODE", "UNITS", "DIMENSION"} {
		b = append(b, 0x30)
		b = append(b, ident(label)...)
	}
	b = append(b, 0x70)
	b = append(b, obname(1, 0, "DEPT")...)
	// REPRESENTATION-CODE: repCode+value, repCode=USHORT(15), value=FSINGL(2)
	b = append(b, 0x25, 0x0F, 0x02)
	// UNITS: value only, default RepCode IDENT
	b = append(b, 0x21)
	b = append(b, ident("FT")...)
	// DIMENSION: repCode+value, repCode=UVARI(18), value=1 (1-byte UVARI)
	b = append(b, 0x25, 0x12, 0x01)
	return b
}

func frameBody() []byte {
	var b []byte
	b = append(b, 0xF0)
	b = append(b, ident("FRAME")...)
	b = append(b, 0x30)
	b = append(b, ident("CHANNELS")...)
	b = append(b, 0x70)
	b = append(b, obname(1, 0, "MAIN")...)
	// CHANNELS: repCode+value, repCode=OBNAME(23)
	b = append(b, 0x25, 0x17)
	b = append(b, obname(1, 0, "DEPT")...)
	return b
}

func frameDataBody() []byte {
	var b []byte
	b = append(b, obname(1, 0, "MAIN")...)
	b = append(b, 0x05) // UVARI frame number 5
	b = append(b, 0x42, 0xc8, 0x00, 0x00) // FSINGL 100.0
	return b
}

func eflrRecord(lrType uint8, body []byte) *logicalrecord.LogicalRecord {
	seg := &physical.LogicalRecordSegment{
		IsEFLR: true,
		LRType: lrType,
		Body:   body,
	}
	return &logicalrecord.LogicalRecord{IsEFLR: true, LRType: lrType, Segments: []*physical.LogicalRecordSegment{seg}}
}

func iflrRecord(lrType uint8, body []byte) *logicalrecord.LogicalRecord {
	seg := &physical.LogicalRecordSegment{
		IsEFLR: false,
		LRType: lrType,
		Body:   body,
	}
	return &logicalrecord.LogicalRecord{IsEFLR: false, LRType: lrType, Segments: []*physical.LogicalRecordSegment{seg}}
}

func TestSplitBuildsLogicalFileWithFrameData(t *testing.T) {
	records := []*logicalrecord.LogicalRecord{
		eflrRecord(0, fileHeaderBody()),
		eflrRecord(3, channelBody()),
		eflrRecord(4, frameBody()),
		iflrRecord(0, frameDataBody()),
	}

	files, err := Split(records, bytes.NewReader(nil), true, false, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)

	lf := files[0]
	assert.Equal(t, eflr.KindFileHeader, lf.FileHeader.Kind)
	assert.Len(t, lf.Channels, 1)
	assert.Len(t, lf.Frames, 1)
	require.Len(t, lf.FrameData, 1)

	fd := lf.FrameData[0]
	assert.Equal(t, uint32(5), fd.FrameNumber)
	require.Len(t, fd.Channels, 1)
	assert.Equal(t, "DEPT", fd.Channels[0].Channel.Identifier)
	assert.InDelta(t, float32(100.0), fd.Channels[0].Value.(float32), 0.001)
}

func TestSplitStrictFramingRejectsUnclassifiedType(t *testing.T) {
	records := []*logicalrecord.LogicalRecord{
		eflrRecord(0, fileHeaderBody()),
		eflrRecord(11, channelBody()), // type 11 has no named classification
	}

	_, err := Split(records, bytes.NewReader(nil), true, true, nil)
	assert.Error(t, err)

	// non-strict mode accepts the same input as an Unknown-kind EFLR.
	files, err := Split(records, bytes.NewReader(nil), true, false, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Len(t, files[0].EFLRs, 2) // File-Header, then the type-11 record
	assert.Equal(t, eflr.KindUnknown, files[0].EFLRs[1].Kind)
}

func TestSplitDefersIFLRDecodeUntilLoadIFLR(t *testing.T) {
	records := []*logicalrecord.LogicalRecord{
		eflrRecord(0, fileHeaderBody()),
		eflrRecord(3, channelBody()),
		eflrRecord(4, frameBody()),
		iflrRecord(0, frameDataBody()),
	}

	src := bytes.NewReader(frameDataBody())
	files, err := Split(records, src, false, false, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)

	lf := files[0]
	assert.Empty(t, lf.FrameData, "IFLR decode must be deferred when decodeIFLRs is false")

	require.NoError(t, lf.LoadIFLR(src))
	require.Len(t, lf.FrameData, 1)
	assert.Equal(t, uint32(5), lf.FrameData[0].FrameNumber)

	// second call is a no-op, not a duplicate decode
	require.NoError(t, lf.LoadIFLR(src))
	assert.Len(t, lf.FrameData, 1)
}

func TestSplitDropsDanglingFrameRef(t *testing.T) {
	records := []*logicalrecord.LogicalRecord{
		eflrRecord(0, fileHeaderBody()),
		iflrRecord(0, frameDataBody()), // references frame "MAIN" which was never defined
	}

	files, err := Split(records, bytes.NewReader(nil), true, false, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Empty(t, files[0].FrameData)
}
