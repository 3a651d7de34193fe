package testing

import (
	"testing"

	"github.com/bgrewell/dlis-kit/pkg/component"
	"github.com/bgrewell/dlis-kit/pkg/eflr"
	"github.com/bgrewell/dlis-kit/pkg/logicalfile"
	"github.com/bgrewell/dlis-kit/pkg/rpcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLogicalFiles() []*logicalfile.LogicalFile {
	fileHeaderSet := &component.Set{
		Type:     "FILE-HEADER",
		Template: []component.Attribute{{Label: "SEQUENCE-NUMBER"}, {Label: "ID"}},
		Objects: []component.Object{{
			Name: rpcode.ObName{Origin: 2, Identifier: "FILE"},
			Attributes: []component.Attribute{
				{Label: "SEQUENCE-NUMBER", Value: "1"},
				{Label: "ID", Value: "MSCT_197LTP"},
			},
		}},
	}
	fileHeader := eflr.ClassifySet(fileHeaderSet, 0)

	frameName := rpcode.ObName{Origin: 2, Identifier: "2000T"}
	chA := rpcode.ObName{Origin: 2, Identifier: "A"}

	lf := &logicalfile.LogicalFile{
		FileHeader: fileHeader,
		EFLRs:      []*eflr.ClassifiedEFLR{fileHeader},
		Channels: map[rpcode.ObName]eflr.ChannelInfo{
			chA: {Name: chA, RepCode: 2, ElementsPerSlot: 1},
		},
		Frames: map[rpcode.ObName]eflr.FrameInfo{
			frameName: {Name: frameName, ChannelNames: []rpcode.ObName{chA}},
		},
		FrameData: []*logicalfile.FrameData{
			{Frame: frameName, FrameNumber: 1, Channels: []logicalfile.ChannelValue{{Channel: chA, Value: float32(16677259.0)}}},
			{Frame: frameName, FrameNumber: 921, Channels: []logicalfile.ChannelValue{{Channel: chA, Value: float32(17597260.0)}}},
		},
	}
	return []*logicalfile.LogicalFile{lf}
}

func TestCompareLogicalFilesMatch(t *testing.T) {
	want := []GroundTruthLogicalFile{{
		ID:             "MSCT_197LTP",
		SequenceNumber: "1",
		Frames: []GroundTruthFrame{{
			Origin:     2,
			Identifier: "2000T",
			RowCount:   2,
			FirstRow:   &GroundTruthFrameRow{FrameNumber: 1, Slots: []interface{}{float32(16677259.0)}},
			LastRow:    &GroundTruthFrameRow{FrameNumber: 921, Slots: []interface{}{float32(17597260.0)}},
		}},
	}}

	errs := CompareLogicalFiles(sampleLogicalFiles(), want)
	assert.Empty(t, errs)
}

func TestCompareLogicalFilesMismatch(t *testing.T) {
	want := []GroundTruthLogicalFile{{
		ID: "WRONG_ID",
		Frames: []GroundTruthFrame{{
			Origin:     2,
			Identifier: "2000T",
			RowCount:   3,
		}},
	}}

	errs := CompareLogicalFiles(sampleLogicalFiles(), want)
	require.NotEmpty(t, errs)
	assert.GreaterOrEqual(t, len(errs), 2)
}

func TestChannelSlotLengths(t *testing.T) {
	lengths := ChannelSlotLengths(sampleLogicalFiles()[0], 2, 0, "2000T", "A")
	require.Len(t, lengths, 2)
	assert.Equal(t, 1, lengths[0])
}
