package eflr

import (
	"testing"

	"github.com/bgrewell/dlis-kit/pkg/component"
	"github.com/bgrewell/dlis-kit/pkg/consts"
	"github.com/bgrewell/dlis-kit/pkg/rpcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, KindFileHeader, Classify(0))
	assert.Equal(t, KindChannel, Classify(3))
	assert.Equal(t, KindFrame, Classify(4))
	assert.Equal(t, KindUDI, Classify(8))
	assert.Equal(t, KindPrivate, Classify(42))
	assert.Equal(t, KindUnknown, Classify(11))
}

func TestExtractChannels(t *testing.T) {
	set := &component.Set{
		Type: "CHANNEL",
		Template: []component.Attribute{
			{Label: "REPRESENTATION-CODE", Count: 1, RepCode: consts.RC_USHORT},
			{Label: "UNITS", Count: 1, RepCode: consts.RC_UNITS},
			{Label: "DIMENSION", Count: 1, RepCode: consts.RC_UVARI},
		},
		Objects: []component.Object{
			{
				Name: rpcode.ObName{Origin: 1, Copy: 0, Identifier: "DEPT"},
				Attributes: []component.Attribute{
					{Label: "REPRESENTATION-CODE", Value: uint8(2)},
					{Label: "UNITS", Value: "FT"},
					{Label: "DIMENSION", Value: []interface{}{uint32(1)}},
				},
			},
		},
	}
	infos, err := ExtractChannels(set)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "DEPT", infos[0].Name.Identifier)
	assert.Equal(t, 2, infos[0].RepCode)
	assert.Equal(t, "FT", infos[0].Units)
	assert.Equal(t, []int{1}, infos[0].Dimension)
	assert.Equal(t, 1, infos[0].ElementsPerSlot)
}

func TestExtractFrames(t *testing.T) {
	set := &component.Set{
		Type: "FRAME",
		Template: []component.Attribute{
			{Label: "CHANNELS", Count: 2, RepCode: consts.RC_OBJREF},
			{Label: "ENCRYPTED", Count: 1, RepCode: consts.RC_STATUS},
		},
		Objects: []component.Object{
			{
				Name: rpcode.ObName{Origin: 1, Copy: 0, Identifier: "MAIN"},
				Attributes: []component.Attribute{
					{Label: "CHANNELS", Value: []interface{}{
						rpcode.ObName{Origin: 1, Identifier: "DEPT"},
						rpcode.ObName{Origin: 1, Identifier: "GR"},
					}},
					{Label: "ENCRYPTED", Value: false},
				},
			},
		},
	}
	infos, err := ExtractFrames(set)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "MAIN", infos[0].Name.Identifier)
	require.Len(t, infos[0].ChannelNames, 2)
	assert.Equal(t, "GR", infos[0].ChannelNames[1].Identifier)
	assert.False(t, infos[0].Encrypted)
}

func TestUnknownLabels(t *testing.T) {
	unknown := UnknownLabels("CHANNEL", []string{"UNITS", "MADE-UP-LABEL"})
	assert.Equal(t, []string{"MADE-UP-LABEL"}, unknown)

	assert.Nil(t, UnknownLabels("SOME-VENDOR-TYPE", []string{"ANYTHING"}))
}
