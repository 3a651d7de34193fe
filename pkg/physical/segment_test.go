package physical

import (
	"bytes"
	"testing"

	"github.com/bgrewell/dlis-kit/pkg/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLRS hand-assembles one well-formed Logical Record Segment with the
// given trailer shape, exercising all eight combinations of
// padding/checksum/trailing-length presence against the padding arithmetic
// in computeTrailerLength.
func buildLRS(bodyLen int, hasPadding bool, padCount byte, hasChecksum, hasTrailingLength bool) []byte {
	trailerLen := 0
	if hasPadding {
		trailerLen += int(padCount)
	}
	if hasChecksum {
		trailerLen += 2
	}
	if hasTrailingLength {
		trailerLen += 2
	}
	segLen := consts.LRS_HEADER_LENGTH + bodyLen + trailerLen
	for segLen%2 != 0 || segLen < consts.LRS_MIN_LENGTH {
		bodyLen++
		segLen = consts.LRS_HEADER_LENGTH + bodyLen + trailerLen
	}

	var attrs byte = consts.LRS_ATTR_IS_EFLR
	if hasChecksum {
		attrs |= consts.LRS_ATTR_HAS_CHECKSUM
	}
	if hasTrailingLength {
		attrs |= consts.LRS_ATTR_HAS_TRAILING_LENGTH
	}
	if hasPadding {
		attrs |= consts.LRS_ATTR_HAS_PADDING
	}

	buf := make([]byte, 0, segLen)
	buf = append(buf, byte(segLen>>8), byte(segLen))
	buf = append(buf, attrs)
	buf = append(buf, 0x00) // lrType = File-Header

	for i := 0; i < bodyLen; i++ {
		buf = append(buf, 0xAB)
	}
	if hasPadding {
		for i := byte(0); i < padCount-1; i++ {
			buf = append(buf, 0x00)
		}
		buf = append(buf, padCount)
	}
	if hasChecksum {
		buf = append(buf, 0x12, 0x34)
	}
	if hasTrailingLength {
		buf = append(buf, byte(segLen>>8), byte(segLen))
	}
	return buf
}

func TestParseLRSAllTrailerCombinations(t *testing.T) {
	for _, hasPadding := range []bool{false, true} {
		for _, hasChecksum := range []bool{false, true} {
			for _, hasTrailingLength := range []bool{false, true} {
				name := ""
				if hasPadding {
					name += "pad,"
				}
				if hasChecksum {
					name += "checksum,"
				}
				if hasTrailingLength {
					name += "trailinglen,"
				}
				if name == "" {
					name = "none"
				}
				t.Run(name, func(t *testing.T) {
					data := buildLRS(20, hasPadding, 3, hasChecksum, hasTrailingLength)
					r := bytes.NewReader(data)
					seg, err := ParseLRS(r, nil)
					require.NoError(t, err)
					assert.Equal(t, hasPadding, seg.HasPadding)
					assert.Equal(t, hasChecksum, seg.HasChecksum)
					assert.Equal(t, hasTrailingLength, seg.HasTrailingLength)
					if hasPadding {
						assert.Equal(t, byte(3), seg.PadCount)
					}
					if hasTrailingLength {
						assert.Equal(t, seg.SegLen, seg.TrailingLength)
					}
					assert.True(t, seg.IsEFLR)
					assert.NotNil(t, seg.Body)
				})
			}
		}
	}
}

func TestParseLRSRejectsOddLength(t *testing.T) {
	data := []byte{0x00, 0x0F, 0x80, 0x00} // length 15: odd
	r := bytes.NewReader(data)
	_, err := ParseLRS(r, nil)
	assert.Error(t, err)
}

func TestParseLRSRejectsTooShort(t *testing.T) {
	data := []byte{0x00, 0x08, 0x80, 0x00} // length 8: even but < 16
	r := bytes.NewReader(data)
	_, err := ParseLRS(r, nil)
	assert.Error(t, err)
}
