package rpcode

import (
	"testing"

	"github.com/bgrewell/dlis-kit/pkg/dliserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUSHORT(t *testing.T) {
	r := NewReader([]byte{0xA7}, 0, nil)
	v, err := r.USHORT()
	require.NoError(t, err)
	assert.Equal(t, uint8(167), v)
}

func TestUNORM(t *testing.T) {
	r := NewReader([]byte{0x80, 0x99}, 0, nil)
	v, err := r.UNORM()
	require.NoError(t, err)
	assert.Equal(t, uint16(32921), v)
}

func TestDTIME(t *testing.T) {
	r := NewReader([]byte{0x57, 0x14, 0x13, 0x15, 0x14, 0x0F, 0x02, 0x6C}, 0, nil)
	v, err := r.DTIME()
	require.NoError(t, err)
	assert.Equal(t, 1987, v.Year)
	assert.Equal(t, 4, v.Month)
	assert.Equal(t, 19, v.Day)
	assert.Equal(t, 21, v.Hour)
	assert.Equal(t, 20, v.Minute)
	assert.Equal(t, 15, v.Second)
	assert.Equal(t, LocalDaylightTime, v.Zone)
	assert.Equal(t, 620, v.Millisecond)
}

func TestUVARI(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{"1-byte", []byte{0b00000001}, 1},
		{"2-byte", []byte{0b10000001, 0b00101010}, uint32(0b1_00101010)},
		{"4-byte", []byte{0b11000000, 0x00, 0x00, 0x01}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReader(tc.data, 0, nil)
			v, err := r.UVARI()
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestUVARIShortRead(t *testing.T) {
	r := NewReader([]byte{0x80}, 0, nil)
	_, err := r.UVARI()
	assert.Error(t, err)
}

func TestIDENT(t *testing.T) {
	r := NewReader(append([]byte{5}, []byte("HELLO")...), 0, nil)
	v, err := r.IDENT()
	require.NoError(t, err)
	assert.Equal(t, "HELLO", v)
}

func TestOBNAME(t *testing.T) {
	data := append([]byte{0x01, 0x02}, append([]byte{3}, []byte("ABC")...)...)
	r := NewReader(data, 0, nil)
	v, err := r.OBNAME()
	require.NoError(t, err)
	assert.Equal(t, ObName{Origin: 1, Copy: 2, Identifier: "ABC"}, v)
}

func TestSTATUS(t *testing.T) {
	r := NewReader([]byte{0x01}, 0, nil)
	v, err := r.STATUS()
	require.NoError(t, err)
	assert.True(t, v)

	r = NewReader([]byte{0x00}, 0, nil)
	v, err = r.STATUS()
	require.NoError(t, err)
	assert.False(t, v)
}

// FDOUBL round-trips against a self-generated IEEE-754 value rather than
// the RP66 appendix's worked example, which is internally inconsistent
// (dlispy's own test suite skips it too).
func TestFDOUBLRoundTrip(t *testing.T) {
	want := 852606.0
	bits := uint64(0x412a04fc00000000) // IEEE-754 bit pattern for 852606.0
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[7-i] = byte(bits >> (8 * i))
	}
	r := NewReader(b, 0, nil)
	got, err := r.FDOUBL()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFSING1Validation(t *testing.T) {
	// value=1.0, half-width=-1.0 (invalid: negative half-width)
	data := []byte{0x3F, 0x80, 0x00, 0x00, 0xBF, 0x80, 0x00, 0x00}
	r := NewReader(data, 0, nil)
	_, err := r.FSING1()
	assert.Error(t, err)
}

func TestShortReadReportsOffset(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02}, 100, nil)
	_, err := r.take(1)
	require.NoError(t, err)
	_, err = r.ULONG()
	require.Error(t, err)
	fe, ok := err.(*dliserr.FormatError)
	require.True(t, ok)
	assert.Equal(t, dliserr.ShortRead, fe.Kind)
	assert.Equal(t, int64(101), fe.Offset) // base 100 + 1 byte already consumed
}
