package testing

import (
	"bytes"
	"testing"

	"github.com/bgrewell/dlis-kit/pkg/physical"
	"github.com/bgrewell/dlis-kit/pkg/rpcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSULFixture(t *testing.T) {
	sul, err := physical.ReadSUL(bytes.NewReader(SULFixture.Bytes), nil)
	require.NoError(t, err)
	assert.Equal(t, SULFixture.SequenceNumber, sul.SequenceNumber)
	assert.Equal(t, SULFixture.Version, sul.Version)
	assert.Equal(t, SULFixture.Structure, sul.Structure)
	assert.Equal(t, SULFixture.MaxRecordLen, sul.MaxRecordLen)
	assert.Equal(t, SULFixture.StorageSetIDTrimmed, sul.StorageSetID)
}

func TestUSHORTFixture(t *testing.T) {
	r := rpcode.NewReader(USHORTFixture.Bytes, 0, nil)
	got, err := r.USHORT()
	require.NoError(t, err)
	assert.Equal(t, USHORTFixture.Want, got)
}

func TestUNORMFixture(t *testing.T) {
	r := rpcode.NewReader(UNORMFixture.Bytes, 0, nil)
	got, err := r.UNORM()
	require.NoError(t, err)
	assert.Equal(t, UNORMFixture.Want, got)
}

func TestDTIMEFixture(t *testing.T) {
	r := rpcode.NewReader(DTIMEFixture.Bytes, 0, nil)
	got, err := r.DTIME()
	require.NoError(t, err)
	assert.Equal(t, DTIMEFixture.Year, got.Year)
	assert.Equal(t, DTIMEFixture.Month, got.Month)
	assert.Equal(t, DTIMEFixture.Day, got.Day)
	assert.Equal(t, DTIMEFixture.Hour, got.Hour)
	assert.Equal(t, DTIMEFixture.Minute, got.Minute)
	assert.Equal(t, DTIMEFixture.Second, got.Second)
	assert.Equal(t, DTIMEFixture.Milli, got.Millisecond)
	assert.Equal(t, DTIMEFixture.Zone, got.Zone.String())
}

func TestUVARIFixtures(t *testing.T) {
	for _, f := range UVARIFixtures {
		t.Run(f.Name, func(t *testing.T) {
			r := rpcode.NewReader(f.Bytes, 0, nil)
			got, err := r.UVARI()
			require.NoError(t, err)
			assert.Equal(t, f.Want, got)
		})
	}
}
