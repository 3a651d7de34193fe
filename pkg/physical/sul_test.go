package physical

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bgrewell/dlis-kit/pkg/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSUL(t *testing.T) {
	ssi := "Default Storage Set"
	ssi += strings.Repeat(" ", consts.SUL_STORAGE_SET_ID_LENGTH-len(ssi))

	var buf bytes.Buffer
	buf.WriteString("0001")
	buf.WriteString("V1.00")
	buf.WriteString("RECORD")
	buf.WriteString("08192")
	buf.WriteString(ssi)

	sul, err := ReadSUL(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sul.SequenceNumber)
	assert.Equal(t, 1, sul.Version)
	assert.Equal(t, "RECORD", sul.Structure)
	assert.Equal(t, 8192, sul.MaxRecordLen)
	assert.Equal(t, ssi, sul.StorageSetID)
}

func TestReadSULRejectsBadVersion(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("0001")
	buf.WriteString("V2.00")
	buf.WriteString("RECORD")
	buf.WriteString("00000")
	buf.WriteString(strings.Repeat(" ", consts.SUL_STORAGE_SET_ID_LENGTH))

	_, err := ReadSUL(&buf, nil)
	assert.Error(t, err)
}

func TestReadSULRejectsBadStructure(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("0001")
	buf.WriteString("V1.00")
	buf.WriteString("BOGUS ")
	buf.WriteString("00000")
	buf.WriteString(strings.Repeat(" ", consts.SUL_STORAGE_SET_ID_LENGTH))

	_, err := ReadSUL(&buf, nil)
	assert.Error(t, err)
}
