// Package physical implements the physical framing layer: the Storage
// Unit Label, Visible Records, and Logical Record Segments.
package physical

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/bgrewell/dlis-kit/pkg/consts"
	"github.com/bgrewell/dlis-kit/pkg/dliserr"
	"github.com/bgrewell/dlis-kit/pkg/logging"
)

var sulVersionPattern = regexp.MustCompile(consts.SUL_VERSION_PATTERN)

// SUL is the Storage Unit Label: the fixed 80-byte preamble every DLIS
// file begins with.
type SUL struct {
	SequenceNumber int
	Version        int
	Structure      string
	MaxRecordLen   int
	StorageSetID   string
}

// ReadSUL reads exactly 80 bytes from r and validates every field.
func ReadSUL(r io.Reader, logger *logging.Logger) (*SUL, error) {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	buf := make([]byte, consts.SUL_LENGTH)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, dliserr.Wrap(dliserr.ShortRead, 0, "reading Storage Unit Label", err)
	}

	sul := &SUL{}
	offset := 0

	seqField := string(buf[offset : offset+consts.SUL_SEQUENCE_NUMBER_LENGTH])
	offset += consts.SUL_SEQUENCE_NUMBER_LENGTH
	seqNum, err := strconv.Atoi(strings.TrimSpace(seqField))
	if err != nil {
		return nil, dliserr.Wrap(dliserr.BadMagic, 0, fmt.Sprintf("invalid sequence number %q", seqField), err)
	}
	sul.SequenceNumber = seqNum

	versionField := string(buf[offset : offset+consts.SUL_DLIS_VERSION_LENGTH])
	offset += consts.SUL_DLIS_VERSION_LENGTH
	if !sulVersionPattern.MatchString(versionField) {
		return nil, dliserr.New(dliserr.BadVersion, int64(consts.SUL_SEQUENCE_NUMBER_LENGTH),
			fmt.Sprintf("unsupported DLIS version %q", versionField))
	}
	sul.Version, _ = strconv.Atoi(versionField[1:2])

	structureField := strings.TrimRight(string(buf[offset:offset+consts.SUL_STRUCTURE_LENGTH]), " ")
	offset += consts.SUL_STRUCTURE_LENGTH
	if structureField != consts.SUL_STRUCTURE {
		return nil, dliserr.New(dliserr.BadMagic, int64(offset), fmt.Sprintf("unsupported storage unit structure %q", structureField))
	}
	sul.Structure = structureField

	maxLenField := strings.TrimSpace(string(buf[offset : offset+consts.SUL_MAX_RECORD_LEN_LENGTH]))
	offset += consts.SUL_MAX_RECORD_LEN_LENGTH
	maxLen, err := strconv.Atoi(maxLenField)
	if err != nil {
		return nil, dliserr.Wrap(dliserr.BadMagic, int64(offset), fmt.Sprintf("invalid max record length %q", maxLenField), err)
	}
	sul.MaxRecordLen = maxLen

	ssiField := string(buf[offset : offset+consts.SUL_STORAGE_SET_ID_LENGTH])
	offset += consts.SUL_STORAGE_SET_ID_LENGTH
	sul.StorageSetID = ssiField

	logger.Debug("parsed Storage Unit Label", "sequence", sul.SequenceNumber, "version", sul.Version,
		"structure", sul.Structure, "maxRecordLen", sul.MaxRecordLen)
	return sul, nil
}
