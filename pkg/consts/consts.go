package consts

const (
	// SUL_LENGTH is the fixed length of the Storage Unit Label preamble.
	SUL_LENGTH = 80

	// SUL field widths, in byte order within the 80-byte label.
	SUL_SEQUENCE_NUMBER_LENGTH = 4
	SUL_DLIS_VERSION_LENGTH    = 5
	SUL_STRUCTURE_LENGTH       = 6
	SUL_MAX_RECORD_LEN_LENGTH  = 5
	SUL_STORAGE_SET_ID_LENGTH  = 60

	// SUL_STRUCTURE is the only storage unit structure this decoder accepts.
	SUL_STRUCTURE = "RECORD"

	// SUL_VERSION_PATTERN is the expected shape of the version field, e.g. "V1.00".
	SUL_VERSION_PATTERN = `^V1\.[0-9][0-9]$`

	// VR_HEADER_LENGTH is the 2-byte length field plus marker byte plus version byte.
	VR_HEADER_LENGTH = 4

	// VR_MARKER is the mandatory marker byte following a Visible Record's length.
	VR_MARKER = 0xFF

	// VR_VERSION is the only Visible Record format version this decoder accepts.
	VR_VERSION = 1

	// LRS_HEADER_LENGTH is the 2-byte length field plus attribute bitmap plus logical-record type.
	LRS_HEADER_LENGTH = 4

	// LRS_MIN_LENGTH is the smallest legal segment length; shorter segments are rejected as a framing error.
	LRS_MIN_LENGTH = 16

	// LRS_CHECKSUM_LENGTH and LRS_TRAILING_LENGTH_LENGTH are the widths of the
	// optional trailer fields that follow the padding bytes, in order.
	LRS_CHECKSUM_LENGTH        = 2
	LRS_TRAILING_LENGTH_LENGTH = 2
)

// Logical Record Segment attribute bitmap bit positions (MSB first). A set
// bit means the named field or property is present/true.
const (
	LRS_ATTR_IS_EFLR              = 1 << 7
	LRS_ATTR_HAS_PREDECESSOR      = 1 << 6
	LRS_ATTR_HAS_SUCCESSOR        = 1 << 5
	LRS_ATTR_ENCRYPTED            = 1 << 4
	LRS_ATTR_HAS_ENCRYPTION_PACKET = 1 << 3
	LRS_ATTR_HAS_CHECKSUM         = 1 << 2
	LRS_ATTR_HAS_TRAILING_LENGTH  = 1 << 1
	LRS_ATTR_HAS_PADDING          = 1 << 0
)

// Component descriptor role codes (top 3 bits of the descriptor byte).
const (
	ROLE_ABSENT_ATTRIBUTE = 0b000
	ROLE_ATTRIBUTE        = 0b001
	ROLE_INVARIANT_ATTR   = 0b010
	ROLE_OBJECT           = 0b011
	ROLE_REDUNDANT_SET    = 0b101
	ROLE_REPLACEMENT_SET  = 0b110
	ROLE_SET              = 0b111
)

// Attribute-family descriptor presence bits (bits 3..7, independent of role).
const (
	ATTR_BIT_LABEL   = 1 << 4
	ATTR_BIT_COUNT   = 1 << 3
	ATTR_BIT_REPCODE = 1 << 2
	ATTR_BIT_UNITS   = 1 << 1
	ATTR_BIT_VALUE   = 1 << 0
)

// Set/Redundant-Set/Replacement-Set descriptor presence bits.
const (
	SET_BIT_TYPE = 1 << 4
	SET_BIT_NAME = 1 << 3
)

// Object descriptor presence bit.
const (
	OBJECT_BIT_NAME = 1 << 4
)

// Representation codes, 1-based per RP66 V1 Appendix B.
const (
	RC_FSHORT = 1
	RC_FSINGL = 2
	RC_FSING1 = 3
	RC_FSING2 = 4
	RC_ISINGL = 5
	RC_VSINGL = 6
	RC_FDOUBL = 7
	RC_FDOUB1 = 8
	RC_FDOUB2 = 9
	RC_CSINGL = 10
	RC_CDOUBL = 11
	RC_SSHORT = 12
	RC_SNORM  = 13
	RC_SLONG  = 14
	RC_USHORT = 15
	RC_UNORM  = 16
	RC_ULONG  = 17
	RC_UVARI  = 18
	RC_IDENT  = 19
	RC_ASCII  = 20
	RC_DTIME  = 21
	RC_ORIGIN = 22
	RC_OBNAME = 23
	RC_OBJREF = 24
	RC_ATTREF = 25
	RC_STATUS = 26
	RC_UNITS  = 27

	RC_MIN = RC_FSHORT
	RC_MAX = RC_UNITS
)

// DTIME time-zone nibble values (high nibble of the month byte).
const (
	DTIME_TZ_LOCAL_STANDARD = 0
	DTIME_TZ_LOCAL_DAYLIGHT = 1
	DTIME_TZ_GMT            = 2
)

// Logical-record-type codes, carried in the LRS header and used to
// classify EFLRs and dispatch IFLRs.
const (
	LR_TYPE_FILE_HEADER   = 0
	LR_TYPE_ORIGIN        = 1
	LR_TYPE_AXIS          = 2
	LR_TYPE_CHANNEL       = 3
	LR_TYPE_FRAME         = 4
	LR_TYPE_STATIC        = 5
	LR_TYPE_SCRIPT        = 6
	LR_TYPE_UPDATE        = 7
	LR_TYPE_UDI           = 8
	LR_TYPE_LONG_NAME     = 9
	LR_TYPE_SPECIFICATION = 10
	LR_TYPE_DICTIONARY    = 12
	LR_TYPE_PRIVATE_MIN   = 13 // codes >= 13 are Private; 11 is unnamed and 12 (Dictionary) is the last code this pack names explicitly

	// IFLR-only type codes.
	LR_TYPE_FRAME_DATA       = 0
	LR_TYPE_UNFORMATTED_DATA = 1
	LR_TYPE_END_OF_DATA      = 127
)

// Well-known Set.type strings for EFLR object schemas, keyed by logical-record type.
const (
	SET_TYPE_FILE_HEADER             = "FILE-HEADER"
	SET_TYPE_ORIGIN                  = "ORIGIN"
	SET_TYPE_WELL_REFERENCE_POINT    = "WELL-REFERENCE-POINT"
	SET_TYPE_AXIS                    = "AXIS"
	SET_TYPE_CHANNEL                 = "CHANNEL"
	SET_TYPE_FRAME                   = "FRAME"
	SET_TYPE_PATH                    = "PATH"
	SET_TYPE_CALIBRATION             = "CALIBRATION"
	SET_TYPE_CALIBRATION_COEFFICIENT = "CALIBRATION-COEFFICIENT"
	SET_TYPE_CALIBRATION_MEASUREMENT = "CALIBRATION-MEASUREMENT"
	SET_TYPE_COMPUTATION             = "COMPUTATION"
	SET_TYPE_EQUIPMENT               = "EQUIPMENT"
	SET_TYPE_GROUP                   = "GROUP"
	SET_TYPE_PARAMETER               = "PARAMETER"
	SET_TYPE_PROCESS                 = "PROCESS"
	SET_TYPE_SPLICE                  = "SPLICE"
	SET_TYPE_TOOL                    = "TOOL"
	SET_TYPE_ZONE                    = "ZONE"
	SET_TYPE_COMMENT                 = "COMMENT"
	SET_TYPE_UPDATE                  = "UPDATE"
	SET_TYPE_NO_FORMAT                = "NO-FORMAT"
	SET_TYPE_LONG_NAME               = "LONG-NAME"
)

// UVARI length is inferred from the top bits of the first byte: a clear
// top bit means a 1-byte value, "10" means 2 bytes, "11" means 4 bytes.
const (
	UVARI_TWO_BYTE_MASK  = 0xC0
	UVARI_TWO_BYTE_TAG   = 0x80
	UVARI_FOUR_BYTE_TAG  = 0xC0
	UVARI_ONE_BYTE_BITS  = 7
	UVARI_TWO_BYTE_BITS  = 14
	UVARI_FOUR_BYTE_BITS = 30
)

// STATUS boolean encoding: 1 means allowed/true/on.
const (
	STATUS_TRUE = 1
)
