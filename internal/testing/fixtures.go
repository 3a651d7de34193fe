// Package testing holds scenario fixtures and ground-truth comparison
// helpers for the seeded sample files named in SPEC_FULL.md's testable
// properties, plus standalone byte-vector fixtures for the Representation-
// Code codecs that don't need a whole sample file to exercise.
package testing

import "bytes"

// SULFixture is the Header scenario: the first 80 bytes of a Storage Unit
// Label and the field values parsing them must produce.
var SULFixture = struct {
	Bytes                []byte
	SequenceNumber       int
	Version              int
	Structure            string
	MaxRecordLen         int
	StorageSetIDTrimmed  string
}{
	Bytes: func() []byte {
		var buf bytes.Buffer
		buf.WriteString("   1")
		buf.WriteString("V1.00")
		buf.WriteString("RECORD")
		buf.WriteString("08192")
		id := "Default Storage Set"
		buf.WriteString(id)
		for i := 0; i < 60-len(id); i++ {
			buf.WriteByte(' ')
		}
		return buf.Bytes()
	}(),
	SequenceNumber:      1,
	Version:             1,
	Structure:           "RECORD",
	MaxRecordLen:        8192,
	StorageSetIDTrimmed: "Default Storage Set",
}

// USHORTFixture is the USHORT codec scenario: 0xA7 decodes as 167.
var USHORTFixture = struct {
	Bytes []byte
	Want  uint8
}{Bytes: []byte{0xA7}, Want: 167}

// UNORMFixture is the UNORM codec scenario: 0x80 0x99 decodes as 32921.
var UNORMFixture = struct {
	Bytes []byte
	Want  uint16
}{Bytes: []byte{0x80, 0x99}, Want: 32921}

// DTIMEFixture is the DTIME codec scenario: year 1987, month 4, day 19,
// time 21:20:15.620000, zone LocalDaylightSavings.
var DTIMEFixture = struct {
	Bytes                                        []byte
	Year, Month, Day, Hour, Minute, Second, Milli int
	Zone                                          string
}{
	Bytes:  []byte{0x57, 0x14, 0x13, 0x15, 0x14, 0x0F, 0x02, 0x6C},
	Year:   1987,
	Month:  4,
	Day:    19,
	Hour:   21,
	Minute: 20,
	Second: 15,
	Milli:  620,
	Zone:   "LocalDaylightSavings",
}

// UVARIFixtures is the UVARI codec scenario's three forms: a 1-byte value,
// a 14-bit (2-byte) value, and a 30-bit (4-byte) value, each decoding to 1.
var UVARIFixtures = []struct {
	Name  string
	Bytes []byte
	Want  uint32
}{
	{Name: "one-byte", Bytes: []byte{0b00000001}, Want: 1},
	{Name: "two-byte", Bytes: []byte{0b10000000, 0x01}, Want: 1},
	{Name: "four-byte", Bytes: []byte{0b11000000, 0x00, 0x00, 0x01}, Want: 1},
}
