package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(s string) []byte {
	return append([]byte{byte(len(s))}, []byte(s)...)
}

func TestParseEFLRBodyBasic(t *testing.T) {
	var data []byte
	data = append(data, 0xF0)             // Set descriptor: role=Set, hasType, no name
	data = append(data, ident("CHANNEL")...) // Set.Type

	data = append(data, 0x30)          // Template entry 1: Attribute, hasLabel
	data = append(data, ident("A")...) // label "A"
	data = append(data, 0x30)          // Template entry 2: Attribute, hasLabel
	data = append(data, ident("B")...) // label "B"

	data = append(data, 0x70)             // Object descriptor: role=Object, hasName
	data = append(data, 0x01)             // OBNAME.Origin = 1 (UVARI 1-byte)
	data = append(data, 0x00)             // OBNAME.Copy = 0 (USHORT)
	data = append(data, ident("OBJ1")...) // OBNAME.Identifier

	data = append(data, 0x21)          // Attribute slot 0: role=Attribute, hasValue only
	data = append(data, ident("X")...) // value (repCode inherited from template default: IDENT=19)

	data = append(data, 0x00) // Attribute slot 1: Absent-Attribute

	reg := NewRegistry()
	set, err := ParseEFLRBody(data, 0, reg, nil)
	require.NoError(t, err)

	assert.Equal(t, "CHANNEL", set.Type)
	assert.False(t, set.HasName)
	require.Len(t, set.Template, 2)
	assert.Equal(t, "A", set.Template[0].Label)
	assert.Equal(t, "B", set.Template[1].Label)

	require.Len(t, set.Objects, 1)
	obj := set.Objects[0]
	assert.Equal(t, uint32(1), obj.Name.Origin)
	assert.Equal(t, uint8(0), obj.Name.Copy)
	assert.Equal(t, "OBJ1", obj.Name.Identifier)

	require.Len(t, obj.Attributes, 2)
	assert.False(t, obj.Attributes[0].Absent)
	assert.Equal(t, "X", obj.Attributes[0].Value)
	assert.True(t, obj.Attributes[1].Absent)
	assert.Equal(t, "B", obj.Attributes[1].Label) // inherited from Template

	prev, ok := reg.Lookup("CHANNEL")
	require.True(t, ok)
	assert.Equal(t, set.Fingerprint, prev.Fingerprint)
}

func TestParseEFLRBodyRejectsUnlabeledTemplateEntry(t *testing.T) {
	var data []byte
	data = append(data, 0xF0)
	data = append(data, ident("CHANNEL")...)
	data = append(data, 0x20) // Attribute with no label bit -- invalid in Template
	data = append(data, 0x70)
	data = append(data, 0x01, 0x00)
	data = append(data, ident("OBJ1")...)

	_, err := ParseEFLRBody(data, 0, nil, nil)
	assert.Error(t, err)
}
