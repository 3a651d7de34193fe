package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func channelSetBody(setDescriptor byte) []byte {
	var data []byte
	data = append(data, setDescriptor)
	data = append(data, ident("CHANNEL")...)

	data = append(data, 0x30) // Template entry: Attribute, hasLabel
	data = append(data, ident("A")...)

	data = append(data, 0x70) // Object descriptor: role=Object, hasName
	data = append(data, 0x01, 0x00)
	data = append(data, ident("OBJ1")...)

	data = append(data, 0x21) // Attribute slot 0: hasValue only
	data = append(data, ident("X")...)
	return data
}

func TestComputeFingerprintMatchesAcrossSetAndRedundantSet(t *testing.T) {
	set := channelSetBody(0xF0) // role=Set, hasType
	redundant := channelSetBody(0xB0) // role=Redundant-Set, hasType

	fp1 := ComputeFingerprint(set[1:])
	fp2 := ComputeFingerprint(redundant[1:])
	assert.Equal(t, fp1, fp2, "descriptor byte must not affect the fingerprint")
}

func TestParseEFLRBodyVerifiesRedundantSetFingerprint(t *testing.T) {
	reg := NewRegistry()
	_, err := ParseEFLRBody(channelSetBody(0xF0), 0, reg, nil)
	require.NoError(t, err)

	_, err = ParseEFLRBody(channelSetBody(0xB0), 0, reg, nil)
	assert.NoError(t, err, "identical Redundant-Set must verify against the remembered Set")
}

func TestParseEFLRBodyRejectsMismatchedRedundantSet(t *testing.T) {
	reg := NewRegistry()
	_, err := ParseEFLRBody(channelSetBody(0xF0), 0, reg, nil)
	require.NoError(t, err)

	var changed []byte
	changed = append(changed, 0xB0)
	changed = append(changed, ident("CHANNEL")...)
	changed = append(changed, 0x30)
	changed = append(changed, ident("B")...) // different Template label
	changed = append(changed, 0x70)
	changed = append(changed, 0x01, 0x00)
	changed = append(changed, ident("OBJ1")...)
	changed = append(changed, 0x21)
	changed = append(changed, ident("X")...)

	_, err = ParseEFLRBody(changed, 0, reg, nil)
	assert.Error(t, err, "a Redundant-Set whose Template changed must fail verification")
}

func TestRegistryVerifyFingerprintUnknownType(t *testing.T) {
	reg := NewRegistry()
	err := reg.VerifyFingerprint("CHANNEL", 0)
	assert.Error(t, err)
}
