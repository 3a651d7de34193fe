// Package component implements the recursive-descent parser for an EFLR
// body: the Set/Template/Object/Attribute grammar driven by a one-byte
// descriptor at the head of every Component.
package component

import "github.com/bgrewell/dlis-kit/pkg/consts"

// Role is the 3-bit role field of a Component descriptor byte.
type Role uint8

const (
	RoleAbsentAttribute Role = consts.ROLE_ABSENT_ATTRIBUTE
	RoleAttribute       Role = consts.ROLE_ATTRIBUTE
	RoleInvariantAttr   Role = consts.ROLE_INVARIANT_ATTR
	RoleObject          Role = consts.ROLE_OBJECT
	RoleRedundantSet    Role = consts.ROLE_REDUNDANT_SET
	RoleReplacementSet  Role = consts.ROLE_REPLACEMENT_SET
	RoleSet             Role = consts.ROLE_SET
)

func (r Role) String() string {
	switch r {
	case RoleAbsentAttribute:
		return "Absent-Attribute"
	case RoleAttribute:
		return "Attribute"
	case RoleInvariantAttr:
		return "Invariant-Attribute"
	case RoleObject:
		return "Object"
	case RoleRedundantSet:
		return "Redundant-Set"
	case RoleReplacementSet:
		return "Replacement-Set"
	case RoleSet:
		return "Set"
	default:
		return "Unknown-Role"
	}
}

// IsSetRole reports whether r is one of the three roles that open a Set (Set, Redundant-Set, Replacement-Set).
func (r Role) IsSetRole() bool {
	return r == RoleSet || r == RoleRedundantSet || r == RoleReplacementSet
}

// IsAttributeRole reports whether r is one of the three attribute-family roles.
func (r Role) IsAttributeRole() bool {
	return r == RoleAttribute || r == RoleInvariantAttr || r == RoleAbsentAttribute
}

// descriptor is a parsed Component descriptor byte: the 3-bit role plus
// five independently-gated presence bits. The presence bits mean
// different things depending on role (see hasType/hasName vs
// hasLabel/hasCount/...), so callers ask for the specific bit they need
// rather than reading the raw byte.
type descriptor struct {
	raw  byte
	role Role
}

func parseDescriptor(b byte) descriptor {
	return descriptor{raw: b, role: Role(b >> 5)}
}

// Set/Redundant-Set/Replacement-Set presence bits.
func (d descriptor) hasType() bool { return d.raw&consts.SET_BIT_TYPE != 0 }
func (d descriptor) hasName() bool { return d.raw&consts.SET_BIT_NAME != 0 }

// Object presence bit.
func (d descriptor) hasObjectName() bool { return d.raw&consts.OBJECT_BIT_NAME != 0 }

// Attribute-family presence bits.
func (d descriptor) hasLabel() bool   { return d.raw&consts.ATTR_BIT_LABEL != 0 }
func (d descriptor) hasCount() bool   { return d.raw&consts.ATTR_BIT_COUNT != 0 }
func (d descriptor) hasRepCode() bool { return d.raw&consts.ATTR_BIT_REPCODE != 0 }
func (d descriptor) hasUnits() bool   { return d.raw&consts.ATTR_BIT_UNITS != 0 }
func (d descriptor) hasValue() bool   { return d.raw&consts.ATTR_BIT_VALUE != 0 }
