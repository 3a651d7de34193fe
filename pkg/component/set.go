package component

import "github.com/bgrewell/dlis-kit/pkg/rpcode"

// Object is one Object inside a Set: a mandatory Object Name and an
// ordered list of Attributes aligned to the owning Set's Template.
// Objects may carry trailing Attributes beyond the Template's length;
// those are appended in order after the Template-aligned slots.
type Object struct {
	Name       rpcode.ObName
	Attributes []Attribute
}

// Set is one EFLR body: a mandatory type, an optional name, a Template
// (the ordered Attribute-definition list every Object's slots align to),
// and the ordered list of Objects themselves.
type Set struct {
	Role     Role
	Type     string
	Name     string
	HasName  bool
	Template []Attribute
	Objects  []Object

	// Fingerprint identifies this Set's type+name+Template+Object byte
	// range (everything after its descriptor byte) so a
	// later Redundant-Set or Replacement-Set component can be matched
	// against it in O(1); see fingerprint.go.
	Fingerprint uint64
}

// AttributeByLabel returns the Template entry with the given label, or
// false if no such label exists. Template labels are unique by
// construction (the parser rejects duplicates).
func (s *Set) AttributeByLabel(label string) (Attribute, bool) {
	for _, a := range s.Template {
		if a.Label == label {
			return a, true
		}
	}
	return Attribute{}, false
}

// ObjectAttribute returns the value of the named attribute on obj,
// resolving against the Set's Template when obj's own slot is absent or
// missing (trailing omission).
func (s *Set) ObjectAttribute(obj Object, label string) (Attribute, bool) {
	for i, tmplAttr := range s.Template {
		if tmplAttr.Label != label {
			continue
		}
		if i < len(obj.Attributes) && !obj.Attributes[i].Absent {
			return obj.Attributes[i], true
		}
		return tmplAttr, true
	}
	return Attribute{}, false
}
