package component

import "github.com/bgrewell/dlis-kit/pkg/consts"

// Attribute is a single labeled value (or list of values) inside a Set's
// Template or an Object's attribute list. Count/RepCode/Units default to
// the values below when a Component's descriptor bits don't carry them
// explicitly; Object attribute slots inherit whatever the Template
// defined at the same position and then overlay only the fields their
// own descriptor signals are present.
type Attribute struct {
	Label   string
	Count   uint32
	RepCode int
	Units   string
	// Value holds a single decoded value when Count==1, or a []interface{}
	// of Count decoded values otherwise. Absent is true only for an
	// Absent-Attribute component; a Template entry or Object slot whose
	// descriptor has no value bit keeps Absent false and a nil Value.
	Value  interface{}
	Absent bool
}

// DefaultAttribute returns the zero-value defaults a bare attribute
// descriptor (no presence bits set) falls back to: count 1, representation
// code IDENT (19), no units, no value.
func DefaultAttribute() Attribute {
	return Attribute{Count: 1, RepCode: consts.RC_IDENT}
}

// cloneFrom returns a copy of tmpl with Label/Count/RepCode/Units
// inherited, used as the starting point for an Object's i-th attribute
// slot before the slot's own descriptor bits are overlaid.
func cloneFrom(tmpl Attribute) Attribute {
	return Attribute{
		Label:   tmpl.Label,
		Count:   tmpl.Count,
		RepCode: tmpl.RepCode,
		Units:   tmpl.Units,
		Absent:  true,
	}
}
