package component

import (
	"fmt"

	"github.com/bgrewell/dlis-kit/pkg/dliserr"
	"github.com/bgrewell/dlis-kit/pkg/logging"
	"github.com/bgrewell/dlis-kit/pkg/rpcode"
)

// ParseEFLRBody parses an entire EFLR record body (a single Set, its
// Template, and its Objects) as a recursive-descent parse driven by the
// descriptor byte at the head of each Component. data is the fully
// materialized record body; base is its absolute offset in the file, used
// only to annotate errors. registry tracks previously-parsed Sets by type
// so a Redundant-Set or Replacement-Set component can be resolved; it may
// be nil when the caller doesn't care about cross-record Set identity.
func ParseEFLRBody(data []byte, base int64, registry *Registry, logger *logging.Logger) (*Set, error) {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	r := rpcode.NewReader(data, base, logger)

	set, err := parseSet(r, logger)
	if err != nil {
		return nil, err
	}

	if set.Role == RoleRedundantSet || set.Role == RoleReplacementSet {
		if registry != nil {
			if prev, ok := registry.Lookup(set.Type); ok {
				if set.Role == RoleRedundantSet {
					set.Template = prev.Template
				}
			}
			if set.Role == RoleRedundantSet {
				if err := registry.VerifyFingerprint(set.Type, set.Fingerprint); err != nil {
					return nil, dliserr.New(dliserr.FramingInvariant, base, err.Error())
				}
			}
		}
	}
	if registry != nil && set.Role == RoleSet {
		registry.Remember(set)
	}

	logger.Debug("parsed EFLR body", "type", set.Type, "name", set.Name, "objects", len(set.Objects))
	return set, nil
}

func peekDescriptor(r *rpcode.Reader) (descriptor, error) {
	pos := r.Pos()
	b, err := r.ReadByte()
	if err != nil {
		return descriptor{}, err
	}
	r.SeekTo(pos)
	return parseDescriptor(b), nil
}

func parseSet(r *rpcode.Reader, logger *logging.Logger) (*Set, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	// startPos begins after the descriptor byte: a Redundant-Set's
	// descriptor legitimately differs from the Set it repeats (different
	// role bits), so the fingerprint covers only type+name+Template+
	// Objects, the part that must be byte-identical for the two to match.
	startPos := r.Pos()
	d := parseDescriptor(b)
	if !d.role.IsSetRole() {
		return nil, dliserr.New(dliserr.BadDescriptor, int64(r.Pos()),
			fmt.Sprintf("expected Set/Redundant-Set/Replacement-Set role, got %s", d.role))
	}
	if !d.hasType() {
		return nil, dliserr.New(dliserr.BadDescriptor, int64(r.Pos()), "Set component must carry a type")
	}
	set := &Set{Role: d.role}
	set.Type, err = r.IDENT()
	if err != nil {
		return nil, err
	}
	if d.hasName() {
		set.Name, err = r.IDENT()
		if err != nil {
			return nil, err
		}
		set.HasName = true
	}

	set.Template, err = parseTemplate(r)
	if err != nil {
		return nil, err
	}

	set.Objects, err = parseObjects(r, set.Template)
	if err != nil {
		return nil, err
	}

	set.Fingerprint = ComputeFingerprint(r.Slice(startPos, r.Pos()))
	return set, nil
}

// parseTemplate reads Attribute/Invariant-Attribute components until the
// next descriptor signals an Object, per spec.md's Component Grammar.
func parseTemplate(r *rpcode.Reader) ([]Attribute, error) {
	var attrs []Attribute
	seen := make(map[string]bool)
	for r.Len() > 0 {
		d, err := peekDescriptor(r)
		if err != nil {
			return nil, err
		}
		if d.role == RoleObject {
			break
		}
		if !d.role.IsAttributeRole() {
			return nil, dliserr.New(dliserr.BadDescriptor, int64(r.Pos()),
				fmt.Sprintf("unexpected role %s in Template", d.role))
		}
		if !d.hasLabel() {
			return nil, dliserr.New(dliserr.BadDescriptor, int64(r.Pos()), "Template entries must set label")
		}
		attr, err := parseAttributeComponent(r, DefaultAttribute())
		if err != nil {
			return nil, err
		}
		if attr.Label == "" || seen[attr.Label] {
			return nil, dliserr.New(dliserr.BadDescriptor, int64(r.Pos()), "Template labels must be unique and non-null")
		}
		seen[attr.Label] = true
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// parseObjects reads Objects until the window is exhausted.
func parseObjects(r *rpcode.Reader, template []Attribute) ([]Object, error) {
	var objs []Object
	for r.Len() > 0 {
		obj, err := parseObject(r, template)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

func parseObject(r *rpcode.Reader, template []Attribute) (Object, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Object{}, err
	}
	d := parseDescriptor(b)
	if d.role != RoleObject {
		return Object{}, dliserr.New(dliserr.BadDescriptor, int64(r.Pos()), "only Object role may appear between Objects")
	}
	if !d.hasObjectName() {
		return Object{}, dliserr.New(dliserr.BadDescriptor, int64(r.Pos()), "Object component must carry a name")
	}
	name, err := r.OBNAME()
	if err != nil {
		return Object{}, err
	}

	obj := Object{Name: name}
	i := 0
	for r.Len() > 0 {
		d2, err := peekDescriptor(r)
		if err != nil {
			return Object{}, err
		}
		if d2.role == RoleObject {
			break
		}
		var defaults Attribute
		if i < len(template) {
			defaults = cloneFrom(template[i])
		} else {
			defaults = Attribute{Count: 1, RepCode: 19}
		}
		attr, err := parseAttributeComponent(r, defaults)
		if err != nil {
			return Object{}, err
		}
		obj.Attributes = append(obj.Attributes, attr)
		i++
	}
	return obj, nil
}

// parseAttributeComponent parses a single Attribute/Invariant-Attribute/
// Absent-Attribute component. defaults supplies the Template-inherited
// label/count/repCode/units for an Absent-Attribute, or for an Object
// attribute slot whose own descriptor omits a field.
func parseAttributeComponent(r *rpcode.Reader, defaults Attribute) (Attribute, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Attribute{}, err
	}
	d := parseDescriptor(b)
	if !d.role.IsAttributeRole() {
		return Attribute{}, dliserr.New(dliserr.BadDescriptor, int64(r.Pos()),
			fmt.Sprintf("expected an attribute-family role, got %s", d.role))
	}
	if d.role == RoleAbsentAttribute {
		absent := defaults
		absent.Absent = true
		absent.Value = nil
		return absent, nil
	}

	attr := defaults
	attr.Absent = false
	if d.hasLabel() {
		attr.Label, err = r.IDENT()
		if err != nil {
			return Attribute{}, err
		}
	}
	if d.hasCount() {
		attr.Count, err = r.UVARI()
		if err != nil {
			return Attribute{}, err
		}
	}
	if d.hasRepCode() {
		rc, err := r.USHORT()
		if err != nil {
			return Attribute{}, err
		}
		attr.RepCode = int(rc)
	}
	if d.hasUnits() {
		attr.Units, err = r.UNITS()
		if err != nil {
			return Attribute{}, err
		}
	}
	if d.hasValue() {
		count := attr.Count
		if count == 0 {
			count = 1
		}
		if count > 1 {
			values := make([]interface{}, count)
			for i := uint32(0); i < count; i++ {
				v, err := r.ReadValue(attr.RepCode)
				if err != nil {
					return Attribute{}, err
				}
				values[i] = v
			}
			attr.Value = values
		} else {
			attr.Value, err = r.ReadValue(attr.RepCode)
			if err != nil {
				return Attribute{}, err
			}
		}
	}
	return attr, nil
}
