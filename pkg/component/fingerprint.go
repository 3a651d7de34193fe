package component

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeFingerprint hashes the raw bytes a Set's type, name, Template,
// and Objects were parsed from (excluding its descriptor byte, which
// legitimately differs between a Set and the Redundant-Set that repeats
// it). Redundant-Set and Replacement-Set
// components reference an earlier Set of the same type; rather than
// keeping every previously-seen Set's full byte range around for a linear
// comparison, the parser keeps only its fingerprint and looks up matches
// by (type, fingerprint) in a Registry.
func ComputeFingerprint(raw []byte) uint64 {
	return xxhash.Sum64(raw)
}

// Registry tracks the most recently parsed Set per type, so a
// Redundant-Set or Replacement-Set component later in the same Logical
// Record (or a later one) can find the Set it extends or overrides.
type Registry struct {
	byType map[string]*Set
}

// NewRegistry returns an empty Set registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[string]*Set)}
}

// Remember records set as the current Set for its type, replacing any
// earlier Set of the same type.
func (r *Registry) Remember(set *Set) {
	r.byType[set.Type] = set
}

// Lookup returns the previously remembered Set for typ, if any.
func (r *Registry) Lookup(typ string) (*Set, bool) {
	s, ok := r.byType[typ]
	return s, ok
}

// VerifyFingerprint reports whether a Redundant-Set component's
// fingerprint matches the Set the Registry last remembered for typ. A
// mismatch means the producer claimed redundancy with a Set whose
// Template has actually changed; ParseEFLRBody turns that into a fatal
// dliserr.FramingInvariant error rather than silently accepting it.
func (r *Registry) VerifyFingerprint(typ string, fingerprint uint64) error {
	s, ok := r.Lookup(typ)
	if !ok {
		return fmt.Errorf("redundant set references unknown type %q", typ)
	}
	if s.Fingerprint != fingerprint {
		return fmt.Errorf("redundant set fingerprint mismatch for type %q", typ)
	}
	return nil
}
