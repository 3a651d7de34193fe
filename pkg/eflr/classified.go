package eflr

import "github.com/bgrewell/dlis-kit/pkg/component"

// ClassifiedEFLR tags a parsed Set with the semantic Kind its owning
// Logical Record's type code maps to. This replaces a class-per-kind
// hierarchy with a single tagged variant dispatched on Kind, the way a
// System Use Entry's two-byte signature dispatches to a field table
// rather than a distinct wrapper type per extension.
type ClassifiedEFLR struct {
	Kind   Kind
	LRType uint8
	Set    *component.Set
}

// ClassifySet wraps set with the Kind its LRType maps to.
func ClassifySet(set *component.Set, lrType uint8) *ClassifiedEFLR {
	return &ClassifiedEFLR{Kind: Classify(lrType), LRType: lrType, Set: set}
}

// UnknownLabels reports Template labels on c.Set not named by c.Set.Type's
// schema. Always empty for Private/unrecognized types.
func (c *ClassifiedEFLR) UnknownLabels() []string {
	labels := make([]string, 0, len(c.Set.Template))
	for _, a := range c.Set.Template {
		labels = append(labels, a.Label)
	}
	return UnknownLabels(c.Set.Type, labels)
}
