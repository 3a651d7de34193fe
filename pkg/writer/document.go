// Package writer projects a decoded Logical File into the bundled output
// formats: one JSON document of every EFLR, one CSV per Frame, and a
// JSON+raw-blob pair per Unformatted-Data object.
package writer

import (
	"fmt"

	"github.com/bgrewell/dlis-kit/pkg/component"
	"github.com/bgrewell/dlis-kit/pkg/logicalfile"
)

// Document is the JSON-serializable projection of one Logical File: every
// EFLR it contains, in record order.
type Document struct {
	ExplicitlyFormattedLogicalRecords []SetDocument `json:"ExplicitlyFormattedLogicalRecords"`
}

// SetDocument is the JSON projection of one classified EFLR's Set.
type SetDocument struct {
	Kind    string           `json:"kind"`
	Type    string           `json:"type"`
	Name    string           `json:"name,omitempty"`
	Objects []ObjectDocument `json:"objects"`
}

// ObjectDocument is the JSON projection of one Object: its name and its
// attributes keyed by label.
type ObjectDocument struct {
	Name       string                 `json:"name"`
	Origin     uint32                 `json:"origin"`
	Copy       uint8                  `json:"copy"`
	Attributes map[string]interface{} `json:"attributes"`
}

// ToDocument projects lf's classified EFLRs into a Document.
func ToDocument(lf *logicalfile.LogicalFile) *Document {
	doc := &Document{}
	for _, c := range lf.EFLRs {
		doc.ExplicitlyFormattedLogicalRecords = append(doc.ExplicitlyFormattedLogicalRecords, setDocumentOf(c.Kind.String(), c.Set))
	}
	return doc
}

func setDocumentOf(kind string, set *component.Set) SetDocument {
	sd := SetDocument{Kind: kind, Type: set.Type, Name: set.Name}
	for _, obj := range set.Objects {
		od := ObjectDocument{
			Name:       obj.Name.Identifier,
			Origin:     obj.Name.Origin,
			Copy:       obj.Name.Copy,
			Attributes: make(map[string]interface{}, len(obj.Attributes)),
		}
		// A slot's Label is resolved by the parser (inherited from the
		// Template, or overridden when the descriptor carried its own
		// label bit). Slots beyond the Template's length carry a label only
		// when their own descriptor set it; unlabeled ones are keyed
		// field_<i>.
		for i, attr := range obj.Attributes {
			label := attr.Label
			if label == "" {
				label = fmt.Sprintf("field_%d", i)
			}
			if !attr.Absent {
				od.Attributes[label] = attr.Value
			}
		}
		sd.Objects = append(sd.Objects, od)
	}
	return sd
}
