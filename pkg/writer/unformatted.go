package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bgrewell/dlis-kit/pkg/logicalfile"
)

// unformattedDoc is the JSON sidecar written next to each Unformatted-Data
// object's raw blob: the UDI object's CONSUMER-NAME/DESCRIPTION, when a
// NO-FORMAT EFLR for that data-descriptor was present in the same file.
type unformattedDoc struct {
	ConsumerName interface{} `json:"CONSUMER-NAME"`
	Description  interface{} `json:"DESCRIPTION"`
}

// WriteUnformattedData dumps one "<origin>_<copy>_<identifier>.json" +
// "<origin>_<copy>_<identifier>" (raw bytes) pair per Unformatted-Data
// record in lf, inside dir.
func WriteUnformattedData(lf *logicalfile.LogicalFile, dir string) ([]string, error) {
	if len(lf.UnformattedData) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("writer: creating %s: %w", dir, err)
	}

	var written []string
	for _, ud := range lf.UnformattedData {
		name := fmt.Sprintf("%d_%d_%s", ud.DataDescriptor.Origin, ud.DataDescriptor.Copy, ud.DataDescriptor.Identifier)

		doc := unformattedDoc{}
		for _, c := range lf.EFLRs {
			if c.Set.Type != "NO-FORMAT" {
				continue
			}
			for _, obj := range c.Set.Objects {
				if obj.Name != ud.DataDescriptor {
					continue
				}
				if attr, ok := c.Set.ObjectAttribute(obj, "CONSUMER-NAME"); ok {
					doc.ConsumerName = attr.Value
				}
				if attr, ok := c.Set.ObjectAttribute(obj, "DESCRIPTION"); ok {
					doc.Description = attr.Value
				}
			}
		}

		jsonPath := filepath.Join(dir, name+".json")
		jf, err := os.Create(jsonPath)
		if err != nil {
			return written, fmt.Errorf("writer: creating %s: %w", jsonPath, err)
		}
		if err := json.NewEncoder(jf).Encode(doc); err != nil {
			jf.Close()
			return written, fmt.Errorf("writer: encoding %s: %w", jsonPath, err)
		}
		jf.Close()
		written = append(written, jsonPath)

		blobPath := filepath.Join(dir, name)
		if err := os.WriteFile(blobPath, ud.Blob, 0o644); err != nil {
			return written, fmt.Errorf("writer: writing %s: %w", blobPath, err)
		}
		written = append(written, blobPath)
	}
	return written, nil
}
