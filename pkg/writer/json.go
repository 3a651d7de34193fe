package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgrewell/dlis-kit/pkg/logicalfile"
)

// WriteJSON dumps lf's EFLRs as a single "<id>.json" file inside dir,
// where id is the FILE-HEADER object's ID attribute (or the Logical
// File's ordinal position when that attribute is missing or blank).
func WriteJSON(lf *logicalfile.LogicalFile, dir string, ordinal int) (string, error) {
	name := fileHeaderID(lf, ordinal)
	outPath := filepath.Join(dir, name+".json")

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("writer: creating %s: %w", outPath, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDocument(lf)); err != nil {
		return "", fmt.Errorf("writer: encoding %s: %w", outPath, err)
	}
	return outPath, nil
}

func fileHeaderID(lf *logicalfile.LogicalFile, ordinal int) string {
	if id, ok := lf.ID(); ok {
		if s := strings.TrimSpace(id); s != "" {
			return sanitizeFileName(s)
		}
	}
	return fmt.Sprintf("logical-file-%d", ordinal)
}

func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		default:
			return r
		}
	}, s)
}
