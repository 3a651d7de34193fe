package logicalfile

import (
	"io"

	"github.com/bgrewell/dlis-kit/pkg/component"
	"github.com/bgrewell/dlis-kit/pkg/dliserr"
	"github.com/bgrewell/dlis-kit/pkg/eflr"
	"github.com/bgrewell/dlis-kit/pkg/logging"
	"github.com/bgrewell/dlis-kit/pkg/logicalrecord"
)

// Split runs pass 1 (Logical File grouping and EFLR classification) and,
// when decodeIFLRs is true, pass 2 (IFLR decoding against the resulting
// Channel/Frame side-tables) over an ordered stream of reassembled
// Logical Records. A record of type 0 (File-Header) opens a new Logical
// File; every subsequent record accumulates into it until the next
// type-0. Frame-Data records with a dangling frame/channel reference or
// an encrypted frame are logged and dropped rather than aborting the
// file; every other error is fatal.
func Split(records []*logicalrecord.LogicalRecord, src io.ReaderAt, decodeIFLRs, strict bool, logger *logging.Logger) ([]*LogicalFile, error) {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	var files []*LogicalFile
	var current *LogicalFile
	registry := component.NewRegistry()

	for _, lr := range records {
		base := lr.Segments[0].BodyOffset

		if lr.IsEFLR {
			// EFLRs are always decoded eagerly; only IFLR bodies are ever
			// deferred (spec.md §5's "Lazy IFLR bodies").
			body, err := lr.Body(src)
			if err != nil {
				return nil, err
			}

			if lr.Encrypted {
				opaque := &OpaqueEFLR{LRType: lr.LRType}
				if enc := lr.Segments[0].Encryption; enc != nil {
					opaque.ProducerCode = enc.ProducerCode
				}
				if current == nil {
					return nil, dliserr.New(dliserr.FramingInvariant, base,
						"encrypted EFLR appears before any File-Header")
				}
				current.EncryptedEFLRs = append(current.EncryptedEFLRs, opaque)
				continue
			}

			set, err := component.ParseEFLRBody(body, base, registry, logger)
			if err != nil {
				return nil, err
			}
			classified := eflr.ClassifySet(set, lr.LRType)
			if strict && classified.Kind == eflr.KindUnknown {
				return nil, dliserr.New(dliserr.FramingInvariant, base,
					"EFLR logical-record-type has no recognized classification under strict framing")
			}

			if classified.Kind == eflr.KindFileHeader {
				current = newLogicalFile(classified, logger)
				files = append(files, current)
				continue
			}
			if current == nil {
				return nil, dliserr.New(dliserr.FramingInvariant, base,
					"EFLR appears before any File-Header")
			}
			current.EFLRs = append(current.EFLRs, classified)

			switch {
			case classified.Kind == eflr.KindChannel && set.Type == "CHANNEL":
				infos, err := eflr.ExtractChannels(set)
				if err != nil {
					return nil, err
				}
				for _, info := range infos {
					current.Channels[info.Name] = info
				}
			case classified.Kind == eflr.KindFrame && set.Type == "FRAME":
				infos, err := eflr.ExtractFrames(set)
				if err != nil {
					return nil, err
				}
				for _, info := range infos {
					current.Frames[info.Name] = info
				}
			}
			continue
		}

		// IFLR
		if current == nil {
			return nil, dliserr.New(dliserr.FramingInvariant, base,
				"IFLR appears before any File-Header")
		}
		if !decodeIFLRs {
			// Deferred: capture the LogicalRecord (offset+length only, via
			// its Segments) and decode later through LoadIFLR.
			current.pendingIFLRs = append(current.pendingIFLRs, lr)
			continue
		}

		body, err := lr.Body(src)
		if err != nil {
			return nil, err
		}
		if err := decodeIFLRRecord(lr, body, base, current, logger); err != nil {
			return nil, err
		}
	}

	logger.Debug("split logical records into logical files", "files", len(files))
	return files, nil
}
