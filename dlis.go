// Package dlis implements an RP66 V1 ("DLIS") well-log file decoder: the
// physical framing layer (Storage Unit Label, Visible Records, Logical
// Record Segments), Logical Record reassembly, the EFLR Component
// grammar, and Logical File / Frame-Data decoding, plus a bundled
// JSON+CSV writer for dumping a decoded file to disk.
package dlis

import (
	"fmt"
	"io"
	"os"

	"github.com/bgrewell/dlis-kit/pkg/consts"
	"github.com/bgrewell/dlis-kit/pkg/logging"
	"github.com/bgrewell/dlis-kit/pkg/logicalfile"
	"github.com/bgrewell/dlis-kit/pkg/logicalrecord"
	"github.com/bgrewell/dlis-kit/pkg/physical"
	"github.com/bgrewell/dlis-kit/pkg/writer"
	"github.com/go-logr/logr"
)

// Options represents the options for opening a DLIS file.
type Options struct {
	eflrOnly      bool
	strictFraming bool
	maxSegments   int
	logger        logr.Logger
}

// Option represents a function that modifies the Options.
type Option func(*Options)

// WithLogger sets the logger used while parsing.
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// WithEFLROnly sets whether to skip IFLR (Frame-Data/Unformatted-Data/
// End-of-Data) decoding, leaving only EFLR classification and the
// Channel/Frame side-tables.
func WithEFLROnly(eflrOnly bool) Option {
	return func(o *Options) {
		o.eflrOnly = eflrOnly
	}
}

// WithStrictFraming sets whether an EFLR's logical-record-type code must
// classify to a named Kind (spec.md's EFLR Typing table, codes 0-10 and
// 12); non-strict mode (the default) accepts an unclassifiable code as
// Kind Unknown instead of failing the parse. Type 11, which the table
// leaves unnamed, is rejected under strict framing.
func WithStrictFraming(strict bool) Option {
	return func(o *Options) {
		o.strictFraming = strict
	}
}

// WithMaxLogicalRecordSegments caps the number of Logical Record Segments
// Open will read before giving up, guarding against a truncated or
// corrupt file whose framing never terminates. Zero (the default) means
// unbounded.
func WithMaxLogicalRecordSegments(max int) Option {
	return func(o *Options) {
		o.maxSegments = max
	}
}

// File represents an open DLIS well-log file.
type File interface {
	Open(location string) error
	Parse() error
	Parsed() bool
	Close() error
	String() string
	SUL() *physical.SUL
	LogicalFiles() []*logicalfile.LogicalFile
	Dump(outputDir string) error

	// Source returns the byte source backing this file, for passing to a
	// LogicalFile's LoadIFLR when WithEFLROnly deferred its IFLR decode.
	// Valid only while the File remains open.
	Source() io.ReaderAt
}

// Open opens an existing DLIS file and parses it immediately.
func Open(location string, opts ...Option) (File, error) {
	options := Options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&options)
	}

	f := &dlisFile{options: options, logger: logging.NewLogger(options.logger)}
	if err := f.Open(location); err != nil {
		return nil, err
	}
	if err := f.Parse(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// dlisFile is the concrete File implementation.
type dlisFile struct {
	file         *os.File
	options      Options
	logger       *logging.Logger
	sul          *physical.SUL
	logicalFiles []*logicalfile.LogicalFile
	parsed       bool
}

// Open opens the underlying file without parsing it.
func (f *dlisFile) Open(location string) (err error) {
	f.file, err = os.Open(location)
	return err
}

// Close closes the underlying file.
func (f *dlisFile) Close() error {
	return f.file.Close()
}

// Parsed returns whether Parse has completed successfully.
func (f *dlisFile) Parsed() bool {
	return f.parsed
}

// String returns a short human-readable summary of the parsed file.
func (f *dlisFile) String() string {
	if !f.parsed {
		return fmt.Sprintf("DLIS file %s (not parsed)", f.file.Name())
	}
	return fmt.Sprintf("DLIS file %s: %d Logical File(s)", f.file.Name(), len(f.logicalFiles))
}

// SUL returns the parsed Storage Unit Label.
func (f *dlisFile) SUL() *physical.SUL {
	return f.sul
}

// LogicalFiles returns every Logical File this decoder split the input
// into, in file order.
func (f *dlisFile) LogicalFiles() []*logicalfile.LogicalFile {
	return f.logicalFiles
}

// Source returns the underlying file, which implements io.ReaderAt.
func (f *dlisFile) Source() io.ReaderAt {
	return f.file
}

// Parse reads the Storage Unit Label, scans every Visible Record to the
// end of the file, reassembles Logical Record Segments into Logical
// Records, and splits those into Logical Files.
func (f *dlisFile) Parse() (err error) {
	if f.file == nil {
		return fmt.Errorf("dlis file is not open")
	}

	f.sul, err = physical.ReadSUL(f.file, f.logger)
	if err != nil {
		return fmt.Errorf("failed to read Storage Unit Label: %w", err)
	}

	total, err := f.file.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if _, err := f.file.Seek(consts.SUL_LENGTH, io.SeekStart); err != nil {
		return err
	}

	var segments []*physical.LogicalRecordSegment
	for {
		pos, err := f.file.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		if pos >= total {
			break
		}
		vr, err := physical.ReadVR(f.file, f.logger)
		if err != nil {
			return fmt.Errorf("failed to read Visible Record at offset %d: %w", pos, err)
		}
		segments = append(segments, vr.Segments...)
		if f.options.maxSegments > 0 && len(segments) > f.options.maxSegments {
			return fmt.Errorf("exceeded maximum of %d Logical Record Segments", f.options.maxSegments)
		}
	}

	records, err := logicalrecord.Reassemble(segments, f.logger)
	if err != nil {
		return fmt.Errorf("failed to reassemble Logical Records: %w", err)
	}

	f.logicalFiles, err = logicalfile.Split(records, f.file, !f.options.eflrOnly, f.options.strictFraming, f.logger)
	if err != nil {
		return fmt.Errorf("failed to split Logical Files: %w", err)
	}

	f.logger.Info("parsed DLIS file", "logicalFiles", len(f.logicalFiles))
	f.parsed = true
	return nil
}

// Dump writes the bundled output (one JSON document and, unless
// WithEFLROnly was set, one CSV per Frame and a JSON+blob pair per
// Unformatted-Data object) for every Logical File into outputDir.
func (f *dlisFile) Dump(outputDir string) error {
	if !f.parsed {
		if err := f.Parse(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	for i, lf := range f.logicalFiles {
		if _, err := writer.WriteJSON(lf, outputDir, i); err != nil {
			return err
		}
		if f.options.eflrOnly {
			continue
		}
		if _, err := writer.WriteFrameCSV(lf, outputDir); err != nil {
			return err
		}
		if len(lf.UnformattedData) > 0 {
			udDir := outputDir + "/UnformattedDataLogicalRecords"
			if _, err := writer.WriteUnformattedData(lf, udDir); err != nil {
				return err
			}
		}
	}
	return nil
}
