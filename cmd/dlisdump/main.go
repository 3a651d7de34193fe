// Command dlisdump decodes RP66 V1 ("DLIS") well-log files and writes the
// bundled JSON+CSV representation described in SPEC_FULL.md to disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bgrewell/dlis-kit"
	"github.com/bgrewell/dlis-kit/pkg/logging"
	"github.com/theckman/yacspin"
	"golang.org/x/term"
)

func main() {
	input := flag.String("input", "", "Path to a .DLIS file or a directory to scan recursively")
	output := flag.String("output", ".", "Output directory for decoded JSON/CSV files")
	eflrOnly := flag.Bool("eflronly", false, "Decode only EFLRs, skipping Frame-Data/Unformatted-Data")
	verbose := flag.Bool("v", false, "Enable verbose (debug) logging")
	trace := flag.Bool("vv", false, "Enable trace logging")
	flag.Parse()

	if *input == "" {
		fmt.Println("Usage: dlisdump [options] --input <file|dir>")
		fmt.Println("  --input <path>     Path to a .DLIS file or a directory to scan recursively")
		fmt.Println("  --output <dir>     Output directory (default '.')")
		fmt.Println("  --eflronly <bool>  Skip Frame-Data/Unformatted-Data decoding (default false)")
		fmt.Println("  -v                 Enable verbose (debug) logging")
		fmt.Println("  -vv                Enable trace logging")
		os.Exit(1)
	}

	minVerbosity := logging.LEVEL_INFO
	if *trace {
		minVerbosity = logging.LEVEL_TRACE
	} else if *verbose {
		minVerbosity = logging.LEVEL_DEBUG
	}
	useColor := term.IsTerminal(int(os.Stdout.Fd()))
	logger := logging.NewSimpleLogger(os.Stdout, minVerbosity, useColor)

	files, err := collectInputs(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve input: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No .DLIS files found under %s\n", *input)
		os.Exit(1)
	}

	var spinner *yacspin.Spinner
	if useColor {
		cfg := yacspin.Config{
			Frequency:       100 * time.Millisecond,
			CharSet:         yacspin.CharSets[11],
			Suffix:          " decoding DLIS files",
			SuffixAutoColon: true,
			StopCharacter:   "✓",
			StopColors:      []string{"fgGreen"},
		}
		spinner, err = yacspin.New(cfg)
		if err == nil {
			_ = spinner.Start()
		} else {
			spinner = nil
		}
	}

	failures := 0
	for _, path := range files {
		if spinner != nil {
			spinner.Message(filepath.Base(path))
		}

		f, err := dlis.Open(path, dlis.WithEFLROnly(*eflrOnly), dlis.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", path, err)
			failures++
			continue
		}

		outDir := *output
		if len(files) > 1 {
			outDir = filepath.Join(*output, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		}
		if err := f.Dump(outDir); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to dump %s: %v\n", path, err)
			failures++
		}
		f.Close()
	}

	if spinner != nil {
		_ = spinner.Stop()
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "Completed with %d failure(s)\n", failures)
		os.Exit(1)
	}
	fmt.Printf("Decoded %d file(s) to '%s'.\n", len(files), *output)
}

// collectInputs resolves input into a list of .DLIS/.dlis files: the path
// itself if it names a file, or every matching file found by a recursive
// walk if it names a directory.
func collectInputs(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	var files []string
	err = filepath.WalkDir(input, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := strings.ToLower(filepath.Ext(path)); ext == ".dlis" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
