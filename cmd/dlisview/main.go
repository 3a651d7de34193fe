// Command dlisview inspects an RP66 V1 ("DLIS") well-log file without
// writing anything to disk: it prints the Storage Unit Label and a summary
// of each decoded Logical File.
package main

import (
	"fmt"
	"os"

	"github.com/bgrewell/dlis-kit"
	"github.com/bgrewell/dlis-kit/pkg/logging"
	"github.com/bgrewell/usage"
	"golang.org/x/term"
)

// displayFileInfo prints the SUL and a per-Logical-File summary of f.
func displayFileInfo(f dlis.File, verbose bool) {
	sul := f.SUL()
	fmt.Println("=== DLIS Storage Unit Label ===")
	if sul != nil {
		fmt.Printf("Storage Set ID: %s\n", sul.StorageSetID)
		fmt.Printf("DLIS Version: %d\n", sul.Version)
		fmt.Printf("Structure: %s\n", sul.Structure)
		fmt.Printf("Max Record Length: %d\n", sul.MaxRecordLen)
		fmt.Printf("Sequence Number: %d\n", sul.SequenceNumber)
	}

	files := f.LogicalFiles()
	fmt.Println("=========================")
	fmt.Printf("Total Logical Files: %d\n", len(files))

	for i, lf := range files {
		fmt.Printf("\n=== Logical File %d ===\n", i)
		if id, ok := lf.ID(); ok {
			fmt.Printf("ID: %v\n", id)
		}
		fmt.Printf("EFLRs: %d\n", len(lf.EFLRs))
		fmt.Printf("Channels: %d\n", len(lf.Channels))
		fmt.Printf("Frames: %d\n", len(lf.Frames))
		fmt.Printf("Frame-Data records: %d\n", len(lf.FrameData))
		fmt.Printf("Unformatted-Data records: %d\n", len(lf.UnformattedData))
		if len(lf.EncryptedEFLRs) > 0 {
			fmt.Printf("Encrypted EFLRs (undecoded): %d\n", len(lf.EncryptedEFLRs))
		}
		if len(lf.PrivateIFLRs) > 0 {
			fmt.Printf("Private IFLRs: %d\n", len(lf.PrivateIFLRs))
		}

		if !verbose {
			continue
		}
		for _, c := range lf.EFLRs {
			fmt.Printf("  %s (%s)\n", c.Kind, c.Set.Type)
			if unknown := c.UnknownLabels(); len(unknown) > 0 {
				fmt.Printf("    unrecognized attribute labels: %v\n", unknown)
			}
		}
	}
	fmt.Println("=========================")
}

func main() {
	u := usage.NewUsage(
		usage.WithApplicationVersion("0.1.0"),
		usage.WithApplicationName("dlisview"),
		usage.WithApplicationDescription("dlisview is a command-line tool for inspecting RP66 V1 (DLIS) well-log files. It decodes the Storage Unit Label, Logical Files, Channels, Frames, and Frame-Data, and prints a summary without writing anything to disk."),
	)

	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Print per-EFLR detail", "", nil)
	eflrOnly := u.AddBooleanOption("e", "eflronly", false, "Skip Frame-Data/Unformatted-Data decoding", "", nil)
	path := u.AddArgument(1, "dlis-path", "Path to the DLIS file to inspect", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	if path == nil || *path == "" {
		u.PrintError(fmt.Errorf("location of the dlis file <path> must be provided"))
		os.Exit(1)
	}

	minVerbosity := logging.LEVEL_INFO
	if *verbose {
		minVerbosity = logging.LEVEL_DEBUG
	}
	useColor := term.IsTerminal(int(os.Stdout.Fd()))
	logger := logging.NewSimpleLogger(os.Stdout, minVerbosity, useColor)

	f, err := dlis.Open(*path, dlis.WithEFLROnly(*eflrOnly), dlis.WithLogger(logger))
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer f.Close()

	displayFileInfo(f, *verbose)
}
