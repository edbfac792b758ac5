// Package main is the entry point for the everyday application.
// This file contains the export subcommand handler.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"everyday/internal/config"
	"everyday/internal/fsutil"
	"everyday/internal/storage"
	"everyday/internal/transfer"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `everyday export - Write habits to a portable backup file

USAGE:
    everyday export [OPTIONS]

OPTIONS:
    -o, --out FILE   Output path (default: ./everyday-backup-YYYY-MM-DD.json)
    -f, --force      Overwrite the output file if it exists
    -h, --help       Show this help message

DESCRIPTION:
    Writes every habit, including check-in history and notes, to a single
    JSON document that 'everyday import' can read back on any machine.
    The document carries its own version tag and is independent of the
    internal data file format.

EXAMPLES:
    # Write ./everyday-backup-<today>.json
    everyday export

    # Write to a specific path, overwriting if present
    everyday export --out ~/backups/habits.json --force
`

// runExport handles the "everyday export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	outFlag := fs.String("out", "", "output path")
	fs.StringVar(outFlag, "o", "", "output path (shorthand)")

	forceFlag := fs.Bool("force", false, "overwrite existing file")
	fs.BoolVar(forceFlag, "f", false, "overwrite existing file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	// Load config to get data directory
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.GetDataDir(), cliLog())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	habits, _ := store.Load()

	now := time.Now()
	data, err := transfer.Export(habits, now)
	if err != nil {
		if errors.Is(err, transfer.ErrNothingToExport) {
			fmt.Println("No habits to export.")
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = transfer.Filename(now)
	}

	// Refuse to clobber an existing file unless forced
	if !*forceFlag {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", outPath)
			os.Exit(1)
		}
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
	}
	if err := fsutil.WriteFileAtomic(outPath, data, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing backup: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Exported %d habits to %s\n", len(habits), outPath)
}
