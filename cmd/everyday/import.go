// Package main is the entry point for the everyday application.
// This file contains the import subcommand handler.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"everyday/internal/config"
	"everyday/internal/habit"
	"everyday/internal/state"
	"everyday/internal/storage"
	"everyday/internal/transfer"

	"github.com/rs/zerolog"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `everyday import - Replace all habits from a backup file

USAGE:
    everyday import [OPTIONS] <file>

OPTIONS:
    --dry-run    Preview the import without making changes
    -y, --yes    Answer yes to all prompts
    -h, --help   Show this help message

DESCRIPTION:
    Reads a backup file written by 'everyday export' and replaces the
    entire habit list with its contents, all or nothing. A rejected file
    (broken JSON, wrong shape, no habits) changes nothing.

    If the backup was written by a different major version of the format,
    you are asked before the import proceeds. Use --yes to accept.

DEFAULTS:
    Missing fields are filled in: an absent name becomes "Untitled", an
    unknown color falls back to the default, check-in history and notes
    start empty, and a habit without an id gets a fresh one.

EXAMPLES:
    # Preview before importing
    everyday import --dry-run everyday-backup-2025-12-15.json

    # Import, answering yes to all prompts
    everyday import --yes everyday-backup-2025-12-15.json
`

// runImport handles the "everyday import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	dryRunFlag := fs.Bool("dry-run", false, "preview import without making changes")

	yesFlag := fs.Bool("yes", false, "answer yes to all prompts")
	fs.BoolVar(yesFlag, "y", false, "answer yes to all prompts (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing file argument\n\n")
		fmt.Fprintf(os.Stderr, "Usage: everyday import <file>\n")
		fmt.Fprintf(os.Stderr, "\nRun 'everyday import --help' for more information.\n")
		os.Exit(1)
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Dry runs accept any version; nothing is going to change anyway.
	confirm := confirmVersion(*yesFlag || *dryRunFlag)

	habits, err := transfer.Import(raw, confirm, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, transfer.ErrCanceled):
			fmt.Println("Import canceled.")
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *dryRunFlag {
		previewImport(habits)
		return
	}

	applyImport(habits, *yesFlag)
}

// confirmVersion builds the version-mismatch hook for transfer.Import.
func confirmVersion(assumeYes bool) transfer.ConfirmFunc {
	return func(version string) bool {
		if assumeYes {
			return true
		}
		fmt.Printf("⚠ This backup uses format version %s, which this build does not fully understand.\n", version)
		fmt.Print("Import anyway? [y/N] ")
		return promptYes()
	}
}

// promptYes reads one line from stdin and reports whether it was a yes.
func promptYes() bool {
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// previewImport prints what an import would bring in.
func previewImport(habits []habit.Habit) {
	fmt.Printf("Preview: %d habits to import\n", len(habits))
	fmt.Println("────────────────────────────")

	// Show first 20 habits
	showCount := len(habits)
	if showCount > 20 {
		showCount = 20
	}

	for i := 0; i < showCount; i++ {
		h := habits[i]
		fmt.Printf("  %s", h.DisplayName())

		details := []string{string(h.Color)}
		if n := h.CompletedDates.Size(); n > 0 {
			details = append(details, fmt.Sprintf("%d check-ins", n))
		}
		if strings.TrimSpace(h.Notes) != "" {
			details = append(details, "note")
		}

		fmt.Printf(" (%s)\n", strings.Join(details, ", "))
	}

	if len(habits) > 20 {
		fmt.Printf("  ... and %d more\n", len(habits)-20)
	}

	fmt.Println()
	fmt.Println("Run without --dry-run to import.")
}

// applyImport replaces the stored habit list with the imported one.
func applyImport(habits []habit.Habit, assumeYes bool) {
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

	current, _ := store.Load()

	if !assumeYes {
		fmt.Printf("⚠ This replaces your current %d habits with %d from the backup.\n", len(current), len(habits))
		fmt.Print("Continue? [y/N] ")
		if !promptYes() {
			fmt.Println("Import canceled.")
			os.Exit(0)
		}
	}

	// Apply through the store, all or nothing, then persist the result
	st := state.New(zerolog.Nop())
	st.SetHabits(habits)
	store.Save(st.State().Habits)

	checkIns := 0
	for _, h := range habits {
		checkIns += h.CompletedDates.Size()
	}

	fmt.Printf("✓ Imported %d habits (%d check-ins)\n", len(habits), checkIns)
	fmt.Printf("  Data file: %s\n", store.Path())
}
