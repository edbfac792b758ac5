// Package main is the entry point for the everyday application.
// This file contains the restore subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"

	"everyday/internal/backup"
	"everyday/internal/config"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `everyday restore - Restore data from a snapshot

USAGE:
    everyday restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent snapshot
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the snapshot to restore (e.g., 2025-12-15_143022_000)
                   Use 'everyday backup --list' to see available snapshots.

DESCRIPTION:
    Restores the habit data file from a snapshot. A safety snapshot of the
    current data is automatically created before restoring.

EXAMPLES:
    # Restore from a specific snapshot
    everyday restore 2025-12-15_143022_000

    # Restore from the most recent snapshot
    everyday restore --latest

    # Restore without confirmation prompt
    everyday restore --force 2025-12-15_143022_000
`

// runRestore handles the "everyday restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent snapshot")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	// Load config to get data directory
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	manager := backup.NewManager(cfg.GetDataDir(), version)

	// Determine which snapshot to restore
	var backupName string
	if *latestFlag {
		backups, err := manager.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
			os.Exit(1)
		}
		if len(backups) == 0 {
			fmt.Fprintln(os.Stderr, "No backups available.")
			os.Exit(1)
		}
		backupName = backups[0].Name
	} else if fs.NArg() > 0 {
		backupName = fs.Arg(0)
	} else {
		fmt.Fprintln(os.Stderr, "Error: no snapshot specified")
		fmt.Fprintln(os.Stderr, "Use 'everyday restore BACKUP_NAME' or 'everyday restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'everyday backup --list' to see available snapshots.")
		os.Exit(1)
	}

	// Get snapshot info
	info, err := manager.GetBackup(backupName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Display snapshot info
	fmt.Printf("Restoring from snapshot: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Habits: %d, Check-ins: %d\n",
		info.Stats["habits"], info.Stats["completions"])
	fmt.Println()

	// Confirm unless --force is set
	if !*forceFlag {
		fmt.Println("⚠ This will overwrite your current data.")
		fmt.Print("Continue? [y/N] ")
		if !promptYes() {
			fmt.Println("Restore cancelled.")
			os.Exit(0)
		}
	}

	// Perform restore
	fmt.Println("✓ Creating safety snapshot first...")
	if err := manager.Restore(backupName); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Restored successfully from %s\n", backupName)
}
