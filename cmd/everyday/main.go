// Package main is the entry point for the everyday application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"everyday/internal/config"
	"everyday/internal/logging"
	"everyday/internal/notify"
	"everyday/internal/state"
	"everyday/internal/storage"
	"everyday/internal/ui"

	"github.com/rs/zerolog"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `everyday - Daily habit tracking for your terminal

USAGE:
    everyday [OPTIONS]
    everyday <command> [ARGS]

COMMANDS:
    export           Write all habits to a portable backup file
    export --out F   Write the backup to a specific path
    import FILE      Replace all habits from a backup file
    import --dry-run Preview an import without making changes
    report           Print today's habit report (Markdown)
    report --weekly  Print a weekly report
    report --json    Output report as JSON
    backup           Create a snapshot of the data file
    backup --list    List available snapshots
    backup --prune N Keep only the N most recent snapshots
    restore NAME     Restore from a specific snapshot
    restore --latest Restore from the most recent snapshot
    version          Show version information
    help             Show this help message

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    everyday is a terminal-based habit tracker with a weekly check-off
    view, a long-range completion grid, streaks, notes and color tags.

FEATURES:
    • Week view   - The trailing seven days per habit, toggleable
    • Grid view   - 18 weeks of history per habit at a glance
    • Streaks     - Current run length, counted up to today
    • Notes       - A free-form note per habit
    • Local Data  - One plain JSON file in ~/.everyday/

KEYBINDINGS:
    Global:
        Tab          Switch week/grid view
        ?            Show help overlay
        q            Quit

    Habits:
        j/k, ↓/↑     Navigate
        h/l, ←/→     Move the day cursor
        a            Add habit
        r            Rename habit
        d/Space      Toggle the day under the cursor
        x            Delete habit
        c            Pick color
        n            Edit note
        K/J          Move habit up/down

    Selection:
        v            Toggle select mode
        Space        Check/uncheck habit
        Ctrl+a       Select all

DATA STORAGE:
    All data is stored in ~/.everyday/ as a single JSON file:
        habits.json  - Habits, check-ins and notes

CONFIGURATION:
    Optional config file: ~/.config/everyday/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    everyday

    # Write a portable backup to the current directory
    everyday export

    # Replace all habits from a backup
    everyday import everyday-backup-2025-12-15.json

    # Print this week's report as JSON
    everyday report --weekly --json

    # Snapshot the data file, then prune old snapshots
    everyday backup
    everyday backup --prune 10

    # Show version
    everyday --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		case "report":
			runReport(os.Args[2:])
			return
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "version":
			printVersion()
			return
		case "help":
			fmt.Print(helpText)
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Handle help flag
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/everyday/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so diagnostics go to a file in the data
	// directory. A failed open is not fatal; the app runs without a log.
	logger, logCloser, err := logging.Open(cfg.GetDataDir(), cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger = zerolog.Nop()
	} else {
		defer logCloser.Close()
	}

	// Initialize storage with configured data directory
	store, err := storage.New(cfg.GetDataDir(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// Fill the store from disk (or seed it on first run), then mirror
	// every settled state back to the data file.
	st := state.New(logger)
	store.Bootstrap(st)
	cancelSync := store.AutoSync(st)
	defer cancelSync()

	// Create styles from theme config
	styles := ui.NewStylesFromTheme(&cfg.Theme)

	notifier := notify.Disabled()
	if cfg.Notifications.Enabled {
		notifier = notify.New()
	}

	// Create app config with keys and UX settings
	appCfg := &ui.AppConfig{
		Keys:             &cfg.Keys,
		ConfirmDeletions: cfg.UX.ConfirmDeletions,
		ShowStreaks:      cfg.UX.ShowStreaks,
		Notifier:         notifier,
		NotifySound:      cfg.Notifications.Sound,
	}

	// Run the TUI
	if err := ui.Run(st, styles, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// printVersion prints build information.
func printVersion() {
	fmt.Printf("everyday version %s\n", version)
	fmt.Printf("  commit: %s\n", commit)
	fmt.Printf("  built:  %s\n", date)
}

// cliLog returns the logger for subcommands: diagnostics the TUI would
// write to the log file go to stderr instead.
func cliLog() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
}
