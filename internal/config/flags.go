package config

// This file implements CLI flag parsing and help text.
// The settings file named by -config is loaded before the other flags are
// applied, so flags always win over the file.

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Version is shown by -version.
var Version = "1.0.0-dev"

// DefaultConfigName is looked up next to the working directory when -config
// is not given.
const DefaultConfigName = "filecards.yaml"

// ErrHelp is returned by ParseFlags when -help or -version was handled and
// the program should exit successfully.
var ErrHelp = flag.ErrHelp

// ParseFlags parses args (without the program name) into cfg.
func ParseFlags(cfg *Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("filecards", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { printUsage(fs, out) }

	var (
		configPath  string
		noWatch     bool
		noUndo      bool
		forceColor  bool
		noColor     bool
		showVersion bool
	)
	fs.StringVar(&configPath, "config", "", "YAML settings file (default ./"+DefaultConfigName+" if present)")
	fs.StringVar(&cfg.RootDir, "root", cfg.RootDir, "Root directory; created if absent")
	fs.StringVar(&cfg.RootLabel, "label", cfg.RootLabel, "Label shown for the root directory")
	fs.IntVar(&cfg.Columns, "columns", cfg.Columns, "Cards per row")
	fs.BoolVar(&cfg.Recursive, "recursive", cfg.Recursive, "Show every file below the current directory")
	fs.IntVar(&cfg.StartIndex, "start", cfg.StartIndex, "First number used by batch rename")
	fs.BoolVar(&noWatch, "no-watch", false, "Do not refresh on filesystem changes")
	fs.BoolVar(&noUndo, "no-undo-log", false, "Do not write undo logs for batch renames")
	fs.StringVar(&cfg.UndoDir, "undo-dir", cfg.UndoDir, "Directory for undo logs")
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as -verbose")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")

	// First pass: find -config so the file can be applied under the flags.
	if err := fs.Parse(args); err != nil {
		return err
	}
	if showVersion {
		fmt.Fprintln(out, "filecards v"+Version)
		return ErrHelp
	}
	if configPath != "" || fileExists(DefaultConfigName) {
		path, optional := configPath, false
		if path == "" {
			path, optional = DefaultConfigName, true
		}
		if err := Load(cfg, path, optional); err != nil {
			return err
		}
		// Second pass: flags override the file.
		if err := fs.Parse(args); err != nil {
			return err
		}
	}

	if noWatch {
		cfg.Watch = false
	}
	if noUndo {
		cfg.UndoLog = false
	}
	if forceColor {
		cfg.ColorMode = ColorAlways
	}
	if noColor {
		cfg.ColorMode = ColorNever
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.RootDir != "" && !filepath.IsAbs(cfg.RootDir) {
		if abs, err := filepath.Abs(cfg.RootDir); err == nil {
			cfg.RootDir = abs
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func printUsage(fs *flag.FlagSet, out io.Writer) {
	fmt.Fprintf(out, `filecards v%s - card view file manager

Usage:
  filecards [options]

Options:
`, Version)
	fs.PrintDefaults()
}
