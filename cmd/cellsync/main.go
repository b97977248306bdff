// Package main is the entry point for the cellsync command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/cellsync/internal/config"
	"github.com/dshills/cellsync/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cellsync",
	Short: "Synthesize and inspect concatenated notebook documents",
	Long: `cellsync merges the code cells of a notebook into one synthetic Python
document, the way a language server sees it, and translates positions
between cell-local and concatenated coordinates.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cellsync %s (commit %s, built %s)\n", version, commit, date)
	},
}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd.Version = version
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to TOML config file")
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "", "minimum log level (debug|info|warn|error)")

	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// loadConfig resolves the effective configuration: defaults, then the
// config file if given, then flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if mode, _ := cmd.Flags().GetString("color"); mode != "" {
		cfg.Color = mode
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logging.Default().SetLevel(logging.ParseLevel(cfg.LogLevel))
	applyColorMode(cfg.Color)
	return cfg, nil
}

// applyColorMode resolves the color flag against the output terminal.
func applyColorMode(mode string) {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
