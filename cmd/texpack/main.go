package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	profileFlag string
	configFlag  string
	jsonOutput  bool
	verboseFlag bool // Enable verbose/debug output
	quietFlag   bool // Suppress non-essential output
	noColorFlag bool // Force plain output
)

// Command group IDs for organized help output
const (
	GroupValidate = "validate"
	GroupTools    = "tools"
)

var rootCmd = &cobra.Command{
	Use:   "texpack",
	Short: "texpack - Texture set validator for real-time pipelines",
	Long: `Validates texture export folders against engine conventions.

Textures group into assets by filename (Asset_MapType, with an optional
_v### version suffix). Each asset is checked against the active profile:
required maps, image metadata, and packed ORM channels. Misnamed files can
be renamed to canonical form without ever overwriting existing files.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Handle --version flag on root command
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("texpack version %s (%s)\n", Version, Build)
			return
		}
		// No subcommand - show help
		_ = cmd.Help() // Help() always returns nil for cobra commands
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyVerbosityFlags()
		applyColorFlags()
		setupSignalContext()

		if isSetupFreeCommand(cmd) {
			return
		}

		loadPipeline()
		initTelemetry()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdownTelemetry()
		if rootCancel != nil {
			rootCancel()
		}
	},
}

func init() {
	// Command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupValidate, Title: "Validation:"},
		&cobra.Group{ID: GroupTools, Title: "Fixing & Setup:"},
	)

	// Register persistent flags
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Validation profile (default: config, then Unreal)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file path (default: auto-discover texpack.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	// Add --version flag to root command (same behavior as version subcommand)
	rootCmd.Flags().BoolP("version", "V", false, "Print version information")
}

// isSetupFreeCommand reports whether cmd runs without the validation
// pipeline. These commands must keep working even with a broken config.
func isSetupFreeCommand(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", "demo":
		return true
	}
	// completion's shell subcommands (bash, zsh, ...) need no setup either
	if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
		return true
	}
	return false
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
