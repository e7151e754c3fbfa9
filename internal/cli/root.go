// Package cli wires the toolbelt commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toolbelt/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "toolbelt",
	Short: "Small host and repository utilities",
	Long: "Utilities that would otherwise live as one-off scripts: switching the\n" +
		"INT3400 thermal policy, analyzing repository contributors, building\n" +
		"trip photo albums, and spelling text phonetically.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default ~/.toolbelt/config.yaml)")
}

// loadConfig reads the file named by --config, or the default location.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgPath)
}

// stderrf prints one progress line to the error stream.
func stderrf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
