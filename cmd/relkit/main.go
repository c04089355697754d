package main

import (
	"fmt"
	"os"

	"github.com/easymingw/relkit/internal/common/logger"
	"github.com/easymingw/relkit/internal/common/output"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "relkit",
	Short: "Release changelog tools",
	Long:  `A collection of tools for generating and inspecting release changelogs from package manifests.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure logging based on flags
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor {
			output.NoColor()
		}
	},
}

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Generate and inspect release changelogs",
	Long:  `Commands for generating changelog Markdown from package manifests and comparing package sets between releases.`,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(changelogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
