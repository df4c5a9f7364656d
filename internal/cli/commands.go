// Package cli implements the catalogd command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mediakite/catalogd/internal/catalogsrv/config"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catalogd",
	Short: "catalogd - media catalog query service",
	Long: `catalogd serves a read-mostly media catalog over HTTP.
It imports records in bulk from CSV exports and exposes an authenticated
query API with filtering, search, facet values, and statistics.`,
	PersistentPreRun: preRunHandlePersistents,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func preRunHandlePersistents(cmd *cobra.Command, args []string) {
	// an empty config path loads development defaults
	if err := config.LoadConfig(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load config file: %v\n", err)
		os.Exit(1)
	}
}
