package main

import (
	"github.com/spf13/cobra"

	"carworks/caranalyzer/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "caranalyzer",
	Short: "Scrape used-car listings and normalize their grade names",
	Long: `caranalyzer collects used-car listings, normalizes their free-form
grade strings against a curated reference list, and reports how the
normalization went.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
}

func loadConfig() config.Config {
	return config.Load(cfgFile)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
