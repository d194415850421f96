package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"carworks/caranalyzer/normalizer"
	"carworks/caranalyzer/pkg/logger"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report <normalized-file>",
	Short: "Summarize a normalized listing table",
	Long: `Report reads a table produced by the normalize command and prints
match-quality counts, the grade distribution and the most frequent
original-to-normalized mappings.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := logger.New("report")

	table, err := normalizer.ReadTable(args[0])
	if err != nil {
		return err
	}
	resolver := normalizer.NewResolverFromFiles(cfg.Paths.GradesFile, cfg.Paths.KeywordsFile, cfg.ResolverConfig(), log)
	report := resolver.BuildReport(table)

	if reportJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(report)
	}

	fmt.Printf("rows:               %d\n", report.TotalCount)
	fmt.Printf("unique originals:   %d\n", report.UniqueOriginal)
	fmt.Printf("unique normalized:  %d\n", report.UniqueNormalized)
	printQuality(report)
	if len(report.TopMappings) > 0 {
		fmt.Println("top mappings:")
		for _, m := range report.TopMappings {
			fmt.Printf("  %s -> %s (%d)\n", m.Original, m.Normalized, m.Count)
		}
	}
	return nil
}
