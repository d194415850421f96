package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"carworks/caranalyzer/normalizer"
	"carworks/caranalyzer/pkg/logger"
)

var (
	normalizeOutput string
	normalizeGrade  string
	normalizeModel  string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <input>",
	Short: "Normalize the grade column of a listing table",
	Long: `Normalize reads a CSV, TSV or XLSX table, resolves every raw grade
string against the reference grade list, and writes the table back with the
original grade, the normalized grade and a confidence score appended.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "output file (default <input>_normalized.csv)")
	normalizeCmd.Flags().StringVar(&normalizeGrade, "grade-column", "", "grade column name (auto-detected when empty)")
	normalizeCmd.Flags().StringVar(&normalizeModel, "model-column", "", "model column name (auto-detected when empty)")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := logger.New("normalizer")

	input := args[0]
	table, err := normalizer.ReadTable(input)
	if err != nil {
		return err
	}

	rcfg := cfg.ResolverConfig()
	if grade, model := pickColumns(table, normalizeGrade, normalizeModel); grade != "" {
		rcfg.GradeColumn = grade
		if model != "" {
			rcfg.ModelColumn = model
		}
	}

	resolver := normalizer.NewResolverFromFiles(cfg.Paths.GradesFile, cfg.Paths.KeywordsFile, rcfg, log)
	result := resolver.Normalize(table)

	output := normalizeOutput
	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + "_normalized.csv"
	}
	if err := normalizer.WriteTable(output, result); err != nil {
		return err
	}

	report := resolver.BuildReport(result)
	fmt.Printf("normalized %d rows -> %s\n", report.TotalCount, output)
	printQuality(report)
	return nil
}

// pickColumns resolves the grade and model columns: explicit flags win, then
// header auto-detection.
func pickColumns(t normalizer.Table, grade, model string) (string, string) {
	detectedGrade, detectedModel := normalizer.DetectColumns(t.Columns)
	if grade == "" {
		grade = detectedGrade
	}
	if model == "" {
		model = detectedModel
	}
	return grade, model
}

func printQuality(report normalizer.Report) {
	total := report.TotalCount
	if total == 0 {
		return
	}
	pct := func(n int) string {
		return strconv.FormatFloat(float64(n)/float64(total)*100, 'f', 1, 64) + "%"
	}
	fmt.Printf("  high confidence:   %d (%s)\n", report.Quality.High, pct(report.Quality.High))
	fmt.Printf("  medium confidence: %d (%s)\n", report.Quality.Medium, pct(report.Quality.Medium))
	fmt.Printf("  low confidence:    %d (%s)\n", report.Quality.Low, pct(report.Quality.Low))
}
