package normalizer

import "strings"

// ColumnCandidates defines possible header names for auto-detecting the
// grade and model columns of scraped tables.
type ColumnCandidates struct {
	Grade []string `json:"grade"`
	Model []string `json:"model"`
}

// DefaultColumnCandidates returns the built-in header candidates.
func DefaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		Grade: []string{"グレード", "grade", "trim", "仕様"},
		Model: []string{"車種名", "車名", "モデル名", "model", "car_name"},
	}
}

// DetectColumns picks the grade and model columns from a header row using
// the default candidates. Empty strings are returned for columns that cannot
// be detected.
func DetectColumns(columns []string) (grade, model string) {
	candidates := DefaultColumnCandidates()
	return findColumn(columns, candidates.Grade), findColumn(columns, candidates.Model)
}

func findColumn(columns, candidates []string) string {
	for _, col := range columns {
		for _, cand := range candidates {
			if strings.EqualFold(col, cand) {
				return col
			}
		}
	}
	return ""
}
