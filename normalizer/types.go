package normalizer

import "encoding/json"

// MatchResult is the outcome of resolving a single raw grade string.
type MatchResult struct {
	Grade      string  `json:"grade"`
	Confidence float64 `json:"confidence"`
}

// Table is an in-memory tabular dataset with named columns. Rows keep the
// values of every input column plus any columns appended during processing.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the table declares the given column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone creates a deep copy so callers can mutate the result freely.
func (t Table) Clone() Table {
	out := Table{Columns: append([]string(nil), t.Columns...)}
	if t.Rows != nil {
		out.Rows = make([]map[string]string, len(t.Rows))
		for i, row := range t.Rows {
			cp := make(map[string]string, len(row))
			for k, v := range row {
				cp[k] = v
			}
			out.Rows[i] = cp
		}
	}
	return out
}

// QualityBreakdown counts rows per confidence tier.
type QualityBreakdown struct {
	High   int `json:"high_confidence"`
	Medium int `json:"medium_confidence"`
	Low    int `json:"low_confidence"`
}

// MappingCount is one (original grade, normalized grade) pair with its frequency.
type MappingCount struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
	Count      int    `json:"count"`
}

// Report summarizes a normalized table.
type Report struct {
	TotalCount        int              `json:"total_count"`
	UniqueOriginal    int              `json:"unique_original_grades"`
	UniqueNormalized  int              `json:"unique_normalized_grades"`
	Quality           QualityBreakdown `json:"matching_quality"`
	GradeDistribution map[string]int   `json:"grade_distribution"`
	TopMappings       []MappingCount   `json:"mapping_examples"`
}

// Config aggregates the tunable matching constants and column names. The
// similarity floor and the confidence tiers are calibration values rather
// than structural ones, so they stay adjustable without touching the
// resolver.
type Config struct {
	SimilarityFloor  float64 `json:"similarityFloor" yaml:"similarityFloor"`
	HighConfidence   float64 `json:"highConfidence" yaml:"highConfidence"`
	MediumConfidence float64 `json:"mediumConfidence" yaml:"mediumConfidence"`
	CoreConfidence   float64 `json:"coreConfidence" yaml:"coreConfidence"`
	BaseGrade        string  `json:"baseGrade" yaml:"baseGrade"`
	TopMappings      int     `json:"topMappings" yaml:"topMappings"`

	GradeColumn      string `json:"gradeColumn" yaml:"gradeColumn"`
	ModelColumn      string `json:"modelColumn" yaml:"modelColumn"`
	OriginalColumn   string `json:"originalColumn" yaml:"originalColumn"`
	NormalizedColumn string `json:"normalizedColumn" yaml:"normalizedColumn"`
	ConfidenceColumn string `json:"confidenceColumn" yaml:"confidenceColumn"`
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.SimilarityFloor == 0 {
		c.SimilarityFloor = 0.6
	}
	if c.HighConfidence == 0 {
		c.HighConfidence = 0.8
	}
	if c.MediumConfidence == 0 {
		c.MediumConfidence = 0.6
	}
	if c.CoreConfidence == 0 {
		c.CoreConfidence = 0.95
	}
	if c.BaseGrade == "" {
		c.BaseGrade = "ベース"
	}
	if c.TopMappings <= 0 {
		c.TopMappings = 10
	}
	if c.GradeColumn == "" {
		c.GradeColumn = "グレード"
	}
	if c.ModelColumn == "" {
		c.ModelColumn = "車種名"
	}
	if c.OriginalColumn == "" {
		c.OriginalColumn = "元グレード"
	}
	if c.NormalizedColumn == "" {
		c.NormalizedColumn = "正規グレード"
	}
	if c.ConfidenceColumn == "" {
		c.ConfidenceColumn = "マッチング精度"
	}
}
