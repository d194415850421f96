package normalizer

import (
	"sort"
	"strconv"
)

// BuildReport aggregates the derived columns of a normalized table. Tables
// that were never normalized (or are empty) produce a zero report. The input
// is not modified.
func (r *Resolver) BuildReport(t Table) Report {
	report := Report{GradeDistribution: map[string]int{}, TopMappings: []MappingCount{}}
	if len(t.Rows) == 0 || !t.HasColumn(r.cfg.NormalizedColumn) {
		return report
	}

	report.TotalCount = len(t.Rows)
	originals := make(map[string]struct{})
	normalized := make(map[string]struct{})
	pairCounts := make(map[MappingCount]int)

	for _, row := range t.Rows {
		orig := row[r.cfg.OriginalColumn]
		norm := row[r.cfg.NormalizedColumn]
		originals[orig] = struct{}{}
		normalized[norm] = struct{}{}
		report.GradeDistribution[norm]++
		pairCounts[MappingCount{Original: orig, Normalized: norm}]++

		score, _ := strconv.ParseFloat(row[r.cfg.ConfidenceColumn], 64)
		switch {
		case score >= r.cfg.HighConfidence:
			report.Quality.High++
		case score >= r.cfg.MediumConfidence:
			report.Quality.Medium++
		default:
			report.Quality.Low++
		}
	}
	report.UniqueOriginal = len(originals)
	report.UniqueNormalized = len(normalized)

	pairs := make([]MappingCount, 0, len(pairCounts))
	for pair, count := range pairCounts {
		pair.Count = count
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		if pairs[i].Original != pairs[j].Original {
			return pairs[i].Original < pairs[j].Original
		}
		return pairs[i].Normalized < pairs[j].Normalized
	})
	if len(pairs) > r.cfg.TopMappings {
		pairs = pairs[:r.cfg.TopMappings]
	}
	report.TopMappings = pairs
	return report
}
