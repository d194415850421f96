package normalizer

import "strconv"

// Normalize applies the resolver to every row and returns a new table with
// the original grade, normalized grade and confidence columns appended. The
// input table is never mutated; rows are independent, so the transform is
// safe to run from concurrent callers.
func (r *Resolver) Normalize(t Table) Table {
	if len(t.Rows) == 0 {
		r.logf("input table is empty")
		return t.Clone()
	}
	if !t.HasColumn(r.cfg.GradeColumn) {
		r.logf("grade column %q not found, leaving table unchanged", r.cfg.GradeColumn)
		return t.Clone()
	}

	out := t.Clone()
	for _, col := range []string{r.cfg.OriginalColumn, r.cfg.NormalizedColumn, r.cfg.ConfidenceColumn} {
		if !out.HasColumn(col) {
			out.Columns = append(out.Columns, col)
		}
	}

	var high, medium, low int
	for i, row := range out.Rows {
		original := row[r.cfg.GradeColumn]
		var result MatchResult
		if original == "" {
			result = MatchResult{Grade: r.cfg.BaseGrade, Confidence: 0}
		} else {
			result = r.Resolve(original, row[r.cfg.ModelColumn])
		}
		row[r.cfg.OriginalColumn] = original
		row[r.cfg.NormalizedColumn] = result.Grade
		row[r.cfg.ConfidenceColumn] = strconv.FormatFloat(result.Confidence, 'f', -1, 64)

		switch {
		case result.Confidence >= r.cfg.HighConfidence:
			high++
		case result.Confidence >= r.cfg.MediumConfidence:
			medium++
		default:
			low++
		}
		if (i+1)%100 == 0 {
			r.logf("normalized %d/%d rows", i+1, len(out.Rows))
		}
	}
	r.logf("normalization done: high=%d medium=%d low=%d", high, medium, low)
	return out
}
