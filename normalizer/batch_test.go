package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchResolver(t *testing.T) *Resolver {
	t.Helper()
	return testResolver([]ModelDefinition{
		{Name: "アクア", Grades: []string{"G", "S", "Z"}},
	}, nil)
}

func sampleTable() Table {
	return Table{
		Columns: []string{"車種名", "グレード", "支払総額"},
		Rows: []map[string]string{
			{"車種名": "アクア", "グレード": "G", "支払総額": "150万円"},
			{"車種名": "アクア", "グレード": "G・4WD", "支払総額": "160万円"},
			{"車種名": "アクア", "グレード": "S", "支払総額": "170万円"},
			{"車種名": "アクア", "グレード": "", "支払総額": "130万円"},
		},
	}
}

func TestNormalizeAppendsDerivedColumns(t *testing.T) {
	r := batchResolver(t)
	in := sampleTable()
	out := r.Normalize(in)

	require.Equal(t, []string{"車種名", "グレード", "支払総額", "元グレード", "正規グレード", "マッチング精度"}, out.Columns)
	require.Len(t, out.Rows, 4)

	assert.Equal(t, "G", out.Rows[0]["元グレード"])
	assert.Equal(t, "G", out.Rows[0]["正規グレード"])
	assert.Equal(t, "1", out.Rows[0]["マッチング精度"])

	assert.Equal(t, "S", out.Rows[2]["正規グレード"])
	assert.Equal(t, "1", out.Rows[2]["マッチング精度"])
}

func TestNormalizeMissingGradeCell(t *testing.T) {
	r := batchResolver(t)
	out := r.Normalize(sampleTable())

	assert.Equal(t, "", out.Rows[3]["元グレード"])
	assert.Equal(t, "ベース", out.Rows[3]["正規グレード"])
	assert.Equal(t, "0", out.Rows[3]["マッチング精度"])
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	r := batchResolver(t)
	in := sampleTable()
	_ = r.Normalize(in)

	assert.Equal(t, []string{"車種名", "グレード", "支払総額"}, in.Columns)
	for _, row := range in.Rows {
		assert.NotContains(t, row, "正規グレード")
	}
}

func TestNormalizeMissingGradeColumn(t *testing.T) {
	r := batchResolver(t)
	in := Table{
		Columns: []string{"車種名", "価格"},
		Rows:    []map[string]string{{"車種名": "アクア", "価格": "100万円"}},
	}
	out := r.Normalize(in)
	assert.Equal(t, in, out)
}

func TestNormalizeEmptyTable(t *testing.T) {
	r := batchResolver(t)
	out := r.Normalize(Table{})
	assert.Empty(t, out.Rows)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	r := batchResolver(t)
	once := r.Normalize(sampleTable())
	twice := r.Normalize(once)

	assert.Equal(t, once.Columns, twice.Columns)
	for i := range once.Rows {
		assert.Equal(t, once.Rows[i]["正規グレード"], twice.Rows[i]["正規グレード"])
	}
}

func TestBuildReport(t *testing.T) {
	r := batchResolver(t)
	out := r.Normalize(sampleTable())
	report := r.BuildReport(out)

	assert.Equal(t, 4, report.TotalCount)
	assert.Equal(t, 4, report.UniqueOriginal)
	assert.Equal(t, 3, report.UniqueNormalized)
	assert.Equal(t, report.TotalCount, report.Quality.High+report.Quality.Medium+report.Quality.Low)
	assert.Equal(t, 2, report.GradeDistribution["G"])
	assert.Equal(t, 1, report.GradeDistribution["S"])
	assert.Equal(t, 1, report.GradeDistribution["ベース"])

	// All pairs occur once, so ties order by original grade ascending.
	require.Len(t, report.TopMappings, 4)
	assert.Equal(t, MappingCount{Original: "", Normalized: "ベース", Count: 1}, report.TopMappings[0])
	assert.Equal(t, MappingCount{Original: "G", Normalized: "G", Count: 1}, report.TopMappings[1])
}

func TestBuildReportUnnormalizedTable(t *testing.T) {
	r := batchResolver(t)
	report := r.BuildReport(sampleTable())
	assert.Zero(t, report.TotalCount)
	assert.Empty(t, report.TopMappings)
}
