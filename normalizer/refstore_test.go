package normalizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGrades(t *testing.T) {
	path := writeTempFile(t, "grades.json", `[
		{
			"car_name": "アクア",
			"grades": ["G", "S", "Z"],
			"aliases": ["AQUA", "aqua"],
			"special_patterns": {"GRヤリス": "GR", "GR": "GR SPORT"}
		},
		{"car_name": "スイフト", "grades": ["RS", "XG"]}
	]`)

	db, err := LoadGrades(path)
	require.NoError(t, err)
	assert.Equal(t, 2, db.Len())

	entry, ok := db.Lookup("アクア")
	require.True(t, ok)
	assert.Equal(t, []string{"G", "S", "Z"}, entry.Grades)
	assert.Equal(t, []string{"AQUA", "aqua"}, entry.Aliases)
	// Pattern precedence follows document order.
	require.Len(t, entry.SpecialPatterns, 2)
	assert.Equal(t, SpecialPattern{Pattern: "GRヤリス", Grade: "GR"}, entry.SpecialPatterns[0])
	assert.Equal(t, SpecialPattern{Pattern: "GR", Grade: "GR SPORT"}, entry.SpecialPatterns[1])
}

func TestLoadGradesMissingFile(t *testing.T) {
	db, err := LoadGrades(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
	require.NotNil(t, db)
	assert.Equal(t, 0, db.Len())
}

func TestLoadGradesMalformed(t *testing.T) {
	path := writeTempFile(t, "grades.json", `{"not": "a list"}`)
	db, err := LoadGrades(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigNotFound)
	require.NotNil(t, db)
	assert.Equal(t, 0, db.Len())
}

func TestLoadKeywords(t *testing.T) {
	path := writeTempFile(t, "keywords.txt", "\ufeff4WD\n# comment\n\n  衝突軽減  \nナビ\n")
	keywords, err := LoadKeywords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"4WD", "衝突軽減", "ナビ"}, keywords)
}

func TestLoadKeywordsMissingFile(t *testing.T) {
	_, err := LoadKeywords(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestResolveModel(t *testing.T) {
	db := NewReferenceDatabase([]ModelDefinition{
		{Name: "アクア", Aliases: []string{"AQUA"}},
		{Name: "スイフト", Aliases: []string{"Swift", "スイフトスポーツ"}},
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact key", "アクア", "アクア"},
		{"exact alias", "AQUA", "アクア"},
		{"alias contained in input", "スズキ Swift RS", "スイフト"},
		{"input contained in alias", "スイフトスポ", "スイフト"},
		{"case insensitive alias", "swift", "スイフト"},
		{"unresolvable passes through", "カローラ", "カローラ"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.ResolveModel(tt.input))
		})
	}
}

func TestSpecialPatternsRoundTrip(t *testing.T) {
	in := specialPatterns{
		{Pattern: "b", Grade: "1"},
		{Pattern: "a", Grade: "2"},
	}
	data, err := in.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"b":"1","a":"2"}`, string(data))

	var out specialPatterns
	require.NoError(t, out.UnmarshalJSON(data))
	assert.Equal(t, in, out)
}
