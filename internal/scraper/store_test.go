package scraper

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carworks/caranalyzer/normalizer"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"アクア", "アクア"},
		{"トヨタ・アクア", "トヨタ_アクア"},
		{"スイフト スポーツ", "スイフト_スポーツ"},
		{`a/b\c:d*e?f"g<h>i|j`, "abcdefghij"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), "input %q", tt.in)
	}
}

func TestSaveTable(t *testing.T) {
	dataDir := t.TempDir()
	table := normalizer.Table{
		Columns: []string{ColModel, ColGrade},
		Rows:    []map[string]string{{ColModel: "アクア", ColGrade: "G"}},
	}

	saved, err := SaveTable(dataDir, "アクア", table)
	require.NoError(t, err)

	day := time.Now().Format("2006年01月02日")
	stamp := time.Now().Format("2006_01_02")
	assert.Equal(t, filepath.Join(dataDir, "アクア", day, stamp+"_アクア.No1.csv"), saved)
	assert.FileExists(t, saved)
	assert.FileExists(t, strings.TrimSuffix(saved, ".csv")+".xlsx")

	loaded, err := normalizer.ReadTable(saved)
	require.NoError(t, err)
	assert.Equal(t, table.Rows, loaded.Rows)
}

func TestSaveTableSequenceNumbers(t *testing.T) {
	dataDir := t.TempDir()
	table := normalizer.Table{
		Columns: []string{ColGrade},
		Rows:    []map[string]string{{ColGrade: "G"}},
	}

	first, err := SaveTable(dataDir, "アクア", table)
	require.NoError(t, err)
	second, err := SaveTable(dataDir, "アクア", table)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(first, ".No1.csv"))
	assert.True(t, strings.HasSuffix(second, ".No2.csv"))
}

func TestSaveTableEmptyName(t *testing.T) {
	dataDir := t.TempDir()
	table := normalizer.Table{Columns: []string{ColGrade}}

	saved, err := SaveTable(dataDir, "", table)
	require.NoError(t, err)
	assert.Contains(t, saved, "Unknown")
}
