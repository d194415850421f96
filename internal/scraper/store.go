package scraper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"carworks/caranalyzer/normalizer"
)

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// sanitizeName makes a car name safe as a directory or file component.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "・", "_")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, name)
}

// SaveTable writes the scraped listings under
// dataDir/<car>/<YYYY年MM月DD日>/YYYY_MM_DD_<car>.NoN.csv (and .xlsx),
// picking the first free sequence number for the day.
func SaveTable(dataDir, carName string, t normalizer.Table) (string, error) {
	safe := sanitizeName(carName)
	if safe == "" {
		safe = "Unknown"
	}
	now := time.Now()
	dir := filepath.Join(dataDir, safe, now.Format("2006年01月02日"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02"), safe)
	var csvPath string
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s.No%d.csv", base, n))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			csvPath = candidate
			break
		}
	}

	if err := normalizer.WriteCSV(csvPath, t); err != nil {
		return "", err
	}
	xlsxPath := strings.TrimSuffix(csvPath, ".csv") + ".xlsx"
	if err := normalizer.WriteExcel(xlsxPath, t); err != nil {
		return "", err
	}
	return csvPath, nil
}
