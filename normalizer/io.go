package normalizer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTable loads a tabular dataset, choosing the parser by file extension.
// CSV, TSV and XLSX are supported.
func ReadTable(path string) (Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	case ".xlsx":
		return ReadExcel(path)
	default:
		return Table{}, fmt.Errorf("unsupported table format %q", ext)
	}
}

// WriteTable writes a table, choosing the encoder by file extension.
func WriteTable(path string, t Table) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return WriteCSV(path, t)
	case ".tsv":
		return writeDelimited(path, t, '\t')
	case ".xlsx":
		return WriteExcel(path, t)
	default:
		return fmt.Errorf("unsupported table format %q", ext)
	}
}

func readDelimited(path string, comma rune) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, nil
		}
		return Table{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	t := Table{Columns: make([]string, len(header))}
	for i, cell := range header {
		t.Columns[i] = cleanCell(cell)
	}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		row := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(rec) {
				row[col] = cleanCell(rec[i])
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteCSV writes the table with a UTF-8 BOM so spreadsheet tools pick the
// right encoding for Japanese headers.
func WriteCSV(path string, t Table) error {
	return writeDelimited(path, t, ',')
}

func writeDelimited(path string, t Table, comma rune) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if comma == ',' {
		if _, err := f.Write(utf8BOM); err != nil {
			return fmt.Errorf("write bom: %w", err)
		}
	}
	writer := csv.NewWriter(f)
	writer.Comma = comma
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			record[j] = row[col]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", filepath.Base(path), err)
	}
	return nil
}

// cleanCell trims whitespace and stray BOMs and applies NFKC so half-width
// and full-width header spellings compare equal downstream.
func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(norm.NFKC.String(v))
}
