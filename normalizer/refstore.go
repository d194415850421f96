package normalizer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrConfigNotFound marks a reference file that does not exist, as opposed to
// one that exists but cannot be parsed. Callers that want fail-soft behaviour
// log the error and keep the (empty) database that accompanies it.
var ErrConfigNotFound = errors.New("reference file not found")

// SpecialPattern forces a substring of the cleaned grade text to a fixed
// label, bypassing list matching.
type SpecialPattern struct {
	Pattern string
	Grade   string
}

// ModelEntry holds the curated reference data for one vehicle model.
type ModelEntry struct {
	Grades          []string
	Aliases         []string
	SpecialPatterns []SpecialPattern
}

// ModelDefinition is the input form of a model entry, carrying its name.
type ModelDefinition struct {
	Name            string          `json:"car_name"`
	Grades          []string        `json:"grades"`
	Aliases         []string        `json:"aliases"`
	SpecialPatterns specialPatterns `json:"special_patterns"`
}

// ReferenceDatabase maps canonical model names to their reference entries.
// It preserves definition order because alias resolution scans models
// first-match-wins. The database is immutable after construction.
type ReferenceDatabase struct {
	models map[string]ModelEntry
	order  []string
}

// NewReferenceDatabase builds a database from model definitions. Later
// definitions with a duplicate name replace earlier ones.
func NewReferenceDatabase(defs []ModelDefinition) *ReferenceDatabase {
	db := &ReferenceDatabase{models: make(map[string]ModelEntry, len(defs))}
	for _, def := range defs {
		if def.Name == "" {
			continue
		}
		if _, exists := db.models[def.Name]; !exists {
			db.order = append(db.order, def.Name)
		}
		db.models[def.Name] = ModelEntry{
			Grades:          append([]string(nil), def.Grades...),
			Aliases:         append([]string(nil), def.Aliases...),
			SpecialPatterns: append([]SpecialPattern(nil), def.SpecialPatterns...),
		}
	}
	return db
}

// Len returns the number of known models.
func (db *ReferenceDatabase) Len() int { return len(db.order) }

// Lookup returns the entry for a canonical model name.
func (db *ReferenceDatabase) Lookup(name string) (ModelEntry, bool) {
	entry, ok := db.models[name]
	return entry, ok
}

// ResolveModel maps a model name to its canonical form. Exact keys win, then
// each model's aliases are checked in definition order: an exact alias match,
// or a case-insensitive containment in either direction. Unresolvable names
// pass through unchanged.
func (db *ReferenceDatabase) ResolveModel(name string) string {
	if name == "" {
		return ""
	}
	if _, ok := db.models[name]; ok {
		return name
	}
	lower := strings.ToLower(name)
	for _, model := range db.order {
		entry := db.models[model]
		for _, alias := range entry.Aliases {
			if alias == name {
				return model
			}
		}
		for _, alias := range entry.Aliases {
			la := strings.ToLower(alias)
			if strings.Contains(lower, la) || strings.Contains(la, lower) {
				return model
			}
		}
	}
	return name
}

// LoadGrades reads the per-model grade reference from a JSON document. The
// returned database is always usable; when an error is returned the database
// is empty and every resolution falls back to heuristic extraction.
func LoadGrades(path string) (*ReferenceDatabase, error) {
	empty := NewReferenceDatabase(nil)
	if strings.TrimSpace(path) == "" {
		return empty, fmt.Errorf("%w: no grade file configured", ErrConfigNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return empty, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return empty, fmt.Errorf("read grade reference: %w", err)
	}
	var defs []ModelDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return empty, fmt.Errorf("decode grade reference: %w", err)
	}
	return NewReferenceDatabase(defs), nil
}

// LoadKeywords reads the exclude keyword list, one keyword per line. Blank
// lines and '#' comments are skipped. On error the returned slice is empty.
func LoadKeywords(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: no keyword file configured", ErrConfigNotFound)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("open keyword list: %w", err)
	}
	defer f.Close()

	var keywords []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keywords = append(keywords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan keyword list: %w", err)
	}
	return keywords, nil
}

// specialPatterns decodes a JSON object while preserving key order, since the
// first matching pattern wins and that precedence comes from the document.
type specialPatterns []SpecialPattern

func (p *specialPatterns) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("special_patterns must be a JSON object")
	}
	out := specialPatterns{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("special_patterns key must be a string")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("special_patterns value for %q: %w", key, err)
		}
		out = append(out, SpecialPattern{Pattern: key, Grade: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = out
	return nil
}

func (p specialPatterns) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sp := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(sp.Pattern)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(sp.Grade)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
