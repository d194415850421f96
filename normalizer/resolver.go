package normalizer

import (
	"log"
	"strings"
)

// Resolver matches noisy grade strings against the curated reference list.
// It is immutable after construction, so a single instance may be shared by
// concurrent callers without locking.
type Resolver struct {
	db       *ReferenceDatabase
	keywords []string
	cfg      Config
	logger   *log.Logger
}

// NewResolver constructs a resolver over an already-loaded database and
// keyword list. A nil database behaves like an empty one.
func NewResolver(db *ReferenceDatabase, keywords []string, cfg Config, logger *log.Logger) *Resolver {
	cfg.ApplyDefaults()
	if db == nil {
		db = NewReferenceDatabase(nil)
	}
	return &Resolver{
		db:       db,
		keywords: append([]string(nil), keywords...),
		cfg:      cfg,
		logger:   logger,
	}
}

// NewResolverFromFiles loads both reference inputs and downgrades load
// failures to warnings, so a missing or corrupt file never aborts a run.
func NewResolverFromFiles(gradesPath, keywordsPath string, cfg Config, logger *log.Logger) *Resolver {
	logf := func(format string, args ...any) {
		if logger != nil {
			logger.Printf(format, args...)
		}
	}
	db, err := LoadGrades(gradesPath)
	if err != nil {
		logf("grade reference unavailable, falling back to heuristics: %v", err)
	} else {
		logf("loaded grade reference: %d models", db.Len())
	}
	keywords, err := LoadKeywords(keywordsPath)
	if err != nil {
		logf("exclude keywords unavailable: %v", err)
	} else {
		logf("loaded %d exclude keywords", len(keywords))
	}
	return NewResolver(db, keywords, cfg, logger)
}

// Config returns a copy of the resolver configuration.
func (r *Resolver) Config() Config {
	return r.cfg.Clone()
}

// Database exposes the reference database backing this resolver.
func (r *Resolver) Database() *ReferenceDatabase { return r.db }

// Resolve maps a raw grade string and a model name to a canonical grade with
// a confidence score in [0,1]. Unknown models yield the heuristically
// extracted token with confidence 0.
func (r *Resolver) Resolve(rawGrade, modelName string) MatchResult {
	cleaned := r.cleanGradeText(rawGrade)
	model := r.db.ResolveModel(modelName)
	entry, known := r.db.Lookup(model)

	core, forced := r.extractCore(cleaned, entry, known)
	if forced {
		return MatchResult{Grade: core, Confidence: r.cfg.CoreConfidence}
	}
	if !known {
		return MatchResult{Grade: core, Confidence: 0}
	}

	lowerCleaned := strings.ToLower(cleaned)
	lowerCore := strings.ToLower(core)
	for _, grade := range entry.Grades {
		if lowerCleaned == strings.ToLower(grade) {
			return MatchResult{Grade: grade, Confidence: 1}
		}
	}
	for _, grade := range entry.Grades {
		if lowerCore == strings.ToLower(grade) {
			return MatchResult{Grade: grade, Confidence: r.cfg.CoreConfidence}
		}
	}

	// Full scan, keeping the first best-scoring candidate.
	best := MatchResult{Grade: core}
	for _, grade := range entry.Grades {
		lowerGrade := strings.ToLower(grade)
		if strings.Contains(lowerGrade, lowerCore) || strings.Contains(lowerCleaned, lowerGrade) {
			if score := similarityRatio(cleaned, grade); score > best.Confidence {
				best = MatchResult{Grade: grade, Confidence: score}
			}
		}
		if score := similarityRatio(cleaned, grade); score > best.Confidence && score > r.cfg.SimilarityFloor {
			best = MatchResult{Grade: grade, Confidence: score}
		}
	}
	return best
}

func (r *Resolver) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
