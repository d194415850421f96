package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"carworks/caranalyzer/normalizer"
)

const configPathEnv = "CAR_ANALYZER_CONFIG"

// Config holds high-level settings required across the application.
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Matching MatchingConfig `yaml:"matching"`
}

// PathsConfig locates the reference files and the scraped-data directory.
type PathsConfig struct {
	GradesFile   string `yaml:"gradesFile"`
	KeywordsFile string `yaml:"keywordsFile"`
	DataDir      string `yaml:"dataDir"`
	URLsFile     string `yaml:"urlsFile"`
}

// ScraperConfig tunes the listing scraper.
type ScraperConfig struct {
	MaxPages     int    `yaml:"maxPages"`
	ItemsPerPage int    `yaml:"itemsPerPage"`
	DelaySeconds int    `yaml:"delaySeconds"`
	UserAgent    string `yaml:"userAgent"`
}

// MatchingConfig overrides the resolver's calibration constants.
type MatchingConfig struct {
	SimilarityFloor  float64 `yaml:"similarityFloor"`
	HighConfidence   float64 `yaml:"highConfidence"`
	MediumConfidence float64 `yaml:"mediumConfidence"`
	TopMappings      int     `yaml:"topMappings"`
}

// Load reads YAML configuration from the given path (or the path named by
// CAR_ANALYZER_CONFIG when empty) and merges it over the defaults. A missing
// or unparsable file logs a warning and falls back to defaults.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path == "" {
		return cfg
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		return cfg
	}
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		return cfg
	}
	return mergeConfig(cfg, fileCfg)
}

// ResolverConfig maps the matching overrides into the normalizer's config.
func (c Config) ResolverConfig() normalizer.Config {
	cfg := normalizer.Config{
		SimilarityFloor:  c.Matching.SimilarityFloor,
		HighConfidence:   c.Matching.HighConfidence,
		MediumConfidence: c.Matching.MediumConfidence,
		TopMappings:      c.Matching.TopMappings,
	}
	cfg.ApplyDefaults()
	return cfg
}

func mergeConfig(base, override Config) Config {
	if override.Paths.GradesFile != "" {
		base.Paths.GradesFile = override.Paths.GradesFile
	}
	if override.Paths.KeywordsFile != "" {
		base.Paths.KeywordsFile = override.Paths.KeywordsFile
	}
	if override.Paths.DataDir != "" {
		base.Paths.DataDir = override.Paths.DataDir
	}
	if override.Paths.URLsFile != "" {
		base.Paths.URLsFile = override.Paths.URLsFile
	}

	if override.Scraper.MaxPages > 0 {
		base.Scraper.MaxPages = override.Scraper.MaxPages
	}
	if override.Scraper.ItemsPerPage > 0 {
		base.Scraper.ItemsPerPage = override.Scraper.ItemsPerPage
	}
	if override.Scraper.DelaySeconds > 0 {
		base.Scraper.DelaySeconds = override.Scraper.DelaySeconds
	}
	if override.Scraper.UserAgent != "" {
		base.Scraper.UserAgent = override.Scraper.UserAgent
	}

	if override.Matching.SimilarityFloor > 0 {
		base.Matching.SimilarityFloor = override.Matching.SimilarityFloor
	}
	if override.Matching.HighConfidence > 0 {
		base.Matching.HighConfidence = override.Matching.HighConfidence
	}
	if override.Matching.MediumConfidence > 0 {
		base.Matching.MediumConfidence = override.Matching.MediumConfidence
	}
	if override.Matching.TopMappings > 0 {
		base.Matching.TopMappings = override.Matching.TopMappings
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			GradesFile:   "config/car_grades.json",
			KeywordsFile: "config/exclude_keywords.txt",
			DataDir:      "data/scraped",
			URLsFile:     "urls.txt",
		},
		Scraper: ScraperConfig{
			MaxPages:     10,
			ItemsPerPage: 30,
			DelaySeconds: 1,
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
		},
		Matching: MatchingConfig{
			SimilarityFloor:  0.6,
			HighConfidence:   0.8,
			MediumConfidence: 0.6,
			TopMappings:      10,
		},
	}
}
