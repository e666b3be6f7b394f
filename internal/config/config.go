// Package config provides configuration loading and validation for the evaluation tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration structure
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Columns  ColumnsConfig  `toml:"columns"`
	Matching MatchingConfig `toml:"matching"`
	Evidence EvidenceConfig `toml:"evidence"`
	Gold     GoldConfig     `toml:"gold"`
	Baseline BaselineConfig `toml:"baseline"`
	Liveness LivenessConfig `toml:"liveness"`
}

// GeneralConfig contains input/output settings
type GeneralConfig struct {
	InputDir    string `toml:"input_dir"`
	Pattern     string `toml:"pattern"`
	OutputDir   string `toml:"output_dir"`
	Concurrency int    `toml:"concurrency"`
}

// ColumnsConfig lists candidate column headers for each role. The first
// candidate present in a file's header wins; matching is case- and
// underscore-insensitive.
type ColumnsConfig struct {
	Name   []string `toml:"name"`
	Citing []string `toml:"citing"`
	Cited  []string `toml:"cited"`
	URL    string   `toml:"url"`
}

// MatchingConfig controls fuzzy clustering
type MatchingConfig struct {
	FuzzyThreshold float64 `toml:"fuzzy_threshold"`
}

// EvidenceConfig lists trusted hostnames for provenance classification
type EvidenceConfig struct {
	TrustHosts []string `toml:"trust_hosts"`
}

// GoldConfig points at the reference name list
type GoldConfig struct {
	File   string `toml:"file"`
	Column string `toml:"column"`
}

// BaselineConfig points at baseline name lists for novelty
type BaselineConfig struct {
	Files  []string `toml:"files"`
	Column string   `toml:"column"`
}

// LivenessConfig controls optional live URL probing (off by default)
type LivenessConfig struct {
	CheckURLs bool   `toml:"check_urls"`
	Timeout   string `toml:"timeout"`
}

func defaultNameColumns() []string {
	return []string{"Name", "Name (extracted)", "Dataset", "Dataset Name"}
}

func defaultCitingColumns() []string {
	return []string{"Citing Article", "Citing_URL", "Citing", "Used in Which Papers"}
}

func defaultCitedColumns() []string {
	return []string{"Citied Article", "Cited Article", "Cited_URL", "Cited", "Introduced by Which Papers"}
}

func defaultTrustHosts() []string {
	return []string{
		"doi.org", "dx.doi.org", "handle.net", "hdl.handle.net",
		"pubmed.ncbi.nlm.nih.gov", "ncbi.nlm.nih.gov", "geo.ncbi.nlm.nih.gov",
		"ebi.ac.uk", "zenodo.org", "figshare.com",
		"dataverse.org", "datadryad.org", "data.gov", "kaggle.com", "osf.io",
		"openalex.org", "openaire.eu", "github.com", "gitlab.com",
		"huggingface.co", "opendatalab.com", "scidb.cn", "www.scidb.cn",
		"ieee-dataport.org",
	}
}

// TimeoutDuration parses the probe timeout string into a Duration
func (l LivenessConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(l.Timeout)
	if err != nil || d <= 0 {
		return 6 * time.Second
	}
	return d
}

// validatePath checks for path traversal attempts
func validatePath(path string) error {
	cleanPath := filepath.Clean(path)

	// Check for path traversal sequences that go above current directory
	// This prevents ../../../etc/passwd type attacks
	if strings.HasPrefix(cleanPath, "..") || strings.Contains(cleanPath, "../") {
		return fmt.Errorf("path contains invalid traversal sequence: %s", path)
	}

	return nil
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.General.InputDir == "" {
		cfg.General.InputDir = "."
	}
	if cfg.General.Pattern == "" {
		cfg.General.Pattern = "*.tsv"
	}
	if cfg.General.OutputDir == "" {
		cfg.General.OutputDir = "./evaluation"
	}
	if cfg.General.Concurrency <= 0 {
		cfg.General.Concurrency = 4
	}
	if len(cfg.Columns.Name) == 0 {
		cfg.Columns.Name = defaultNameColumns()
	}
	if len(cfg.Columns.Citing) == 0 {
		cfg.Columns.Citing = defaultCitingColumns()
	}
	if len(cfg.Columns.Cited) == 0 {
		cfg.Columns.Cited = defaultCitedColumns()
	}
	if cfg.Columns.URL == "" {
		cfg.Columns.URL = "Dataset URL"
	}
	if cfg.Matching.FuzzyThreshold == 0 {
		cfg.Matching.FuzzyThreshold = 0.9
	}
	if len(cfg.Evidence.TrustHosts) == 0 {
		cfg.Evidence.TrustHosts = defaultTrustHosts()
	}
	if cfg.Liveness.Timeout == "" {
		cfg.Liveness.Timeout = "6s"
	}
}

func validate(cfg *Config) error {
	if cfg.Matching.FuzzyThreshold <= 0 || cfg.Matching.FuzzyThreshold > 1 {
		return fmt.Errorf("matching.fuzzy_threshold must be in (0,1], got %g", cfg.Matching.FuzzyThreshold)
	}
	for _, host := range cfg.Evidence.TrustHosts {
		if strings.TrimSpace(host) == "" {
			return fmt.Errorf("evidence.trust_hosts contains an empty hostname")
		}
	}
	if cfg.Liveness.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Liveness.Timeout); err != nil {
			return fmt.Errorf("liveness.timeout is not a valid duration: %w", err)
		}
	}
	return nil
}

// Load reads and parses the TOML configuration file
func Load(path string) (*Config, error) {
	// Validate path for security
	if err := validatePath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	// #nosec G304 - Path validated above, this is intentional file inclusion
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to a TOML file
func (c *Config) Save(path string) error {
	if err := validatePath(path); err != nil {
		return fmt.Errorf("invalid config path: %w", err)
	}

	// #nosec G304 - Path validated above, this is intentional file creation
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
