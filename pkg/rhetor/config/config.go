// Package config holds the YAML-backed settings for corpus analysis
// and builds ready-to-use components from them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/rhetor/pkg/rhetor/internalerr"
)

// Config is the top-level analysis configuration.
type Config struct {
	Analysis      Analysis  `yaml:"analysis"`
	Paths         Paths     `yaml:"paths"`
	Tokenizer     Tokenizer `yaml:"tokenizer"`
	Stoplist      Stoplist  `yaml:"stoplist"`
	FunctionWords []string  `yaml:"function_words"`
	Lexicons      Lexicons  `yaml:"lexicons"`
}

// Analysis controls ranking and significance testing. The n-gram size
// is chosen per call, not here.
type Analysis struct {
	MinFrequency int     `yaml:"min_frequency"`
	TopK         int     `yaml:"top_k"`
	Alpha        float64 `yaml:"alpha"`
}

// Paths locates the corpus on disk.
type Paths struct {
	MetadataCSV string `yaml:"metadata_csv"`
	SpeechesDir string `yaml:"speeches_dir"`
	ResultsDir  string `yaml:"results_dir"`
}

// Tokenizer configures token filtering.
type Tokenizer struct {
	Blacklist []string `yaml:"blacklist"`
}

// Stoplist lists boilerplate phrases filtered before counting.
type Stoplist struct {
	Bigrams  []string `yaml:"bigrams"`
	Trigrams []string `yaml:"trigrams"`
}

// Lexicons holds optional paths to detector lexicon files. Empty paths
// mean the built-in lexicons.
type Lexicons struct {
	AntiElite string `yaml:"anti_elite"`
	Crisis    string `yaml:"crisis"`
	Certainty string `yaml:"certainty"`
}

// Default returns the configuration the analysis tools start from.
func Default() Config {
	return Config{
		Analysis: Analysis{
			MinFrequency: 5,
			TopK:         30,
			Alpha:        0.05,
		},
	}
}

// Validate fails fast on settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Analysis.MinFrequency < 1 {
		return fmt.Errorf("config: min_frequency must be at least 1: %w", internalerr.ErrInvalidConfig)
	}
	if c.Analysis.TopK < 1 {
		return fmt.Errorf("config: top_k must be at least 1: %w", internalerr.ErrInvalidConfig)
	}
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return fmt.Errorf("config: alpha must be in (0, 1): %w", internalerr.ErrInvalidConfig)
	}
	return nil
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// StoplistFile is a standalone stoplist document, loadable separately
// from the main config so curated phrase lists can be shared.
type StoplistFile struct {
	Bigrams       []string `yaml:"bigrams"`
	Trigrams      []string `yaml:"trigrams"`
	FunctionWords []string `yaml:"function_words"`
}

// LoadStoplistFile loads a standalone stoplist YAML file.
func LoadStoplistFile(path string) (*StoplistFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}
	var sl StoplistFile
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}
	return &sl, nil
}
