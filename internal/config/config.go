package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flow-dev/flow/internal/model"
)

// FileName is the config file at the root of a notes repo.
const FileName = "flow.yaml"

// Config represents the top-level flow.yaml configuration.
type Config struct {
	Notebook NotebookConfig `yaml:"notebook"`
	Currency CurrencyConfig `yaml:"currency"`
	Dates    DatesConfig    `yaml:"dates"`
	Rules    []KeywordRule  `yaml:"rules"`
	Git      GitConfig      `yaml:"git"`
}

// NotebookConfig identifies the notes repo.
type NotebookConfig struct {
	Name string `yaml:"name"`
}

// CurrencyConfig holds the marker that makes a line a transaction candidate.
type CurrencyConfig struct {
	Marker string `yaml:"marker"`
}

// DatesConfig lists the month abbreviations recognized in date tokens.
type DatesConfig struct {
	Months []string `yaml:"months,flow"`
}

// KeywordRule maps a lowercase keyword to a category. Rules are evaluated in
// file order; the first keyword contained in a line wins.
type KeywordRule struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// GitConfig controls git integration for saved snapshots.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a flow.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the built-in rupee note vocabulary.
func Default(notebookName string) *Config {
	return &Config{
		Notebook: NotebookConfig{Name: notebookName},
		Currency: CurrencyConfig{Marker: "₹"},
		Dates: DatesConfig{
			Months: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		},
		Rules: []KeywordRule{
			{Keyword: "food", Category: string(model.CategoryFood)},
			{Keyword: "travel", Category: string(model.CategoryTravel)},
			{Keyword: "cloth", Category: string(model.CategoryClothing)},
			{Keyword: "grooming", Category: string(model.CategoryGrooming)},
			{Keyword: "health", Category: string(model.CategoryHealth)},
			{Keyword: "social", Category: string(model.CategorySocial)},
			{Keyword: "eft", Category: string(model.CategoryEFT)},
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Flow",
			AuthorEmail: "flow@flow.dev",
		},
	}
}
