package config

import "github.com/sofmeright/tailor/src/lint/line"

// RuleConfig holds per-rule overrides.
type RuleConfig struct {
	Enabled *bool          `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Options map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// LintConfig holds style check configuration.
type LintConfig struct {
	MaxLineLength int                   `yaml:"max_line_length" toml:"max_line_length"`
	Extensions    []string              `yaml:"extensions" toml:"extensions"`
	Exclude       []string              `yaml:"exclude" toml:"exclude"`
	Jobs          int                   `yaml:"jobs" toml:"jobs"`
	Cache         bool                  `yaml:"cache" toml:"cache"`
	CacheDir      string                `yaml:"cache_dir" toml:"cache_dir"`
	TargetBranch  string                `yaml:"target_branch" toml:"target_branch"`
	Rules         map[string]RuleConfig `yaml:"rules" toml:"rules"`
}

// DefaultLintConfig returns production defaults.
func DefaultLintConfig() LintConfig {
	return LintConfig{
		MaxLineLength: line.DefaultMaxLength,
		Extensions:    []string{".rb"},
		Exclude:       []string{},
		Jobs:          1,
		Rules:         map[string]RuleConfig{},
	}
}
