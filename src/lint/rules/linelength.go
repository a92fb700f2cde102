package rules

import (
	"encoding/json"
	"fmt"

	"github.com/sofmeright/tailor/src/lint/line"
)

type lineLengthConfig struct {
	Max int `json:"max_line_length"`
}

type lineLengthRule struct {
	cfg lineLengthConfig
}

func (r *lineLengthRule) Name() string         { return "line_length" }
func (r *lineLengthRule) DefaultEnabled() bool { return true }

// Configure implements lint.ConfigurableRule.
func (r *lineLengthRule) Configure(opts map[string]any) error {
	cfg := lineLengthConfig{Max: line.DefaultMaxLength}
	if len(opts) != 0 {
		b, err := json.Marshal(opts)
		if err != nil {
			return fmt.Errorf("line_length: marshal options: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return fmt.Errorf("line_length: unmarshal options: %w", err)
		}
	}
	if cfg.Max < 0 {
		return fmt.Errorf("line_length: max_line_length must be non-negative, got %d", cfg.Max)
	}
	if cfg.Max == 0 {
		cfg.Max = line.DefaultMaxLength
	}
	r.cfg = cfg
	return nil
}

func (r *lineLengthRule) Check(l line.Line, _ line.Classification) (string, bool) {
	if !l.TooLong(r.cfg.Max) {
		return "", false
	}
	return fmt.Sprintf("Line is greater than %d characters", r.cfg.Max), true
}
