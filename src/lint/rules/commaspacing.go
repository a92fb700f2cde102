package rules

import (
	"encoding/json"
	"fmt"

	"github.com/sofmeright/tailor/src/lint/line"
)

type commaSpacingConfig struct {
	SkipComments bool `json:"skip_comments"`
}

// commaSpacingRule wants exactly one space after every comma.
// Off by default.
type commaSpacingRule struct {
	cfg commaSpacingConfig
}

func (r *commaSpacingRule) Name() string         { return "comma_spacing" }
func (r *commaSpacingRule) DefaultEnabled() bool { return false }

// Configure implements lint.ConfigurableRule.
func (r *commaSpacingRule) Configure(opts map[string]any) error {
	cfg := commaSpacingConfig{SkipComments: true}
	if len(opts) != 0 {
		b, err := json.Marshal(opts)
		if err != nil {
			return fmt.Errorf("comma_spacing: marshal options: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return fmt.Errorf("comma_spacing: unmarshal options: %w", err)
		}
	}
	r.cfg = cfg
	return nil
}

func (r *commaSpacingRule) Check(l line.Line, c line.Classification) (string, bool) {
	if c.Comment && r.cfg.SkipComments {
		return "", false
	}
	switch {
	case l.NoSpaceAfterComma():
		return "Line has no space after a comma", true
	case l.TwoOrMoreSpacesAfterComma():
		return "Line has 2 or more spaces after a comma", true
	}
	return "", false
}
