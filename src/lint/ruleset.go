package lint

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sofmeright/tailor/src/config"
	"github.com/sofmeright/tailor/src/lint/line"
)

// RuleSet is the ordered list of rules active for one run.
type RuleSet struct {
	rules   []Rule
	options map[string]map[string]any
}

// NewRuleSet creates a rule set from config and CLI selection.
// With ruleNames set, exactly those rules run (minus skipNames); otherwise
// every default-enabled rule runs unless the config disables it, plus any
// rule the config explicitly enables.
func NewRuleSet(cfg config.LintConfig, ruleNames []string, skipNames []string) (*RuleSet, error) {
	skipSet := make(map[string]bool, len(skipNames))
	for _, name := range skipNames {
		if _, err := Get(name); err != nil {
			return nil, err
		}
		skipSet[name] = true
	}

	selected := make(map[string]bool, len(ruleNames))
	for _, name := range ruleNames {
		if _, err := Get(name); err != nil {
			return nil, err
		}
		selected[name] = true
	}

	for name := range cfg.Rules {
		if _, err := Get(name); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	rs := &RuleSet{options: map[string]map[string]any{}}

	for _, name := range Ordered() {
		if skipSet[name] {
			continue
		}
		r, err := Get(name)
		if err != nil {
			return nil, err
		}

		if len(selected) > 0 {
			if !selected[name] {
				continue
			}
		} else {
			enabled := r.DefaultEnabled()
			if rc, ok := cfg.Rules[name]; ok && rc.Enabled != nil {
				enabled = *rc.Enabled
			}
			if !enabled {
				continue
			}
		}

		opts := ruleOptions(cfg, name)
		if cr, ok := r.(ConfigurableRule); ok {
			if err := cr.Configure(opts); err != nil {
				return nil, err
			}
		}
		rs.rules = append(rs.rules, r)
		rs.options[name] = opts
	}

	if len(rs.rules) == 0 {
		return nil, fmt.Errorf("no style rules selected")
	}

	return rs, nil
}

// ruleOptions merges global lint settings with the rule's own options.
// Rule options win.
func ruleOptions(cfg config.LintConfig, name string) map[string]any {
	opts := map[string]any{
		"max_line_length": cfg.MaxLineLength,
	}
	if rc, ok := cfg.Rules[name]; ok {
		for k, v := range rc.Options {
			opts[k] = v
		}
	}
	return opts
}

// Names returns the names of the active rules in evaluation order.
func (rs *RuleSet) Names() []string {
	names := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		names[i] = r.Name()
	}
	return names
}

// Evaluate runs every active rule against one line of the file at path.
// All rules are evaluated; one firing does not stop the others.
func (rs *RuleSet) Evaluate(path string, l line.Line) []Violation {
	c := l.Classify()

	var violations []Violation
	for _, r := range rs.rules {
		msg, ok := r.Check(l, c)
		if !ok {
			continue
		}
		violations = append(violations, Violation{
			File:    path,
			Line:    l.Number,
			Rule:    r.Name(),
			Message: msg,
		})
	}
	return violations
}

// Fingerprint identifies the active rules and their options.
// Two rule sets with the same fingerprint produce the same violations for
// the same input.
func (rs *RuleSet) Fingerprint() string {
	var b strings.Builder
	for _, r := range rs.rules {
		b.WriteString(r.Name())
		b.WriteByte('=')
		data, err := json.Marshal(rs.options[r.Name()])
		if err != nil {
			data = []byte("{}")
		}
		b.Write(data)
		b.WriteByte(';')
	}
	return b.String()
}
