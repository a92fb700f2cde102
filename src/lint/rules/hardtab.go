package rules

import "github.com/sofmeright/tailor/src/lint/line"

type hardTabRule struct{}

func (r *hardTabRule) Name() string         { return "hard_tab" }
func (r *hardTabRule) DefaultEnabled() bool { return true }

// Only tabs in the indentation count; tabs inside strings or after code are
// left alone.
func (r *hardTabRule) Check(l line.Line, _ line.Classification) (string, bool) {
	if !l.HardTabbed() {
		return "", false
	}
	return "Line is hard-tabbed", true
}
