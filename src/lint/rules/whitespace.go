package rules

import (
	"fmt"

	"github.com/sofmeright/tailor/src/lint/line"
)

type trailingWhitespaceRule struct{}

func (r *trailingWhitespaceRule) Name() string         { return "trailing_whitespace" }
func (r *trailingWhitespaceRule) DefaultEnabled() bool { return true }

func (r *trailingWhitespaceRule) Check(l line.Line, _ line.Classification) (string, bool) {
	n := l.TrailingWhitespaceCount()
	if n == 0 {
		return "", false
	}
	return fmt.Sprintf("Line contains %d trailing whitespace(s)", n), true
}
