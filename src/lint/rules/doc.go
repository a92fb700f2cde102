// Package rules contains all built-in style rules.
// Import this package to register them with the lint registry.
package rules

import (
	"github.com/sofmeright/tailor/src/lint"
	"github.com/sofmeright/tailor/src/lint/line"
)

// Registration order is evaluation order, and so the order in which
// violations on the same line are reported.
func init() {
	lint.Register("hard_tab", func() lint.Rule { return &hardTabRule{} })
	lint.Register("camel_case_method", func() lint.Rule { return &camelCaseMethodRule{} })
	lint.Register("camel_case_class", func() lint.Rule { return &camelCaseClassRule{} })
	lint.Register("trailing_whitespace", func() lint.Rule { return &trailingWhitespaceRule{} })
	lint.Register("line_length", func() lint.Rule {
		return &lineLengthRule{cfg: lineLengthConfig{Max: line.DefaultMaxLength}}
	})
	lint.Register("comma_spacing", func() lint.Rule {
		return &commaSpacingRule{cfg: commaSpacingConfig{SkipComments: true}}
	})
}
