package rules

import "github.com/sofmeright/tailor/src/lint/line"

// camelCaseMethodRule flags method names containing any uppercase letter.
type camelCaseMethodRule struct{}

func (r *camelCaseMethodRule) Name() string         { return "camel_case_method" }
func (r *camelCaseMethodRule) DefaultEnabled() bool { return true }

func (r *camelCaseMethodRule) Check(_ line.Line, c line.Classification) (string, bool) {
	if !c.Method || !line.IsCamelCaseMethodName(c.MethodName) {
		return "", false
	}
	return "Method name uses camel case", true
}

// camelCaseClassRule flags class names that are not strict CamelCase.
// A_Class fails even though it starts with an uppercase letter.
type camelCaseClassRule struct{}

func (r *camelCaseClassRule) Name() string         { return "camel_case_class" }
func (r *camelCaseClassRule) DefaultEnabled() bool { return true }

func (r *camelCaseClassRule) Check(_ line.Line, c line.Classification) (string, bool) {
	if !c.Class || line.IsCamelCaseClassName(c.ClassName) {
		return "", false
	}
	return "Class name does NOT use camel case", true
}
