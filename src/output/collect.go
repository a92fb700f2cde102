package output

import "github.com/sofmeright/tailor/src/lint"

// Collector records every violation it receives.
type Collector struct {
	Violations []lint.Violation
	Report     lint.FileReport
}

func (c *Collector) FileStart(string)          {}
func (c *Collector) Problem(v lint.Violation)  { c.Violations = append(c.Violations, v) }
func (c *Collector) FileError(string, error)   {}
func (c *Collector) Summary(r lint.FileReport) { c.Report = r }

// Multi fans every call out to each reporter in order.
type Multi []lint.Reporter

func (m Multi) FileStart(path string) {
	for _, r := range m {
		r.FileStart(path)
	}
}

func (m Multi) Problem(v lint.Violation) {
	for _, r := range m {
		r.Problem(v)
	}
}

func (m Multi) FileError(path string, err error) {
	for _, r := range m {
		r.FileError(path, err)
	}
}

func (m Multi) Summary(report lint.FileReport) {
	for _, r := range m {
		r.Summary(report)
	}
}
