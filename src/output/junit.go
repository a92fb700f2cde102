package output

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sofmeright/tailor/src/lint"
)

// JUnit XML types for CI test reporting.

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// BuildJUnit groups violations into one suite per rule with one test case
// per checked file. A case fails when its rule fired on that file.
func BuildJUnit(report lint.FileReport, violations []lint.Violation, rules []string, elapsed time.Duration) JUnitTestSuites {
	byRule := make(map[string]map[string][]lint.Violation, len(rules))
	for _, name := range rules {
		byRule[name] = map[string][]lint.Violation{}
	}
	for _, v := range violations {
		if _, ok := byRule[v.Rule]; !ok {
			continue
		}
		byRule[v.Rule][v.File] = append(byRule[v.Rule][v.File], v)
	}

	files := report.Paths()
	perSuite := 0.0
	if len(rules) > 0 {
		perSuite = elapsed.Seconds() / float64(len(rules))
	}

	root := JUnitTestSuites{
		Name: "tailor",
		Time: fmt.Sprintf("%.3f", elapsed.Seconds()),
	}

	for _, name := range rules {
		suite := JUnitTestSuite{
			Name: "tailor/" + name,
			Time: fmt.Sprintf("%.3f", perSuite),
		}

		for _, file := range files {
			tc := JUnitTestCase{
				Name:      file,
				Classname: "tailor." + name,
				Time:      "0.000",
			}

			if vs := byRule[name][file]; len(vs) > 0 {
				lines := make([]string, len(vs))
				for i, v := range vs {
					lines[i] = fmt.Sprintf("  %d %s", v.Line, v.Message)
				}
				tc.Failure = &JUnitFailure{
					Message: fmt.Sprintf("%d problem(s) in %s", len(vs), file),
					Type:    name,
					Body:    strings.Join(lines, "\n"),
				}
				suite.Failures++
			}

			suite.Cases = append(suite.Cases, tc)
			suite.Tests++
		}

		root.Tests += suite.Tests
		root.Failures += suite.Failures
		root.Suites = append(root.Suites, suite)
	}

	return root
}

// WriteJUnit writes the report as dir/tailor.xml.
func WriteJUnit(dir string, report lint.FileReport, violations []lint.Violation, rules []string, elapsed time.Duration) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	path := filepath.Join(dir, "tailor.xml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(BuildJUnit(report, violations, rules, elapsed)); err != nil {
		return fmt.Errorf("encoding junit xml: %w", err)
	}
	_, err = f.WriteString("\n")
	return err
}
