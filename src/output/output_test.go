package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/sofmeright/tailor/src/lint"
)

func sampleRun(r lint.Reporter) lint.FileReport {
	a := filepath.FromSlash("/proj/lib/a.rb")
	b := filepath.FromSlash("/proj/lib/b.rb")
	c := filepath.FromSlash("/proj/lib/c.rb")

	r.FileStart(a)
	r.Problem(lint.Violation{File: a, Line: 1, Rule: "hard_tab", Message: "Line is hard-tabbed"})
	r.Problem(lint.Violation{File: a, Line: 2, Rule: "trailing_whitespace", Message: "Line contains 2 trailing whitespace(s)"})
	r.FileStart(b)
	r.FileStart(c)
	r.FileError(c, &lint.FileAccessError{Path: c, Err: errors.New("permission denied")})

	report := lint.FileReport{a: 2, b: 0}
	r.Summary(report)
	return report
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	sampleRun(NewTextReporter(&buf, filepath.FromSlash("/proj"), false))

	a := filepath.FromSlash("lib/a.rb")
	c := filepath.FromSlash("lib/c.rb")
	header := func(path string) string {
		return "\n" + headerRule + "\n# Looking for bad style in:\n# \t'" + path + "'\n" + headerRule + "\n"
	}
	want := header(filepath.FromSlash("/proj/lib/a.rb")) +
		"Line is hard-tabbed:\n" +
		"\t" + a + ": 1\n" +
		"Line contains 2 trailing whitespace(s):\n" +
		"\t" + a + ": 2\n" +
		header(filepath.FromSlash("/proj/lib/b.rb")) +
		header(filepath.FromSlash("/proj/lib/c.rb")) +
		"Could not check file, skipping:\n" +
		"\t" + c + ": permission denied\n" +
		"\nThe following files are out of style:\n" +
		"\t" + a + ": 2 problems\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestTextReporterPathOutsideBase(t *testing.T) {
	r := NewTextReporter(&bytes.Buffer{}, filepath.FromSlash("/proj"), false)
	outside := filepath.FromSlash("/elsewhere/x.rb")
	if got := r.rel(outside); got != outside {
		t.Errorf("rel(%s) = %s, want unchanged", outside, got)
	}
	if got := NewTextReporter(&bytes.Buffer{}, "", false).rel(outside); got != outside {
		t.Errorf("rel without base = %s, want unchanged", got)
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	sampleRun(NewJSONReporter(&buf, nil))

	var got jsonReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	a := filepath.FromSlash("/proj/lib/a.rb")
	b := filepath.FromSlash("/proj/lib/b.rb")
	c := filepath.FromSlash("/proj/lib/c.rb")
	want := jsonReport{
		Files: []jsonFile{
			{Path: a, Problems: 2, Violations: []lint.Violation{
				{File: a, Line: 1, Rule: "hard_tab", Message: "Line is hard-tabbed"},
				{File: a, Line: 2, Rule: "trailing_whitespace", Message: "Line contains 2 trailing whitespace(s)"},
			}},
			{Path: b, Problems: 0, Violations: []lint.Violation{}},
		},
		Total:   2,
		Skipped: map[string]string{c: "permission denied"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestJSONReporterLogsWriteFailure(t *testing.T) {
	var logBuf bytes.Buffer
	log := zerolog.New(&logBuf)
	sampleRun(NewJSONReporter(failingWriter{}, &log))

	out := logBuf.String()
	if !strings.Contains(out, "writing JSON report") || !strings.Contains(out, "disk full") {
		t.Errorf("write failure not logged: %q", out)
	}
}

func TestMultiAndCollector(t *testing.T) {
	var buf bytes.Buffer
	col := &Collector{}
	report := sampleRun(Multi{NewTextReporter(&buf, "", false), col})

	if len(col.Violations) != 2 {
		t.Errorf("collected %d violations, want 2", len(col.Violations))
	}
	if diff := cmp.Diff(report, col.Report); diff != "" {
		t.Errorf("collected report mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "The following files are out of style:") {
		t.Error("text reporter behind Multi received no summary")
	}
}

func TestBuildJUnit(t *testing.T) {
	a := "/proj/a.rb"
	b := "/proj/b.rb"
	report := lint.FileReport{a: 2, b: 0}
	violations := []lint.Violation{
		{File: a, Line: 1, Rule: "hard_tab", Message: "Line is hard-tabbed"},
		{File: a, Line: 4, Rule: "hard_tab", Message: "Line is hard-tabbed"},
	}

	got := BuildJUnit(report, violations, []string{"hard_tab", "line_length"}, 2*time.Second)

	if got.Tests != 4 || got.Failures != 1 {
		t.Errorf("totals = %d tests, %d failures; want 4, 1", got.Tests, got.Failures)
	}
	if len(got.Suites) != 2 {
		t.Fatalf("got %d suites, want 2", len(got.Suites))
	}
	tab := got.Suites[0]
	if tab.Name != "tailor/hard_tab" || tab.Failures != 1 {
		t.Errorf("hard_tab suite = %s with %d failures", tab.Name, tab.Failures)
	}
	if tab.Cases[0].Failure == nil || tab.Cases[1].Failure != nil {
		t.Fatalf("expected only %s to fail: %+v", a, tab.Cases)
	}
	if want := "  1 Line is hard-tabbed\n  4 Line is hard-tabbed"; tab.Cases[0].Failure.Body != want {
		t.Errorf("failure body = %q, want %q", tab.Cases[0].Failure.Body, want)
	}
	if got.Suites[1].Failures != 0 {
		t.Errorf("line_length suite has %d failures, want 0", got.Suites[1].Failures)
	}
}

func TestWriteJUnit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	report := lint.FileReport{"/proj/a.rb": 0}
	if err := WriteJUnit(dir, report, nil, []string{"hard_tab"}, time.Second); err != nil {
		t.Fatalf("WriteJUnit: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tailor.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), xml.Header) {
		t.Error("missing XML header")
	}
	var suites JUnitTestSuites
	if err := xml.Unmarshal(data, &suites); err != nil {
		t.Fatalf("invalid XML: %v", err)
	}
	if suites.Tests != 1 || suites.Failures != 0 {
		t.Errorf("totals = %d tests, %d failures; want 1, 0", suites.Tests, suites.Failures)
	}
}

func TestUseColor(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm")
	if UseColor(f) {
		t.Error("a regular file is not a terminal")
	}
	t.Setenv("NO_COLOR", "1")
	if UseColor(os.Stdout) {
		t.Error("NO_COLOR must disable color")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, false, false)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("quiet logger output = %q", buf.String())
	}

	buf.Reset()
	log = NewLogger(&buf, true, false)
	log.Info().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("verbose logger output = %q", buf.String())
	}
}
