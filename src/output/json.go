package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/sofmeright/tailor/src/lint"
)

// JSONReporter buffers results and writes a single JSON document when the
// run ends.
type JSONReporter struct {
	w          io.Writer
	log        *zerolog.Logger
	violations map[string][]lint.Violation
	errors     map[string]string
}

type jsonFile struct {
	Path       string           `json:"path"`
	Problems   int              `json:"problems"`
	Violations []lint.Violation `json:"violations"`
}

type jsonReport struct {
	Files   []jsonFile        `json:"files"`
	Total   int               `json:"total_problems"`
	Skipped map[string]string `json:"skipped,omitempty"`
}

// NewJSONReporter creates a reporter writing to w. Failures to produce the
// document are logged to log; a nil log discards them.
func NewJSONReporter(w io.Writer, log *zerolog.Logger) *JSONReporter {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &JSONReporter{
		w:          w,
		log:        log,
		violations: map[string][]lint.Violation{},
		errors:     map[string]string{},
	}
}

// FileStart implements lint.Reporter.
func (r *JSONReporter) FileStart(string) {}

// Problem implements lint.Reporter.
func (r *JSONReporter) Problem(v lint.Violation) {
	r.violations[v.File] = append(r.violations[v.File], v)
}

// FileError implements lint.Reporter.
func (r *JSONReporter) FileError(path string, err error) {
	r.errors[path] = unwrapAccess(err).Error()
}

// Summary implements lint.Reporter. Unlike the text summary, files without
// problems are listed too.
func (r *JSONReporter) Summary(report lint.FileReport) {
	out := jsonReport{
		Files: make([]jsonFile, 0, len(report)),
		Total: report.Total(),
	}
	for _, path := range report.Paths() {
		vs := r.violations[path]
		if vs == nil {
			vs = []lint.Violation{}
		}
		out.Files = append(out.Files, jsonFile{Path: path, Problems: report[path], Violations: vs})
	}
	if len(r.errors) > 0 {
		out.Skipped = r.errors
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		r.log.Error().Err(err).Msg("generating JSON report")
		return
	}
	if _, err := fmt.Fprintln(r.w, string(data)); err != nil {
		r.log.Error().Err(err).Msg("writing JSON report")
	}
}
