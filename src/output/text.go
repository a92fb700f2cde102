package output

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/sofmeright/tailor/src/lint"
)

const headerRule = "#-------------------------------------------------------------------"

// TextReporter prints violations as they are found and a closing summary of
// the files that are out of style.
type TextReporter struct {
	w       io.Writer
	baseDir string

	header  *color.Color
	message *color.Color
	path    *color.Color
	failure *color.Color
}

// NewTextReporter creates a reporter writing to w. Paths are printed
// relative to baseDir when possible.
func NewTextReporter(w io.Writer, baseDir string, useColor bool) *TextReporter {
	r := &TextReporter{
		w:       w,
		baseDir: baseDir,
		header:  color.New(color.Bold),
		message: color.New(color.FgYellow),
		path:    color.New(color.FgCyan),
		failure: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{r.header, r.message, r.path, r.failure} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// FileStart implements lint.Reporter.
func (r *TextReporter) FileStart(path string) {
	fmt.Fprintln(r.w)
	r.header.Fprintln(r.w, headerRule)
	r.header.Fprintln(r.w, "# Looking for bad style in:")
	r.header.Fprintf(r.w, "# \t'%s'\n", path)
	r.header.Fprintln(r.w, headerRule)
}

// Problem implements lint.Reporter.
func (r *TextReporter) Problem(v lint.Violation) {
	r.message.Fprintf(r.w, "%s:\n", v.Message)
	fmt.Fprintf(r.w, "\t%s: %d\n", r.path.Sprint(r.rel(v.File)), v.Line)
}

// FileError implements lint.Reporter.
func (r *TextReporter) FileError(path string, err error) {
	r.failure.Fprintf(r.w, "Could not check file, skipping:\n")
	fmt.Fprintf(r.w, "\t%s: %v\n", r.path.Sprint(r.rel(path)), unwrapAccess(err))
}

// Summary implements lint.Reporter. Files without problems are omitted.
func (r *TextReporter) Summary(report lint.FileReport) {
	fmt.Fprintln(r.w)
	r.header.Fprintln(r.w, "The following files are out of style:")

	for _, path := range report.OutOfStyle() {
		fmt.Fprintf(r.w, "\t%s: %d problems\n", r.path.Sprint(r.rel(path)), report[path])
	}
}

// rel returns path relative to the base directory, or path unchanged when
// it lies outside of it.
func (r *TextReporter) rel(path string) string {
	if r.baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(r.baseDir, path)
	if err != nil || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return path
	}
	return rel
}

func unwrapAccess(err error) error {
	var fae *lint.FileAccessError
	if errors.As(err, &fae) {
		return fae.Err
	}
	return err
}
