package lint

import (
	"errors"
	"fmt"
)

// Violation is one instance of a style rule firing against one line.
type Violation struct {
	File    string `json:"file,omitempty"`
	Line    int    `json:"line"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d: %s (%s)", v.File, v.Line, v.Message, v.Rule)
}

// ErrInvalidRoot is returned when the project root is missing or is not a
// directory.
var ErrInvalidRoot = errors.New("invalid project root")

// FileAccessError reports a discovered file that could not be read.
// The checker skips such files and keeps going.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }
