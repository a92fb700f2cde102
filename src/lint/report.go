package lint

import "sort"

// FileReport maps absolute file paths to their problem count.
// Every scanned file has an entry, including files without problems.
type FileReport map[string]int

// Total returns the number of problems across all files.
func (r FileReport) Total() int {
	n := 0
	for _, count := range r {
		n += count
	}
	return n
}

// Paths returns all file paths in sorted order.
func (r FileReport) Paths() []string {
	paths := make([]string, 0, len(r))
	for p := range r {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// OutOfStyle returns the sorted paths that have at least one problem.
func (r FileReport) OutOfStyle() []string {
	var paths []string
	for _, p := range r.Paths() {
		if r[p] > 0 {
			paths = append(paths, p)
		}
	}
	return paths
}

// Reporter receives check results as they are produced.
//
// FileStart, Problem and FileError are called in file order, then line
// order. Summary is called once at the end of a run.
type Reporter interface {
	FileStart(path string)
	Problem(v Violation)
	FileError(path string, err error)
	Summary(report FileReport)
}
