package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// ScanOptions controls which files CollectFiles returns.
type ScanOptions struct {
	Extensions []string        // e.g. ".rb"
	Exclude    []string        // doublestar patterns, relative to the root
	Log        *zerolog.Logger // nil discards
}

// CollectFiles walks root and returns the sorted absolute paths of all
// regular files ending in one of the configured extensions.
// Hidden directories are skipped, and so are subdirectories that cannot be
// read. A symlinked root is followed; returned paths keep the root as given.
func CollectFiles(root string, opts ScanOptions) ([]string, error) {
	log := opts.Log
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	walkRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}

	var files []string

	err = filepath.WalkDir(walkRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path != walkRoot && d != nil && d.IsDir() {
				log.Warn().Str("dir", path).Err(err).Msg("skipping unreadable directory")
				return filepath.SkipDir
			}
			return err
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || isExcluded(opts.Exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip symlinks, sockets and the like
		if !d.Type().IsRegular() {
			return nil
		}

		if !hasExtension(d.Name(), opts.Extensions) || isExcluded(opts.Exclude, rel) {
			return nil
		}

		files = append(files, filepath.Join(absRoot, rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return true
		}
	}
	return false
}

// isExcluded matches exclude patterns against a root-relative path.
// Patterns containing "/" match the full path; others match the base name only.
func isExcluded(patterns []string, rel string) bool {
	if len(patterns) == 0 {
		return false
	}
	normPath := filepath.ToSlash(rel)
	baseName := filepath.Base(normPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		target := baseName
		if strings.Contains(pattern, "/") {
			target = normPath
		}
		if ok, _ := doublestar.Match(pattern, target); ok {
			return true
		}
	}
	return false
}
