package lint

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sofmeright/tailor/src/lint/line"
)

// Checker streams files through a RuleSet and hands results to a Reporter.
type Checker struct {
	Rules    *RuleSet
	Reporter Reporter
	Cache    *Cache
	Log      *zerolog.Logger // nil discards

	// Jobs is the number of files checked concurrently. Values below 2
	// check files one at a time. Output order is the same either way.
	Jobs int

	CacheHits   atomic.Int64
	CacheMisses atomic.Int64
}

// fileResult is one file's buffered output in parallel mode.
type fileResult struct {
	violations []Violation
	err        error
	done       chan struct{}
}

// Run checks every file and returns the per-file problem counts.
// Files that cannot be read are reported, left out of the FileReport and
// summarized in the returned error; the run itself carries on.
func (c *Checker) Run(ctx context.Context, files []string) (FileReport, error) {
	var (
		report FileReport
		errs   []error
		err    error
	)
	if c.Jobs > 1 && len(files) > 1 {
		report, errs, err = c.runParallel(ctx, files)
	} else {
		report, errs, err = c.runSequential(ctx, files)
	}
	if err != nil {
		return report, err
	}

	c.Reporter.Summary(report)

	if len(errs) > 0 {
		return report, fmt.Errorf("%d files skipped (first: %w)", len(errs), errs[0])
	}
	return report, nil
}

func (c *Checker) runSequential(ctx context.Context, files []string) (FileReport, []error, error) {
	report := make(FileReport, len(files))
	var errs []error

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, errs, err
		}

		c.Reporter.FileStart(path)
		count := 0
		err := c.CheckFile(path, func(v Violation) {
			count++
			c.Reporter.Problem(v)
		})
		if err != nil {
			errs = append(errs, c.fileError(path, err))
			continue
		}
		report[path] = count
	}

	return report, errs, nil
}

// runParallel checks files concurrently, buffering each file's violations
// and flushing them in input order as soon as every earlier file is done.
func (c *Checker) runParallel(ctx context.Context, files []string) (FileReport, []error, error) {
	results := make([]*fileResult, len(files))
	for i := range results {
		results[i] = &fileResult{done: make(chan struct{})}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Jobs)

	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, path := range files {
			res := results[i]
			g.Go(func() error {
				defer close(res.done)
				if err := gctx.Err(); err != nil {
					res.err = err
					return err
				}
				res.err = c.CheckFile(path, func(v Violation) {
					res.violations = append(res.violations, v)
				})
				return nil
			})
		}
	}()

	report := make(FileReport, len(files))
	var errs []error

	for i, path := range files {
		res := results[i]
		<-res.done

		if res.err != nil && ctx.Err() != nil {
			<-launched
			g.Wait()
			return report, errs, ctx.Err()
		}

		c.Reporter.FileStart(path)
		if res.err != nil {
			errs = append(errs, c.fileError(path, res.err))
			continue
		}
		for _, v := range res.violations {
			c.Reporter.Problem(v)
		}
		report[path] = len(res.violations)
	}

	<-launched
	if err := g.Wait(); err != nil {
		return report, errs, err
	}
	return report, errs, nil
}

func (c *Checker) logger() *zerolog.Logger {
	if c.Log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return c.Log
}

func (c *Checker) fileError(path string, err error) error {
	var fae *FileAccessError
	if !errors.As(err, &fae) {
		fae = &FileAccessError{Path: path, Err: err}
	}
	c.logger().Warn().Str("file", path).Err(fae.Err).Msg("skipping unreadable file")
	c.Reporter.FileError(path, fae)
	return fae
}

// CheckFile checks one file, calling emit for each violation in line order.
// With the cache enabled the file is read whole so its content can be
// hashed; otherwise it is streamed line by line.
func (c *Checker) CheckFile(path string, emit func(Violation)) error {
	if c.Cache == nil || !c.Cache.Enabled {
		f, err := os.Open(path)
		if err != nil {
			return &FileAccessError{Path: path, Err: err}
		}
		defer f.Close()
		if err := CheckReader(c.Rules, path, f, emit); err != nil {
			return &FileAccessError{Path: path, Err: err}
		}
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return &FileAccessError{Path: path, Err: err}
	}

	key := c.Cache.Key(content, c.Rules.Fingerprint())
	if cached, ok := c.Cache.Get(key); ok {
		c.CacheHits.Add(1)
		for _, v := range cached {
			v.File = path
			emit(v)
		}
		return nil
	}
	c.CacheMisses.Add(1)

	var found []Violation
	err = CheckReader(c.Rules, path, bytes.NewReader(content), func(v Violation) {
		found = append(found, v)
		emit(v)
	})
	if err != nil {
		return &FileAccessError{Path: path, Err: err}
	}

	if err := c.Cache.Put(key, found); err != nil {
		c.logger().Info().Str("file", path).Err(err).Msg("cache write failed")
	}
	return nil
}

// CheckReader evaluates rs against every line read from r. Lines are
// numbered from 1, including empty ones; a final line without a newline
// still counts.
func CheckReader(rs *RuleSet, path string, r io.Reader, emit func(Violation)) error {
	br := bufio.NewReader(r)
	number := 0

	for {
		text, err := br.ReadString('\n')
		if len(text) > 0 {
			number++
			for _, v := range rs.Evaluate(path, line.New(text, number)) {
				emit(v)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
