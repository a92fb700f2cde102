package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/tailor/src/config"
	"github.com/sofmeright/tailor/src/lint"
	"github.com/sofmeright/tailor/src/output"
)

var (
	checkFormat         string
	checkRules          []string
	checkNoRules        []string
	checkMaxLineLength  int
	checkJobs           int
	checkChanged        bool
	checkCache          bool
	checkNoCache        bool
	checkJUnitDir       string
	checkFailOnProblems bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&checkFormat, "format", "text", "output format: text or json")
	f.StringSliceVar(&checkRules, "rule", nil, "run only these rules (comma-separated)")
	f.StringSliceVar(&checkNoRules, "no-rule", nil, "skip these rules (comma-separated)")
	f.IntVar(&checkMaxLineLength, "max-line-length", 0, "maximum line length (default: from config, then 80)")
	f.IntVar(&checkJobs, "jobs", 0, "files checked concurrently, 0 for one per CPU (default: from config, then 1)")
	f.BoolVar(&checkChanged, "changed", false, "only check files changed relative to the target branch")
	f.BoolVar(&checkCache, "cache", false, "reuse results for unchanged files")
	f.BoolVar(&checkNoCache, "no-cache", false, "disable and clear the result cache")
	f.StringVar(&checkJUnitDir, "junit", "", "write a JUnit XML report to this directory")
	f.BoolVar(&checkFailOnProblems, "fail-on-problems", false, "exit nonzero when any problem is found")
}

func runCheck(cmd *cobra.Command, args []string) error {
	rootDir := args[0]
	ctx := cmd.Context()

	if err := applyCheckFlags(cmd); err != nil {
		return err
	}
	lc := cfg.Lint

	rs, err := lint.NewRuleSet(lc, checkRules, checkNoRules)
	if err != nil {
		return err
	}
	logger.Info().Strs("rules", rs.Names()).Msg("rules selected")

	files, err := lint.CollectFiles(rootDir, lint.ScanOptions{
		Extensions: lc.Extensions,
		Exclude:    lc.Exclude,
		Log:        &logger,
	})
	if err != nil {
		return err
	}

	if checkChanged {
		delta := &lint.Delta{RootDir: rootDir, TargetBranch: lc.TargetBranch, Log: &logger}
		changedSet, deltaErr := delta.ChangedFiles(ctx)
		if deltaErr != nil {
			logger.Warn().Err(deltaErr).Msg("delta: falling back to full scan")
		}
		if changedSet != nil {
			all := len(files)
			files = lint.FilterByDelta(files, changedSet)
			logger.Info().Msgf("delta: %d/%d files changed", len(files), all)
		}
	}
	logger.Info().Int("files", len(files)).Msg("scanning")

	cache := &lint.Cache{
		Dir:     lint.ResolveCacheDir(rootDir, lc.CacheDir),
		Enabled: lc.Cache,
	}
	if checkNoCache {
		if err := cache.Clear(); err != nil {
			logger.Info().Err(err).Msg("cache: clear failed")
		}
	}

	jobs := lc.Jobs
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}

	collector := &output.Collector{}
	reporter, err := newReporter(checkFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	checker := &lint.Checker{
		Rules:    rs,
		Reporter: output.Multi{reporter, collector},
		Cache:    cache,
		Log:      &logger,
		Jobs:     jobs,
	}

	start := time.Now()
	_, runErr := checker.Run(ctx, files)
	elapsed := time.Since(start)

	if runErr != nil {
		var fae *lint.FileAccessError
		if !errors.As(runErr, &fae) {
			return runErr
		}
		logger.Warn().Msg(runErr.Error())
	}

	if cache.Enabled {
		logger.Info().Msgf("cache: %d hits, %d misses", checker.CacheHits.Load(), checker.CacheMisses.Load())
	}

	if checkJUnitDir != "" {
		if err := output.WriteJUnit(checkJUnitDir, collector.Report, collector.Violations, rs.Names(), elapsed); err != nil {
			logger.Warn().Err(err).Msg("failed to write junit report")
		}
	}

	if checkFailOnProblems && collector.Report.Total() > 0 {
		return fmt.Errorf("%d problems in %d files", collector.Report.Total(), len(collector.Report.OutOfStyle()))
	}
	return nil
}

// applyCheckFlags lets explicitly set flags override the loaded config.
func applyCheckFlags(cmd *cobra.Command) error {
	f := cmd.Flags()
	if f.Changed("max-line-length") {
		cfg.Lint.MaxLineLength = checkMaxLineLength
	}
	if f.Changed("jobs") {
		cfg.Lint.Jobs = checkJobs
	}
	if checkCache && checkNoCache {
		return fmt.Errorf("--cache and --no-cache are mutually exclusive")
	}
	if checkCache {
		cfg.Lint.Cache = true
	}
	if checkNoCache {
		cfg.Lint.Cache = false
	}

	if _, err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func newReporter(format string, w io.Writer) (lint.Reporter, error) {
	switch format {
	case "text":
		cwd, err := os.Getwd()
		if err != nil {
			cwd = ""
		}
		useColor := false
		if f, ok := w.(*os.File); ok {
			useColor = output.UseColor(f)
		}
		return output.NewTextReporter(w, cwd, useColor), nil
	case "json":
		return output.NewJSONReporter(w, &logger), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text or json)", format)
	}
}
