package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sofmeright/tailor/src/version"
)

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	if cfg.RequiredVersion != "" {
		ok, verr := version.Satisfies(cfg.RequiredVersion)
		switch {
		case verr != nil:
			errs = append(errs, fmt.Sprintf("required_version: %v", verr))
		case !ok:
			errs = append(errs, fmt.Sprintf("required_version: %s does not satisfy %q", version.Version, cfg.RequiredVersion))
		}
	}

	l := cfg.Lint

	if l.MaxLineLength <= 0 {
		errs = append(errs, fmt.Sprintf("lint.max_line_length: must be positive, got %d", l.MaxLineLength))
	}

	if len(l.Extensions) == 0 {
		errs = append(errs, "lint.extensions: at least one extension is required")
	}
	for i, ext := range l.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Sprintf("lint.extensions[%d]: %q must start with a dot", i, ext))
		}
	}

	for i, pattern := range l.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Sprintf("lint.exclude[%d]: invalid pattern %q", i, pattern))
		}
	}

	if l.Jobs < 0 {
		errs = append(errs, fmt.Sprintf("lint.jobs: must be non-negative, got %d", l.Jobs))
	}

	if l.CacheDir != "" && !l.Cache {
		warnings = append(warnings, "lint.cache_dir is set but lint.cache is disabled")
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return warnings, nil
}
