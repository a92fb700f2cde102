package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// These variables are injected at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("tailor %s (%s, %s)", Version, Commit, BuildDate)
}

// Satisfies reports whether the running version meets a semver constraint
// such as ">= 0.2.0". Development builds satisfy every constraint.
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	if Version == "dev" {
		return true, nil
	}
	v, err := semver.NewVersion(Version)
	if err != nil {
		return false, fmt.Errorf("invalid build version %q: %w", Version, err)
	}
	return c.Check(v), nil
}
