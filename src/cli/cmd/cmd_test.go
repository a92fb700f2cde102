package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default and clears its Changed state.
func resetFlags(t *testing.T, flags *pflag.FlagSet) {
	t.Helper()
	flags.VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			if err := sv.Replace(nil); err != nil {
				t.Fatalf("resetting --%s: %v", f.Name, err)
			}
		} else if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("resetting --%s: %v", f.Name, err)
		}
		f.Changed = false
	})
}

// run executes the root command with fresh flag values.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd.Flags())
	resetFlags(t, rootCmd.PersistentFlags())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"bad.rb":        "\tdef doSomething\n  x = [1,2]  \n",
		"lib/good.rb":   "class AClass\nend\n",
		"lib/notes.txt": "\tdef ignored\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCheckText(t *testing.T) {
	dir := project(t)
	out, err := run(t, dir)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	for _, want := range []string{
		"Line is hard-tabbed:",
		"Method name uses camel case:",
		"Line contains 2 trailing whitespace(s):",
		"The following files are out of style:",
		"bad.rb: 3 problems",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "good.rb: ") || strings.Contains(out, "notes.txt") {
		t.Errorf("clean or non-Ruby file listed:\n%s", out)
	}
}

func TestCheckJSON(t *testing.T) {
	dir := project(t)
	out, err := run(t, "--format", "json", "--no-rule", "trailing_whitespace", dir)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	var doc struct {
		Files []struct {
			Path     string `json:"path"`
			Problems int    `json:"problems"`
		} `json:"files"`
		Total int `json:"total_problems"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if doc.Total != 2 || len(doc.Files) != 2 {
		t.Errorf("got %d problems in %d files, want 2 in 2:\n%s", doc.Total, len(doc.Files), out)
	}
}

func TestCheckFailOnProblems(t *testing.T) {
	dir := project(t)
	if _, err := run(t, "--fail-on-problems", dir); err == nil {
		t.Error("expected an error with --fail-on-problems")
	}
}

func TestCheckInvalidRoot(t *testing.T) {
	if _, err := run(t, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing project dir")
	}
}

func TestCheckConfigFile(t *testing.T) {
	dir := project(t)
	cfgPath := filepath.Join(dir, ".tailor.yml")
	if err := os.WriteFile(cfgPath, []byte("lint:\n  extensions: [\".txt\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, dir)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "notes.txt: 1 problems") {
		t.Errorf("configured extension not scanned:\n%s", out)
	}
}

func TestJUnitFlag(t *testing.T) {
	dir := project(t)
	reports := filepath.Join(t.TempDir(), "reports")
	if _, err := run(t, "--junit", reports, dir); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(reports, "tailor.xml")); err != nil {
		t.Errorf("junit report not written: %v", err)
	}
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "rules")
	if err != nil {
		t.Fatalf("rules failed: %v", err)
	}
	for _, want := range []string{"hard_tab", "line_length", "comma_spacing"} {
		if !strings.Contains(out, want) {
			t.Errorf("rules output missing %s:\n%s", want, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "tailor ") {
		t.Errorf("version output = %q", out)
	}
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("a", 100) + "\n"
	if err := os.WriteFile(filepath.Join(dir, "long.rb"), []byte(long), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--max-line-length", "120", "--no-rule", "hard_tab", "--jobs", "2", dir)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if strings.Contains(out, "Line is greater than") {
		t.Errorf("100 characters flagged with --max-line-length 120:\n%s", out)
	}

	out, err = run(t, dir)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "Line is greater than 80 characters") {
		t.Errorf("--max-line-length leaked into a later run:\n%s", out)
	}
	if checkJobs != 0 || len(checkNoRules) != 0 {
		t.Errorf("flag values not reset: jobs=%d no-rule=%v", checkJobs, checkNoRules)
	}
}
