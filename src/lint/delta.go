package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	"github.com/rs/zerolog"
)

// Delta detects files changed relative to a baseline branch.
type Delta struct {
	RootDir      string
	TargetBranch string
	Log          *zerolog.Logger // nil discards
}

// ChangedFiles returns the absolute paths of files with uncommitted changes
// plus files changed between HEAD and the target branch.
// Returns nil (check everything) if git is unavailable or no baseline exists.
func (d *Delta) ChangedFiles(ctx context.Context) (map[string]bool, error) {
	log := d.Log
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	repo, err := git.PlainOpenWithOptions(d.RootDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		log.Info().Str("root", d.RootDir).Msg("delta: not a git repo, checking all files")
		return nil, nil
	}

	wt, err := repo.Worktree()
	if err != nil {
		log.Info().Err(err).Msg("delta: no worktree, checking all files")
		return nil, nil
	}
	top := wt.Filesystem.Root()

	worktreeChanges, err := d.worktreeChanges(wt)
	if err != nil {
		log.Info().Err(err).Msg("delta: worktree diff failed, checking all files")
		return nil, nil
	}

	branchChanges, err := d.branchChanges(ctx, repo)
	if err != nil {
		log.Info().Err(err).Msg("delta: branch diff failed, checking all files")
		return nil, nil
	}

	changed := make(map[string]bool, len(worktreeChanges)+len(branchChanges))
	for _, set := range []map[string]bool{worktreeChanges, branchChanges} {
		for p := range set {
			changed[filepath.Join(top, filepath.FromSlash(p))] = true
		}
	}

	if len(changed) == 0 {
		log.Info().Msg("delta: no changes detected")
	}

	return changed, nil
}

// worktreeChanges returns repo-relative paths with uncommitted modifications.
func (d *Delta) worktreeChanges(wt *git.Worktree) (map[string]bool, error) {
	status, err := wt.Status()
	if err != nil {
		return nil, err
	}

	changed := make(map[string]bool)
	for path, s := range status {
		if s.Worktree == git.Unmodified && s.Staging == git.Unmodified {
			continue
		}
		if s.Worktree == git.Deleted || s.Staging == git.Deleted {
			continue
		}
		changed[path] = true
	}

	return changed, nil
}

// branchChanges returns repo-relative paths changed between HEAD and the
// target branch.
func (d *Delta) branchChanges(ctx context.Context, repo *git.Repository) (map[string]bool, error) {
	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	headCommit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting HEAD commit: %w", err)
	}

	targetBranch := d.targetBranch(repo)
	targetRef, err := repo.Reference(plumbing.NewBranchReferenceName(targetBranch), true)
	if err != nil {
		targetRef, err = repo.Reference(plumbing.NewRemoteReferenceName("origin", targetBranch), true)
		if err != nil {
			return nil, nil // target branch not found, worktree changes only
		}
	}

	targetCommit, err := repo.CommitObject(targetRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting target commit: %w", err)
	}

	// On the target branch itself, check what the latest commit touched.
	if headCommit.Hash == targetCommit.Hash {
		if headCommit.NumParents() == 0 {
			return nil, nil
		}
		parent, err := headCommit.Parent(0)
		if err != nil {
			return nil, nil
		}
		targetCommit = parent
	}

	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, err
	}
	targetTree, err := targetCommit.Tree()
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, targetTree, headTree, &object.DiffTreeOptions{})
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	changed := make(map[string]bool)
	for _, change := range changes {
		if name := changeName(change); name != "" {
			changed[name] = true
		}
	}

	return changed, nil
}

// targetBranch determines the branch to diff against.
func (d *Delta) targetBranch(repo *git.Repository) string {
	if branch := os.Getenv("TAILOR_TARGET_BRANCH"); branch != "" {
		return branch
	}

	if d.TargetBranch != "" {
		return d.TargetBranch
	}

	ciVars := []string{
		"CI_MERGE_REQUEST_TARGET_BRANCH_NAME", // GitLab CI
		"GITHUB_BASE_REF",                     // GitHub Actions
		"BITBUCKET_PR_DESTINATION_BRANCH",     // Bitbucket
		"CHANGE_TARGET",                       // Jenkins
	}
	for _, v := range ciVars {
		if branch := os.Getenv(v); branch != "" {
			return branch
		}
	}

	// Symbolic ref target is like "refs/remotes/origin/main"
	if ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", "HEAD"), false); err == nil {
		const prefix = "refs/remotes/origin/"
		if target := ref.Target().String(); strings.HasPrefix(target, prefix) {
			return strings.TrimPrefix(target, prefix)
		}
	}

	return "main"
}

// changeName extracts the surviving file path from a tree change.
// Deleted files have nothing left to check.
func changeName(change *object.Change) string {
	action, err := change.Action()
	if err != nil {
		return ""
	}
	switch action {
	case merkletrie.Insert, merkletrie.Modify:
		return change.To.Name
	}
	return ""
}

// FilterByDelta keeps only files present in changedSet.
// If changedSet is nil, returns all files.
func FilterByDelta(files []string, changedSet map[string]bool) []string {
	if changedSet == nil {
		return files
	}

	filtered := make([]string, 0, len(changedSet))
	for _, f := range files {
		if changedSet[filepath.Clean(f)] {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
