package gitdiff

import (
	"bytes"
	"fmt"
	"os/exec"
	"sort"

	git "github.com/go-git/go-git/v5"
)

// Provider implements domain.DiffProvider for a local repository. go-git
// handles repository discovery and staged-file status; the patch text
// itself comes from `git diff --cached`, which go-git has no porcelain for.
type Provider struct{}

// New creates a Provider.
func New() *Provider { return &Provider{} }

// IsGitRepo reports whether path is inside a git repository.
func (p *Provider) IsGitRepo(path string) bool {
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// StagedDiff returns the unified diff of the index against HEAD.
func (p *Provider) StagedDiff(repoPath string) (string, error) {
	if !p.IsGitRepo(repoPath) {
		return "", fmt.Errorf("%s is not inside a git repository", repoPath)
	}

	cmd := exec.Command("git", "-C", repoPath, "diff", "--cached")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git diff --cached: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	return stdout.String(), nil
}

// StagedFiles lists the paths currently staged in the index, sorted.
func (p *Provider) StagedFiles(repoPath string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	var files []string
	for path, st := range status {
		if st.Staging != git.Unmodified && st.Staging != git.Untracked {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}
