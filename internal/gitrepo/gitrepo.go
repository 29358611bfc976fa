// Package gitrepo wraps the git binary for the two checkouts the
// generator works against: pulls, head inspection, staging, commits,
// and pushes. Every call shells out with a per-command timeout and
// surfaces git's stderr in returned errors.
package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Repo operates on a single existing git checkout.
type Repo struct {
	dir     string
	timeout time.Duration
}

// Open returns a Repo for the checkout at dir. The directory must
// contain a .git entry. timeout bounds each individual git command;
// zero means no bound.
func Open(dir string, timeout time.Duration) (*Repo, error) {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return nil, fmt.Errorf("not a git checkout: %s: %w", dir, err)
	}
	return &Repo{dir: dir, timeout: timeout}, nil
}

// Dir returns the checkout directory.
func (r *Repo) Dir() string {
	return r.dir
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	full := append([]string{"-C", r.dir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, detail)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Pull fetches and merges the checkout's upstream.
func (r *Repo) Pull(ctx context.Context) error {
	_, err := r.run(ctx, "pull")
	return err
}

// HeadCommit returns the hash of the current HEAD commit.
func (r *Repo) HeadCommit(ctx context.Context) (string, error) {
	return r.run(ctx, "rev-parse", "HEAD")
}

// UntrackedFiles lists files present in the working tree but unknown to
// git, honoring ignore rules.
func (r *Repo) UntrackedFiles(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Add stages a single path.
func (r *Repo) Add(ctx context.Context, path string) error {
	_, err := r.run(ctx, "add", "--", path)
	return err
}

// Rm removes a tracked file from both the index and the working tree.
func (r *Repo) Rm(ctx context.Context, path string) error {
	_, err := r.run(ctx, "rm", "--", path)
	return err
}

// IsDirty reports whether the working tree differs from HEAD, including
// staged changes.
func (r *Repo) IsDirty(ctx context.Context) (bool, error) {
	out, err := r.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// CommitAll commits every pending change with the given message.
func (r *Repo) CommitAll(ctx context.Context, message string) error {
	_, err := r.run(ctx, "commit", "-a", "-m", message)
	return err
}

// Push publishes local commits to the upstream.
func (r *Repo) Push(ctx context.Context) error {
	_, err := r.run(ctx, "push")
	return err
}

// IsMissing reports whether err came from Open finding no checkout.
func IsMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
