// Package gitops keeps an optional git history of a data directory, so every
// change to the stored snapshot can be reviewed and rolled back with plain git.
package gitops

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

// Identity used for commits, independent of the user's git config.
const (
	AuthorName  = "pocketledger"
	AuthorEmail = "pocketledger@localhost"
)

// ErrNothingToCommit is returned by Commit when the working tree is clean.
var ErrNothingToCommit = errors.New("nothing to commit")

// Commit is one entry of the history.
type Commit struct {
	Hash    string
	Time    time.Time
	Message string
}

// ignored keeps sqlite side files and the dotenv file out of the history.
const ignored = "*.db-journal\n*.db-wal\n*.db-shm\n.env\n"

// Init initializes a git repository at dir and writes its .gitignore.
func Init(ctx context.Context, dir string) error {
	if _, err := git(ctx, dir, "init", "--quiet"); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(ignored), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// CommitAll stages every file in dir and commits it. It returns the short hash
// of the new commit.
func CommitAll(ctx context.Context, dir, message string) (string, error) {
	if _, err := git(ctx, dir, "add", "-A"); err != nil {
		return "", err
	}
	status, err := git(ctx, dir, "status", "--porcelain")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(status) == "" {
		return "", ErrNothingToCommit
	}
	if _, err := git(ctx, dir, "commit", "--quiet", "-m", message); err != nil {
		return "", err
	}
	hash, err := git(ctx, dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(hash), nil
}

// Log returns the n most recent commits, newest first. n <= 0 returns all.
func Log(ctx context.Context, dir string, n int) ([]Commit, error) {
	args := []string{"log", "--format=%h%x09%cI%x09%s"}
	if n > 0 {
		args = append(args, fmt.Sprintf("-%d", n))
	}
	out, err := git(ctx, dir, args...)
	if err != nil {
		return nil, err
	}

	var commits []Commit
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("unexpected git log line %q", line)
		}
		ts, err := time.Parse(time.RFC3339, parts[1])
		if err != nil {
			return nil, fmt.Errorf("parsing commit time: %w", err)
		}
		commits = append(commits, Commit{Hash: parts[0], Time: ts, Message: parts[2]})
	}
	return commits, nil
}

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME="+AuthorName,
		"GIT_AUTHOR_EMAIL="+AuthorEmail,
		"GIT_COMMITTER_NAME="+AuthorName,
		"GIT_COMMITTER_EMAIL="+AuthorEmail,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}
