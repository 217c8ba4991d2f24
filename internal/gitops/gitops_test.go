package gitops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestInit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(context.Background(), dir))
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "*.db-journal")
}

func TestCommitAllAndLog(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, Init(ctx, dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank-storage.json"), []byte(`{"version":1}`), 0o644))
	first, err := CommitAll(ctx, dir, "init: data directory")
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	_, err = CommitAll(ctx, dir, "no changes")
	assert.ErrorIs(t, err, ErrNothingToCommit)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank-storage.json"), []byte(`{"version":1,"state":{}}`), 0o644))
	second, err := CommitAll(ctx, dir, "add account")
	require.NoError(t, err)

	commits, err := Log(ctx, dir, 0)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, second, commits[0].Hash)
	assert.Equal(t, "add account", commits[0].Message)
	assert.Equal(t, first, commits[1].Hash)
	assert.False(t, commits[1].Time.IsZero())

	commits, err = Log(ctx, dir, 1)
	require.NoError(t, err)
	assert.Len(t, commits, 1)

	author, err := git(ctx, dir, "log", "--format=%an <%ae>", "-1")
	require.NoError(t, err)
	assert.Contains(t, author, AuthorName+" <"+AuthorEmail+">")
}

func TestLog_NotARepo(t *testing.T) {
	requireGit(t)
	_, err := Log(context.Background(), t.TempDir(), 0)
	assert.Error(t, err)
}
