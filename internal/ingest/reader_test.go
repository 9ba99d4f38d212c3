package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subreddits.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSubredditsSkipsHeaderAndInvalidRows(t *testing.T) {
	path := writeList(t, "subreddit\ngolang\n  rust  \nno spaces allowed\nxy\nAskHistorians\n")

	subs, err := LoadSubreddits(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "rust", "AskHistorians"}, subs)
}

func TestLoadSubredditsStripsBOM(t *testing.T) {
	path := writeList(t, "\uFEFFsubreddit\ngolang\n")

	subs, err := LoadSubreddits(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang"}, subs)
}

func TestLoadSubredditsMissingFile(t *testing.T) {
	_, err := LoadSubreddits(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadSubredditsEmptyFile(t *testing.T) {
	subs, err := LoadSubreddits(writeList(t, ""))
	require.NoError(t, err)
	assert.Empty(t, subs)
}
