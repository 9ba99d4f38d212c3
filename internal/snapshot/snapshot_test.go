package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampleworks/reddit-collector/internal/domain"
)

func post(id, sub string, score int) domain.Post {
	return domain.Post{
		Subreddit:  sub,
		CreatedUTC: 1634663234,
		ID:         id,
		Score:      score,
		Title:      "title " + id,
		URL:        "https://example.com/" + id,
	}
}

func comment(id, sub string) domain.Comment {
	return domain.Comment{
		Subreddit:  sub,
		ID:         id,
		PostID:     "t3_post",
		ParentID:   "t3_post",
		TopLevel:   true,
		Body:       "body " + id,
		CreatedUTC: 1634663234,
	}
}

func TestMergeDropsDuplicateIDsKeepingFirst(t *testing.T) {
	prior := []domain.Post{post("a", "golang", 1), post("b", "golang", 2)}
	fresh := []domain.Post{post("b", "golang", 99), post("c", "golang", 3)}

	merged := Merge(prior, fresh)

	require.Len(t, merged, 3)
	for _, p := range merged {
		if p.ID == "b" {
			assert.Equal(t, 2, p.Score, "first occurrence must win")
		}
	}
}

func TestMergeIntoEmptyYieldsDeduplicatedBatch(t *testing.T) {
	fresh := []domain.Post{post("a", "golang", 1), post("a", "golang", 1), post("b", "golang", 2)}

	merged := Merge(nil, fresh)

	require.Len(t, merged, 2)
	assert.Equal(t, "a", merged[0].ID)
	assert.Equal(t, "b", merged[1].ID)
}

func TestMergeIsIdempotent(t *testing.T) {
	prior := []domain.Post{post("a", "rust", 1)}
	fresh := []domain.Post{post("b", "golang", 2), post("c", "rust", 3)}

	once := Merge(prior, fresh)
	twice := Merge(once, fresh)

	assert.Equal(t, once, twice)
}

func TestMergeSortsBySubreddit(t *testing.T) {
	fresh := []domain.Post{
		post("a", "rust", 1),
		post("b", "golang", 2),
		post("c", "rust", 3),
		post("d", "golang", 4),
	}

	merged := Merge(nil, fresh)

	require.Len(t, merged, 4)
	assert.Equal(t, []string{"b", "d", "a", "c"}, []string{merged[0].ID, merged[1].ID, merged[2].ID, merged[3].ID},
		"sorted by subreddit, collection order preserved within one")
}

func TestUpdateMissingFileActsAsFirstCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.csv")
	fresh := []domain.Post{post("a", "golang", 1), post("b", "golang", 2)}

	merged, err := Update(path, fresh, true)
	require.NoError(t, err)
	assert.Equal(t, fresh, merged)

	loaded, err := Read[domain.Post](path)
	require.NoError(t, err)
	assert.Equal(t, fresh, loaded)
}

func TestUpdateMergesWithExistingSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.csv")
	require.NoError(t, Write(path, []domain.Post{post("a", "golang", 1)}))

	merged, err := Update(path, []domain.Post{post("a", "golang", 50), post("b", "golang", 2)}, true)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, 1, merged[0].Score, "existing record wins over re-collected copy")

	// running the same batch again changes nothing
	again, err := Update(path, []domain.Post{post("a", "golang", 50), post("b", "golang", 2)}, true)
	require.NoError(t, err)
	assert.Equal(t, merged, again)
}

func TestUpdateWithoutSaveLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.csv")
	require.NoError(t, Write(path, []domain.Post{post("a", "golang", 1)}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = Update(path, []domain.Post{post("b", "golang", 2)}, false)
	require.NoError(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReadRejectsMismatchedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.csv")
	require.NoError(t, Write(path, []domain.Comment{comment("a", "golang")}))

	_, err := Read[domain.Post](path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrColumnMismatch))

	_, err = Update(path, []domain.Post{post("b", "golang", 2)}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrColumnMismatch))
}

func TestRoundTripPreservesAwkwardText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.csv")
	c := comment("a", "golang")
	c.Body = "line one\nline two, with \"quotes\" and, commas"

	require.NoError(t, Write(path, []domain.Comment{c}))
	loaded, err := Read[domain.Comment](path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, c, loaded[0])
}
