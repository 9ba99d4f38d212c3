package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"zero value", Options{}, nil},
		{"hot", Options{PostFilter: FilterHot}, nil},
		{"top with time", Options{PostFilter: FilterTop, TimeFilter: TimeWeek}, nil},
		{"unknown filter", Options{PostFilter: "best"}, ErrInvalidPostFilter},
		{"unknown time filter", Options{PostFilter: FilterTop, TimeFilter: "fortnight"}, ErrInvalidTimeFilter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestOptionsListingDefaultsToNew(t *testing.T) {
	assert.Equal(t, FilterNew, Options{}.Listing())
	assert.Equal(t, FilterTop, Options{PostFilter: FilterTop}.Listing())
}

func TestResultFlattensInCallerOrder(t *testing.T) {
	r := NewResult([]string{"rust", "golang"})
	r.Posts["golang"] = []Post{{ID: "g1"}, {ID: "g2"}}
	r.Posts["rust"] = []Post{{ID: "r1"}}
	r.Comments["golang"] = []Comment{{ID: "gc1"}}

	posts := r.AllPosts()
	assert.Equal(t, []string{"r1", "g1", "g2"}, []string{posts[0].ID, posts[1].ID, posts[2].ID})

	comments := r.AllComments()
	assert.Len(t, comments, 1)
	assert.Equal(t, "gc1", comments[0].ID)
}

func TestRecordIdentity(t *testing.T) {
	p := Post{ID: "abc", Subreddit: "golang"}
	assert.Equal(t, "abc", p.Key())
	assert.Equal(t, "golang", p.SortKey())

	c := Comment{ID: "def", Subreddit: "rust"}
	assert.Equal(t, "def", c.Key())
	assert.Equal(t, "rust", c.SortKey())
}
