package domain

import (
	"context"
	"errors"
	"fmt"
)

// Post is one flattened subreddit submission. Author identity is deliberately
// absent: the upstream data for deleted and suspended accounts is inconsistent.
type Post struct {
	Subreddit         string  `csv:"subreddit_name" json:"subreddit_name"`
	CreatedUTC        float64 `csv:"post_created_utc" json:"post_created_utc"`
	ID                string  `csv:"id" json:"id"`
	IsOriginalContent bool    `csv:"is_original_content" json:"is_original_content"`
	IsSelf            bool    `csv:"is_self" json:"is_self"`
	LinkFlairText     string  `csv:"link_flair_text" json:"link_flair_text"`
	Locked            bool    `csv:"locked" json:"locked"`
	NumComments       int     `csv:"num_comments" json:"num_comments"`
	Over18            bool    `csv:"over_18" json:"over_18"`
	Score             int     `csv:"score" json:"score"`
	Spoiler           bool    `csv:"spoiler" json:"spoiler"`
	Stickied          bool    `csv:"stickied" json:"stickied"`
	Title             string  `csv:"title" json:"title"`
	UpvoteRatio       float64 `csv:"upvote_ratio" json:"upvote_ratio"`
	URL               string  `csv:"url" json:"url"`
}

func (p Post) Key() string { return p.ID }

func (p Post) SortKey() string { return p.Subreddit }

// Comment is one flattened comment. PostID and ParentID are Reddit fullnames
// (t3_xxx / t1_xxx); a comment is top-level when its parent is the post itself.
type Comment struct {
	Subreddit   string  `csv:"subreddit_name" json:"subreddit_name"`
	ID          string  `csv:"id" json:"id"`
	PostID      string  `csv:"post_id" json:"post_id"`
	ParentID    string  `csv:"parent_id" json:"parent_id"`
	TopLevel    bool    `csv:"top_level_comment" json:"top_level_comment"`
	Body        string  `csv:"body" json:"body"`
	CreatedUTC  float64 `csv:"comment_created_utc" json:"comment_created_utc"`
	IsSubmitter bool    `csv:"is_submitter" json:"is_submitter"`
	Score       int     `csv:"score" json:"score"`
	Stickied    bool    `csv:"stickied" json:"stickied"`
}

func (c Comment) Key() string { return c.ID }

func (c Comment) SortKey() string { return c.Subreddit }

// PostFilter selects a subreddit listing.
type PostFilter string

const (
	FilterNew           PostFilter = "new"
	FilterHot           PostFilter = "hot"
	FilterTop           PostFilter = "top"
	FilterRising        PostFilter = "rising"
	FilterControversial PostFilter = "controversial"
)

// TimeFilter bounds the "top" and "controversial" listings.
type TimeFilter string

const (
	TimeAll   TimeFilter = "all"
	TimeDay   TimeFilter = "day"
	TimeHour  TimeFilter = "hour"
	TimeMonth TimeFilter = "month"
	TimeWeek  TimeFilter = "week"
	TimeYear  TimeFilter = "year"
)

var (
	ErrInvalidSubreddit  = errors.New("invalid subreddit name")
	ErrSubredditNotFound = errors.New("subreddit does not exist")
	ErrInvalidPostFilter = errors.New("invalid post filter")
	ErrInvalidTimeFilter = errors.New("invalid time filter")
)

// Options controls one collection run.
type Options struct {
	// PostFilter picks the listing. Defaults to "new" when empty.
	PostFilter PostFilter

	// TimeFilter applies to the top and controversial listings only.
	// Empty leaves the API default in place.
	TimeFilter TimeFilter

	// PostLimit caps the posts collected per subreddit. Zero or negative
	// means as many as the API will page out (~1000).
	PostLimit int

	// CommentData fetches the comment tree of every collected post.
	CommentData bool

	// RepliesData includes nested replies; otherwise only top-level
	// comments are kept.
	RepliesData bool

	// ResolveMoreLimit is the "more comments" stub budget per post:
	// 0 drops all stubs, N>0 resolves up to N, negative resolves all.
	ResolveMoreLimit int
}

// Validate checks the filters. Runs before any network use.
func (o Options) Validate() error {
	switch o.PostFilter {
	case "", FilterNew, FilterHot, FilterTop, FilterRising, FilterControversial:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPostFilter, o.PostFilter)
	}
	switch o.TimeFilter {
	case "", TimeAll, TimeDay, TimeHour, TimeMonth, TimeWeek, TimeYear:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTimeFilter, o.TimeFilter)
	}
	return nil
}

// Listing returns the effective listing name.
func (o Options) Listing() PostFilter {
	if o.PostFilter == "" {
		return FilterNew
	}
	return o.PostFilter
}

// Result holds collected records grouped by subreddit, in caller order.
// This is the raw form; AllPosts and AllComments flatten for tabular use.
type Result struct {
	Subreddits []string
	Posts      map[string][]Post
	Comments   map[string][]Comment
}

func NewResult(subreddits []string) *Result {
	return &Result{
		Subreddits: subreddits,
		Posts:      make(map[string][]Post, len(subreddits)),
		Comments:   make(map[string][]Comment, len(subreddits)),
	}
}

// AllPosts concatenates the per-subreddit posts in caller order.
func (r *Result) AllPosts() []Post {
	var out []Post
	for _, sub := range r.Subreddits {
		out = append(out, r.Posts[sub]...)
	}
	return out
}

// AllComments concatenates the per-subreddit comments in caller order.
func (r *Result) AllComments() []Comment {
	var out []Comment
	for _, sub := range r.Subreddits {
		out = append(out, r.Comments[sub]...)
	}
	return out
}

// Collector defines the interface for data fetching
type Collector interface {
	Collect(ctx context.Context, subreddits []string, opts Options) (*Result, error)
}
