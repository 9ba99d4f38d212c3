package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/schollz/progressbar/v3"

	"github.com/sampleworks/reddit-collector/internal/domain"
)

// Reddit serves at most 100 listing entries per request.
const maxPageSize = 100

// listingEnvelope mirrors the subreddit listing JSON. The typed reddit.Post
// lacks is_original_content and link_flair_text, so listings are decoded
// locally while still riding the authenticated transport.
type listingEnvelope struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data postData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	Subreddit         string  `json:"subreddit"`
	CreatedUTC        float64 `json:"created_utc"`
	ID                string  `json:"id"`
	IsOriginalContent bool    `json:"is_original_content"`
	IsSelf            bool    `json:"is_self"`
	LinkFlairText     string  `json:"link_flair_text"`
	Locked            bool    `json:"locked"`
	NumComments       int     `json:"num_comments"`
	Over18            bool    `json:"over_18"`
	Score             int     `json:"score"`
	Spoiler           bool    `json:"spoiler"`
	Stickied          bool    `json:"stickied"`
	Title             string  `json:"title"`
	UpvoteRatio       float64 `json:"upvote_ratio"`
	URL               string  `json:"url"`
}

func (d postData) record() domain.Post {
	return domain.Post{
		Subreddit:         d.Subreddit,
		CreatedUTC:        d.CreatedUTC,
		ID:                d.ID,
		IsOriginalContent: d.IsOriginalContent,
		IsSelf:            d.IsSelf,
		LinkFlairText:     d.LinkFlairText,
		Locked:            d.Locked,
		NumComments:       d.NumComments,
		Over18:            d.Over18,
		Score:             d.Score,
		Spoiler:           d.Spoiler,
		Stickied:          d.Stickied,
		Title:             d.Title,
		UpvoteRatio:       d.UpvoteRatio,
		URL:               d.URL,
	}
}

// fetchPosts pages through one subreddit listing until the limit is reached
// or the cursor runs out.
func (c *Client) fetchPosts(ctx context.Context, sub string, opts domain.Options) ([]domain.Post, error) {
	bar := c.newBar(opts.PostLimit, fmt.Sprintf("Collecting %s r/%s posts", opts.Listing(), sub))
	defer finishBar(bar)

	var posts []domain.Post
	after := ""
	for {
		page := maxPageSize
		if opts.PostLimit > 0 && opts.PostLimit-len(posts) < page {
			page = opts.PostLimit - len(posts)
		}

		q := url.Values{}
		q.Set("limit", strconv.Itoa(page))
		q.Set("raw_json", "1")
		if after != "" {
			q.Set("after", after)
		}
		if t := opts.TimeFilter; t != "" {
			switch opts.Listing() {
			case domain.FilterTop, domain.FilterControversial:
				q.Set("t", string(t))
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return posts, err
		}
		req, err := c.reddit.NewRequest(http.MethodGet, fmt.Sprintf("r/%s/%s?%s", sub, opts.Listing(), q.Encode()), nil)
		if err != nil {
			return posts, err
		}
		var envelope listingEnvelope
		if _, err := c.reddit.Do(ctx, req, &envelope); err != nil {
			return posts, fmt.Errorf("r/%s %s listing: %w", sub, opts.Listing(), err)
		}

		for _, child := range envelope.Data.Children {
			posts = append(posts, child.Data.record())
			addBar(bar, 1)
			if opts.PostLimit > 0 && len(posts) >= opts.PostLimit {
				return posts, nil
			}
		}
		if envelope.Data.After == "" || len(envelope.Data.Children) == 0 {
			return posts, nil
		}
		after = envelope.Data.After
	}
}

// newBar returns nil unless progress output was requested; a count of zero
// or less renders as a spinner since the total is unknown up front.
func (c *Client) newBar(total int, desc string) *progressbar.ProgressBar {
	if c.progress == nil {
		return nil
	}
	if total <= 0 {
		total = -1
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.progress),
		progressbar.OptionSetDescription(desc),
	)
}

func addBar(bar *progressbar.ProgressBar, n int) {
	if bar != nil {
		bar.Add(n)
	}
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		bar.Finish()
	}
}
