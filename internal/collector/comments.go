package collector

import (
	"context"
	"fmt"

	"github.com/loganintech/go-reddit/v2/reddit"

	"github.com/sampleworks/reddit-collector/internal/domain"
)

// fetchComments pulls the comment tree for every post, resolves "more
// comments" stubs within the configured budget, then flattens. With
// RepliesData off only the top-level comments survive.
func (c *Client) fetchComments(ctx context.Context, sub string, posts []domain.Post, opts domain.Options) ([]domain.Comment, error) {
	bar := c.newBar(len(posts), fmt.Sprintf("Collecting comments for %d r/%s posts", len(posts), sub))
	defer finishBar(bar)

	var comments []domain.Comment
	for _, post := range posts {
		if err := c.limiter.Wait(ctx); err != nil {
			return comments, err
		}
		pc, _, err := c.reddit.Post.Get(ctx, post.ID)
		if err != nil {
			return comments, fmt.Errorf("comments for post %s: %w", post.ID, err)
		}
		if err := c.resolveMore(ctx, pc, opts.ResolveMoreLimit); err != nil {
			return comments, fmt.Errorf("resolving more comments for post %s: %w", post.ID, err)
		}

		tree := pc.Comments
		if opts.RepliesData {
			tree = flattenTree(tree)
		}
		for _, cm := range tree {
			comments = append(comments, commentRecord(sub, cm))
		}
		addBar(bar, 1)
	}
	return comments, nil
}

// resolveMore replaces "more comments" stubs in place, spending one unit of
// budget per replacement request. Top-level stubs go first, then reply stubs
// breadth-first; unresolved stubs are simply dropped at flatten time.
func (c *Client) resolveMore(ctx context.Context, pc *reddit.PostAndComments, limit int) error {
	budget := newMoreBudget(limit)

	for pc.HasMore() {
		if !budget.take() {
			return nil
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := c.reddit.Post.LoadMoreComments(ctx, pc); err != nil {
			return err
		}
	}

	queue := append([]*reddit.Comment(nil), pc.Comments...)
	for len(queue) > 0 {
		cm := queue[0]
		queue = queue[1:]
		if cm == nil {
			continue
		}
		for cm.HasMore() {
			if !budget.take() {
				return nil
			}
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
			if _, err := c.reddit.Comment.LoadMoreReplies(ctx, cm); err != nil {
				return err
			}
		}
		queue = append(queue, cm.Replies.Comments...)
	}
	return nil
}

// moreBudget counts down replacement requests. A negative limit never runs out.
type moreBudget struct {
	remaining int
	unlimited bool
}

func newMoreBudget(limit int) *moreBudget {
	return &moreBudget{remaining: limit, unlimited: limit < 0}
}

func (b *moreBudget) take() bool {
	if b.unlimited {
		return true
	}
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

// flattenTree walks a comment forest depth-first, parents before replies.
func flattenTree(comments []*reddit.Comment) []*reddit.Comment {
	var out []*reddit.Comment
	var walk func([]*reddit.Comment)
	walk = func(cs []*reddit.Comment) {
		for _, cm := range cs {
			if cm == nil {
				continue
			}
			out = append(out, cm)
			if len(cm.Replies.Comments) > 0 {
				walk(cm.Replies.Comments)
			}
		}
	}
	walk(comments)
	return out
}

func commentRecord(sub string, cm *reddit.Comment) domain.Comment {
	var created float64
	if cm.Created != nil {
		created = float64(cm.Created.Time.Unix())
	}
	return domain.Comment{
		Subreddit:   sub,
		ID:          cm.ID,
		PostID:      cm.PostID,
		ParentID:    cm.ParentID,
		TopLevel:    cm.ParentID == cm.PostID,
		Body:        cm.Body,
		CreatedUTC:  created,
		IsSubmitter: cm.IsSubmitter,
		Score:       cm.Score,
		Stickied:    cm.Stickied,
	}
}
