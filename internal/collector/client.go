package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"golang.org/x/time/rate"

	"github.com/sampleworks/reddit-collector/internal/domain"
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,21}$`)

// Client collects posts and comments through the authenticated Reddit API.
// Token handling and pagination plumbing belong to the go-reddit client;
// Client adds pacing, subreddit verification and record flattening.
type Client struct {
	reddit   *reddit.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
	progress io.Writer
}

type Option func(*Client)

// WithLogger routes collection warnings somewhere other than the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithProgress enables per-subreddit progress bars on w (usually os.Stderr).
func WithProgress(w io.Writer) Option {
	return func(c *Client) { c.progress = w }
}

// WithRateLimit overrides the pacing between API requests.
func WithRateLimit(interval time.Duration) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Every(interval), 1) }
}

// New builds a Client from Reddit app credentials. Username and password may
// be empty, which leaves the client with read-only API access at half the
// request allowance.
func New(id, secret, username, password, userAgent string, opts ...Option) (*Client, error) {
	creds := reddit.Credentials{ID: id, Secret: secret, Username: username, Password: password}

	rc, err := reddit.NewClient(creds, reddit.WithUserAgent(userAgent))
	if err != nil {
		return nil, err
	}
	return NewWithClient(rc, opts...), nil
}

// NewWithClient wraps an already configured go-reddit client.
func NewWithClient(rc *reddit.Client, opts ...Option) *Client {
	c := &Client{
		reddit: rc,
		// API Rate Limit: ~60 reqs/min (safe buffer)
		limiter: rate.NewLimiter(rate.Every(1*time.Second), 1),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect fetches posts (and optionally comments) for each subreddit, in the
// order given. Every subreddit is verified before the first fetch; after
// that, a failure inside one subreddit is logged and does not block the rest.
func (c *Client) Collect(ctx context.Context, subreddits []string, opts domain.Options) (*domain.Result, error) {
	if len(subreddits) == 0 {
		return nil, errors.New("no subreddits given")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := c.verifySubreddits(ctx, subreddits); err != nil {
		return nil, err
	}

	result := domain.NewResult(subreddits)
	for _, sub := range subreddits {
		posts, err := c.fetchPosts(ctx, sub, opts)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			c.logger.Error("post collection failed", "subreddit", sub, "err", err)
			continue
		}
		result.Posts[sub] = posts

		if !opts.CommentData {
			continue
		}
		comments, err := c.fetchComments(ctx, sub, posts, opts)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			c.logger.Error("comment collection failed", "subreddit", sub, "err", err)
		}
		// keep whatever was flattened before the failure
		result.Comments[sub] = comments
	}
	return result, nil
}

// verifySubreddits fails fast on the first name that is malformed or unknown.
// The shape check costs no network call at all; existence goes through the
// name search endpoint, which may return near matches, so the hit must match
// case-insensitively.
func (c *Client) verifySubreddits(ctx context.Context, subreddits []string) error {
	for _, sub := range subreddits {
		if !subNameRegex.MatchString(sub) {
			return fmt.Errorf("r/%s: %w", sub, domain.ErrInvalidSubreddit)
		}
	}
	for _, sub := range subreddits {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		names, _, err := c.reddit.Subreddit.SearchNames(ctx, sub)
		if err != nil {
			return fmt.Errorf("verify r/%s: %w", sub, err)
		}
		found := false
		for _, name := range names {
			if strings.EqualFold(name, sub) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("r/%s: %w", sub, domain.ErrSubredditNotFound)
		}
	}
	return nil
}
