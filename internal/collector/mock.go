package collector

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sampleworks/reddit-collector/internal/domain"
)

// MockClient implements domain.Collector but returns fake data
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (mc *MockClient) Collect(ctx context.Context, subreddits []string, opts domain.Options) (*domain.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	limit := opts.PostLimit
	if limit <= 0 {
		limit = 25
	}

	result := domain.NewResult(subreddits)
	for _, sub := range subreddits {
		for i := 0; i < limit; i++ {
			id := fmt.Sprintf("mock_%s_%d", sub, i)
			result.Posts[sub] = append(result.Posts[sub], domain.Post{
				Subreddit:   sub,
				CreatedUTC:  float64(time.Now().Unix()),
				ID:          id,
				IsSelf:      true,
				NumComments: 2,
				Score:       rand.Intn(500),
				Title:       fmt.Sprintf("[%s] Simulated discussion thread #%d", sub, i),
				UpvoteRatio: 0.9,
				URL:         "http://localhost/mock-url",
			})
			if !opts.CommentData {
				continue
			}
			top := domain.Comment{
				Subreddit:   sub,
				ID:          id + "_c0",
				PostID:      "t3_" + id,
				ParentID:    "t3_" + id,
				TopLevel:    true,
				Body:        "simulated top-level comment",
				CreatedUTC:  float64(time.Now().Unix()),
				IsSubmitter: false,
				Score:       rand.Intn(50),
			}
			result.Comments[sub] = append(result.Comments[sub], top)
			if opts.RepliesData {
				result.Comments[sub] = append(result.Comments[sub], domain.Comment{
					Subreddit:  sub,
					ID:         id + "_c1",
					PostID:     "t3_" + id,
					ParentID:   "t1_" + top.ID,
					Body:       "simulated reply",
					CreatedUTC: float64(time.Now().Unix()),
					Score:      rand.Intn(10),
				})
			}
		}
	}
	return result, nil
}
