package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sampleworks/reddit-collector/internal/collector"
	"github.com/sampleworks/reddit-collector/internal/config"
	"github.com/sampleworks/reddit-collector/internal/dashboard"
	"github.com/sampleworks/reddit-collector/internal/domain"
	"github.com/sampleworks/reddit-collector/internal/ingest"
	"github.com/sampleworks/reddit-collector/internal/snapshot"
)

func main() {
	var (
		subsPath    = flag.String("subreddits", "input/subreddits.csv", "CSV watch list, one subreddit per row, header skipped")
		postsOut    = flag.String("posts", "data/posts.csv", "posts snapshot file")
		commentsOut = flag.String("comments-out", "data/comments.csv", "comments snapshot file")
		filter      = flag.String("filter", "new", "post filter: new, hot, top, rising, controversial")
		timeFilter  = flag.String("time", "", "time filter for top/controversial: all, day, hour, month, week, year")
		limit       = flag.Int("limit", 25, "max posts per subreddit, 0 or less takes everything the API pages out")
		comments    = flag.Bool("comments", false, "collect comment data for each post")
		replies     = flag.Bool("replies", false, "include nested replies, not just top-level comments")
		resolveMore = flag.Int("resolve-more", 0, "'more comments' stubs to resolve per post: 0 drops all, negative resolves all")
		serve       = flag.Bool("serve", false, "serve the dashboard after collecting")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration failed", "err", err)
		os.Exit(1)
	}

	subs, err := ingest.LoadSubreddits(*subsPath)
	if err != nil {
		logger.Error("Failed to load subreddit list", "path", *subsPath, "err", err)
		os.Exit(1)
	}
	if len(subs) == 0 {
		logger.Error("Subreddit list is empty", "path", *subsPath)
		os.Exit(1)
	}

	client, err := collector.FromConfig(cfg, collector.WithProgress(os.Stderr))
	if err != nil {
		logger.Error("Failed to initialize collector", "err", err)
		os.Exit(1)
	}
	logger.Info("Collector initialized", "mode", cfg.Mode)

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	opts := domain.Options{
		PostFilter:       domain.PostFilter(*filter),
		TimeFilter:       domain.TimeFilter(*timeFilter),
		PostLimit:        *limit,
		CommentData:      *comments,
		RepliesData:      *replies,
		ResolveMoreLimit: *resolveMore,
	}

	logger.Info("Starting collection", "subreddits", len(subs), "filter", *filter, "limit", *limit)
	result, err := client.Collect(ctx, subs, opts)
	if err != nil {
		logger.Error("Collection failed", "err", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*postsOut), 0o755); err != nil {
		logger.Error("Failed to create snapshot directory", "path", filepath.Dir(*postsOut), "err", err)
		os.Exit(1)
	}
	mergedPosts, err := snapshot.Update(*postsOut, result.AllPosts(), true)
	if err != nil {
		logger.Error("Post snapshot update failed", "path", *postsOut, "err", err)
		os.Exit(1)
	}
	logger.Info("Post snapshot updated", "path", *postsOut, "collected", len(result.AllPosts()), "total", len(mergedPosts))

	if *comments {
		if err := os.MkdirAll(filepath.Dir(*commentsOut), 0o755); err != nil {
			logger.Error("Failed to create snapshot directory", "path", filepath.Dir(*commentsOut), "err", err)
			os.Exit(1)
		}
		mergedComments, err := snapshot.Update(*commentsOut, result.AllComments(), true)
		if err != nil {
			logger.Error("Comment snapshot update failed", "path", *commentsOut, "err", err)
			os.Exit(1)
		}
		logger.Info("Comment snapshot updated", "path", *commentsOut, "collected", len(result.AllComments()), "total", len(mergedComments))
	}

	if *serve {
		logger.Info("Starting Dashboard", "port", cfg.Port)
		if err := dashboard.StartServer(*postsOut, cfg.Port); err != nil {
			logger.Error("Dashboard failed", "err", err)
			os.Exit(1)
		}
	}
}
