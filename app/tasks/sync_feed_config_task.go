package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/feedcast/app/database"
	"github.com/lysyi3m/feedcast/app/feed"
)

// SyncFeedConfigTask registers a configured feed in the database so that
// fetch and extraction tasks have a row to attach to.
type SyncFeedConfigTask struct {
	Task
	FeedConfig *feed.Config
	feedRepo   database.FeedRepository
}

func NewSyncFeedConfigTask(feedName string, feedConfig *feed.Config, feedRepo database.FeedRepository) *SyncFeedConfigTask {
	return &SyncFeedConfigTask{
		Task:       NewTask(TaskTypeSyncFeedConfig, feedName),
		FeedConfig: feedConfig,
		feedRepo:   feedRepo,
	}
}

func (t *SyncFeedConfigTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.feedRepo.UpsertFeed(t.FeedConfig.Name, t.FeedConfig.URL); err != nil {
		slog.Error("Task failed", "type", t.GetType(), "feed", t.FeedName, "error", err)
		return fmt.Errorf("failed to register feed: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", t.FeedName,
		"duration", t.GetDuration())

	return nil
}
