package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/feedcast/app/database"
	"github.com/lysyi3m/feedcast/app/feed"
	"github.com/lysyi3m/feedcast/app/parser"
)

type ProcessFeedTask struct {
	Task
	FeedConfig *feed.Config
	httpClient *http.Client
	parser     *parser.Parser
	feedRepo   database.FeedRepository
	itemRepo   database.ItemRepository
	userAgent  string
}

func NewProcessFeedTask(feedName string, feedConfig *feed.Config, httpClient *http.Client, feedParser *parser.Parser, feedRepo database.FeedRepository, itemRepo database.ItemRepository, userAgent string) *ProcessFeedTask {
	return &ProcessFeedTask{
		Task:       NewTask(TaskTypeProcessFeed, feedName),
		FeedConfig: feedConfig,
		httpClient: httpClient,
		parser:     feedParser,
		feedRepo:   feedRepo,
		itemRepo:   itemRepo,
		userAgent:  userAgent,
	}
}

func (t *ProcessFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.FeedConfig.Settings.Enabled {
		slog.Debug("Feed disabled, skipping", "feed", t.FeedName)
		return nil
	}

	data, err := t.fetchFeed(ctx, t.FeedConfig.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	channel, err := t.parser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	err = t.storeChannel(channel)
	if err != nil {
		return fmt.Errorf("failed to store feed channel: %w", err)
	}

	storedCount := 0
	skippedCount := 0

	for _, article := range channel.Articles {
		if article.GUID == "" && article.Link == "" {
			skippedCount++
			continue
		}

		if err := t.itemRepo.UpsertItem(t.FeedName, t.withFallbackGUID(article)); err != nil {
			return fmt.Errorf("failed to upsert item: %w", err)
		}
		storedCount++
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"total", len(channel.Articles),
		"stored", storedCount,
		"skipped", skippedCount)

	return nil
}

// withFallbackGUID substitutes the link for articles the source published
// without a GUID, keeping the (feed, guid) upsert key stable.
func (t *ProcessFeedTask) withFallbackGUID(article parser.Article) parser.Article {
	if article.GUID == "" {
		article.GUID = article.Link
	}
	return article
}

func (t *ProcessFeedTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(t.FeedConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (t *ProcessFeedTask) storeChannel(channel *parser.Channel) error {
	now := time.Now().UTC()
	nextFetch := now.Add(time.Duration(t.FeedConfig.Settings.RefreshInterval) * time.Second)

	err := t.feedRepo.UpdateFeedChannel(t.FeedName, channel, nextFetch)
	if err != nil {
		return fmt.Errorf("failed to update feed channel and next fetch time: %w", err)
	}

	return nil
}
