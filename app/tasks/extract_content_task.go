package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lysyi3m/feedcast/app/database"
	"github.com/lysyi3m/feedcast/app/feed"
)

// ExtractContentTask drains the pending extraction queue of a feed: it fetches
// each article page and stores the readable content next to the article.
type ExtractContentTask struct {
	Task
	FeedConfig *feed.Config
	httpClient *http.Client
	extractor  *feed.ContentExtractor
	itemRepo   database.ItemRepository
	userAgent  string
}

func NewExtractContentTask(feedName string, feedConfig *feed.Config, httpClient *http.Client, extractor *feed.ContentExtractor, itemRepo database.ItemRepository, userAgent string) *ExtractContentTask {
	return &ExtractContentTask{
		Task:       NewTask(TaskTypeExtractContent, feedName),
		FeedConfig: feedConfig,
		httpClient: httpClient,
		extractor:  extractor,
		itemRepo:   itemRepo,
		userAgent:  userAgent,
	}
}

func (t *ExtractContentTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.FeedConfig.Settings.ExtractContent {
		slog.Debug("Content extraction disabled for feed", "feed", t.FeedName)
		return nil
	}

	queue, err := t.itemRepo.GetItemsForExtraction(t.FeedName, t.FeedConfig.Settings.MaxItems)
	if err != nil {
		return fmt.Errorf("failed to load extraction queue: %w", err)
	}

	if len(queue) == 0 {
		slog.Debug("Extraction queue is empty", "feed", t.FeedName)
		return nil
	}

	extracted := 0
	failed := 0

	for _, item := range queue {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := t.extractItem(ctx, item); err != nil {
			slog.Error("Failed to extract content",
				"item_id", item.ID, "url", item.Link, "error", err)
			failed++

			now := time.Now().UTC()
			if err := t.itemRepo.UpdateExtractionStatus(item.ID, "failed", &now, err.Error()); err != nil {
				slog.Error("Failed to record extraction failure", "item_id", item.ID, "error", err)
			}
			continue
		}
		extracted++
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"extracted", extracted,
		"failed", failed)

	return nil
}

func (t *ExtractContentTask) extractItem(ctx context.Context, item database.ItemForExtraction) error {
	if item.Link == "" {
		return fmt.Errorf("item has no link")
	}

	page, err := t.fetchPage(ctx, item.Link)
	if err != nil {
		return fmt.Errorf("failed to fetch article page: %w", err)
	}

	content, err := t.extractor.Run(page, item.Link)
	if err != nil {
		return fmt.Errorf("failed to extract content: %w", err)
	}

	now := time.Now().UTC()
	if err := t.itemRepo.UpdateExtractedContentAndStatus(item.ID, content, "success", &now, ""); err != nil {
		return fmt.Errorf("failed to store extracted content: %w", err)
	}

	slog.Debug("Content extracted",
		"item_id", item.ID, "url", item.Link, "length", len(content))
	return nil
}

func (t *ExtractContentTask) fetchPage(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(t.FeedConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	return io.ReadAll(resp.Body)
}
