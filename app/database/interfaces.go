package database

import (
	"time"

	"github.com/lysyi3m/feedcast/app/parser"
)

type FeedRepository interface {
	GetFeed(feedName string) (*Feed, error)
	GetFeedCount() (int, error)

	UpsertFeed(feedName, feedURL string) error
	UpdateFeedChannel(feedName string, channel *parser.Channel, nextFetchAt time.Time) error
}

type ItemForExtraction struct {
	ID   int64
	Link string
}

type ItemRepository interface {
	GetRecentItems(feedName string, limit int) ([]Item, error)
	GetAllItems(feedName string) ([]Item, error)
	GetItemCount(feedName string) (int, error)
	GetItemStats(feedName string) (total, extracted, pending int, err error)

	UpsertItem(feedName string, article parser.Article) error

	GetItemsForExtraction(feedName string, limit int) ([]ItemForExtraction, error)
	UpdateExtractedContentAndStatus(itemID int64, content string, status string, extractedAt *time.Time, errorMsg string) error
	UpdateExtractionStatus(itemID int64, status string, extractedAt *time.Time, errorMsg string) error
}
