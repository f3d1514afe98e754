package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lysyi3m/feedcast/app/parser"
)

type Feed struct {
	ID            int64
	Name          string // Configuration feed identifier derived from filename
	FeedURL       string // RSS/Atom feed URL from configuration
	Title         string
	Link          string // Homepage URL from feed's <link> element
	Description   string
	ImageURL      string
	LastBuildDate string
	UpdatePeriod  string
	PodcastData   string // JSON-encoded channel podcast metadata, empty when absent
	LastFetchedAt *time.Time
	NextFetchAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time // Tracks last successful processing
}

// Podcast decodes the stored channel podcast metadata.
// Returns nil when the source feed carried none.
func (f Feed) Podcast() (*parser.PodcastChannelData, error) {
	if f.PodcastData == "" {
		return nil, nil
	}

	var p parser.PodcastChannelData
	if err := json.Unmarshal([]byte(f.PodcastData), &p); err != nil {
		return nil, fmt.Errorf("failed to decode podcast data: %w", err)
	}
	return &p, nil
}

type Item struct {
	ID          int64
	FeedName    string
	GUID        string
	Title       string
	Link        string
	PublishedAt *time.Time // Parsed publication date, used for ordering
	Data        string     // JSON-encoded article as parsed from the source feed

	ExtractedContent        string
	ContentExtractedAt      *time.Time
	ContentExtractionStatus string // pending, success, failed, skipped
	ContentExtractionError  string
	ExtractionAttempts      int

	CreatedAt time.Time
}

// Article decodes the stored article back into its parsed form.
func (i Item) Article() (parser.Article, error) {
	var article parser.Article
	if err := json.Unmarshal([]byte(i.Data), &article); err != nil {
		return parser.Article{}, fmt.Errorf("failed to decode article data: %w", err)
	}
	return article, nil
}
