package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/lysyi3m/feedcast/app/parser"
)

var _ ItemRepository = (*itemRepository)(nil)

type itemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) UpsertItem(feedName string, article parser.Article) error {
	data, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("failed to encode article: %w", err)
	}

	var publishedAt *time.Time
	if article.PubDate != "" {
		if parsed, err := dateparse.ParseAny(article.PubDate); err == nil {
			utc := parsed.UTC()
			publishedAt = &utc
		}
	}

	// Articles with populated content never enter the extraction queue
	extractionStatus := "pending"
	if article.Content != "" || article.Link == "" {
		extractionStatus = "skipped"
	}

	_, err = r.db.Exec(`
		INSERT INTO articles (
			feed_name, guid, title, link, published_at, data,
			content_extraction_status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (feed_name, guid) DO UPDATE SET
			title = excluded.title,
			link = excluded.link,
			published_at = excluded.published_at,
			data = excluded.data
	`, feedName, article.GUID, article.Title, article.Link, publishedAt,
		string(data), extractionStatus, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}

	return nil
}

func (r *itemRepository) GetRecentItems(feedName string, limit int) ([]Item, error) {
	rows, err := r.db.Query(`
		SELECT id, feed_name, guid, title, link, published_at, data,
		       extracted_content, content_extracted_at, content_extraction_status,
		       content_extraction_error, extraction_attempts, created_at
		FROM articles
		WHERE feed_name = ?
		ORDER BY COALESCE(published_at, created_at) DESC
		LIMIT ?
	`, feedName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent items: %w", err)
	}
	defer rows.Close()

	return r.scanItems(rows)
}

func (r *itemRepository) GetAllItems(feedName string) ([]Item, error) {
	rows, err := r.db.Query(`
		SELECT id, feed_name, guid, title, link, published_at, data,
		       extracted_content, content_extracted_at, content_extraction_status,
		       content_extraction_error, extraction_attempts, created_at
		FROM articles
		WHERE feed_name = ?
		ORDER BY COALESCE(published_at, created_at) DESC
	`, feedName)
	if err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	defer rows.Close()

	return r.scanItems(rows)
}

func (r *itemRepository) GetItemCount(feedName string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM articles WHERE feed_name = ?", feedName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}
	return count, nil
}

func (r *itemRepository) GetItemStats(feedName string) (total, extracted, pending int, err error) {
	err = r.db.QueryRow(`
		SELECT
			COUNT(*) as total,
			SUM(CASE WHEN content_extraction_status = 'success' THEN 1 ELSE 0 END) as extracted,
			SUM(CASE WHEN content_extraction_status = 'pending' THEN 1 ELSE 0 END) as pending
		FROM articles
		WHERE feed_name = ?
	`, feedName).Scan(&total, &extracted, &pending)

	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get item stats: %w", err)
	}

	return total, extracted, pending, nil
}

func (r *itemRepository) GetItemsForExtraction(feedName string, limit int) ([]ItemForExtraction, error) {
	rows, err := r.db.Query(`
		SELECT id, link
		FROM articles
		WHERE feed_name = ?
		  AND content_extraction_status = 'pending'
		  AND link != ''
		ORDER BY COALESCE(published_at, created_at) DESC
		LIMIT ?
	`, feedName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get items for extraction: %w", err)
	}
	defer rows.Close()

	var items []ItemForExtraction
	for rows.Next() {
		var item ItemForExtraction
		if err := rows.Scan(&item.ID, &item.Link); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

func (r *itemRepository) UpdateExtractedContentAndStatus(itemID int64, content string, status string, extractedAt *time.Time, errorMsg string) error {
	_, err := r.db.Exec(`
		UPDATE articles
		SET extracted_content = ?, content_extraction_status = ?,
		    content_extracted_at = ?, content_extraction_error = ?,
		    extraction_attempts = extraction_attempts + 1
		WHERE id = ?
	`, content, status, extractedAt, errorMsg, itemID)

	if err != nil {
		return fmt.Errorf("failed to update extracted content: %w", err)
	}

	return nil
}

func (r *itemRepository) UpdateExtractionStatus(itemID int64, status string, extractedAt *time.Time, errorMsg string) error {
	_, err := r.db.Exec(`
		UPDATE articles
		SET content_extraction_status = ?, content_extracted_at = ?,
		    content_extraction_error = ?,
		    extraction_attempts = extraction_attempts + 1
		WHERE id = ?
	`, status, extractedAt, errorMsg, itemID)

	if err != nil {
		return fmt.Errorf("failed to update extraction status: %w", err)
	}

	return nil
}

func (r *itemRepository) scanItems(rows *sql.Rows) ([]Item, error) {
	var items []Item
	for rows.Next() {
		var item Item
		err := rows.Scan(
			&item.ID, &item.FeedName, &item.GUID, &item.Title, &item.Link,
			&item.PublishedAt, &item.Data, &item.ExtractedContent,
			&item.ContentExtractedAt, &item.ContentExtractionStatus,
			&item.ContentExtractionError, &item.ExtractionAttempts, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}
