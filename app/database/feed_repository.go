package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lysyi3m/feedcast/app/parser"
)

var _ FeedRepository = (*feedRepository)(nil)

type feedRepository struct {
	db *DB
}

func NewFeedRepository(db *DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) GetFeed(feedName string) (*Feed, error) {
	var feed Feed
	err := r.db.QueryRow(`
		SELECT id, name, feed_url, title, link, description, image_url,
		       last_build_date, update_period, podcast,
		       last_fetched_at, next_fetch_at, created_at, updated_at
		FROM feeds
		WHERE name = ?
	`, feedName).Scan(
		&feed.ID, &feed.Name, &feed.FeedURL, &feed.Title, &feed.Link,
		&feed.Description, &feed.ImageURL, &feed.LastBuildDate, &feed.UpdatePeriod,
		&feed.PodcastData, &feed.LastFetchedAt, &feed.NextFetchAt,
		&feed.CreatedAt, &feed.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}

	return &feed, nil
}

func (r *feedRepository) GetFeedCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM feeds").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get feed count: %w", err)
	}
	return count, nil
}

func (r *feedRepository) UpsertFeed(feedName, feedURL string) error {
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO feeds (name, feed_url, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			feed_url = excluded.feed_url,
			updated_at = excluded.updated_at
	`, feedName, feedURL, now, now)

	if err != nil {
		return fmt.Errorf("failed to upsert feed: %w", err)
	}

	return nil
}

func (r *feedRepository) UpdateFeedChannel(feedName string, channel *parser.Channel, nextFetchAt time.Time) error {
	var imageURL string
	if channel.Image != nil {
		imageURL = channel.Image.URL
	}

	var podcastData string
	if channel.Podcast != nil {
		data, err := json.Marshal(channel.Podcast)
		if err != nil {
			return fmt.Errorf("failed to encode podcast data: %w", err)
		}
		podcastData = string(data)
	}

	now := time.Now().UTC()

	result, err := r.db.Exec(`
		UPDATE feeds
		SET title = ?, link = ?, description = ?, image_url = ?,
		    last_build_date = ?, update_period = ?, podcast = ?,
		    last_fetched_at = ?, next_fetch_at = ?, updated_at = ?
		WHERE name = ?
	`, channel.Title, channel.Link, channel.Description, imageURL,
		channel.LastBuildDate, channel.UpdatePeriod, podcastData,
		now, nextFetchAt, now, feedName)

	if err != nil {
		return fmt.Errorf("failed to update feed channel: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("feed '%s' not registered", feedName)
	}

	return nil
}
