package feed

import (
	"log/slog"

	"github.com/araddon/dateparse"

	"github.com/lysyi3m/feedcast/app/parser"
)

// Digest reduces parsed articles to a flat list of entries suitable for
// compact rendering. Articles without a title, description or a parseable
// publication date are dropped.
type Digest struct{}

func NewDigest() *Digest {
	return &Digest{}
}

func (d *Digest) Run(articles []parser.Article) []Entry {
	entries := make([]Entry, 0, len(articles))

	for _, article := range articles {
		if article.Title == "" || article.Description == "" {
			slog.Debug("Article skipped in digest", "guid", article.GUID, "reason", "missing title or description")
			continue
		}

		publishedAt, err := dateparse.ParseAny(article.PubDate)
		if err != nil {
			slog.Debug("Article skipped in digest", "guid", article.GUID, "reason", "unparseable publication date", "pub_date", article.PubDate)
			continue
		}

		entry := Entry{
			Title:       article.Title,
			Link:        article.Link,
			Description: article.Description,
			Image:       article.Image,
			Audio:       article.Audio,
			PublishedAt: publishedAt,
		}

		if article.Podcast != nil {
			entry.Duration = article.Podcast.Duration
		}

		entries = append(entries, entry)
	}

	return entries
}
