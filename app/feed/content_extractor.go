package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"

	readability "codeberg.org/readeck/go-readability"
)

// ContentExtractor distills the readable body out of a fetched article page.
type ContentExtractor struct{}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Run returns the readable HTML fragment of the page. pageURL, when present,
// resolves relative links inside the extracted fragment.
func (e *ContentExtractor) Run(data []byte, pageURL string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("page is empty")
	}

	var base *url.URL
	if pageURL != "" {
		if parsed, err := url.Parse(pageURL); err == nil {
			base = parsed
		}
	}

	article, err := readability.FromReader(bytes.NewReader(data), base)
	if err != nil {
		return "", fmt.Errorf("readability failed: %w", err)
	}

	if article.Content == "" {
		return "", fmt.Errorf("page has no readable content")
	}

	slog.Debug("Content extracted",
		"title", article.Title,
		"length", len(article.Content))

	return article.Content, nil
}
