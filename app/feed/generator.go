package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/lysyi3m/feedcast/app/cfg"
	"github.com/lysyi3m/feedcast/app/database"
	"github.com/lysyi3m/feedcast/app/parser"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Run(feed database.Feed, items []database.Item) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd" xmlns:media="http://search.yahoo.com/mrss/" xmlns:sy="http://purl.org/rss/1.0/modules/syndication/">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", feed.Title, 4)
	g.writeElement(&buf, "link", feed.Link, 4)
	description := feed.Description
	if description == "" {
		description = fmt.Sprintf("Processed feed from %s", feed.FeedURL)
	}
	g.writeElement(&buf, "description", description, 4)

	var selfLink string
	if cfg.Get().BaseUrl != "" {
		selfLink = fmt.Sprintf("%s/feeds/%s", cfg.Get().BaseUrl, feed.Name)
	} else {
		selfLink = fmt.Sprintf("http://localhost:%s/feeds/%s", cfg.Get().Port, feed.Name)
	}
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfLink)))

	lastBuildDate := feed.LastBuildDate
	if lastBuildDate == "" {
		fallback := time.Now().In(time.Local)
		if len(items) > 0 && items[0].PublishedAt != nil {
			fallback = cmp.Or(*items[0].PublishedAt, items[0].CreatedAt)
		}
		lastBuildDate = fallback.Format(time.RFC1123Z)
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate, 4)

	if feed.UpdatePeriod != "" {
		g.writeElement(&buf, "sy:updatePeriod", feed.UpdatePeriod, 4)
	}

	g.writeElement(&buf, "generator", fmt.Sprintf("Feedcast/%s", cfg.Get().Version), 4)

	if feed.ImageURL != "" {
		buf.WriteString("    <image>\n")
		g.writeElement(&buf, "url", feed.ImageURL, 6)
		g.writeElement(&buf, "title", feed.Title, 6)
		g.writeElement(&buf, "link", feed.Link, 6)
		buf.WriteString("    </image>\n")
	}

	podcast, err := feed.Podcast()
	if err != nil {
		return "", fmt.Errorf("failed to read feed podcast data: %w", err)
	}
	if podcast != nil {
		g.writeChannelPodcast(&buf, podcast)
	}

	for _, item := range items {
		if err := g.writeItem(&buf, item); err != nil {
			return "", err
		}
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeChannelPodcast(buf *bytes.Buffer, podcast *parser.PodcastChannelData) {
	g.writeElement(buf, "itunes:explicit", podcast.Explicit, 4)
	g.writeElement(buf, "itunes:type", podcast.Type, 4)
	g.writeElement(buf, "itunes:subtitle", podcast.Subtitle, 4)
	g.writeElement(buf, "itunes:author", podcast.Author, 4)
	g.writeElement(buf, "itunes:summary", podcast.Summary, 4)

	if podcast.Image != "" {
		buf.WriteString(fmt.Sprintf("    <itunes:image href=\"%s\" />\n", html.EscapeString(podcast.Image)))
	}

	if podcast.Owner != nil {
		buf.WriteString("    <itunes:owner>\n")
		g.writeElement(buf, "itunes:name", podcast.Owner.Name, 6)
		g.writeElement(buf, "itunes:email", podcast.Owner.Email, 6)
		buf.WriteString("    </itunes:owner>\n")
	}

	for _, category := range podcast.Categories {
		if category != "" {
			buf.WriteString(fmt.Sprintf("    <itunes:category text=\"%s\" />\n", html.EscapeString(category)))
		}
	}

	g.writeElement(buf, "itunes:new-feed-url", podcast.NewFeedURL, 4)

	if len(podcast.Keywords) > 0 {
		g.writeElement(buf, "itunes:keywords", strings.Join(podcast.Keywords, ","), 4)
	}
}

func (g *Generator) writeItem(buf *bytes.Buffer, item database.Item) error {
	article, err := item.Article()
	if err != nil {
		return fmt.Errorf("failed to read item %d: %w", item.ID, err)
	}

	buf.WriteString("    <item>\n")

	if article.GUID != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(article.GUID)))
		xml.EscapeText(buf, []byte(article.GUID))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", article.Title, 6)
	g.writeElement(buf, "link", article.Link, 6)
	g.writeElement(buf, "description", cmp.Or(article.Description, "No description available"), 6)

	content := cmp.Or(item.ExtractedContent, article.Content)
	if content != "" && content != article.Description {
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.WriteString(content)
		buf.WriteString("]]></content:encoded>\n")
	}

	if item.PublishedAt != nil {
		g.writeElement(buf, "pubDate", item.PublishedAt.Format(time.RFC1123Z), 6)
	} else {
		g.writeElement(buf, "pubDate", article.PubDate, 6)
	}

	g.writeElement(buf, "author", article.Author, 6)

	for _, category := range article.Categories {
		if category != "" {
			g.writeElement(buf, "category", category, 6)
		}
	}

	if article.SourceName != "" || article.SourceURL != "" {
		buf.WriteString(fmt.Sprintf("      <source url=\"%s\">", html.EscapeString(article.SourceURL)))
		xml.EscapeText(buf, []byte(article.SourceName))
		buf.WriteString("</source>\n")
	}

	if article.Audio != "" {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"%s\" />\n",
			html.EscapeString(article.Audio), g.mimeType(article.Audio, "audio/mpeg")))
	}

	if article.Video != "" {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"%s\" />\n",
			html.EscapeString(article.Video), g.mimeType(article.Video, "video/mp4")))
	}

	if article.Image != "" {
		buf.WriteString(fmt.Sprintf("      <media:thumbnail url=\"%s\" />\n", html.EscapeString(article.Image)))
	}

	if article.Podcast != nil {
		g.writeItemPodcast(buf, article.Podcast)
	}

	buf.WriteString("    </item>\n")

	return nil
}

func (g *Generator) writeItemPodcast(buf *bytes.Buffer, podcast *parser.PodcastArticleData) {
	g.writeElement(buf, "itunes:episodeType", podcast.EpisodeType, 6)
	g.writeElement(buf, "itunes:author", podcast.Author, 6)

	if podcast.Image != "" {
		buf.WriteString(fmt.Sprintf("      <itunes:image href=\"%s\" />\n", html.EscapeString(podcast.Image)))
	}

	g.writeElement(buf, "itunes:subtitle", podcast.Subtitle, 6)
	g.writeElement(buf, "itunes:summary", podcast.Summary, 6)
	g.writeElement(buf, "itunes:duration", podcast.Duration, 6)
	g.writeElement(buf, "itunes:explicit", podcast.Explicit, 6)

	if len(podcast.Keywords) > 0 {
		g.writeElement(buf, "itunes:keywords", strings.Join(podcast.Keywords, ","), 6)
	}
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) isURL(s string) bool {
	return (len(s) > 7 && s[:7] == "http://") || (len(s) > 8 && s[:8] == "https://")
}

func (g *Generator) mimeType(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}

	if t := mime.TypeByExtension(path.Ext(u.Path)); t != "" {
		return t
	}
	return fallback
}
