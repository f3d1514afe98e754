package parser

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseRSS(t *testing.T) {
	data := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:sy="http://purl.org/rss/1.0/modules/syndication/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <lastBuildDate>Mon, 03 Jul 2023 12:00:00 GMT</lastBuildDate>
    <sy:updatePeriod>hourly</sy:updatePeriod>
    <image>
      <url>https://example.com/icon.png</url>
      <title>Test Feed</title>
      <link>https://example.com</link>
    </image>
    <item>
      <title>Test Item 1</title>
      <link>https://example.com/item1</link>
      <description>Test Item 1 Description</description>
      <content:encoded><![CDATA[<p>Full content for item one</p>]]></content:encoded>
      <guid>item-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <author>test@example.com (Test Author)</author>
      <category>Technology</category>
      <category>Programming</category>
      <source url="https://source.example.com/feed.xml">Source Feed</source>
    </item>
    <item>
      <title>Test Item 2</title>
      <link>https://example.com/item2</link>
      <description>Test Item 2 Description</description>
      <guid>item-2</guid>
      <pubDate>Mon, 03 Jul 2023 11:00:00 GMT</pubDate>
      <enclosure url="https://example.com/item2.mp3" length="123" type="audio/mpeg"/>
    </item>
  </channel>
</rss>`

	ch, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if ch.Title != "Test Feed" {
		t.Errorf("Expected title 'Test Feed', got: %s", ch.Title)
	}
	if ch.Link != "https://example.com" {
		t.Errorf("Expected link 'https://example.com', got: %s", ch.Link)
	}
	if ch.Description != "Test Description" {
		t.Errorf("Expected description 'Test Description', got: %s", ch.Description)
	}
	if ch.LastBuildDate != "Mon, 03 Jul 2023 12:00:00 GMT" {
		t.Errorf("Unexpected lastBuildDate: %s", ch.LastBuildDate)
	}
	if ch.UpdatePeriod != "hourly" {
		t.Errorf("Expected update period 'hourly', got: %s", ch.UpdatePeriod)
	}

	if ch.Image == nil {
		t.Fatal("Expected channel image, got nil")
	}
	if ch.Image.URL != "https://example.com/icon.png" {
		t.Errorf("Unexpected image URL: %s", ch.Image.URL)
	}
	if ch.Image.Title != "Test Feed" {
		t.Errorf("Unexpected image title: %s", ch.Image.Title)
	}

	if len(ch.Articles) != 2 {
		t.Fatalf("Expected 2 articles, got: %d", len(ch.Articles))
	}

	first := ch.Articles[0]
	if first.Title != "Test Item 1" {
		t.Errorf("Unexpected first article title: %s", first.Title)
	}
	if first.GUID != "item-1" {
		t.Errorf("Unexpected first article GUID: %s", first.GUID)
	}
	if first.Author != "test@example.com (Test Author)" {
		t.Errorf("Unexpected first article author: %s", first.Author)
	}
	if first.Content != "<p>Full content for item one</p>" {
		t.Errorf("Unexpected first article content: %s", first.Content)
	}
	if first.SourceName != "Source Feed" {
		t.Errorf("Unexpected source name: %s", first.SourceName)
	}
	if first.SourceURL != "https://source.example.com/feed.xml" {
		t.Errorf("Unexpected source URL: %s", first.SourceURL)
	}
	want := []string{"Technology", "Programming"}
	if !reflect.DeepEqual(first.Categories, want) {
		t.Errorf("Expected categories %v, got: %v", want, first.Categories)
	}

	second := ch.Articles[1]
	if second.Audio != "https://example.com/item2.mp3" {
		t.Errorf("Unexpected second article audio: %s", second.Audio)
	}
	if second.PubDate != "Mon, 03 Jul 2023 11:00:00 GMT" {
		t.Errorf("Unexpected second article pubDate: %s", second.PubDate)
	}
}

func TestParseAtom(t *testing.T) {
	data := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <subtitle>A feed in the other grammar</subtitle>
  <link href="https://example.org/" rel="alternate"/>
  <updated>2023-07-03T12:00:00Z</updated>
  <icon>https://example.org/icon.png</icon>
  <entry>
    <id>urn:uuid:entry-1</id>
    <title>Entry One</title>
    <link href="https://example.org/entries/1"/>
    <published>2023-07-03T10:00:00Z</published>
    <updated>2023-07-03T11:00:00Z</updated>
    <summary>Entry one summary</summary>
    <content type="html">&lt;p&gt;Entry one body&lt;/p&gt;</content>
    <author><name>Jane Doe</name><email>jane@example.org</email></author>
    <category term="tech"/>
    <category term="go"/>
  </entry>
</feed>`

	ch, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if ch.Title != "Atom Feed" {
		t.Errorf("Expected title 'Atom Feed', got: %s", ch.Title)
	}
	if ch.Description != "A feed in the other grammar" {
		t.Errorf("Unexpected description: %s", ch.Description)
	}
	if ch.Link != "https://example.org/" {
		t.Errorf("Unexpected link: %s", ch.Link)
	}
	if ch.LastBuildDate != "2023-07-03T12:00:00Z" {
		t.Errorf("Unexpected lastBuildDate: %s", ch.LastBuildDate)
	}
	if ch.Image == nil || ch.Image.URL != "https://example.org/icon.png" {
		t.Errorf("Expected icon URL as channel image, got: %+v", ch.Image)
	}

	if len(ch.Articles) != 1 {
		t.Fatalf("Expected 1 article, got: %d", len(ch.Articles))
	}

	a := ch.Articles[0]
	if a.Title != "Entry One" {
		t.Errorf("Unexpected title: %s", a.Title)
	}
	if a.GUID != "urn:uuid:entry-1" {
		t.Errorf("Unexpected GUID: %s", a.GUID)
	}
	if a.Link != "https://example.org/entries/1" {
		t.Errorf("Unexpected link: %s", a.Link)
	}
	if a.Author != "Jane Doe" {
		t.Errorf("Unexpected author: %s", a.Author)
	}
	if a.PubDate != "2023-07-03T10:00:00Z" {
		t.Errorf("Expected published date to win, got: %s", a.PubDate)
	}
	if a.Description != "Entry one summary" {
		t.Errorf("Unexpected description: %s", a.Description)
	}
	if a.Content != "<p>Entry one body</p>" {
		t.Errorf("Unexpected content: %s", a.Content)
	}
	want := []string{"tech", "go"}
	if !reflect.DeepEqual(a.Categories, want) {
		t.Errorf("Expected categories %v, got: %v", want, a.Categories)
	}
}

func TestAtomPubDateFirstWins(t *testing.T) {
	updatedFirst := `<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Feed</title>
  <entry>
    <title>Entry</title>
    <updated>2023-01-02T00:00:00Z</updated>
    <published>2023-01-01T00:00:00Z</published>
  </entry>
</feed>`

	ch, err := NewParser().Run([]byte(updatedFirst))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := ch.Articles[0].PubDate; got != "2023-01-02T00:00:00Z" {
		t.Errorf("Expected first-seen updated to win, got: %s", got)
	}
}

func TestAtomEditLinkIgnored(t *testing.T) {
	data := `<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Feed</title>
  <entry>
    <title>Entry</title>
    <link rel="edit" href="https://example.org/edit/1"/>
    <link rel="alternate" href="https://example.org/entries/1"/>
  </entry>
</feed>`

	ch, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := ch.Articles[0].Link; got != "https://example.org/entries/1" {
		t.Errorf("Expected edit link to be skipped, got: %s", got)
	}
}

func TestImageFallbackFromDescription(t *testing.T) {
	data := `<rss version="2.0">
  <channel>
    <title>Feed</title>
    <item>
      <title>Item</title>
      <description><![CDATA[Intro text <img src="https://example.com/embedded.png"> outro]]></description>
    </item>
  </channel>
</rss>`

	ch, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := ch.Articles[0].Image; got != "https://example.com/embedded.png" {
		t.Errorf("Expected embedded image fallback, got: %s", got)
	}
}

func TestExplicitImageBeatsEmbedded(t *testing.T) {
	data := `<rss version="2.0">
  <channel>
    <title>Feed</title>
    <item>
      <title>Item</title>
      <description><![CDATA[<img src="https://example.com/embedded.png">]]></description>
      <enclosure url="https://example.com/cover.jpg" type="image/jpeg"/>
    </item>
  </channel>
</rss>`

	ch, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := ch.Articles[0].Image; got != "https://example.com/cover.jpg" {
		t.Errorf("Expected explicit enclosure image to win, got: %s", got)
	}
}

func TestContentImageBeatsDescriptionImage(t *testing.T) {
	data := `<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Feed</title>
    <item>
      <title>Item</title>
      <description><![CDATA[<img src="https://example.com/from-description.png">]]></description>
      <content:encoded><![CDATA[<img src="https://example.com/from-content.png">]]></content:encoded>
    </item>
  </channel>
</rss>`

	ch, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := ch.Articles[0].Image; got != "https://example.com/from-content.png" {
		t.Errorf("Expected content-sourced image to win, got: %s", got)
	}
}

func TestLocalRecoveryFromUnescapedMarkup(t *testing.T) {
	data := `<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Feed</title>
    <item>
      <title>Broken Item</title>
      <content:encoded>broken <p>unescaped markup</content:encoded>
      <guid>broken-guid</guid>
    </item>
    <item>
      <title>Healthy Item</title>
      <description>All fine here</description>
      <guid>healthy-guid</guid>
    </item>
  </channel>
</rss>`

	ch, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected local recovery, got error: %v", err)
	}

	if len(ch.Articles) != 2 {
		t.Fatalf("Expected 2 articles, got: %d", len(ch.Articles))
	}

	broken := ch.Articles[0]
	if broken.Content != "" {
		t.Errorf("Expected malformed content to be absent, got: %s", broken.Content)
	}
	if broken.Title != "Broken Item" {
		t.Errorf("Expected surrounding fields to survive, got title: %s", broken.Title)
	}
	if broken.GUID != "broken-guid" {
		t.Errorf("Expected fields after the malformed one to survive, got GUID: %s", broken.GUID)
	}

	healthy := ch.Articles[1]
	if healthy.Title != "Healthy Item" || healthy.Description != "All fine here" {
		t.Errorf("Expected following item untouched, got: %+v", healthy)
	}
}

func TestUnknownTagsIgnored(t *testing.T) {
	data := `<rss version="2.0">
  <channel>
    <title>Feed</title>
    <managingEditor>editor@example.com</managingEditor>
    <ttl>60</ttl>
    <item>
      <title>Item</title>
      <comments>https://example.com/comments</comments>
    </item>
  </channel>
</rss>`

	ch, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ch.Title != "Feed" || len(ch.Articles) != 1 {
		t.Errorf("Unexpected result: %+v", ch)
	}
}

func TestUnrecognizedFormat(t *testing.T) {
	data := `<?xml version="1.0"?><opml version="2.0"><body/></opml>`

	_, err := NewParser().Run([]byte(data))
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("Expected *FormatError, got: %v", err)
	}
	if formatErr.Root != "opml" {
		t.Errorf("Expected root 'opml', got: %s", formatErr.Root)
	}
}

func TestMalformedDocument(t *testing.T) {
	data := `<rss version="2.0"><channel><title>Truncated`

	_, err := NewParser().Run([]byte(data))
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError, got: %v", err)
	}
}

func TestEmptyDocument(t *testing.T) {
	_, err := NewParser().Run([]byte("   "))
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("Expected *FormatError for empty input, got: %v", err)
	}
}

func TestDeterminism(t *testing.T) {
	data := `<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Feed</title>
    <itunes:author>Someone</itunes:author>
    <item>
      <title>Item</title>
      <category>a</category>
      <category>b</category>
      <itunes:keywords>x, y, z</itunes:keywords>
    </item>
  </channel>
</rss>`

	first, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	second, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical trees, got:\n%+v\n%+v", first, second)
	}
}

func TestFormatAgnosticShape(t *testing.T) {
	rssData := `<rss version="2.0">
  <channel>
    <title>Shared Feed</title>
    <link>https://example.com</link>
    <description>Shared description</description>
    <item>
      <title>Shared Entry</title>
      <link>https://example.com/1</link>
      <description>Entry description</description>
      <pubDate>2023-07-03T10:00:00Z</pubDate>
    </item>
  </channel>
</rss>`

	atomData := `<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Shared Feed</title>
  <link href="https://example.com"/>
  <subtitle>Shared description</subtitle>
  <entry>
    <title>Shared Entry</title>
    <link href="https://example.com/1"/>
    <summary>Entry description</summary>
    <published>2023-07-03T10:00:00Z</published>
  </entry>
</feed>`

	fromRSS, err := NewParser().Run([]byte(rssData))
	if err != nil {
		t.Fatalf("RSS parse failed: %v", err)
	}
	fromAtom, err := NewParser().Run([]byte(atomData))
	if err != nil {
		t.Fatalf("Atom parse failed: %v", err)
	}

	if fromRSS.Title != fromAtom.Title {
		t.Errorf("Titles differ: %q vs %q", fromRSS.Title, fromAtom.Title)
	}
	if fromRSS.Link != fromAtom.Link {
		t.Errorf("Links differ: %q vs %q", fromRSS.Link, fromAtom.Link)
	}
	if fromRSS.Description != fromAtom.Description {
		t.Errorf("Descriptions differ: %q vs %q", fromRSS.Description, fromAtom.Description)
	}
	if len(fromRSS.Articles) != 1 || len(fromAtom.Articles) != 1 {
		t.Fatalf("Expected one article each, got %d and %d", len(fromRSS.Articles), len(fromAtom.Articles))
	}

	ra, aa := fromRSS.Articles[0], fromAtom.Articles[0]
	if ra.Title != aa.Title || ra.Link != aa.Link || ra.Description != aa.Description || ra.PubDate != aa.PubDate {
		t.Errorf("Article shapes differ:\n%+v\n%+v", ra, aa)
	}
}

func TestEmptyImageSuppression(t *testing.T) {
	data := `<rss version="2.0">
  <channel>
    <title>Feed</title>
    <item><title>Item</title></item>
  </channel>
</rss>`

	ch, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ch.Image != nil {
		t.Errorf("Expected no channel image, got: %+v", ch.Image)
	}
	if ch.Podcast != nil {
		t.Errorf("Expected no podcast data, got: %+v", ch.Podcast)
	}
}
