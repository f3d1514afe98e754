package parser

// Normalized feed tree. Values returned by Parser.Run are snapshots:
// nothing in this package retains a reference to them after the pass,
// and callers are expected to treat them as read-only.
//
// Optional scalar fields hold a trimmed non-empty string or are empty.
// The builders never store blank values, so an empty string always
// means "absent in the source document".

// Channel is the root of a parsed feed document, covering both the
// RSS <channel> and the Atom <feed> element.
type Channel struct {
	Title         string
	Link          string
	Description   string
	LastBuildDate string
	UpdatePeriod  string
	Image         *Image
	Podcast       *PodcastChannelData
	Articles      []Article
}

// Article is a single feed item or entry, in document order.
type Article struct {
	Title       string
	Author      string
	Link        string
	PubDate     string
	Description string
	Content     string
	Image       string
	GUID        string
	Audio       string
	SourceName  string
	SourceURL   string
	Video       string
	Categories  []string
	Podcast     *PodcastArticleData
}

// Image is the channel image block. A Channel never carries an Image
// with all four fields blank; builders suppress it instead.
type Image struct {
	Title       string
	Link        string
	URL         string
	Description string
}

// PodcastChannelData holds channel-level podcast namespace metadata.
type PodcastChannelData struct {
	Explicit   string
	Type       string
	Subtitle   string
	Author     string
	Summary    string
	Image      string
	Owner      *PodcastOwner
	Categories []string
	NewFeedURL string
	Keywords   []string
}

// PodcastOwner is the owner block of a podcast channel.
type PodcastOwner struct {
	Name  string
	Email string
}

// PodcastArticleData holds item-level podcast namespace metadata.
type PodcastArticleData struct {
	EpisodeType string
	Author      string
	Image       string
	Subtitle    string
	Summary     string
	Duration    string
	Explicit    string
	Keywords    []string
}
