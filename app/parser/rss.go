package parser

import (
	"strings"

	xpp "github.com/mmcdole/goxpp"
)

// Extractor scope. scopeItem implies being inside the channel.
type scope int

const (
	scopeOutside scope = iota
	scopeChannel
	scopeItem
)

// rssExtractor drives a single forward pass over an RSS 2.0 token
// stream. It owns one channel accumulator for the whole pass and one
// article accumulator per item; both article builders and the
// fallback-image scratch values are replaced when an item closes.
type rssExtractor struct {
	state          scope
	channel        *channelBuilder
	image          *imageBuilder
	podcastChannel *podcastChannelBuilder
	article        *articleBuilder
	podcastArticle *podcastArticleBuilder
	contentImage   string
	descImage      string
}

func newRSSExtractor() *rssExtractor {
	e := &rssExtractor{
		channel:        newChannelBuilder(),
		image:          newImageBuilder(),
		podcastChannel: newPodcastChannelBuilder(),
	}
	e.resetArticle()
	return e
}

func (e *rssExtractor) resetArticle() {
	e.article = newArticleBuilder()
	e.podcastArticle = newPodcastArticleBuilder()
	e.contentImage = ""
	e.descImage = ""
}

// run is called with the parser positioned on the <rss> root tag.
func (e *rssExtractor) run(p *xpp.XMLPullParser) (*Channel, error) {
	for {
		tok, err := nextTag(p)
		if err != nil {
			return nil, err
		}
		switch tok {
		case xpp.EndDocument:
			return e.finish(), nil
		case xpp.StartTag:
			if err := e.startTag(p); err != nil {
				return nil, err
			}
		case xpp.EndTag:
			e.endTag(p)
		}
	}
}

func (e *rssExtractor) finish() *Channel {
	e.channel.setImage(e.image.build())
	e.channel.setPodcast(e.podcastChannel.build())
	return e.channel.build()
}

func (e *rssExtractor) startTag(p *xpp.XMLPullParser) error {
	kind := classify(p.Space, p.Name)

	switch e.state {
	case scopeOutside:
		if kind == tagChannel {
			e.state = scopeChannel
		}
		return nil
	case scopeChannel:
		if kind == tagItem {
			e.state = scopeItem
			return nil
		}
		return e.channelTag(p, kind)
	case scopeItem:
		return e.itemTag(p, kind)
	}
	return nil
}

func (e *rssExtractor) endTag(p *xpp.XMLPullParser) {
	switch classify(p.Space, p.Name) {
	case tagItem:
		if e.state == scopeItem {
			e.closeItem()
			e.state = scopeChannel
		}
	case tagChannel:
		if e.state != scopeOutside {
			e.state = scopeOutside
		}
	}
}

// closeItem finalizes the current article, applying the embedded
// image fallback (content before description) only when no explicit
// enclosure or media tag set one, and appends it to the channel.
func (e *rssExtractor) closeItem() {
	e.article.setImageIfAbsent(e.contentImage)
	e.article.setImageIfAbsent(e.descImage)
	e.article.setPodcast(e.podcastArticle.build())
	e.channel.addArticle(e.article.build())
	e.resetArticle()
}

func (e *rssExtractor) channelTag(p *xpp.XMLPullParser, kind tagKind) error {
	switch kind {
	case tagTitle:
		return textInto(p, e.channel.setTitle)
	case tagLink:
		return textInto(p, e.channel.setLink)
	case tagDescription:
		return textInto(p, e.channel.setDescription)
	case tagLastBuildDate:
		return textInto(p, e.channel.setLastBuildDate)
	case tagUpdatePeriod:
		return textInto(p, e.channel.setUpdatePeriod)
	case tagImage:
		return e.parseImage(p)
	case tagPodcastExplicit:
		return textInto(p, e.podcastChannel.setExplicit)
	case tagPodcastType:
		return textInto(p, e.podcastChannel.setType)
	case tagPodcastSubtitle:
		return textInto(p, e.podcastChannel.setSubtitle)
	case tagPodcastAuthor:
		return textInto(p, e.podcastChannel.setAuthor)
	case tagPodcastSummary:
		return textInto(p, e.podcastChannel.setSummary)
	case tagPodcastOwner:
		return parseOwner(p, e.podcastChannel)
	case tagPodcastImage:
		e.podcastChannel.setImage(p.Attribute("href"))
		return p.Skip()
	case tagPodcastCategory:
		e.podcastChannel.addCategory(p.Attribute("text"))
		return p.Skip()
	case tagPodcastNewFeedURL:
		return textInto(p, e.podcastChannel.setNewFeedURL)
	case tagKeywords:
		return textInto(p, e.podcastChannel.addKeywords)
	}
	return nil
}

func (e *rssExtractor) itemTag(p *xpp.XMLPullParser, kind tagKind) error {
	switch kind {
	case tagTitle:
		return textInto(p, e.article.setTitle)
	case tagAuthor:
		return textInto(p, e.article.setAuthor)
	case tagLink:
		return textInto(p, e.article.setLink)
	case tagPubDate:
		return textInto(p, e.article.setPubDate)
	case tagDescription, tagSummary:
		text, err := elementText(p)
		if err != nil {
			return err
		}
		e.article.setDescription(text)
		if e.descImage == "" {
			e.descImage = firstImageURL(text)
		}
	case tagContent:
		text, err := elementText(p)
		if err != nil {
			return err
		}
		e.article.setContent(text)
		if e.contentImage == "" {
			e.contentImage = firstImageURL(text)
		}
	case tagEnclosure:
		e.enclosure(p)
		return p.Skip()
	case tagMediaThumbnail:
		e.article.setImage(p.Attribute("url"))
		return p.Skip()
	case tagCategory:
		term := p.Attribute("term")
		text, err := elementText(p)
		if err != nil {
			return err
		}
		if text == "" {
			text = term
		}
		e.article.addCategory(text)
	case tagGUID:
		return textInto(p, e.article.setGUID)
	case tagSource:
		url := p.Attribute("url")
		text, err := elementText(p)
		if err != nil {
			return err
		}
		e.article.setSourceName(text)
		e.article.setSourceURL(url)
	case tagKeywords:
		return textInto(p, e.podcastArticle.addKeywords)
	case tagPodcastEpisodeType:
		return textInto(p, e.podcastArticle.setEpisodeType)
	case tagPodcastAuthor:
		return textInto(p, e.podcastArticle.setAuthor)
	case tagPodcastImage:
		e.podcastArticle.setImage(p.Attribute("href"))
		return p.Skip()
	case tagPodcastSubtitle:
		return textInto(p, e.podcastArticle.setSubtitle)
	case tagPodcastSummary:
		return textInto(p, e.podcastArticle.setSummary)
	case tagPodcastDuration:
		return textInto(p, e.podcastArticle.setDuration)
	case tagPodcastExplicit:
		return textInto(p, e.podcastArticle.setExplicit)
	}
	return nil
}

// enclosure routes an enclosure or media:content reference by its
// MIME type. Typeless enclosures are treated as audio, the dominant
// case for feeds carrying them.
func (e *rssExtractor) enclosure(p *xpp.XMLPullParser) {
	url := p.Attribute("url")
	mime := strings.ToLower(strings.TrimSpace(p.Attribute("type")))

	switch {
	case strings.HasPrefix(mime, "image"):
		e.article.setImage(url)
	case strings.HasPrefix(mime, "video"):
		e.article.setVideo(url)
	default:
		e.article.setAudio(url)
	}
}

// parseImage consumes a channel <image> block, routing its subfields
// to the image builder so they cannot clobber the channel's own
// title, link or description.
func (e *rssExtractor) parseImage(p *xpp.XMLPullParser) error {
	depth := p.Depth
	for {
		tok, err := nextTag(p)
		if err != nil {
			return err
		}
		switch tok {
		case xpp.EndDocument:
			return nil
		case xpp.EndTag:
			if p.Depth < depth {
				return nil
			}
		case xpp.StartTag:
			var err error
			switch classify(p.Space, p.Name) {
			case tagURL:
				err = textInto(p, e.image.setURL)
			case tagTitle:
				err = textInto(p, e.image.setTitle)
			case tagLink:
				err = textInto(p, e.image.setLink)
			case tagDescription:
				err = textInto(p, e.image.setDescription)
			}
			if err != nil {
				return err
			}
		}
	}
}

// parseOwner consumes a podcast owner block.
func parseOwner(p *xpp.XMLPullParser, b *podcastChannelBuilder) error {
	depth := p.Depth
	for {
		tok, err := nextTag(p)
		if err != nil {
			return err
		}
		switch tok {
		case xpp.EndDocument:
			return nil
		case xpp.EndTag:
			if p.Depth < depth {
				return nil
			}
		case xpp.StartTag:
			var err error
			switch classify(p.Space, p.Name) {
			case tagName:
				err = textInto(p, b.setOwnerName)
			case tagEmail:
				err = textInto(p, b.setOwnerEmail)
			}
			if err != nil {
				return err
			}
		}
	}
}
