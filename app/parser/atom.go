package parser

import (
	"strings"

	xpp "github.com/mmcdole/goxpp"
)

// atomExtractor mirrors the RSS pass for Atom's grammar: the <feed>
// root plays the channel role and <entry> elements play the item
// role. Entry dates are first-wins between <published> and <updated>.
type atomExtractor struct {
	state          scope
	channel        *channelBuilder
	image          *imageBuilder
	podcastChannel *podcastChannelBuilder
	article        *articleBuilder
	podcastArticle *podcastArticleBuilder
	contentImage   string
	descImage      string
}

func newAtomExtractor() *atomExtractor {
	e := &atomExtractor{
		channel:        newChannelBuilder(),
		image:          newImageBuilder(),
		podcastChannel: newPodcastChannelBuilder(),
	}
	e.resetArticle()
	return e
}

func (e *atomExtractor) resetArticle() {
	e.article = newArticleBuilder()
	e.podcastArticle = newPodcastArticleBuilder()
	e.contentImage = ""
	e.descImage = ""
}

// run is called with the parser positioned on the <feed> root tag,
// which already puts the pass inside the channel.
func (e *atomExtractor) run(p *xpp.XMLPullParser) (*Channel, error) {
	e.state = scopeChannel
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

func (e *atomExtractor) finish() *Channel {
	e.channel.setImage(e.image.build())
	e.channel.setPodcast(e.podcastChannel.build())
	return e.channel.build()
}

func (e *atomExtractor) startTag(p *xpp.XMLPullParser) error {
	kind := classify(p.Space, p.Name)

	switch e.state {
	case scopeOutside:
		return nil
	case scopeChannel:
		if kind == tagEntry {
			e.state = scopeItem
			return nil
		}
		return e.feedTag(p, kind)
	case scopeItem:
		return e.entryTag(p, kind)
	}
	return nil
}

func (e *atomExtractor) endTag(p *xpp.XMLPullParser) {
	switch classify(p.Space, p.Name) {
	case tagEntry:
		if e.state == scopeItem {
			e.closeItem()
			e.state = scopeChannel
		}
	}
}

func (e *atomExtractor) closeItem() {
	e.article.setImageIfAbsent(e.contentImage)
	e.article.setImageIfAbsent(e.descImage)
	e.article.setPodcast(e.podcastArticle.build())
	e.channel.addArticle(e.article.build())
	e.resetArticle()
}

func (e *atomExtractor) feedTag(p *xpp.XMLPullParser, kind tagKind) error {
	switch kind {
	case tagTitle:
		return textInto(p, e.channel.setTitle)
	case tagDescription:
		return textInto(p, e.channel.setDescription)
	case tagLink:
		if href, ok := linkHref(p); ok {
			e.channel.setLink(href)
		}
		return p.Skip()
	case tagUpdated:
		// The feed's updated stamp plays the last-build-date role.
		return textInto(p, e.channel.setLastBuildDate)
	case tagIcon:
		// Atom icons carry only a URL, no title, link or description.
		return textInto(p, e.image.setURL)
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

func (e *atomExtractor) entryTag(p *xpp.XMLPullParser, kind tagKind) error {
	switch kind {
	case tagTitle:
		return textInto(p, e.article.setTitle)
	case tagGUID:
		return textInto(p, e.article.setGUID)
	case tagAuthor:
		return e.parsePerson(p)
	case tagLink:
		if href, ok := linkHref(p); ok {
			e.article.setLink(href)
		}
		return p.Skip()
	case tagPublished, tagUpdated:
		// Whichever of published/updated appears first in document
		// order wins; later occurrences of either are ignored.
		return textInto(p, e.article.setPubDateIfAbsent)
	case tagContent:
		text, err := elementText(p)
		if err != nil {
			return err
		}
		e.article.setContent(text)
		if e.contentImage == "" {
			e.contentImage = firstImageURL(text)
		}
	case tagSummary, tagDescription:
		text, err := elementText(p)
		if err != nil {
			return err
		}
		e.article.setDescription(text)
		if e.descImage == "" {
			e.descImage = firstImageURL(text)
		}
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
	case tagEnclosure:
		// media:content inside an entry, same routing as RSS.
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
		return p.Skip()
	case tagMediaThumbnail:
		e.article.setImage(p.Attribute("url"))
		return p.Skip()
	case tagSource:
		// An Atom entry source is a whole feed-metadata subtree;
		// skipped so its children cannot masquerade as entry fields.
		return p.Skip()
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

// parsePerson consumes an Atom person construct, preferring the name
// over the email for the article author.
func (e *atomExtractor) parsePerson(p *xpp.XMLPullParser) error {
	depth := p.Depth
	var name, email string
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
				if name == "" {
					name = email
				}
				e.article.setAuthor(name)
				return nil
			}
		case xpp.StartTag:
			var text string
			var err error
			switch classify(p.Space, p.Name) {
			case tagName:
				if text, err = elementText(p); err == nil {
					name = text
				}
			case tagEmail:
				if text, err = elementText(p); err == nil {
					email = text
				}
			}
			if err != nil {
				return err
			}
		}
	}
}

// linkHref reads an Atom link's target. Links with rel="edit" are
// not honored; the stored value is the href attribute, never the
// element text.
func linkHref(p *xpp.XMLPullParser) (string, bool) {
	if strings.EqualFold(strings.TrimSpace(p.Attribute("rel")), "edit") {
		return "", false
	}
	return p.Attribute("href"), true
}
