package parser

import "strings"

// Incremental builders used by the extractors. One channel builder
// lives for the whole pass; article builders are replaced with fresh
// ones after each item is finalized. Setters trim their input and
// ignore blank values, which keeps the "empty string means absent"
// contract of the finalized tree. build never fails.

func setField(dst *string, v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	*dst = v
	return true
}

// splitKeywords splits a comma-separated keyword list, preserving
// source order and dropping blank entries.
func splitKeywords(csv string) []string {
	var out []string
	for _, kw := range strings.Split(csv, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

type channelBuilder struct {
	c Channel
}

func newChannelBuilder() *channelBuilder {
	return &channelBuilder{}
}

func (b *channelBuilder) setTitle(v string)         { setField(&b.c.Title, v) }
func (b *channelBuilder) setLink(v string)          { setField(&b.c.Link, v) }
func (b *channelBuilder) setDescription(v string)   { setField(&b.c.Description, v) }
func (b *channelBuilder) setLastBuildDate(v string) { setField(&b.c.LastBuildDate, v) }
func (b *channelBuilder) setUpdatePeriod(v string)  { setField(&b.c.UpdatePeriod, v) }

func (b *channelBuilder) addArticle(a Article) {
	b.c.Articles = append(b.c.Articles, a)
}

func (b *channelBuilder) setImage(img *Image)              { b.c.Image = img }
func (b *channelBuilder) setPodcast(p *PodcastChannelData) { b.c.Podcast = p }

func (b *channelBuilder) build() *Channel {
	c := b.c
	return &c
}

type articleBuilder struct {
	a Article
}

func newArticleBuilder() *articleBuilder {
	return &articleBuilder{}
}

func (b *articleBuilder) setTitle(v string)       { setField(&b.a.Title, v) }
func (b *articleBuilder) setAuthor(v string)      { setField(&b.a.Author, v) }
func (b *articleBuilder) setLink(v string)        { setField(&b.a.Link, v) }
func (b *articleBuilder) setPubDate(v string)     { setField(&b.a.PubDate, v) }
func (b *articleBuilder) setDescription(v string) { setField(&b.a.Description, v) }
func (b *articleBuilder) setContent(v string)     { setField(&b.a.Content, v) }
func (b *articleBuilder) setImage(v string)       { setField(&b.a.Image, v) }
func (b *articleBuilder) setGUID(v string)        { setField(&b.a.GUID, v) }
func (b *articleBuilder) setAudio(v string)       { setField(&b.a.Audio, v) }
func (b *articleBuilder) setSourceName(v string)  { setField(&b.a.SourceName, v) }
func (b *articleBuilder) setSourceURL(v string)   { setField(&b.a.SourceURL, v) }
func (b *articleBuilder) setVideo(v string)       { setField(&b.a.Video, v) }

// setPubDateIfAbsent keeps the first value seen in document order.
func (b *articleBuilder) setPubDateIfAbsent(v string) {
	if b.a.PubDate == "" {
		setField(&b.a.PubDate, v)
	}
}

// setImageIfAbsent applies a fallback image only when no explicit
// image tag was seen for the item.
func (b *articleBuilder) setImageIfAbsent(v string) {
	if b.a.Image == "" {
		setField(&b.a.Image, v)
	}
}

// addCategory appends every occurrence as-is; duplicates are kept.
func (b *articleBuilder) addCategory(v string) {
	if v = strings.TrimSpace(v); v != "" {
		b.a.Categories = append(b.a.Categories, v)
	}
}

func (b *articleBuilder) setPodcast(p *PodcastArticleData) { b.a.Podcast = p }

func (b *articleBuilder) build() Article {
	return b.a
}

type imageBuilder struct {
	img Image
}

func newImageBuilder() *imageBuilder {
	return &imageBuilder{}
}

func (b *imageBuilder) setTitle(v string)       { setField(&b.img.Title, v) }
func (b *imageBuilder) setLink(v string)        { setField(&b.img.Link, v) }
func (b *imageBuilder) setURL(v string)         { setField(&b.img.URL, v) }
func (b *imageBuilder) setDescription(v string) { setField(&b.img.Description, v) }

// build returns nil for an image with no fields set, so an empty
// image block never ends up attached to the channel.
func (b *imageBuilder) build() *Image {
	if b.img == (Image{}) {
		return nil
	}
	img := b.img
	return &img
}

type podcastChannelBuilder struct {
	d       PodcastChannelData
	owner   PodcastOwner
	touched bool
}

func newPodcastChannelBuilder() *podcastChannelBuilder {
	return &podcastChannelBuilder{}
}

func (b *podcastChannelBuilder) set(dst *string, v string) {
	if setField(dst, v) {
		b.touched = true
	}
}

func (b *podcastChannelBuilder) setExplicit(v string)   { b.set(&b.d.Explicit, v) }
func (b *podcastChannelBuilder) setType(v string)       { b.set(&b.d.Type, v) }
func (b *podcastChannelBuilder) setSubtitle(v string)   { b.set(&b.d.Subtitle, v) }
func (b *podcastChannelBuilder) setAuthor(v string)     { b.set(&b.d.Author, v) }
func (b *podcastChannelBuilder) setSummary(v string)    { b.set(&b.d.Summary, v) }
func (b *podcastChannelBuilder) setImage(v string)      { b.set(&b.d.Image, v) }
func (b *podcastChannelBuilder) setNewFeedURL(v string) { b.set(&b.d.NewFeedURL, v) }
func (b *podcastChannelBuilder) setOwnerName(v string)  { b.set(&b.owner.Name, v) }
func (b *podcastChannelBuilder) setOwnerEmail(v string) { b.set(&b.owner.Email, v) }

func (b *podcastChannelBuilder) addCategory(v string) {
	if v = strings.TrimSpace(v); v != "" {
		b.d.Categories = append(b.d.Categories, v)
		b.touched = true
	}
}

func (b *podcastChannelBuilder) addKeywords(csv string) {
	if kws := splitKeywords(csv); len(kws) > 0 {
		b.d.Keywords = append(b.d.Keywords, kws...)
		b.touched = true
	}
}

func (b *podcastChannelBuilder) build() *PodcastChannelData {
	if !b.touched {
		return nil
	}
	d := b.d
	if b.owner != (PodcastOwner{}) {
		owner := b.owner
		d.Owner = &owner
	}
	return &d
}

type podcastArticleBuilder struct {
	d       PodcastArticleData
	touched bool
}

func newPodcastArticleBuilder() *podcastArticleBuilder {
	return &podcastArticleBuilder{}
}

func (b *podcastArticleBuilder) set(dst *string, v string) {
	if setField(dst, v) {
		b.touched = true
	}
}

func (b *podcastArticleBuilder) setEpisodeType(v string) { b.set(&b.d.EpisodeType, v) }
func (b *podcastArticleBuilder) setAuthor(v string)      { b.set(&b.d.Author, v) }
func (b *podcastArticleBuilder) setImage(v string)       { b.set(&b.d.Image, v) }
func (b *podcastArticleBuilder) setSubtitle(v string)    { b.set(&b.d.Subtitle, v) }
func (b *podcastArticleBuilder) setSummary(v string)     { b.set(&b.d.Summary, v) }
func (b *podcastArticleBuilder) setDuration(v string)    { b.set(&b.d.Duration, v) }
func (b *podcastArticleBuilder) setExplicit(v string)    { b.set(&b.d.Explicit, v) }

func (b *podcastArticleBuilder) addKeywords(csv string) {
	if kws := splitKeywords(csv); len(kws) > 0 {
		b.d.Keywords = append(b.d.Keywords, kws...)
		b.touched = true
	}
}

func (b *podcastArticleBuilder) build() *PodcastArticleData {
	if !b.touched {
		return nil
	}
	d := b.d
	return &d
}
