package parser

import "strings"

// tagKind is the closed vocabulary the extractors route on. Both
// grammars share it: classify maps a raw element name plus its
// namespace (or undeclared prefix) to one kind, and everything the
// vocabulary does not cover is tagUnknown, which never produces a
// side effect.
type tagKind int

const (
	tagUnknown tagKind = iota

	// structural
	tagChannel
	tagItem
	tagEntry

	// channel and item vocabulary shared by both grammars
	tagTitle
	tagLink
	tagDescription
	tagImage
	tagURL
	tagLastBuildDate
	tagUpdatePeriod
	tagAuthor
	tagName
	tagEmail
	tagPubDate
	tagPublished
	tagUpdated
	tagContent
	tagEnclosure
	tagMediaThumbnail
	tagCategory
	tagGUID
	tagSource
	tagIcon
	tagSummary
	tagKeywords

	// podcast namespace, mirrored at channel and item level
	tagPodcastExplicit
	tagPodcastType
	tagPodcastSubtitle
	tagPodcastAuthor
	tagPodcastSummary
	tagPodcastOwner
	tagPodcastImage
	tagPodcastCategory
	tagPodcastNewFeedURL
	tagPodcastEpisodeType
	tagPodcastDuration
)

// Namespace classes. The space reported by the tokenizer is the
// resolved namespace URL when the document declares the prefix, or
// the bare prefix when it does not, so both spellings are matched.
// The namespace token is matched case-insensitively; local names are
// matched exactly.
const (
	nsAtomURL        = "http://www.w3.org/2005/atom"
	nsPodcastURLPart = "itunes.com/dtds/podcast"
	nsContentURLPart = "purl.org/rss/1.0/modules/content"
	nsSyndURLPart    = "purl.org/rss/1.0/modules/syndication"
	nsMediaURLPart   = "search.yahoo.com/mrss"
)

type nsClass int

const (
	nsOther nsClass = iota
	nsBase
	nsPodcast
	nsContent
	nsSyndication
	nsMedia
)

func classifySpace(space string) nsClass {
	space = strings.ToLower(strings.TrimSpace(space))
	switch {
	case space == "" || space == nsAtomURL:
		// Atom documents carry their vocabulary in the Atom default
		// namespace; RSS documents carry theirs in no namespace.
		return nsBase
	case space == "itunes" || strings.Contains(space, nsPodcastURLPart):
		return nsPodcast
	case space == "content" || strings.Contains(space, nsContentURLPart):
		return nsContent
	case space == "sy" || strings.Contains(space, nsSyndURLPart):
		return nsSyndication
	case space == "media" || strings.Contains(space, nsMediaURLPart):
		return nsMedia
	default:
		return nsOther
	}
}

// classify resolves an element name and its namespace token to a tag
// kind. Unrecognized combinations are tagUnknown.
func classify(space, local string) tagKind {
	switch classifySpace(space) {
	case nsBase:
		return classifyBase(local)
	case nsPodcast:
		return classifyPodcast(local)
	case nsContent:
		if local == "encoded" {
			return tagContent
		}
	case nsSyndication:
		if local == "updatePeriod" {
			return tagUpdatePeriod
		}
	case nsMedia:
		switch local {
		case "content":
			return tagEnclosure
		case "thumbnail":
			return tagMediaThumbnail
		case "keywords":
			return tagKeywords
		}
	}
	return tagUnknown
}

func classifyBase(local string) tagKind {
	switch local {
	case "channel":
		return tagChannel
	case "item":
		return tagItem
	case "entry":
		return tagEntry
	case "title":
		return tagTitle
	case "link":
		return tagLink
	case "description":
		return tagDescription
	case "subtitle":
		// Atom's feed subtitle plays the role of the RSS channel
		// description.
		return tagDescription
	case "image":
		return tagImage
	case "url":
		return tagURL
	case "lastBuildDate":
		return tagLastBuildDate
	case "author":
		return tagAuthor
	case "name":
		return tagName
	case "email":
		return tagEmail
	case "pubDate":
		return tagPubDate
	case "published":
		return tagPublished
	case "updated":
		return tagUpdated
	case "content":
		return tagContent
	case "enclosure":
		return tagEnclosure
	case "category":
		return tagCategory
	case "guid", "id":
		return tagGUID
	case "source":
		return tagSource
	case "icon":
		return tagIcon
	case "summary":
		return tagSummary
	case "keywords":
		return tagKeywords
	}
	return tagUnknown
}

func classifyPodcast(local string) tagKind {
	switch local {
	case "explicit":
		return tagPodcastExplicit
	case "type":
		return tagPodcastType
	case "subtitle":
		return tagPodcastSubtitle
	case "author":
		return tagPodcastAuthor
	case "summary":
		return tagPodcastSummary
	case "owner":
		return tagPodcastOwner
	case "name":
		return tagName
	case "email":
		return tagEmail
	case "image":
		return tagPodcastImage
	case "category":
		return tagPodcastCategory
	case "new-feed-url":
		return tagPodcastNewFeedURL
	case "keywords":
		return tagKeywords
	case "episodeType":
		return tagPodcastEpisodeType
	case "duration":
		return tagPodcastDuration
	}
	return tagUnknown
}
