package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// firstImageURL scans an HTML-bearing text blob for the first image
// reference and returns its source URL, or "" when the text is empty
// or contains none. The HTML tokenizer never fails on malformed
// markup, so a non-match is always just "no image".
//
// Used only as a fallback for items without an explicit image tag.
func firstImageURL(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "img" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "src" {
					if src := strings.TrimSpace(string(val)); src != "" {
						return src
					}
				}
				if !more {
					break
				}
			}
		}
	}
}
