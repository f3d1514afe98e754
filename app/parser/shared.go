package parser

import (
	"strings"

	xpp "github.com/mmcdole/goxpp"
)

// Token-stream helpers shared by the two extractors.

// findRoot advances the parser to the document's root start tag.
func findRoot(p *xpp.XMLPullParser) error {
	for {
		tok, err := p.Next()
		if err != nil {
			return &SyntaxError{Err: err}
		}
		switch tok {
		case xpp.StartTag:
			return nil
		case xpp.EndDocument:
			return &FormatError{}
		}
	}
}

// nextTag consumes tokens until a start tag, end tag or the end of
// the document, skipping text, comments and other incidental events.
func nextTag(p *xpp.XMLPullParser) (xpp.XMLEventType, error) {
	for {
		tok, err := p.Next()
		if err != nil {
			return tok, err
		}
		if tok == xpp.StartTag || tok == xpp.EndTag || tok == xpp.EndDocument {
			return tok, nil
		}
	}
}

// elementText returns the trimmed text content of the element the
// parser is positioned on. Escaped markup and CDATA arrive as plain
// text; unescaped markup inside the element shows up as child tags,
// which the tokenizer cannot deliver as text. That case is recovered
// locally: the value is dropped, the rest of the element is consumed,
// and ("", nil) is returned so the pass continues with the next tag.
func elementText(p *xpp.XMLPullParser) (string, error) {
	depth := p.Depth

	text, err := p.NextText()
	if err == nil {
		return strings.TrimSpace(text), nil
	}

	for {
		tok, nerr := p.Next()
		if nerr != nil {
			return "", nerr
		}
		switch tok {
		case xpp.EndDocument:
			return "", nil
		case xpp.EndTag:
			if p.Depth < depth {
				return "", nil
			}
		}
	}
}

// textInto reads the current element's text and hands it to set.
func textInto(p *xpp.XMLPullParser, set func(string)) error {
	text, err := elementText(p)
	if err != nil {
		return err
	}
	set(text)
	return nil
}
