package parser

import (
	"bytes"
	"strings"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

// Parser converts a raw RSS 2.0 or Atom document into a normalized
// Channel tree in a single forward pass over the token stream. It
// holds no state between runs, so a single Parser is safe to share
// across goroutines.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run parses a complete feed document. It either returns a fully
// finalized Channel or a typed error (*FormatError for a document
// that is neither RSS- nor Atom-shaped, *SyntaxError for XML the
// tokenizer cannot get through), never a partial tree.
func (p *Parser) Run(data []byte) (*Channel, error) {
	xp := xpp.NewXMLPullParser(bytes.NewReader(data), false, charset.NewReaderLabel)

	if err := findRoot(xp); err != nil {
		return nil, err
	}

	root := xp.Name
	switch strings.ToLower(root) {
	case "rss":
		ch, err := newRSSExtractor().run(xp)
		if err != nil {
			return nil, &SyntaxError{Err: err}
		}
		return ch, nil
	case "feed":
		ch, err := newAtomExtractor().run(xp)
		if err != nil {
			return nil, &SyntaxError{Err: err}
		}
		return ch, nil
	default:
		return nil, &FormatError{Root: root}
	}
}
