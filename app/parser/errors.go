package parser

import "fmt"

// FormatError reports a document whose root element matches neither
// the RSS nor the Atom grammar. There is no partial result.
type FormatError struct {
	Root string
}

func (e *FormatError) Error() string {
	if e.Root == "" {
		return "unrecognized feed format: no root element"
	}
	return fmt.Sprintf("unrecognized feed format: root element <%s>", e.Root)
}

// SyntaxError reports malformed XML at the tokenizer level, such as
// unbalanced tags or invalid characters, that the pass cannot recover
// from.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return "malformed feed document: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
