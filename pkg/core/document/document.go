// Package document converts uploaded statement documents into the ordered
// label/value lines the extractor consumes. One adapter per text format;
// binary spreadsheet and PDF decoding are out of scope.
package document

import (
	"errors"
	"fmt"
	"strings"

	"mfgtwin/pkg/core/extract"
)

// ErrUnsupportedFormat is returned for formats no adapter handles.
var ErrUnsupportedFormat = errors.New("document: unsupported format")

// Supported format names, matched case-insensitively by Parse.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Parse dispatches to the adapter for the given format. "md" is accepted as
// an alias for markdown.
func Parse(format string, data []byte) ([]extract.Line, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatCSV:
		return LinesFromCSV(data)
	case FormatMarkdown, "md":
		return LinesFromMarkdown(string(data))
	case FormatHTML, "htm":
		return LinesFromHTML(string(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
