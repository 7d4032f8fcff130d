package document

import (
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"mfgtwin/pkg/core/extract"
)

// ErrInvalidMarkdown is returned when goldmark cannot produce a document tree.
var ErrInvalidMarkdown = errors.New("document: invalid markdown")

// LinesFromMarkdown extracts label/value pairs from pipe tables in a markdown
// statement. The source is validated with goldmark first; the table cells
// themselves are read line-by-line since the layout is first column label,
// last column value.
func LinesFromMarkdown(src string) ([]extract.Line, error) {
	parser := goldmark.DefaultParser()
	if doc := parser.Parse(text.NewReader([]byte(src))); doc == nil {
		return nil, ErrInvalidMarkdown
	}

	var lines []extract.Line
	for _, raw := range strings.Split(src, "\n") {
		row := strings.TrimSpace(raw)
		if !strings.HasPrefix(row, "|") {
			continue
		}
		cells := splitTableRow(row)
		if len(cells) < 2 || isSeparatorRow(cells) {
			continue
		}
		label := cells[0]
		value := cells[len(cells)-1]
		if label == "" || value == "" {
			continue
		}
		lines = append(lines, extract.Line{Label: label, RawValue: value})
	}
	return lines, nil
}

func splitTableRow(row string) []string {
	row = strings.Trim(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// isSeparatorRow reports whether every cell is a markdown alignment marker
// like --- or :---:.
func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if cell == "" {
			return false
		}
		if strings.Trim(cell, "-: ") != "" {
			return false
		}
	}
	return true
}
