package document

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mfgtwin/pkg/core/extract"
)

// LinesFromHTML extracts label/value pairs from every table row in an HTML
// statement. The first cell of a row is the label, the last the value;
// header and spacer rows fall out because they lack one or the other or
// never match a known label downstream.
func LinesFromHTML(src string) ([]extract.Line, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("document: html parse: %w", err)
	}

	var lines []extract.Line
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.First().Text())
		value := strings.TrimSpace(cells.Last().Text())
		if label == "" || value == "" {
			return
		}
		lines = append(lines, extract.Line{Label: label, RawValue: value})
	})
	return lines, nil
}
