package document

import (
	"errors"
	"testing"
)

func TestLinesFromCSV(t *testing.T) {
	data := []byte(`Line Item,FY2024
Total Revenue,"$1,200,000"
Cost of Goods Sold,(900K)
Operating Expenses,250000
Net Income,50000
`)
	lines, err := LinesFromCSV(data)
	if err != nil {
		t.Fatalf("LinesFromCSV: %v", err)
	}
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if lines[0].Label != "Line Item" {
		t.Errorf("header row should pass through, got %+v", lines[0])
	}
	if lines[1].Label != "Total Revenue" || lines[1].RawValue != "$1,200,000" {
		t.Errorf("revenue row = %+v", lines[1])
	}
	if lines[2].Label != "Cost of Goods Sold" || lines[2].RawValue != "(900K)" {
		t.Errorf("cogs row = %+v", lines[2])
	}
}

func TestLinesFromCSVSkipsBareRows(t *testing.T) {
	data := []byte("Section Header\nRevenue,100\n,200\nOpex,\n")
	lines, err := LinesFromCSV(data)
	if err != nil {
		t.Fatalf("LinesFromCSV: %v", err)
	}
	if len(lines) != 1 || lines[0].Label != "Revenue" {
		t.Errorf("got %+v, want only the Revenue row", lines)
	}
}

func TestLinesFromMarkdown(t *testing.T) {
	src := `# FY2024 P&L

| Line Item | Amount |
|-----------|-------:|
| Total Revenue | $1.2M |
| COGS | (900K) |
| Operating Expenses | 250,000 |
| Net Income | 50,000 |
`
	lines, err := LinesFromMarkdown(src)
	if err != nil {
		t.Fatalf("LinesFromMarkdown: %v", err)
	}
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5 (header row included)", len(lines))
	}
	if lines[2].Label != "COGS" || lines[2].RawValue != "(900K)" {
		t.Errorf("COGS row = %+v", lines[2])
	}
}

func TestLinesFromHTML(t *testing.T) {
	src := `<html><body>
<h1>Income Statement</h1>
<table>
  <tr><th>Item</th><th>FY2024</th></tr>
  <tr><td>Total Revenue</td><td>$1,200,000</td></tr>
  <tr><td>Cost of Sales</td><td>(900,000)</td></tr>
  <tr><td colspan="2">Subtotals</td></tr>
  <tr><td>Net Income</td><td>50,000</td></tr>
</table>
</body></html>`
	lines, err := LinesFromHTML(src)
	if err != nil {
		t.Fatalf("LinesFromHTML: %v", err)
	}
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[2].Label != "Cost of Sales" || lines[2].RawValue != "(900,000)" {
		t.Errorf("cost row = %+v", lines[2])
	}
}

func TestParseDispatch(t *testing.T) {
	if _, err := Parse("csv", []byte("Revenue,100\n")); err != nil {
		t.Errorf("csv dispatch: %v", err)
	}
	if _, err := Parse("MD", []byte("| Revenue | 100 |")); err != nil {
		t.Errorf("md dispatch: %v", err)
	}
	_, err := Parse("xlsx", nil)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("xlsx: err = %v, want ErrUnsupportedFormat", err)
	}
}
