package extract

import (
	"math"
	"testing"
)

func TestExtractCleanStatement(t *testing.T) {
	lines := []Line{
		{"Total Revenue", "$1.5M"},
		{"COGS", "(900K)"},
		{"Operating Expenses", "300000"},
		{"Net Income", "300000"},
	}

	snap, err := Extract(lines)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if snap.Revenue != 1500000 {
		t.Errorf("revenue = %v, want 1500000", snap.Revenue)
	}
	// Accounting parentheses negate the token, but cost fields are stored as
	// positive magnitudes.
	if snap.COGS != 900000 {
		t.Errorf("cogs = %v, want 900000", snap.COGS)
	}
	if snap.Opex != 300000 {
		t.Errorf("opex = %v, want 300000", snap.Opex)
	}
	if snap.NetIncome != 300000 {
		t.Errorf("net_income = %v, want 300000", snap.NetIncome)
	}
	if snap.Currency != "USD" {
		t.Errorf("currency = %q, want USD", snap.Currency)
	}
	if snap.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0 (consistent, fully parsed)", snap.Confidence)
	}
	if len(snap.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", snap.Warnings)
	}
	if got := snap.MonthlyProfit(); math.Abs(got-25000) > 1e-9 {
		t.Errorf("monthly profit = %v, want 25000", got)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	if _, err := Extract(nil); err != ErrEmptyDocument {
		t.Errorf("Extract(nil): error = %v, want ErrEmptyDocument", err)
	}
	if _, err := Extract([]Line{}); err != ErrEmptyDocument {
		t.Errorf("Extract([]): error = %v, want ErrEmptyDocument", err)
	}
}

func TestExtractFirstMatchWins(t *testing.T) {
	lines := []Line{
		{"Revenue", "100"},
		{"Total Revenue", "999"}, // later synonym for an assigned field
		{"Cost of Sales", "40"},
		{"Overhead", "20"},
		{"Net Income", "40"},
	}
	snap, err := Extract(lines)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if snap.Revenue != 100 {
		t.Errorf("revenue = %v, want 100 (first match wins)", snap.Revenue)
	}
}

func TestExtractDegradesGracefully(t *testing.T) {
	lines := []Line{
		{"Total Revenue", "one million"}, // unparseable
		{"COGS", "600000"},
	}
	snap, err := Extract(lines)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	var unparseable, missing, inconsistent int
	for _, w := range snap.Warnings {
		switch w.Kind {
		case WarnUnparseableValue:
			unparseable++
		case WarnMissingField:
			missing++
		case WarnInconsistentTotals:
			inconsistent++
		}
	}
	// revenue unparseable; revenue, opex, net_income all unset afterwards.
	if unparseable != 1 {
		t.Errorf("unparseable warnings = %d, want 1", unparseable)
	}
	if missing != 3 {
		t.Errorf("missing warnings = %d, want 3", missing)
	}
	// revenue=0, net=0, expected=-600000: deviation from zero revenue.
	if inconsistent != 1 {
		t.Errorf("inconsistent warnings = %d, want 1", inconsistent)
	}

	want := 1.0 - 0.10 - 3*0.15 - 0.20
	if math.Abs(snap.Confidence-want) > 1e-9 {
		t.Errorf("confidence = %v, want %v", snap.Confidence, want)
	}
}

func TestExtractConfidenceFloor(t *testing.T) {
	// Nothing matches at all: four missing fields plus no inconsistency
	// (all zeros agree), floor must hold regardless.
	snap, err := Extract([]Line{{"random header", "x"}, {"another", "y"}})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if snap.Confidence < 0 || snap.Confidence > 1 {
		t.Errorf("confidence = %v, want within [0,1]", snap.Confidence)
	}
	want := 1.0 - 4*0.15
	if math.Abs(snap.Confidence-want) > 1e-9 {
		t.Errorf("confidence = %v, want %v", snap.Confidence, want)
	}
}

func TestExtractConfidenceMonotonic(t *testing.T) {
	full := []Line{
		{"Revenue", "1000"},
		{"COGS", "400"},
		{"Opex", "300"},
		{"Net Income", "300"},
	}
	prev := 2.0
	// Drop one line at a time; each drop adds a MissingField warning, so
	// confidence must be non-increasing.
	for cut := len(full); cut >= 1; cut-- {
		snap, err := Extract(full[:cut])
		if err != nil {
			t.Fatalf("Extract(%d lines): %v", cut, err)
		}
		if snap.Confidence > prev {
			t.Errorf("confidence increased from %v to %v with more warnings", prev, snap.Confidence)
		}
		if snap.Confidence < 0 || snap.Confidence > 1 {
			t.Errorf("confidence = %v out of [0,1]", snap.Confidence)
		}
		prev = snap.Confidence
	}
}

func TestExtractInconsistentTotals(t *testing.T) {
	lines := []Line{
		{"Revenue", "1000000"},
		{"COGS", "400000"},
		{"Operating Expenses", "300000"},
		{"Net Income", "600000"}, // expected 300000, off by 30% of revenue
	}
	snap, err := Extract(lines)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	found := false
	for _, w := range snap.Warnings {
		if w.Kind == WarnInconsistentTotals {
			found = true
		}
	}
	if !found {
		t.Error("expected InconsistentTotals warning")
	}
	if math.Abs(snap.Confidence-0.8) > 1e-9 {
		t.Errorf("confidence = %v, want 0.8", snap.Confidence)
	}
}

func TestMatchLabelPrecedence(t *testing.T) {
	tests := []struct {
		label string
		want  Field
	}{
		{"Cost of Sales", FieldCOGS},          // not revenue despite "sales"
		{"Net Income", FieldNetIncome},        // not revenue despite "income"
		{"Total Revenue", FieldRevenue},
		{"NET SALES", FieldRevenue},
		{"Selling General and Administrative", FieldOpex},
		{"  cogs  ", FieldCOGS},
	}
	for _, tc := range tests {
		got, ok := MatchLabel(tc.label)
		if !ok || got != tc.want {
			t.Errorf("MatchLabel(%q) = %q/%v, want %q", tc.label, got, ok, tc.want)
		}
	}
	if _, ok := MatchLabel("Depreciation Schedule Notes"); ok {
		t.Error("MatchLabel matched an unknown label")
	}
}
