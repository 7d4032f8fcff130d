// Package extract turns an ordered sequence of labeled statement lines into a
// baseline financial snapshot with a confidence score. Extraction degrades
// gracefully: a bad or missing line becomes a warning, never a hard failure.
// The only terminal error is an empty document.
package extract

import (
	"errors"
	"math"

	"mfgtwin/pkg/core/token"
)

// ErrEmptyDocument is returned when the input line sequence is empty.
var ErrEmptyDocument = errors.New("extract: empty document")

// Line is one labeled row of a statement, e.g. ("Total Revenue", "$1.5M").
type Line struct {
	Label    string `json:"label"`
	RawValue string `json:"raw_value"`
}

// WarningKind tags an extraction quality issue.
type WarningKind string

const (
	WarnMissingField       WarningKind = "missing_field"
	WarnUnparseableValue   WarningKind = "unparseable_value"
	WarnInconsistentTotals WarningKind = "inconsistent_totals"
)

// Warning records a non-fatal extraction issue for one field.
type Warning struct {
	Kind  WarningKind `json:"kind"`
	Field Field       `json:"field"`
	Line  string      `json:"line,omitempty"`
}

// Snapshot is the baseline extracted from a document. It is constructed only
// by Extract and never mutated afterwards; cogs and opex are positive
// magnitudes regardless of accounting-negative notation in the source.
type Snapshot struct {
	Revenue      float64   `json:"revenue"`
	COGS         float64   `json:"cogs"`
	Opex         float64   `json:"opex"`
	NetIncome    float64   `json:"net_income"`
	Currency     string    `json:"currency"`
	PeriodMonths int       `json:"period_months"`
	Confidence   float64   `json:"confidence"`
	Warnings     []Warning `json:"warnings"`
}

// MonthlyRevenue returns revenue normalized to one month.
func (s *Snapshot) MonthlyRevenue() float64 { return s.Revenue / float64(s.PeriodMonths) }

// MonthlyCOGS returns cost of goods sold normalized to one month.
func (s *Snapshot) MonthlyCOGS() float64 { return s.COGS / float64(s.PeriodMonths) }

// MonthlyOpex returns operating expenses normalized to one month.
func (s *Snapshot) MonthlyOpex() float64 { return s.Opex / float64(s.PeriodMonths) }

// MonthlyProfit returns the derived monthly operating profit. The derived
// figure (not the reported net income) drives the simulation so that lever
// math stays internally consistent even when totals disagree.
func (s *Snapshot) MonthlyProfit() float64 {
	return (s.Revenue - s.COGS - s.Opex) / float64(s.PeriodMonths)
}

// Confidence score penalties per warning kind.
const (
	penaltyMissingField       = 0.15
	penaltyUnparseableValue   = 0.10
	penaltyInconsistentTotals = 0.20
)

// consistencyTolerance is the allowed |net - (rev - cogs - opex)| deviation,
// as a fraction of revenue.
const consistencyTolerance = 0.05

const defaultPeriodMonths = 12

// Extract scans lines in order, assigns the first match per canonical field,
// and assembles a snapshot. Later synonyms for an already-assigned field are
// ignored (first-match-wins).
func Extract(lines []Line) (*Snapshot, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyDocument
	}

	assigned := make(map[Field]float64, len(requiredFields))
	var warnings []Warning
	currency := ""

	for _, line := range lines {
		field, ok := MatchLabel(line.Label)
		if !ok {
			continue
		}
		if _, done := assigned[field]; done {
			continue
		}

		val, err := token.Parse(line.RawValue)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:  WarnUnparseableValue,
				Field: field,
				Line:  line.Label + ": " + line.RawValue,
			})
			continue
		}
		if currency == "" && val.Currency != "" {
			currency = val.Currency
		}

		amount := val.Amount
		if field.isCost() {
			// Costs are stored as positive magnitudes; the source's
			// accounting parentheses only flip the token sign.
			amount = math.Abs(amount)
		}
		assigned[field] = amount
	}

	for _, field := range requiredFields {
		if _, ok := assigned[field]; !ok {
			assigned[field] = 0
			warnings = append(warnings, Warning{Kind: WarnMissingField, Field: field})
		}
	}

	snap := &Snapshot{
		Revenue:      assigned[FieldRevenue],
		COGS:         assigned[FieldCOGS],
		Opex:         assigned[FieldOpex],
		NetIncome:    assigned[FieldNetIncome],
		Currency:     currency,
		PeriodMonths: defaultPeriodMonths,
	}
	if snap.Currency == "" {
		snap.Currency = "USD"
	}

	if w, bad := checkConsistency(snap); bad {
		warnings = append(warnings, w)
	}

	snap.Warnings = warnings
	snap.Confidence = scoreConfidence(warnings)
	return snap, nil
}

// checkConsistency compares reported net income against the derived figure.
func checkConsistency(s *Snapshot) (Warning, bool) {
	expected := s.Revenue - s.COGS - s.Opex
	deviation := math.Abs(s.NetIncome - expected)

	inconsistent := false
	if s.Revenue == 0 {
		inconsistent = deviation != 0
	} else {
		inconsistent = deviation > consistencyTolerance*math.Abs(s.Revenue)
	}
	if !inconsistent {
		return Warning{}, false
	}
	return Warning{Kind: WarnInconsistentTotals, Field: FieldNetIncome}, true
}

// scoreConfidence starts at 1.0 and subtracts a fixed penalty per warning,
// clamped to [0, 1].
func scoreConfidence(warnings []Warning) float64 {
	score := 1.0
	for _, w := range warnings {
		switch w.Kind {
		case WarnMissingField:
			score -= penaltyMissingField
		case WarnUnparseableValue:
			score -= penaltyUnparseableValue
		case WarnInconsistentTotals:
			score -= penaltyInconsistentTotals
		}
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
