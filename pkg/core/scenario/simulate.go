// Package scenario maps a baseline snapshot plus lever settings into a
// 12-month forecast with confidence bands, and reduces it to a single
// investment/ROI summary. Everything here is a pure function of its inputs:
// two calls with identical arguments produce bit-identical results.
package scenario

import (
	"errors"
	"fmt"
	"math"

	"mfgtwin/pkg/core/extract"
	"mfgtwin/pkg/core/levers"
)

// ErrInvalidBaseline is returned for snapshots the projection math cannot
// consume: a non-positive period or a non-finite field. Snapshots built by
// the extractor never trip this; caller-supplied ones can.
var ErrInvalidBaseline = errors.New("scenario: invalid baseline snapshot")

// HorizonMonths is the fixed forecast horizon.
const HorizonMonths = 12

// bandWidening is the per-month linear growth factor of the confidence band.
const bandWidening = 0.05

// ForecastPoint is one month of the projection.
type ForecastPoint struct {
	MonthIndex     int     `json:"month_index"` // 1..12
	OriginalProfit float64 `json:"original_profit"`
	AdjustedProfit float64 `json:"adjusted_profit"`
	LowerBound     float64 `json:"lower_bound"`
	UpperBound     float64 `json:"upper_bound"`
}

// Result is the output of one simulation run.
type Result struct {
	Forecast        [HorizonMonths]ForecastPoint `json:"forecast"`
	TotalInvestment float64                      `json:"total_investment"`
	RoiPct          float64                      `json:"roi_pct"`
	// RoiDefined is false when total investment is zero; RoiPct is
	// meaningless in that case and callers must not display it.
	RoiDefined         bool               `json:"roi_defined"`
	LeverCostBreakdown map[string]float64 `json:"lever_cost_breakdown"`
}

// Model runs simulations against one calibration. The zero-cost way to get
// one is NewModel(levers.DefaultConstants()).
type Model struct {
	constants levers.Constants
}

func NewModel(c levers.Constants) *Model {
	return &Model{constants: c}
}

// Constants exposes the calibration in use.
func (m *Model) Constants() levers.Constants { return m.constants }

// Simulate validates the setting, projects 12 months and aggregates the
// investment summary. The snapshot is read, never mutated. Validation runs
// before any computation, so an out-of-range setting never yields a partial
// result.
func (m *Model) Simulate(baseline *extract.Snapshot, setting levers.Setting) (*Result, error) {
	if err := validateBaseline(baseline); err != nil {
		return nil, err
	}
	if err := setting.Validate(m.constants); err != nil {
		return nil, err
	}

	impacts := levers.Compute(baseline, setting, m.constants)

	// Lever deltas are month-invariant; only the seasonal multiplier varies.
	var revenueDelta, costDelta float64
	for _, imp := range impacts {
		revenueDelta += imp.RevenueDelta
		costDelta += imp.CostDelta
	}

	monthlyProfit := baseline.MonthlyProfit()
	uncertainty := 1 - baseline.Confidence

	var result Result
	for month := 1; month <= HorizonMonths; month++ {
		seasonal := SeasonalMultiplier(month)

		original := monthlyProfit * seasonal
		// Revenue-linked deltas breathe with the season; cost deltas are
		// fixed monthly amounts.
		adjusted := original + revenueDelta*seasonal - costDelta

		// Bands widen linearly with the horizon and scale with extraction
		// uncertainty. The magnitude keeps lower <= adjusted <= upper even
		// for loss-making months.
		halfWidth := math.Abs(adjusted) * uncertainty * (1 + bandWidening*float64(month))

		result.Forecast[month-1] = ForecastPoint{
			MonthIndex:     month,
			OriginalProfit: original,
			AdjustedProfit: adjusted,
			LowerBound:     adjusted - halfWidth,
			UpperBound:     adjusted + halfWidth,
		}
	}

	aggregate(&result, impacts)
	return &result, nil
}

func validateBaseline(s *extract.Snapshot) error {
	if s.PeriodMonths < 1 {
		return fmt.Errorf("%w: period_months %d", ErrInvalidBaseline, s.PeriodMonths)
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"revenue", s.Revenue},
		{"cogs", s.COGS},
		{"opex", s.Opex},
		{"net_income", s.NetIncome},
		{"confidence", s.Confidence},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidBaseline, f.name)
		}
	}
	return nil
}
