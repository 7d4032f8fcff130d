package scenario

import "mfgtwin/pkg/core/levers"

// aggregate reduces the 12 forecast points and five lever investments into
// the scenario summary. Per-lever investments are recurring monthly amounts,
// so the horizon cost is monthly x 12; the breakdown map carries the horizon
// figures for display and is not fed back into the forecast math.
func aggregate(result *Result, impacts map[string]levers.Impact) {
	breakdown := make(map[string]float64, len(impacts))
	total := 0.0
	for name, imp := range impacts {
		cost := imp.Investment * HorizonMonths
		breakdown[name] = cost
		total += cost
	}

	gain := 0.0
	for _, point := range result.Forecast {
		gain += point.AdjustedProfit - point.OriginalProfit
	}

	result.LeverCostBreakdown = breakdown
	result.TotalInvestment = total
	if total == 0 {
		// ROI is undefined with no investment: not zero, not infinity.
		result.RoiDefined = false
		result.RoiPct = 0
		return
	}
	result.RoiDefined = true
	result.RoiPct = (gain - total) / total * 100
}
