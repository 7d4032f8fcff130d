package recommend

import "mfgtwin/pkg/core/extract"

// Impact is the estimated financials of one recommendation, annualized.
type Impact struct {
	AnnualSavings      float64            `json:"cost_savings_annual"`
	ImplementationCost float64            `json:"implementation_cost"`
	RoiPct             float64            `json:"roi_percentage"`
	PaybackMonths      int                `json:"payback_months"`
	RevenueImpact      float64            `json:"revenue_impact"`
	CostBreakdown      map[string]float64 `json:"cost_breakdown"`
	Assumptions        []string           `json:"assumptions"`
	Confidence         float64            `json:"confidence"`
}

// Category multipliers: fraction of annual revenue saved, and implementation
// cost as a fraction of annual revenue. Conservative industry averages for
// small manufacturers.
type impactRates struct {
	savingsPct  float64
	implCostPct float64
}

var categoryRates = map[string]impactRates{
	"quality":    {savingsPct: 0.05, implCostPct: 0.15},
	"automation": {savingsPct: 0.08, implCostPct: 0.25},
	"inventory":  {savingsPct: 0.03, implCostPct: 0.10},
	"process":    {savingsPct: 0.06, implCostPct: 0.20},
}

// EstimateImpact projects savings and ROI for a recommendation from the
// snapshot's annualized revenue. Unknown categories use the automation rates.
func EstimateImpact(rec Recommendation, snap *extract.Snapshot) Impact {
	rates, ok := categoryRates[rec.Category]
	if !ok {
		rates = categoryRates["automation"]
	}

	annualRevenue := snap.MonthlyRevenue() * 12
	savings := annualRevenue * rates.savingsPct
	implCost := annualRevenue * rates.implCostPct

	roi := 0.0
	if implCost > 0 {
		roi = savings / implCost * 100
	}
	payback := 24
	if savings > 0 {
		payback = int(implCost / savings * 12)
	}

	return Impact{
		AnnualSavings:      savings,
		ImplementationCost: implCost,
		RoiPct:             roi,
		PaybackMonths:      payback,
		RevenueImpact:      savings * 0.3,
		CostBreakdown: map[string]float64{
			"software_license":        implCost * 0.4,
			"implementation_services": implCost * 0.4,
			"training":                implCost * 0.2,
		},
		Assumptions: []string{
			"Savings rate from industry averages for similar implementations",
			"Implementation cost scaled to annual revenue",
		},
		Confidence: 0.6,
	}
}
