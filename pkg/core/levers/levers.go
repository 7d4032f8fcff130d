// Package levers implements the five operational lever elasticity functions.
// Each function is pure: baseline snapshot + setting in, one month's revenue
// delta, cost delta and investment out. Deltas are additive across levers by
// design; any interaction between levers exists only in how the aggregator
// combines the results.
package levers

import (
	"fmt"
	"math"
	"strings"

	"mfgtwin/pkg/core/extract"
)

// Lever names, used as breakdown keys and in validation errors.
const (
	LeverPrice      = "price"
	LeverMarketing  = "marketing"
	LeverAutomation = "automation"
	LeverEfficiency = "efficiency"
	LeverInventory  = "inventory"
)

// Setting is one scenario's lever configuration. Out-of-range values are a
// validation error, never silently clamped, so a stored scenario always
// replays to the same result.
type Setting struct {
	PricePct           float64 `json:"price_pct"`            // 1.0 = baseline, [0.70, 1.30]
	MarketingSpend     float64 `json:"marketing_spend"`      // monthly, [0, 3x baseline]
	AutomationPct      float64 `json:"automation_pct"`       // [0.0, 0.80]
	EfficiencyPct      float64 `json:"efficiency_pct"`       // 1.0 = baseline, [1.00, 1.50]
	InventoryTurnsYear float64 `json:"inventory_turns_year"` // [6.0, 12.0]
}

// Baseline returns the no-op setting for the given calibration: simulating it
// leaves every monthly profit unchanged.
func Baseline(c Constants) Setting {
	return Setting{
		PricePct:           1.0,
		MarketingSpend:     c.BaselineMonthlyMarketing,
		AutomationPct:      c.BaselineAutomationPct,
		EfficiencyPct:      1.0,
		InventoryTurnsYear: c.BaselineInventoryTurns,
	}
}

// ValidationError lists every field outside its declared range.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "levers: setting out of range: " + strings.Join(e.Fields, ", ")
}

// Validate checks every field against its declared range. The whole setting
// is rejected before any computation so failures are atomic.
func (s Setting) Validate(c Constants) error {
	var bad []string
	if s.PricePct < 0.70 || s.PricePct > 1.30 {
		bad = append(bad, fmt.Sprintf("%s (%.2f not in [0.70, 1.30])", LeverPrice, s.PricePct))
	}
	maxMarketing := 3 * c.BaselineMonthlyMarketing
	if s.MarketingSpend < 0 || s.MarketingSpend > maxMarketing {
		bad = append(bad, fmt.Sprintf("%s (%.2f not in [0, %.2f])", LeverMarketing, s.MarketingSpend, maxMarketing))
	}
	if s.AutomationPct < 0 || s.AutomationPct > 0.80 {
		bad = append(bad, fmt.Sprintf("%s (%.2f not in [0.00, 0.80])", LeverAutomation, s.AutomationPct))
	}
	if s.EfficiencyPct < 1.00 || s.EfficiencyPct > 1.50 {
		bad = append(bad, fmt.Sprintf("%s (%.2f not in [1.00, 1.50])", LeverEfficiency, s.EfficiencyPct))
	}
	if s.InventoryTurnsYear < 6.0 || s.InventoryTurnsYear > 12.0 {
		bad = append(bad, fmt.Sprintf("%s (%.2f not in [6.0, 12.0])", LeverInventory, s.InventoryTurnsYear))
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// Impact is one lever's monthly effect on the baseline. RevenueDelta is
// seasonal-scaled by the simulation; CostDelta is not (a cost reduction is
// negative). Investment is the lever's recurring monthly implementation cost.
type Impact struct {
	RevenueDelta float64 `json:"revenue_delta"`
	CostDelta    float64 `json:"cost_delta"`
	Investment   float64 `json:"investment"`
}

// Price scales demand against price with a constant elasticity: at -1.5, a
// +1% price change loses 1.5% of unit demand, so revenue moves to
// price_pct * (1 + elasticity*(price_pct-1)) of baseline.
func Price(baseline *extract.Snapshot, pricePct float64, c Constants) Impact {
	demandFactor := 1 + c.PriceElasticity*(pricePct-1)
	adjusted := baseline.MonthlyRevenue() * pricePct * demandFactor
	return Impact{RevenueDelta: adjusted - baseline.MonthlyRevenue()}
}

// Marketing models diminishing returns: revenue gain grows with the square
// root of spend, anchored at the baseline spend. The spend itself is the
// investment.
func Marketing(_ *extract.Snapshot, spend float64, c Constants) Impact {
	gain := c.MarketingReturnCoefficient * (math.Sqrt(spend) - math.Sqrt(c.BaselineMonthlyMarketing))
	return Impact{RevenueDelta: gain, Investment: spend}
}

// Automation cuts the labor component of COGS linearly: each full 10-point
// step above the baseline level removes AutomationLaborSavingsRate of the
// labor share, and costs AutomationStepCost per month.
func Automation(baseline *extract.Snapshot, automationPct float64, c Constants) Impact {
	steps := (automationPct - c.BaselineAutomationPct) / 0.10
	if steps <= 0 {
		return Impact{}
	}
	laborCost := baseline.MonthlyCOGS() * c.LaborShareOfCOGS
	savings := laborCost * c.AutomationLaborSavingsRate * steps
	return Impact{
		CostDelta:  -savings,
		Investment: c.AutomationStepCost * steps,
	}
}

// Efficiency improves throughput: each 10-point step above 100% removes
// EfficiencyCOGSSavingsRate of COGS and adds EfficiencyRevenueGainRate of
// revenue, both linear in the number of steps.
func Efficiency(baseline *extract.Snapshot, efficiencyPct float64, c Constants) Impact {
	steps := (efficiencyPct - 1.0) / 0.10
	if steps <= 0 {
		return Impact{}
	}
	return Impact{
		RevenueDelta: baseline.MonthlyRevenue() * c.EfficiencyRevenueGainRate * steps,
		CostDelta:    -baseline.MonthlyCOGS() * c.EfficiencyCOGSSavingsRate * steps,
		Investment:   c.EfficiencyStepCost * steps,
	}
}

// Inventory converts faster stock turns into carrying and waste savings,
// priced per two extra turns per year.
func Inventory(_ *extract.Snapshot, turnsPerYear float64, c Constants) Impact {
	extra := turnsPerYear - c.BaselineInventoryTurns
	if extra <= 0 {
		return Impact{}
	}
	savings := (c.InventoryCarryingSavingsPerTurn + c.InventoryWasteSavingsPerTurn) * extra
	return Impact{
		CostDelta:  -savings,
		Investment: c.InventoryCostPerTwoTurns * (extra / 2.0),
	}
}

// Compute evaluates all five levers against a baseline. The setting must be
// validated first; Compute itself assumes in-range input.
func Compute(baseline *extract.Snapshot, s Setting, c Constants) map[string]Impact {
	return map[string]Impact{
		LeverPrice:      Price(baseline, s.PricePct, c),
		LeverMarketing:  Marketing(baseline, s.MarketingSpend, c),
		LeverAutomation: Automation(baseline, s.AutomationPct, c),
		LeverEfficiency: Efficiency(baseline, s.EfficiencyPct, c),
		LeverInventory:  Inventory(baseline, s.InventoryTurnsYear, c),
	}
}
