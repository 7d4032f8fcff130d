package levers

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
)

// Constants holds every tunable of the elasticity model. Nothing in the lever
// math reads a bare literal: calibration changes happen here (or in an hjson
// override file) without touching the simulation loop.
type Constants struct {
	// Price: demand change per unit price change. -1.5 means +1% price
	// costs 1.5% of unit demand.
	PriceElasticity float64 `json:"price_elasticity"`

	// Marketing: revenue gain = MarketingReturnCoefficient * (sqrt(spend) -
	// sqrt(BaselineMonthlyMarketing)).
	MarketingReturnCoefficient float64 `json:"marketing_return_coefficient"`
	BaselineMonthlyMarketing   float64 `json:"baseline_monthly_marketing"`

	// Automation: each 10-point step above the baseline automation level
	// cuts the labor component of COGS by AutomationLaborSavingsRate.
	BaselineAutomationPct      float64 `json:"baseline_automation_pct"`
	LaborShareOfCOGS           float64 `json:"labor_share_of_cogs"`
	AutomationLaborSavingsRate float64 `json:"automation_labor_savings_rate"`
	AutomationStepCost         float64 `json:"automation_step_cost"`

	// Efficiency: each 10-point step above 100% cuts COGS and lifts revenue.
	EfficiencyCOGSSavingsRate float64 `json:"efficiency_cogs_savings_rate"`
	EfficiencyRevenueGainRate float64 `json:"efficiency_revenue_gain_rate"`
	EfficiencyStepCost        float64 `json:"efficiency_step_cost"`

	// Inventory: per extra yearly turn above the baseline.
	BaselineInventoryTurns          float64 `json:"baseline_inventory_turns"`
	InventoryCarryingSavingsPerTurn float64 `json:"inventory_carrying_savings_per_turn"`
	InventoryWasteSavingsPerTurn    float64 `json:"inventory_waste_savings_per_turn"`
	InventoryCostPerTwoTurns        float64 `json:"inventory_cost_per_two_turns"`
}

// DefaultConstants returns the calibration shipped with the product.
func DefaultConstants() Constants {
	return Constants{
		PriceElasticity: -1.5,

		MarketingReturnCoefficient: 120.0,
		BaselineMonthlyMarketing:   3000.0,

		BaselineAutomationPct:      0.10,
		LaborShareOfCOGS:           0.40,
		AutomationLaborSavingsRate: 0.08,
		AutomationStepCost:         2000.0,

		EfficiencyCOGSSavingsRate: 0.06,
		EfficiencyRevenueGainRate: 0.05,
		EfficiencyStepCost:        1500.0,

		BaselineInventoryTurns:          6.0,
		InventoryCarryingSavingsPerTurn: 500.0,
		InventoryWasteSavingsPerTurn:    300.0,
		InventoryCostPerTwoTurns:        800.0,
	}
}

// LoadConstants reads an hjson calibration file over the defaults. Hjson is
// used so operators can keep comments next to the numbers they tune.
func LoadConstants(path string) (Constants, error) {
	c := DefaultConstants()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("levers: read constants file: %w", err)
	}
	if err := hjson.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("levers: parse constants file: %w", err)
	}
	return c, nil
}
