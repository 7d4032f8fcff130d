package levers

import (
	"errors"
	"math"
	"testing"

	"mfgtwin/pkg/core/extract"
)

func testBaseline() *extract.Snapshot {
	return &extract.Snapshot{
		Revenue:      1200000,
		COGS:         700000,
		Opex:         300000,
		NetIncome:    200000,
		Currency:     "USD",
		PeriodMonths: 12,
		Confidence:   1.0,
	}
}

func TestBaselineSettingIsNoOp(t *testing.T) {
	c := DefaultConstants()
	snap := testBaseline()

	impacts := Compute(snap, Baseline(c), c)
	for name, imp := range impacts {
		if math.Abs(imp.RevenueDelta) > 1e-9 || math.Abs(imp.CostDelta) > 1e-9 {
			t.Errorf("%s: baseline setting produced deltas %+v", name, imp)
		}
	}
	// Marketing investment is the spend itself, so it is nonzero even at
	// baseline; the other levers carry no investment at baseline.
	if impacts[LeverMarketing].Investment != c.BaselineMonthlyMarketing {
		t.Errorf("marketing investment = %v, want baseline spend %v",
			impacts[LeverMarketing].Investment, c.BaselineMonthlyMarketing)
	}
	for _, name := range []string{LeverPrice, LeverAutomation, LeverEfficiency, LeverInventory} {
		if impacts[name].Investment != 0 {
			t.Errorf("%s investment = %v, want 0 at baseline", name, impacts[name].Investment)
		}
	}
}

func TestPriceElasticity(t *testing.T) {
	c := DefaultConstants()
	snap := testBaseline() // monthly revenue 100000

	// +10% price with elasticity -1.5: demand factor 0.85, revenue factor
	// 1.10*0.85 = 0.935, delta = -6500 on 100000.
	imp := Price(snap, 1.10, c)
	if math.Abs(imp.RevenueDelta-(-6500)) > 1e-6 {
		t.Errorf("price +10%%: revenue delta = %v, want -6500", imp.RevenueDelta)
	}

	// -10% price: demand factor 1.15, revenue factor 0.90*1.15 = 1.035.
	imp = Price(snap, 0.90, c)
	if math.Abs(imp.RevenueDelta-3500) > 1e-6 {
		t.Errorf("price -10%%: revenue delta = %v, want 3500", imp.RevenueDelta)
	}
}

func TestMarketingDiminishingReturns(t *testing.T) {
	c := DefaultConstants()
	snap := testBaseline()

	double := Marketing(snap, 2*c.BaselineMonthlyMarketing, c)
	quadruple := Marketing(snap, 4*c.BaselineMonthlyMarketing, c) // still <= 3x cap? no: range-checked elsewhere

	if double.RevenueDelta <= 0 {
		t.Fatalf("doubling spend should gain revenue, got %v", double.RevenueDelta)
	}
	// sqrt growth: quadrupling the spend doubles sqrt(spend), so the gain per
	// extra dollar shrinks.
	gainPerDollarLow := double.RevenueDelta / c.BaselineMonthlyMarketing
	gainPerDollarHigh := quadruple.RevenueDelta / (3 * c.BaselineMonthlyMarketing)
	if gainPerDollarHigh >= gainPerDollarLow {
		t.Errorf("marketing returns are not diminishing: %v >= %v", gainPerDollarHigh, gainPerDollarLow)
	}
	if double.Investment != 2*c.BaselineMonthlyMarketing {
		t.Errorf("marketing investment = %v, want the spend itself", double.Investment)
	}
}

func TestAutomationMonotonicSavings(t *testing.T) {
	c := DefaultConstants()
	snap := testBaseline()

	prev := 0.0
	for pct := 0.10; pct <= 0.80+1e-9; pct += 0.05 {
		imp := Automation(snap, pct, c)
		savings := -imp.CostDelta
		if pct > 0.10+1e-9 && savings <= prev {
			t.Errorf("automation %.2f: savings %v not strictly above %v", pct, savings, prev)
		}
		prev = savings
	}

	// One full step: 10% of COGS labor share at 8%.
	imp := Automation(snap, 0.20, c)
	laborCost := snap.MonthlyCOGS() * c.LaborShareOfCOGS
	want := laborCost * c.AutomationLaborSavingsRate
	if math.Abs(-imp.CostDelta-want) > 1e-6 {
		t.Errorf("automation one step: savings = %v, want %v", -imp.CostDelta, want)
	}
	if math.Abs(imp.Investment-c.AutomationStepCost) > 1e-6 {
		t.Errorf("automation one step: investment = %v, want %v", imp.Investment, c.AutomationStepCost)
	}
}

func TestEfficiencyImpact(t *testing.T) {
	c := DefaultConstants()
	snap := testBaseline()

	imp := Efficiency(snap, 1.20, c) // two steps
	wantRev := snap.MonthlyRevenue() * c.EfficiencyRevenueGainRate * 2
	wantCost := -snap.MonthlyCOGS() * c.EfficiencyCOGSSavingsRate * 2
	if math.Abs(imp.RevenueDelta-wantRev) > 1e-6 {
		t.Errorf("efficiency revenue delta = %v, want %v", imp.RevenueDelta, wantRev)
	}
	if math.Abs(imp.CostDelta-wantCost) > 1e-6 {
		t.Errorf("efficiency cost delta = %v, want %v", imp.CostDelta, wantCost)
	}
	if math.Abs(imp.Investment-2*c.EfficiencyStepCost) > 1e-6 {
		t.Errorf("efficiency investment = %v, want %v", imp.Investment, 2*c.EfficiencyStepCost)
	}
}

func TestInventoryImpact(t *testing.T) {
	c := DefaultConstants()
	snap := testBaseline()

	imp := Inventory(snap, 10.0, c) // four extra turns
	wantSavings := (c.InventoryCarryingSavingsPerTurn + c.InventoryWasteSavingsPerTurn) * 4
	if math.Abs(-imp.CostDelta-wantSavings) > 1e-6 {
		t.Errorf("inventory savings = %v, want %v", -imp.CostDelta, wantSavings)
	}
	if math.Abs(imp.Investment-c.InventoryCostPerTwoTurns*2) > 1e-6 {
		t.Errorf("inventory investment = %v, want %v", imp.Investment, c.InventoryCostPerTwoTurns*2)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	c := DefaultConstants()

	good := Baseline(c)
	if err := good.Validate(c); err != nil {
		t.Fatalf("baseline setting should validate, got %v", err)
	}

	bad := Setting{
		PricePct:           1.5,   // above 1.30
		MarketingSpend:     -10,   // negative
		AutomationPct:      0.95,  // above 0.80
		EfficiencyPct:      0.90,  // below 1.00
		InventoryTurnsYear: 13.0,  // above 12.0
	}
	err := bad.Validate(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if len(verr.Fields) != 5 {
		t.Errorf("offending fields = %d, want 5: %v", len(verr.Fields), verr.Fields)
	}
}

func TestLoadConstantsMissingFileKeepsDefaults(t *testing.T) {
	c, err := LoadConstants("does-not-exist.hjson")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if c.PriceElasticity != DefaultConstants().PriceElasticity {
		t.Errorf("defaults not preserved on load failure")
	}
}
