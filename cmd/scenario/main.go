package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"mfgtwin/pkg/core/document"
	"mfgtwin/pkg/core/extract"
	"mfgtwin/pkg/core/levers"
	"mfgtwin/pkg/core/scenario"
)

func main() {
	godotenv.Load()

	var (
		filePath   = flag.String("file", "", "statement file (csv, markdown or html)")
		format     = flag.String("format", "", "input format, inferred from the extension when empty")
		constFile  = flag.String("constants", "config/levers.hjson", "lever calibration file")
		pricePct   = flag.Float64("price", 1.0, "price multiplier [0.70, 1.30]")
		marketing  = flag.Float64("marketing", -1, "monthly marketing spend (baseline when negative)")
		automation = flag.Float64("automation", 0.10, "automation level [0.00, 0.80]")
		efficiency = flag.Float64("efficiency", 1.0, "efficiency multiplier [1.00, 1.50]")
		turns      = flag.Float64("turns", 6.0, "inventory turns per year [6.0, 12.0]")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Println("Usage: scenario -file statement.csv [-price 1.05] [-marketing 6000] ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	constants, err := levers.LoadConstants(*constFile)
	if err != nil {
		fmt.Printf("[CONFIG] Using default calibration: %v\n", err)
		constants = levers.DefaultConstants()
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		fatal("read statement: %v", err)
	}
	fmtName := *format
	if fmtName == "" {
		fmtName = strings.TrimPrefix(filepath.Ext(*filePath), ".")
	}

	lines, err := document.Parse(fmtName, data)
	if err != nil {
		fatal("parse document: %v", err)
	}
	snap, err := extract.Extract(lines)
	if err != nil {
		fatal("extract statement: %v", err)
	}

	fmt.Printf("[EXTRACT] revenue=%.2f cogs=%.2f opex=%.2f net=%.2f (%s, %d months, confidence %.2f)\n",
		snap.Revenue, snap.COGS, snap.Opex, snap.NetIncome, snap.Currency, snap.PeriodMonths, snap.Confidence)
	for _, warn := range snap.Warnings {
		fmt.Printf("[EXTRACT] warning: %s (%s) %s\n", warn.Kind, warn.Field, warn.Line)
	}

	setting := levers.Setting{
		PricePct:           *pricePct,
		MarketingSpend:     *marketing,
		AutomationPct:      *automation,
		EfficiencyPct:      *efficiency,
		InventoryTurnsYear: *turns,
	}
	if *marketing < 0 {
		setting.MarketingSpend = constants.BaselineMonthlyMarketing
	}

	model := scenario.NewModel(constants)
	result, err := model.Simulate(snap, setting)
	if err != nil {
		fatal("simulate: %v", err)
	}

	fmt.Println("\nMonth  Original      Adjusted      Lower         Upper")
	for _, p := range result.Forecast {
		fmt.Printf("%5d  %12.2f  %12.2f  %12.2f  %12.2f\n",
			p.MonthIndex, p.OriginalProfit, p.AdjustedProfit, p.LowerBound, p.UpperBound)
	}

	fmt.Printf("\nTotal investment: %.2f\n", result.TotalInvestment)
	for lever, cost := range result.LeverCostBreakdown {
		if cost > 0 {
			fmt.Printf("  %-12s %.2f\n", lever, cost)
		}
	}
	if result.RoiDefined {
		fmt.Printf("ROI over 12 months: %.1f%%\n", result.RoiPct)
	} else {
		fmt.Println("ROI: undefined (no investment)")
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Printf("[FATAL] "+format+"\n", args...)
	os.Exit(1)
}
