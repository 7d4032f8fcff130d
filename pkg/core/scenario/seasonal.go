package scenario

// seasonalCurve is the fixed monthly demand profile for a typical small
// manufacturer: a soft Q1, a spring build, the summer shutdown dip around
// July/August, and the autumn order rush. The 12 multipliers sum to exactly
// 12.0 so a flat baseline distributes to the same annual total.
var seasonalCurve = [12]float64{
	0.92, // Jan
	0.95, // Feb
	1.02, // Mar
	1.05, // Apr
	1.08, // May
	1.02, // Jun
	0.90, // Jul
	0.88, // Aug
	1.06, // Sep
	1.10, // Oct
	1.08, // Nov
	0.94, // Dec
}

// SeasonalMultiplier returns the demand multiplier for a 1-based month index.
func SeasonalMultiplier(monthIndex int) float64 {
	return seasonalCurve[monthIndex-1]
}
