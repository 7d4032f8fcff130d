package questionnaire

import (
	"fmt"
	"sort"
	"strings"
)

// PainPoint is one categorized operational problem extracted from a free-text
// answer.
type PainPoint struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"` // low, medium, high, critical
	Frequency   string   `json:"frequency"`
	ImpactAreas []string `json:"impact_areas"`
	Confidence  float64  `json:"confidence"`
}

// Pain point categories.
const (
	CategoryQualityControl       = "quality_control"
	CategoryProductionEfficiency = "production_efficiency"
	CategoryInventoryManagement  = "inventory_management"
	CategoryMaintenance          = "maintenance"
	CategoryLaborProductivity    = "labor_productivity"
	CategoryCostControl          = "cost_control"
	CategoryAutomation           = "automation"
	CategorySupplyChain          = "supply_chain"
)

var categoryKeywords = map[string][]string{
	CategoryQualityControl:       {"defects", "inspection", "testing", "standards", "compliance"},
	CategoryProductionEfficiency: {"throughput", "cycle time", "bottlenecks", "scheduling"},
	CategoryInventoryManagement:  {"stock", "materials", "storage", "tracking", "waste"},
	CategoryMaintenance:          {"downtime", "repairs", "preventive", "equipment"},
	CategoryLaborProductivity:    {"training", "skills", "workload"},
	CategoryCostControl:          {"overhead", "expenses", "budgets", "margins"},
	CategoryAutomation:           {"manual", "repetitive", "robotics", "digitization"},
	CategorySupplyChain:          {"suppliers", "delivery", "sourcing", "logistics"},
}

// severityLevels is checked in order; the first level with a matching
// indicator wins.
var severityLevels = []struct {
	name       string
	indicators []string
}{
	{"critical", []string{"shutdown", "stopped", "failure", "crisis", "emergency"}},
	{"high", []string{"significant", "major", "serious", "urgent", "critical"}},
	{"medium", []string{"moderate", "noticeable", "concerning", "regular"}},
	{"low", []string{"minor", "occasional", "slight", "small"}},
}

// categoryOrder fixes the iteration order so repeated runs over the same
// text yield identical results.
var categoryOrder = []string{
	CategoryQualityControl,
	CategoryProductionEfficiency,
	CategoryInventoryManagement,
	CategoryMaintenance,
	CategoryLaborProductivity,
	CategoryCostControl,
	CategoryAutomation,
	CategorySupplyChain,
}

// AnalyzePainPoints categorizes a free-text answer by keyword matching. At
// most one pain point is reported per category; severity comes from the
// strongest indicator word found anywhere in the text.
func AnalyzePainPoints(text string) []PainPoint {
	lower := strings.ToLower(text)
	severity := detectSeverity(lower)

	frequency := "occasional"
	if severity == "high" || severity == "critical" {
		frequency = "frequent"
	}

	var points []PainPoint
	for _, category := range categoryOrder {
		keyword, ok := firstKeyword(lower, categoryKeywords[category])
		if !ok {
			continue
		}
		points = append(points, PainPoint{
			Category:    category,
			Description: describeMatch(text, keyword),
			Severity:    severity,
			Frequency:   frequency,
			ImpactAreas: []string{strings.ReplaceAll(category, "_", " ")},
			Confidence:  0.6,
		})
	}
	return points
}

func detectSeverity(lower string) string {
	for _, level := range severityLevels {
		for _, indicator := range level.indicators {
			if strings.Contains(lower, indicator) {
				return level.name
			}
		}
	}
	return "medium"
}

func firstKeyword(lower string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

// describeMatch returns the first sentence mentioning the keyword, or a
// generic description when sentence splitting finds nothing.
func describeMatch(text, keyword string) string {
	for _, sentence := range strings.Split(text, ".") {
		if strings.Contains(strings.ToLower(sentence), keyword) {
			return strings.TrimSpace(sentence)
		}
	}
	return fmt.Sprintf("Issues related to %s", keyword)
}

// SortBySeverity orders pain points critical-first, stable within a level.
func SortBySeverity(points []PainPoint) {
	rank := map[string]int{"critical": 0, "high": 1, "medium": 2, "low": 3}
	sort.SliceStable(points, func(i, j int) bool {
		return rank[points[i].Severity] < rank[points[j].Severity]
	})
}
