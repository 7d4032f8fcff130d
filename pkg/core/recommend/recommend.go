// Package recommend turns a financial snapshot and the questionnaire's pain
// points into ranked automation recommendations. An optional LLM provider
// drafts them; a deterministic rule table stands in when no provider is
// configured or the model output cannot be salvaged.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"mfgtwin/pkg/core/extract"
	"mfgtwin/pkg/core/questionnaire"
)

const maxRecommendations = 3

// Recommendation is one proposed improvement.
type Recommendation struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         string   `json:"category"` // quality, inventory, automation, process
	Priority         string   `json:"priority"`
	Effort           string   `json:"implementation_effort"`
	TechnologyType   string   `json:"technology_type"`
	TargetPainPoints []string `json:"target_pain_points"`
	Timeline         string   `json:"estimated_timeline"`
	Confidence       float64  `json:"confidence"`
}

// Ranked pairs a recommendation with its estimated financial impact.
type Ranked struct {
	Recommendation Recommendation `json:"recommendation"`
	Impact         Impact         `json:"financial_impact"`
}

// Service generates and ranks recommendations.
type Service struct {
	provider Provider
}

// NewService builds a service. A nil provider means rule-based only.
func NewService(p Provider) *Service {
	return &Service{provider: p}
}

// Generate produces up to three recommendations ranked by estimated ROI.
// Model failures degrade to the rule table, never to an error; the only way
// to get an empty result is a snapshot with no matching pain points.
func (s *Service) Generate(ctx context.Context, snap *extract.Snapshot, pains []questionnaire.PainPoint) []Ranked {
	recs := s.draft(ctx, snap, pains)
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}

	ranked := make([]Ranked, 0, len(recs))
	for _, rec := range recs {
		ranked = append(ranked, Ranked{
			Recommendation: rec,
			Impact:         EstimateImpact(rec, snap),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Impact.RoiPct > ranked[j].Impact.RoiPct
	})
	return ranked
}

func (s *Service) draft(ctx context.Context, snap *extract.Snapshot, pains []questionnaire.PainPoint) []Recommendation {
	if s.provider == nil {
		return ruleBased(pains)
	}

	raw, err := s.provider.GenerateJSON(ctx, recommendSystemPrompt, recommendPrompt(snap, pains))
	if err != nil {
		fmt.Printf("[Recommend] provider failed, using rule-based fallback: %v\n", err)
		return ruleBased(pains)
	}

	recs, err := decodeRecommendations(raw)
	if err != nil || len(recs) == 0 {
		fmt.Printf("[Recommend] undecodable model output, using rule-based fallback: %v\n", err)
		return ruleBased(pains)
	}
	return recs
}

// decodeRecommendations repairs common LLM JSON defects before decoding.
func decodeRecommendations(raw string) ([]Recommendation, error) {
	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		repaired = raw
	}

	var payload struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
		return nil, fmt.Errorf("recommend: decode model output: %w", err)
	}
	return payload.Recommendations, nil
}

const recommendSystemPrompt = "You are an expert manufacturing automation consultant specializing in small business digital transformation. Respond with JSON only."

func recommendPrompt(snap *extract.Snapshot, pains []questionnaire.PainPoint) string {
	painStr := "No specific pain points identified"
	if len(pains) > 0 {
		painStr = ""
		for _, p := range pains {
			painStr += fmt.Sprintf("- %s (category: %s, severity: %s)\n", p.Description, p.Category, p.Severity)
		}
	}

	return fmt.Sprintf(`FINANCIAL DATA (%s, %d-month period):
- Revenue: %.2f
- Cost of goods sold: %.2f
- Operating expenses: %.2f
- Net income: %.2f

IDENTIFIED PAIN POINTS:
%s
Generate up to 3 specific, actionable automation recommendations for this manufacturer. Respond in JSON:
{"recommendations": [{"title": "...", "description": "...", "category": "quality|inventory|automation|process", "priority": "low|medium|high|critical", "implementation_effort": "low|medium|high", "technology_type": "software|hardware|training|process", "target_pain_points": ["..."], "estimated_timeline": "...", "confidence": 0.0}]}`,
		snap.Currency, snap.PeriodMonths, snap.Revenue, snap.COGS, snap.Opex, snap.NetIncome, painStr)
}

// ruleBased maps pain point categories to template recommendations, the
// offline path the service always has available.
func ruleBased(pains []questionnaire.PainPoint) []Recommendation {
	has := map[string]bool{}
	for _, p := range pains {
		has[p.Category] = true
	}

	var recs []Recommendation
	if has[questionnaire.CategoryQualityControl] {
		recs = append(recs, Recommendation{
			Title:            "Digital Quality Management System",
			Description:      "Implement cloud-based quality management software to automate inspections and track defects in real-time.",
			Category:         "quality",
			Priority:         "high",
			Effort:           "medium",
			TechnologyType:   "software",
			TargetPainPoints: []string{questionnaire.CategoryQualityControl},
			Timeline:         "3-6 months",
			Confidence:       0.7,
		})
	}
	if has[questionnaire.CategoryInventoryManagement] {
		recs = append(recs, Recommendation{
			Title:            "Inventory Optimization Software",
			Description:      "Deploy automated inventory tracking with barcode scanning and real-time stock level monitoring.",
			Category:         "inventory",
			Priority:         "high",
			Effort:           "medium",
			TechnologyType:   "software",
			TargetPainPoints: []string{questionnaire.CategoryInventoryManagement},
			Timeline:         "2-4 months",
			Confidence:       0.7,
		})
	}
	if has[questionnaire.CategoryProductionEfficiency] {
		recs = append(recs, Recommendation{
			Title:            "Production Scheduling Software",
			Description:      "Implement digital production scheduling to optimize workflow and reduce bottlenecks.",
			Category:         "automation",
			Priority:         "medium",
			Effort:           "medium",
			TechnologyType:   "software",
			TargetPainPoints: []string{questionnaire.CategoryProductionEfficiency},
			Timeline:         "4-8 months",
			Confidence:       0.6,
		})
	}
	if has[questionnaire.CategoryAutomation] || has[questionnaire.CategoryLaborProductivity] {
		recs = append(recs, Recommendation{
			Title:            "Workflow Automation for Manual Processes",
			Description:      "Digitize repetitive manual data entry and paperwork with workflow automation tools.",
			Category:         "process",
			Priority:         "medium",
			Effort:           "low",
			TechnologyType:   "software",
			TargetPainPoints: []string{questionnaire.CategoryAutomation},
			Timeline:         "1-3 months",
			Confidence:       0.65,
		})
	}
	return recs
}
