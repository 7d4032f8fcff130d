// Package recommendation exposes pain-point analysis plus ranked automation
// recommendations.
package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"mfgtwin/pkg/core/extract"
	"mfgtwin/pkg/core/questionnaire"
	"mfgtwin/pkg/core/recommend"
)

// PainAnalyzer extracts pain points from a free-text answer.
// *questionnaire.Analyzer satisfies it.
type PainAnalyzer interface {
	AnalyzePainPoints(ctx context.Context, text string) ([]questionnaire.PainPoint, error)
}

var (
	service  *recommend.Service
	analyzer PainAnalyzer
)

// InitHandler wires the service and an optional Gemini analyzer; a nil
// analyzer means keyword analysis only.
func InitHandler(svc *recommend.Service, a PainAnalyzer) {
	service = svc
	analyzer = a
}

type RecommendRequest struct {
	Snapshot *extract.Snapshot `json:"snapshot"`
	// Free-text answers to analyze, e.g. the PAIN_POINTS questionnaire answer.
	PainText string `json:"pain_text,omitempty"`
	// Pre-analyzed pain points; merged with the ones derived from PainText.
	PainPoints []questionnaire.PainPoint `json:"pain_points,omitempty"`
}

type RecommendResponse struct {
	PainPoints      []questionnaire.PainPoint `json:"pain_points"`
	Recommendations []recommend.Ranked        `json:"recommendations"`
}

// HandleRecommend analyzes pain points and returns ranked recommendations.
func HandleRecommend(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Snapshot == nil {
		http.Error(w, "snapshot is required", http.StatusBadRequest)
		return
	}

	pains := req.PainPoints
	if req.PainText != "" {
		pains = append(pains, analyzePainText(r.Context(), req.PainText)...)
	}
	questionnaire.SortBySeverity(pains)

	ranked := service.Generate(r.Context(), req.Snapshot, pains)
	fmt.Printf("[RECOMMEND] %d pain points -> %d recommendations\n", len(pains), len(ranked))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RecommendResponse{
		PainPoints:      pains,
		Recommendations: ranked,
	})
}

// analyzePainText prefers the Gemini analyzer and degrades to keyword
// analysis when none is configured or the call fails.
func analyzePainText(ctx context.Context, text string) []questionnaire.PainPoint {
	if analyzer != nil {
		if pains, err := analyzer.AnalyzePainPoints(ctx, text); err == nil {
			return pains
		}
	}
	return questionnaire.AnalyzePainPoints(text)
}
