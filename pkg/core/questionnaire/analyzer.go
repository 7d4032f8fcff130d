package questionnaire

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Analyzer enriches keyword analysis with a Gemini model. When the client is
// unavailable or a call fails, callers fall back to AnalyzePainPoints.
type Analyzer struct {
	client    *genai.Client
	modelName string
}

// NewAnalyzer builds a Gemini-backed analyzer from GEMINI_API_KEY.
func NewAnalyzer(ctx context.Context) (*Analyzer, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Analyzer{
		client:    client,
		modelName: "gemini-2.0-flash",
	}, nil
}

// Close releases the underlying client.
func (a *Analyzer) Close() error {
	return a.client.Close()
}

// AnalyzePainPoints asks the model to extract categorized pain points from a
// free-text answer. On any failure it degrades to the keyword analyzer so the
// caller always gets a result.
func (a *Analyzer) AnalyzePainPoints(ctx context.Context, text string) ([]PainPoint, error) {
	model := a.client.GenerativeModel(a.modelName)
	model.SetTemperature(0.3)

	resp, err := model.GenerateContent(ctx, genai.Text(painPointPrompt(text)))
	if err != nil {
		fmt.Printf("[Questionnaire] Gemini analysis failed, using keyword fallback: %v\n", err)
		return AnalyzePainPoints(text), nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return AnalyzePainPoints(text), nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	points, err := parsePainPointResponse(sb.String())
	if err != nil {
		fmt.Printf("[Questionnaire] unparseable model output, using keyword fallback: %v\n", err)
		return AnalyzePainPoints(text), nil
	}
	return points, nil
}

func painPointPrompt(text string) string {
	return fmt.Sprintf(`You are an expert manufacturing consultant analyzing operational challenges for small manufacturing businesses.

RESPONSE TO ANALYZE:
%q

Extract and categorize ALL pain points mentioned. Categories: quality_control, production_efficiency, inventory_management, maintenance, labor_productivity, cost_control, automation, supply_chain.

Respond with JSON only:
{"pain_points": [{"category": "...", "description": "...", "severity": "low|medium|high|critical", "frequency": "rare|occasional|frequent|constant", "impact_areas": ["..."], "confidence": 0.0}]}`, text)
}

func parsePainPointResponse(raw string) ([]PainPoint, error) {
	// Models wrap JSON in code fences more often than not.
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var payload struct {
		PainPoints []PainPoint `json:"pain_points"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("questionnaire: decode pain points: %w", err)
	}
	return payload.PainPoints, nil
}
