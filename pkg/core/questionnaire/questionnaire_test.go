package questionnaire

import "testing"

func TestFlowRouting(t *testing.T) {
	f := NewFlow()

	next, ok := f.Next(StartQuestionID, "Metal Parts")
	if !ok || next != "METAL_PROCESS" {
		t.Errorf("metal route = %q, ok=%v; want METAL_PROCESS", next, ok)
	}
	next, ok = f.Next(StartQuestionID, "Electronics")
	if !ok || next != "GENERAL_VOLUME" {
		t.Errorf("general route = %q, ok=%v; want GENERAL_VOLUME", next, ok)
	}

	// Both branches converge on EMPLOYEES.
	for _, from := range []string{"METAL_PROCESS", "VOLUME", "GENERAL_VOLUME"} {
		next, ok = f.Next(from, "anything")
		if !ok {
			t.Fatalf("no route out of %s", from)
		}
	}
	if !f.IsComplete("TIMELINE", "Immediate (< 1 month)") {
		t.Error("TIMELINE should end the flow")
	}
	if f.IsComplete("BUDGET", "< $10,000") {
		t.Error("BUDGET should not end the flow")
	}
}

func TestFlowWalkTerminates(t *testing.T) {
	f := NewFlow()
	id := StartQuestionID
	for steps := 0; id != ""; steps++ {
		if steps > 20 {
			t.Fatal("flow does not terminate")
		}
		q, ok := f.Question(id)
		if !ok {
			t.Fatalf("dangling question id %q", id)
		}
		answer := "some detail about our operations"
		if q.Type == TypeSelect {
			answer = q.Options[0]
		}
		if !f.ValidateAnswer(id, answer) {
			t.Fatalf("answer %q rejected for %s", answer, id)
		}
		id, ok = f.Next(id, answer)
		if !ok {
			t.Fatalf("no next for %s", q.ID)
		}
	}
}

func TestValidateAnswer(t *testing.T) {
	f := NewFlow()

	if f.ValidateAnswer(StartQuestionID, "Spaceships") {
		t.Error("unlisted select option should be rejected")
	}
	if f.ValidateAnswer("PAIN_POINTS", "   ") {
		t.Error("blank text answer should be rejected")
	}
	if !f.ValidateAnswer("PAIN_POINTS", "too much manual rework") {
		t.Error("non-blank text answer should pass")
	}
	if f.ValidateAnswer("NO_SUCH_QUESTION", "x") {
		t.Error("unknown question should be rejected")
	}
}

func TestAnalyzePainPointsCategorization(t *testing.T) {
	text := "We have significant defects from manual inspection, and equipment downtime is a major problem. Suppliers miss delivery dates."
	points := AnalyzePainPoints(text)

	got := map[string]PainPoint{}
	for _, p := range points {
		got[p.Category] = p
	}
	for _, want := range []string{CategoryQualityControl, CategoryMaintenance, CategoryAutomation, CategorySupplyChain} {
		if _, ok := got[want]; !ok {
			t.Errorf("missing category %s in %v", want, points)
		}
	}
	// "significant" and "major" push severity to high, frequency to frequent.
	if p := got[CategoryQualityControl]; p.Severity != "high" || p.Frequency != "frequent" {
		t.Errorf("quality_control severity/frequency = %s/%s, want high/frequent", p.Severity, p.Frequency)
	}
	if p := got[CategoryQualityControl]; p.Description == "" {
		t.Error("description should carry the matched sentence")
	}
}

func TestAnalyzePainPointsDefaults(t *testing.T) {
	points := AnalyzePainPoints("our stock levels drift sometimes")
	if len(points) != 1 || points[0].Category != CategoryInventoryManagement {
		t.Fatalf("got %v, want a single inventory_management point", points)
	}
	if points[0].Severity != "medium" {
		t.Errorf("severity = %s, want medium default", points[0].Severity)
	}
}

func TestAnalyzePainPointsDeterministicOrder(t *testing.T) {
	text := "manual processes, defects and downtime everywhere"
	a := AnalyzePainPoints(text)
	b := AnalyzePainPoints(text)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Category != b[i].Category {
			t.Errorf("order differs at %d: %s vs %s", i, a[i].Category, b[i].Category)
		}
	}
}

func TestParsePainPointResponse(t *testing.T) {
	raw := "```json\n{\"pain_points\": [{\"category\": \"automation\", \"description\": \"manual data entry\", \"severity\": \"high\", \"frequency\": \"constant\", \"impact_areas\": [\"labor\"], \"confidence\": 0.9}]}\n```"
	points, err := parsePainPointResponse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(points) != 1 || points[0].Category != CategoryAutomation || points[0].Confidence != 0.9 {
		t.Errorf("got %+v", points)
	}

	if _, err := parsePainPointResponse("not json at all"); err == nil {
		t.Error("expected error for non-JSON output")
	}
}
