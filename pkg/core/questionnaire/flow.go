// Package questionnaire implements the guided intake flow for a manufacturing
// company profile and turns its free-text answers into categorized pain
// points. The flow itself is a static graph; only the first hop branches on
// the answer.
package questionnaire

import "strings"

// Question types.
const (
	TypeSelect = "select"
	TypeText   = "text"
)

// StartQuestionID is where every session begins.
const StartQuestionID = "START"

// Question is one node of the intake flow.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

type flowNode struct {
	question Question
	next     func(answer string) string
}

// Flow is the fixed question graph. The zero value is unusable; call NewFlow.
type Flow struct {
	nodes map[string]flowNode
}

// NewFlow builds the intake flow.
func NewFlow() *Flow {
	f := &Flow{nodes: map[string]flowNode{}}

	add := func(q Question, next func(string) string) {
		f.nodes[q.ID] = flowNode{question: q, next: next}
	}
	to := func(id string) func(string) string {
		return func(string) string { return id }
	}

	add(Question{
		ID:      StartQuestionID,
		Prompt:  "What type of products does your company manufacture?",
		Type:    TypeSelect,
		Options: []string{"Metal Parts", "Plastic Components", "Electronics", "Textiles", "Food Products", "Other"},
	}, func(answer string) string {
		if answer == "Metal Parts" {
			return "METAL_PROCESS"
		}
		return "GENERAL_VOLUME"
	})
	add(Question{
		ID:      "METAL_PROCESS",
		Prompt:  "What's your primary manufacturing process?",
		Type:    TypeSelect,
		Options: []string{"CNC Machining", "Stamping", "Casting", "Welding/Fabrication"},
	}, to("VOLUME"))
	add(Question{
		ID:      "GENERAL_VOLUME",
		Prompt:  "What's your typical production volume?",
		Type:    TypeSelect,
		Options: []string{"< 100 units/day", "100-1000 units/day", "1000-10000 units/day", "> 10000 units/day"},
	}, to("EMPLOYEES"))
	add(Question{
		ID:      "VOLUME",
		Prompt:  "What's your typical production volume per day?",
		Type:    TypeSelect,
		Options: []string{"< 50 units/day", "50-500 units/day", "500-5000 units/day", "> 5000 units/day"},
	}, to("EMPLOYEES"))
	add(Question{
		ID:      "EMPLOYEES",
		Prompt:  "How many employees work in your manufacturing operations?",
		Type:    TypeSelect,
		Options: []string{"1-10 employees", "11-50 employees", "51-200 employees", "200+ employees"},
	}, to("PAIN_POINTS"))
	add(Question{
		ID:     "PAIN_POINTS",
		Prompt: "What are the biggest challenges or pain points your company faces in manufacturing operations?",
		Type:   TypeText,
	}, to("QUALITY_CONTROL"))
	add(Question{
		ID:      "QUALITY_CONTROL",
		Prompt:  "How do you currently handle quality control?",
		Type:    TypeSelect,
		Options: []string{"Manual inspection", "Statistical sampling", "Automated testing", "Third-party inspection", "No formal process"},
	}, to("INVENTORY"))
	add(Question{
		ID:      "INVENTORY",
		Prompt:  "How do you manage inventory and materials?",
		Type:    TypeSelect,
		Options: []string{"Manual tracking (spreadsheets/paper)", "Basic software system", "ERP system", "Just-in-time approach", "No formal system"},
	}, to("AUTOMATION_CURRENT"))
	add(Question{
		ID:      "AUTOMATION_CURRENT",
		Prompt:  "What's your current level of automation?",
		Type:    TypeSelect,
		Options: []string{"Fully manual operations", "Some automated tools", "Partially automated", "Highly automated", "Fully automated"},
	}, to("AUTOMATION_INTEREST"))
	add(Question{
		ID:     "AUTOMATION_INTEREST",
		Prompt: "Which areas would you be most interested in automating?",
		Type:   TypeText,
	}, to("BUDGET"))
	add(Question{
		ID:      "BUDGET",
		Prompt:  "What's your typical annual budget for operational improvements?",
		Type:    TypeSelect,
		Options: []string{"< $10,000", "$10,000 - $50,000", "$50,000 - $200,000", "$200,000 - $500,000", "> $500,000"},
	}, to("TIMELINE"))
	add(Question{
		ID:      "TIMELINE",
		Prompt:  "What's your typical timeline for implementing new solutions?",
		Type:    TypeSelect,
		Options: []string{"Immediate (< 1 month)", "Short-term (1-3 months)", "Medium-term (3-12 months)", "Long-term (1+ years)"},
	}, func(string) string { return "" })

	return f
}

// Question returns the node with the given ID, or ok=false.
func (f *Flow) Question(id string) (Question, bool) {
	node, ok := f.nodes[id]
	return node.question, ok
}

// Next returns the ID of the question after answering the given one. An empty
// string means the flow is complete.
func (f *Flow) Next(id, answer string) (string, bool) {
	node, ok := f.nodes[id]
	if !ok {
		return "", false
	}
	return node.next(answer), true
}

// IsComplete reports whether answering the given question ends the flow.
func (f *Flow) IsComplete(id, answer string) bool {
	next, ok := f.Next(id, answer)
	return ok && next == ""
}

// ValidateAnswer checks an answer against the question type: select answers
// must be one of the options, text answers must be non-blank.
func (f *Flow) ValidateAnswer(id, answer string) bool {
	node, ok := f.nodes[id]
	if !ok {
		return false
	}
	switch node.question.Type {
	case TypeSelect:
		for _, opt := range node.question.Options {
			if answer == opt {
				return true
			}
		}
		return false
	case TypeText:
		return strings.TrimSpace(answer) != ""
	default:
		return false
	}
}

// Questions returns every node keyed by ID, for API listing.
func (f *Flow) Questions() map[string]Question {
	out := make(map[string]Question, len(f.nodes))
	for id, node := range f.nodes {
		out[id] = node.question
	}
	return out
}
