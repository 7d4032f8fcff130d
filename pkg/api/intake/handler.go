// Package intake serves the guided questionnaire flow.
package intake

import (
	"encoding/json"
	"net/http"

	"mfgtwin/pkg/core/questionnaire"
)

var flow *questionnaire.Flow

func InitHandler() {
	flow = questionnaire.NewFlow()
}

type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type AnswerResponse struct {
	Complete bool                    `json:"complete"`
	Next     *questionnaire.Question `json:"next,omitempty"`
}

// HandleQuestions lists the full flow; the client renders from START.
func HandleQuestions(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(flow.Questions())
}

// HandleAnswer validates an answer and returns the next question.
func HandleAnswer(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !flow.ValidateAnswer(req.QuestionID, req.Answer) {
		http.Error(w, "invalid answer for question", http.StatusUnprocessableEntity)
		return
	}

	nextID, ok := flow.Next(req.QuestionID, req.Answer)
	if !ok {
		http.Error(w, "unknown question", http.StatusNotFound)
		return
	}

	resp := AnswerResponse{Complete: nextID == ""}
	if nextID != "" {
		q, _ := flow.Question(nextID)
		resp.Next = &q
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
