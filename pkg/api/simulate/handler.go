// Package simulate exposes the scenario simulation over HTTP.
package simulate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"mfgtwin/pkg/core/extract"
	"mfgtwin/pkg/core/levers"
	"mfgtwin/pkg/core/scenario"
	"mfgtwin/pkg/core/store"
)

var (
	model         *scenario.Model
	statementRepo *store.StatementRepo
	scenarioRepo  *store.ScenarioRepo
)

func InitHandler(m *scenario.Model) {
	model = m
	statementRepo = store.NewStatementRepo()
	scenarioRepo = store.NewScenarioRepo()
}

type SimulateRequest struct {
	// Either an inline snapshot or a stored statement to load.
	Snapshot    *extract.Snapshot `json:"snapshot,omitempty"`
	StatementID string            `json:"statement_id,omitempty"`

	Setting levers.Setting `json:"setting"`

	// When both are set the result is stored under the company.
	CompanyID string `json:"company_id,omitempty"`
	Name      string `json:"name,omitempty"`
}

type SimulateResponse struct {
	ScenarioID string           `json:"scenario_id,omitempty"`
	Result     *scenario.Result `json:"result"`
}

// HandleSimulate runs one simulation and optionally saves it.
func HandleSimulate(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := resolveSnapshot(r, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := model.Simulate(snap, req.Setting)
	if err != nil {
		var verr *levers.ValidationError
		if errors.As(err, &verr) || errors.Is(err, scenario.ErrInvalidBaseline) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[SIMULATE] investment=%.2f roi_defined=%v\n", result.TotalInvestment, result.RoiDefined)

	resp := SimulateResponse{Result: result}
	if req.CompanyID != "" && req.Name != "" && store.GetPool() != nil {
		companyID, err := uuid.Parse(req.CompanyID)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid company_id: %v", err), http.StatusBadRequest)
			return
		}
		saved, err := scenarioRepo.Save(r.Context(), companyID, req.Name, req.Setting, result)
		if err != nil {
			fmt.Printf("[WARNING] Failed to persist scenario: %v\n", err)
		} else {
			resp.ScenarioID = saved.ID.String()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func resolveSnapshot(r *http.Request, req *SimulateRequest) (*extract.Snapshot, error) {
	if req.Snapshot != nil {
		return req.Snapshot, nil
	}
	if req.StatementID == "" {
		return nil, fmt.Errorf("snapshot or statement_id is required")
	}
	if store.GetPool() == nil {
		return nil, fmt.Errorf("statement lookup requires a database")
	}
	id, err := uuid.Parse(req.StatementID)
	if err != nil {
		return nil, fmt.Errorf("invalid statement_id: %w", err)
	}
	return statementRepo.Load(r.Context(), id)
}

// HandleListScenarios returns a company's stored scenarios.
func HandleListScenarios(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if store.GetPool() == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	companyID, err := uuid.Parse(r.URL.Query().Get("company_id"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid company_id: %v", err), http.StatusBadRequest)
		return
	}

	scenarios, err := scenarioRepo.ListByCompany(r.Context(), companyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenarios)
}
