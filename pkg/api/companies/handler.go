// Package companies exposes company registration and listing.
package companies

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mfgtwin/pkg/core/store"
)

var companyRepo *store.CompanyRepo

func InitHandler() {
	companyRepo = store.NewCompanyRepo()
}

type CreateRequest struct {
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	EmployeeCount string `json:"employee_count"`
}

// HandleCompanies creates on POST, lists on GET.
func HandleCompanies(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if store.GetPool() == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		company, err := companyRepo.Create(r.Context(), req.Name, req.Industry, req.EmployeeCount)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Printf("[COMPANIES] Registered %s (%s)\n", company.Name, company.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(company)

	case http.MethodGet:
		companies, err := companyRepo.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(companies)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
