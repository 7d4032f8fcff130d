// Package upload accepts statement documents, runs extraction and stores the
// resulting snapshot when a company is given.
package upload

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"mfgtwin/pkg/core/document"
	"mfgtwin/pkg/core/extract"
	"mfgtwin/pkg/core/store"
)

var statementRepo *store.StatementRepo

func InitHandler() {
	statementRepo = store.NewStatementRepo()
}

type UploadRequest struct {
	CompanyID string `json:"company_id,omitempty"`
	Format    string `json:"format"` // csv, markdown, html
	Content   string `json:"content"`
}

type UploadResponse struct {
	StatementID string            `json:"statement_id,omitempty"`
	Snapshot    *extract.Snapshot `json:"snapshot"`
}

// HandleUpload parses, extracts and optionally persists a statement.
func HandleUpload(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines, err := document.Parse(req.Format, []byte(req.Content))
	if err != nil {
		if errors.Is(err, document.ErrUnsupportedFormat) {
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := extract.Extract(lines)
	if err != nil {
		if errors.Is(err, extract.ErrEmptyDocument) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[UPLOAD] Extracted snapshot: confidence=%.2f warnings=%d\n",
		snap.Confidence, len(snap.Warnings))

	resp := UploadResponse{Snapshot: snap}

	// Persist only when a company is named and the DB is up.
	if req.CompanyID != "" && store.GetPool() != nil {
		companyID, err := uuid.Parse(req.CompanyID)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid company_id: %v", err), http.StatusBadRequest)
			return
		}
		statementID, err := statementRepo.Save(r.Context(), companyID, req.Format, snap)
		if err != nil {
			fmt.Printf("[WARNING] Failed to persist statement: %v\n", err)
		} else {
			resp.StatementID = statementID.String()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
