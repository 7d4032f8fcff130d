package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mfgtwin/pkg/core/extract"
)

// StatementRepo stores extracted financial snapshots per company. The full
// snapshot, warnings included, lives in a JSONB column so replays see exactly
// what the extractor produced.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS statements (
//	  id UUID PRIMARY KEY,
//	  company_id UUID NOT NULL,
//	  source_format TEXT,
//	  snapshot_json JSONB,
//	  uploaded_at TIMESTAMPTZ
//	);
type StatementRepo struct{}

func NewStatementRepo() *StatementRepo {
	return &StatementRepo{}
}

// Save persists a snapshot and returns its generated statement ID.
func (r *StatementRepo) Save(ctx context.Context, companyID uuid.UUID, sourceFormat string, snap *extract.Snapshot) (uuid.UUID, error) {
	pool := GetPool()
	if pool == nil {
		return uuid.Nil, fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO statements (id, company_id, source_format, snapshot_json, uploaded_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := pool.Exec(ctx, query, id, companyID, sourceFormat, jsonData, time.Now().UTC()); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save statement: %w", err)
	}
	return id, nil
}

// Load retrieves one snapshot by statement ID.
func (r *StatementRepo) Load(ctx context.Context, id uuid.UUID) (*extract.Snapshot, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT snapshot_json FROM statements WHERE id = $1`, id).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no statement found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load statement: %w", err)
	}

	var snap extract.Snapshot
	if err := json.Unmarshal(jsonData, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// LoadLatest retrieves the most recently uploaded snapshot for a company.
func (r *StatementRepo) LoadLatest(ctx context.Context, companyID uuid.UUID) (*extract.Snapshot, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx,
		`SELECT snapshot_json FROM statements WHERE company_id = $1 ORDER BY uploaded_at DESC LIMIT 1`,
		companyID,
	).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no statements found for company %s", companyID)
		}
		return nil, fmt.Errorf("failed to load statement: %w", err)
	}

	var snap extract.Snapshot
	if err := json.Unmarshal(jsonData, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
