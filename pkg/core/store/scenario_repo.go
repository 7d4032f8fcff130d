package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mfgtwin/pkg/core/levers"
	"mfgtwin/pkg/core/scenario"
)

// SavedScenario is a stored simulation: the setting that produced it plus
// the full result, so the UI can redisplay without recomputing.
type SavedScenario struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID uuid.UUID       `json:"company_id"`
	Name      string          `json:"name"`
	Setting   levers.Setting  `json:"setting"`
	Result    scenario.Result `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// ScenarioRepo stores simulated scenarios.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS scenarios (
//	  id UUID PRIMARY KEY,
//	  company_id UUID NOT NULL,
//	  name TEXT,
//	  scenario_json JSONB,
//	  created_at TIMESTAMPTZ
//	);
type ScenarioRepo struct{}

func NewScenarioRepo() *ScenarioRepo {
	return &ScenarioRepo{}
}

// Save persists a scenario and returns it with ID and timestamp filled in.
func (r *ScenarioRepo) Save(ctx context.Context, companyID uuid.UUID, name string, setting levers.Setting, result *scenario.Result) (*SavedScenario, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	saved := &SavedScenario{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		Setting:   setting,
		Result:    *result,
		CreatedAt: time.Now().UTC(),
	}

	jsonData, err := json.Marshal(struct {
		Setting levers.Setting  `json:"setting"`
		Result  scenario.Result `json:"result"`
	}{saved.Setting, saved.Result})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenario: %w", err)
	}

	query := `
		INSERT INTO scenarios (id, company_id, name, scenario_json, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := pool.Exec(ctx, query, saved.ID, companyID, name, jsonData, saved.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to save scenario: %w", err)
	}
	return saved, nil
}

// Load retrieves a stored scenario by ID.
func (r *ScenarioRepo) Load(ctx context.Context, id uuid.UUID) (*SavedScenario, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	saved := &SavedScenario{ID: id}
	var jsonData []byte
	err := pool.QueryRow(ctx,
		`SELECT company_id, name, scenario_json, created_at FROM scenarios WHERE id = $1`, id,
	).Scan(&saved.CompanyID, &saved.Name, &jsonData, &saved.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no scenario found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	var payload struct {
		Setting levers.Setting  `json:"setting"`
		Result  scenario.Result `json:"result"`
	}
	if err := json.Unmarshal(jsonData, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	saved.Setting = payload.Setting
	saved.Result = payload.Result
	return saved, nil
}

// ListByCompany returns a company's scenarios, newest first, without the
// heavyweight result payloads.
func (r *ScenarioRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]SavedScenario, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT id, name, created_at FROM scenarios WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []SavedScenario
	for rows.Next() {
		s := SavedScenario{CompanyID: companyID}
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, rows.Err()
}
