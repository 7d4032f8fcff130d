package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Company is one registered manufacturer.
type Company struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Industry      string    `json:"industry"`
	EmployeeCount string    `json:"employee_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CompanyRepo handles company rows.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS companies (
//	  id UUID PRIMARY KEY,
//	  name TEXT NOT NULL UNIQUE,
//	  industry TEXT,
//	  employee_count TEXT,
//	  created_at TIMESTAMPTZ
//	);
type CompanyRepo struct{}

func NewCompanyRepo() *CompanyRepo {
	return &CompanyRepo{}
}

// Create inserts a company, generating its ID. An existing name is updated
// in place and keeps its original ID.
func (r *CompanyRepo) Create(ctx context.Context, name, industry, employeeCount string) (*Company, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	company := &Company{
		ID:            uuid.New(),
		Name:          name,
		Industry:      industry,
		EmployeeCount: employeeCount,
		CreatedAt:     time.Now().UTC(),
	}

	query := `
		INSERT INTO companies (id, name, industry, employee_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name)
		DO UPDATE SET
			industry = EXCLUDED.industry,
			employee_count = EXCLUDED.employee_count
		RETURNING id, created_at;
	`
	err := pool.QueryRow(ctx, query,
		company.ID, company.Name, company.Industry, company.EmployeeCount, company.CreatedAt,
	).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}
	return company, nil
}

// Get loads a company by ID.
func (r *CompanyRepo) Get(ctx context.Context, id uuid.UUID) (*Company, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT id, name, industry, employee_count, created_at FROM companies WHERE id = $1`

	var c Company
	err := pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Industry, &c.EmployeeCount, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no company found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	return &c, nil
}

// List returns all companies, newest first.
func (r *CompanyRepo) List(ctx context.Context) ([]Company, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT id, name, industry, employee_count, created_at FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.EmployeeCount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
