package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homeshield_backend/internal/leads/domain"
	"homeshield_backend/internal/leads/recommend"
	"homeshield_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

// Repo implements LeadsRepository with PostgreSQL. The questionnaire snapshot
// and system summary are stored as JSONB documents next to the contact columns.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements LeadsRepository.
var _ LeadsRepository = (*Repo)(nil)

// Create inserts a new lead with status "new" and server-assigned timestamps.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	homeDetails, err := marshalNullable(params.HomeDetails)
	if err != nil {
		return Lead{}, fmt.Errorf("encode home details: %w", err)
	}
	systemSummary, err := marshalNullable(params.SystemSummary)
	if err != nil {
		return Lead{}, fmt.Errorf("encode system summary: %w", err)
	}

	query := `
		INSERT INTO leads (name, email, phone, best_time_to_call, home_details, system_summary, status, source)
		VALUES ($1, $2, $3, $4, $5, $6, 'new', $7)
		RETURNING id, name, email, phone, best_time_to_call, home_details, system_summary, status, source, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		params.Name, params.Email, params.Phone, params.BestTimeToCall,
		homeDetails, systemSummary, params.Source,
	)

	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// GetByID retrieves a single lead.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `
		SELECT id, name, email, phone, best_time_to_call, home_details, system_summary, status, source, created_at, updated_at
		FROM leads
		WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// List retrieves leads newest-first, optionally filtered by status.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var statusParam interface{}
	if params.Status != nil {
		statusParam = string(*params.Status)
	}

	query := `
		SELECT id, name, email, phone, best_time_to_call, home_details, system_summary, status, source, created_at, updated_at
		FROM leads
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, statusParam, limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0, limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM leads WHERE ($1::text IS NULL OR status = $1)`
	if err := r.pool.QueryRow(ctx, countQuery, statusParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	return leads, total, nil
}

// UpdateStatus moves a lead to the given status, touching only status and
// updated_at. Setting the current status again is a no-op besides the
// timestamp (last-write-wins, no transition graph).
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) (Lead, error) {
	query := `
		UPDATE leads
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, name, email, phone, best_time_to_call, home_details, system_summary, status, source, created_at, updated_at`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("update lead status: %w", err)
	}
	return lead, nil
}

// CountByStatus returns lead counts per status for the dashboard badges.
// Statuses with no leads are present with a zero count.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error) {
	counts := make(map[domain.LeadStatus]int, len(domain.LeadStatuses()))
	for _, status := range domain.LeadStatuses() {
		counts[status] = 0
	}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count leads by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.LeadStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count leads by status: %w", err)
	}

	return counts, nil
}

func marshalNullable(v interface{}) ([]byte, error) {
	switch typed := v.(type) {
	case *domain.HomeProfile:
		if typed == nil {
			return nil, nil
		}
	case *recommend.Summary:
		if typed == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var status string
	var homeDetails, systemSummary []byte

	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.BestTimeToCall,
		&homeDetails, &systemSummary, &status, &lead.Source,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	lead.Status = domain.LeadStatus(status)

	if len(homeDetails) > 0 {
		var profile domain.HomeProfile
		if err := json.Unmarshal(homeDetails, &profile); err != nil {
			return Lead{}, fmt.Errorf("decode home details: %w", err)
		}
		profile.Normalize()
		lead.HomeDetails = &profile
	}
	if len(systemSummary) > 0 {
		var summary recommend.Summary
		if err := json.Unmarshal(systemSummary, &summary); err != nil {
			return Lead{}, fmt.Errorf("decode system summary: %w", err)
		}
		lead.SystemSummary = &summary
	}

	return lead, nil
}
