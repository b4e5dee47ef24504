package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"homeshield_backend/internal/leads/domain"
	"homeshield_backend/internal/leads/recommend"
)

// Lead is the persisted aggregate: verified contact info, the optional
// questionnaire snapshot, and the derived system summary. HomeDetails and
// SystemSummary are present together or absent together.
type Lead struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          string
	BestTimeToCall string
	HomeDetails    *domain.HomeProfile
	SystemSummary  *recommend.Summary
	Status         domain.LeadStatus
	Source         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateParams holds the fields for inserting a new lead.
type CreateParams struct {
	Name           string
	Email          string
	Phone          string
	BestTimeToCall string
	HomeDetails    *domain.HomeProfile
	SystemSummary  *recommend.Summary
	Source         string
}

// ListParams filters and pages the dashboard lead list.
type ListParams struct {
	Status *domain.LeadStatus
	Offset int
	Limit  int
}

// LeadsRepository is the lead store gateway. Leads are created once; only
// status and updated_at mutate afterwards. There is no delete operation.
type LeadsRepository interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) (Lead, error)
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error)
}
