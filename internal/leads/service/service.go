// Package service implements the lead record builder and the staff-side lead
// operations.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"homeshield_backend/internal/events"
	"homeshield_backend/internal/leads/domain"
	"homeshield_backend/internal/leads/ports"
	"homeshield_backend/internal/leads/recommend"
	"homeshield_backend/internal/leads/repository"
	"homeshield_backend/internal/leads/transport"
	"homeshield_backend/platform/apperr"
	"homeshield_backend/platform/logger"
	"homeshield_backend/platform/metrics"
	"homeshield_backend/platform/phone"
	"homeshield_backend/platform/sanitize"
)

// Service provides business logic for lead capture and triage.
type Service struct {
	repo     repository.LeadsRepository
	verifier ports.ChallengeVerifier
	bus      events.Bus
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// New creates a new leads service.
func New(repo repository.LeadsRepository, verifier ports.ChallengeVerifier, bus events.Bus, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{repo: repo, verifier: verifier, bus: bus, log: log, metrics: m}
}

// Preview runs the recommendation engine without persisting anything. The
// questionnaire UI calls this as the visitor fills in answers.
func (s *Service) Preview(req transport.RecommendationPreviewRequest) transport.RecommendationPreviewResponse {
	items, summary := recommend.Build(req.HomeDetails.ToDomain())
	return transport.RecommendationPreviewResponse{
		Recommendations: items,
		Summary:         summary,
	}
}

// SubmitConsultation builds and persists a lead from a verified consultation
// submission. Field validation happens before any gateway call; the challenge
// token is verified before the store is touched; the create is attempted
// exactly once with no automatic retry.
func (s *Service) SubmitConsultation(ctx context.Context, req transport.SubmitConsultationRequest, remoteIP string) (transport.SubmitConsultationResponse, error) {
	contact, err := normalizeContact(req.Contact)
	if err != nil {
		s.countSubmissionError("validation")
		return transport.SubmitConsultationResponse{}, err
	}

	if err := s.verifier.Verify(ctx, req.ChallengeToken, remoteIP); err != nil {
		s.countSubmissionError("challenge")
		return transport.SubmitConsultationResponse{}, err
	}

	params := repository.CreateParams{
		Name:           contact.Name,
		Email:          contact.Email,
		Phone:          contact.Phone,
		BestTimeToCall: contact.BestTimeToCall,
		Source:         domain.LeadSource,
	}

	// Absent questionnaire stays absent end to end: a lead without home
	// details never carries a system summary, and a zero-device summary is
	// only ever the engine's own output.
	if req.HomeDetails != nil {
		profile := req.HomeDetails.ToDomain()
		_, summary := recommend.Build(profile)
		params.HomeDetails = &profile
		params.SystemSummary = &summary
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		s.countSubmissionError("persistence")
		s.log.DatabaseError("create lead", err)
		return transport.SubmitConsultationResponse{}, apperr.Persistence("could not save your request, please try again", err)
	}

	if s.metrics != nil {
		s.metrics.LeadsCreated.Inc()
	}
	s.log.LeadEvent("created", lead.ID.String(), "hasHomeProfile", lead.HomeDetails != nil)

	event := events.LeadCreated{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         lead.ID,
		Name:           lead.Name,
		Email:          lead.Email,
		Phone:          lead.Phone,
		BestTimeToCall: lead.BestTimeToCall,
		HasHomeProfile: lead.HomeDetails != nil,
	}
	if lead.SystemSummary != nil {
		event.TotalDevices = lead.SystemSummary.TotalDevices
		event.EstimatedCost = lead.SystemSummary.EstimatedCost
	}
	s.bus.Publish(ctx, event)

	return transport.SubmitConsultationResponse{
		ID:        lead.ID,
		Status:    string(lead.Status),
		CreatedAt: lead.CreatedAt.Format(time.RFC3339),
	}, nil
}

// List retrieves leads newest-first for the dashboard, optionally filtered by
// status.
func (s *Service) List(ctx context.Context, statusFilter string, page, pageSize int) (transport.LeadListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}

	params := repository.ListParams{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	}
	if statusFilter != "" {
		status := domain.LeadStatus(statusFilter)
		if !status.Valid() {
			return transport.LeadListResponse{}, apperr.BadRequest("unknown status filter")
		}
		params.Status = &status
	}

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, apperr.Persistence("could not load leads", err)
	}

	items := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, toResponse(lead))
	}
	return transport.LeadListResponse{Items: items, Total: total}, nil
}

// GetByID retrieves a single lead for the dashboard detail view.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toResponse(lead), nil
}

// Stats returns per-status lead counts for the dashboard filter badges.
func (s *Service) Stats(ctx context.Context) (transport.LeadStatsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return transport.LeadStatsResponse{}, apperr.Persistence("could not load lead stats", err)
	}

	byStatus := make(map[string]int, len(counts))
	total := 0
	for status, count := range counts {
		byStatus[string(status)] = count
		total += count
	}
	return transport.LeadStatsResponse{Total: total, ByStatus: byStatus}, nil
}

// UpdateStatus moves a lead to the target status. Any status may move to any
// other; re-applying the current status only refreshes updated_at.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, target string, changedBy uuid.UUID) (transport.LeadResponse, error) {
	status := domain.LeadStatus(target)
	if !status.Valid() {
		return transport.LeadResponse{}, apperr.Validation("unknown lead status")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	lead, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.LeadResponse{}, err
		}
		return transport.LeadResponse{}, apperr.Persistence("could not update lead status", err)
	}

	if s.metrics != nil {
		s.metrics.StatusUpdates.Inc()
	}
	s.log.LeadEvent("status_changed", lead.ID.String(), "from", string(current.Status), "to", string(lead.Status))

	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		OldStatus: string(current.Status),
		NewStatus: string(lead.Status),
		ChangedBy: changedBy,
	})

	return toResponse(lead), nil
}

// normalizeContact trims, sanitizes, and validates the contact fields,
// returning the storable form. The phone is stored in E.164.
func normalizeContact(req transport.ContactInfoRequest) (transport.ContactInfoRequest, error) {
	name := sanitize.Text(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	bestTime := strings.TrimSpace(req.BestTimeToCall)

	if name == "" {
		return transport.ContactInfoRequest{}, apperr.Validation("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return transport.ContactInfoRequest{}, apperr.Validation("email is invalid")
	}

	digits := phone.Digits(req.Phone)
	if len(digits) != 10 {
		return transport.ContactInfoRequest{}, apperr.Validation("phone number should have 10 digits")
	}

	switch bestTime {
	case "morning", "afternoon", "evening":
	default:
		return transport.ContactInfoRequest{}, apperr.Validation("best time to call must be morning, afternoon or evening")
	}

	return transport.ContactInfoRequest{
		Name:           name,
		Email:          email,
		Phone:          phone.NormalizeE164(digits),
		BestTimeToCall: bestTime,
	}, nil
}

func toResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:             lead.ID,
		Name:           lead.Name,
		Email:          lead.Email,
		Phone:          lead.Phone,
		PhoneDisplay:   phone.FormatNational(lead.Phone),
		BestTimeToCall: lead.BestTimeToCall,
		HomeDetails:    lead.HomeDetails,
		SystemSummary:  lead.SystemSummary,
		Status:         string(lead.Status),
		Source:         lead.Source,
		CreatedAt:      lead.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      lead.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *Service) countSubmissionError(kind string) {
	if s.metrics != nil {
		s.metrics.LeadSubmissionErrors.WithLabelValues(kind).Inc()
	}
}
