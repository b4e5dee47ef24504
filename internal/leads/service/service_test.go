package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"homeshield_backend/internal/leads/domain"
	"homeshield_backend/internal/leads/repository"
	"homeshield_backend/internal/leads/transport"
	"homeshield_backend/platform/apperr"
	"homeshield_backend/platform/events"
	"homeshield_backend/platform/logger"
)

type fakeRepo struct {
	leads       map[uuid.UUID]repository.Lead
	createCalls int
	createErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leads: make(map[uuid.UUID]repository.Lead)}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Lead, error) {
	f.createCalls++
	if f.createErr != nil {
		return repository.Lead{}, f.createErr
	}
	now := time.Now().UTC()
	lead := repository.Lead{
		ID:             uuid.New(),
		Name:           params.Name,
		Email:          params.Email,
		Phone:          params.Phone,
		BestTimeToCall: params.BestTimeToCall,
		HomeDetails:    params.HomeDetails,
		SystemSummary:  params.SystemSummary,
		Status:         domain.StatusNew,
		Source:         params.Source,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.leads[lead.ID] = lead
	return lead, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListParams) ([]repository.Lead, int, error) {
	var out []repository.Lead
	for _, lead := range f.leads {
		if params.Status != nil && lead.Status != *params.Status {
			continue
		}
		out = append(out, lead)
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.LeadStatus) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	lead.Status = status
	lead.UpdatedAt = time.Now().UTC()
	f.leads[id] = lead
	return lead, nil
}

func (f *fakeRepo) CountByStatus(_ context.Context) (map[domain.LeadStatus]int, error) {
	counts := make(map[domain.LeadStatus]int)
	for _, status := range domain.LeadStatuses() {
		counts[status] = 0
	}
	for _, lead := range f.leads {
		counts[lead.Status]++
	}
	return counts, nil
}

type fakeVerifier struct {
	calls int
	err   error
}

func (f *fakeVerifier) Verify(_ context.Context, token, _ string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if token == "" {
		return apperr.Challenge("challenge token is required")
	}
	return nil
}

func newTestService(repo *fakeRepo, verifier *fakeVerifier) *Service {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	return New(repo, verifier, bus, log, nil)
}

func validRequest() transport.SubmitConsultationRequest {
	return transport.SubmitConsultationRequest{
		ChallengeToken: "tok",
		Contact: transport.ContactInfoRequest{
			Name:           "Jane Homeowner",
			Email:          "Jane@Example.com",
			Phone:          "202-555-0143",
			BestTimeToCall: "morning",
		},
	}
}

func TestSubmitConsultationContactOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeVerifier{})

	resp, err := svc.SubmitConsultation(context.Background(), validRequest(), "1.2.3.4")
	if err != nil {
		t.Fatalf("SubmitConsultation failed: %v", err)
	}
	if resp.Status != string(domain.StatusNew) {
		t.Errorf("expected status new, got %s", resp.Status)
	}

	lead := repo.leads[resp.ID]
	if lead.HomeDetails != nil || lead.SystemSummary != nil {
		t.Error("contact-only lead must not carry home details or a system summary")
	}
	if lead.Source != domain.LeadSource {
		t.Errorf("expected source %q, got %q", domain.LeadSource, lead.Source)
	}
	if lead.Email != "jane@example.com" {
		t.Errorf("expected lowercased email, got %q", lead.Email)
	}
	if lead.Phone != "+12025550143" {
		t.Errorf("expected E.164 phone, got %q", lead.Phone)
	}
}

func TestSubmitConsultationWithHomeDetails(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeVerifier{})

	req := validRequest()
	req.HomeDetails = &transport.HomeProfileRequest{
		DoorCount:       2,
		WindowRoomCount: 3,
		HasDogs:         true,
		HomeOften:       true,
	}

	resp, err := svc.SubmitConsultation(context.Background(), req, "1.2.3.4")
	if err != nil {
		t.Fatalf("SubmitConsultation failed: %v", err)
	}

	lead := repo.leads[resp.ID]
	if lead.HomeDetails == nil || lead.SystemSummary == nil {
		t.Fatal("lead with home details must carry both profile and summary")
	}
	// 2 doors + 3 glass-break + 1 smoke/carbon = 6 devices, 6*5+20 = 50.
	if lead.SystemSummary.TotalDevices != 6 {
		t.Errorf("expected 6 devices, got %d", lead.SystemSummary.TotalDevices)
	}
	if lead.SystemSummary.EstimatedCost != 50 {
		t.Errorf("expected estimated cost 50, got %d", lead.SystemSummary.EstimatedCost)
	}
}

func TestSubmitConsultationShortPhoneRejectedBeforeVerify(t *testing.T) {
	repo := newFakeRepo()
	verifier := &fakeVerifier{}
	svc := newTestService(repo, verifier)

	req := validRequest()
	req.Contact.Phone = "202-555-014"

	_, err := svc.SubmitConsultation(context.Background(), req, "1.2.3.4")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verifier.calls != 0 {
		t.Error("challenge must not be verified for an invalid submission")
	}
	if repo.createCalls != 0 {
		t.Error("no lead may be created for an invalid submission")
	}
}

func TestSubmitConsultationChallengeRejectionBlocksCreate(t *testing.T) {
	repo := newFakeRepo()
	verifier := &fakeVerifier{err: apperr.Challenge("verification failed")}
	svc := newTestService(repo, verifier)

	_, err := svc.SubmitConsultation(context.Background(), validRequest(), "1.2.3.4")
	if !apperr.Is(err, apperr.KindChallenge) {
		t.Fatalf("expected challenge error, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Error("no lead may be created when the challenge is rejected")
	}
}

func TestSubmitConsultationCreateFailureNoRetry(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("connection refused")
	svc := newTestService(repo, &fakeVerifier{})

	_, err := svc.SubmitConsultation(context.Background(), validRequest(), "1.2.3.4")
	if !apperr.Is(err, apperr.KindPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if repo.createCalls != 1 {
		t.Errorf("expected exactly one create attempt, got %d", repo.createCalls)
	}
}

func TestSubmitConsultationBestTimeValidated(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeVerifier{})

	req := validRequest()
	req.Contact.BestTimeToCall = "midnight"

	_, err := svc.SubmitConsultation(context.Background(), req, "1.2.3.4")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeVerifier{})

	resp, err := svc.SubmitConsultation(context.Background(), validRequest(), "1.2.3.4")
	if err != nil {
		t.Fatalf("SubmitConsultation failed: %v", err)
	}

	actor := uuid.New()
	first, err := svc.UpdateStatus(context.Background(), resp.ID, "contacted", actor)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	second, err := svc.UpdateStatus(context.Background(), resp.ID, "contacted", actor)
	if err != nil {
		t.Fatalf("repeated UpdateStatus failed: %v", err)
	}
	if first.Status != "contacted" || second.Status != "contacted" {
		t.Errorf("expected status contacted, got %s then %s", first.Status, second.Status)
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeVerifier{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "archived", uuid.New())
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeVerifier{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "contacted", uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestListRejectsUnknownFilter(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeVerifier{})

	_, err := svc.List(context.Background(), "archived", 1, 50)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request error, got %v", err)
	}
}

func TestStatsZeroFilled(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeVerifier{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("expected total 0, got %d", stats.Total)
	}
	for _, status := range domain.LeadStatuses() {
		if _, ok := stats.ByStatus[string(status)]; !ok {
			t.Errorf("expected stats entry for status %s", status)
		}
	}
}
