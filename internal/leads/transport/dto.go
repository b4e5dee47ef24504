// Package transport defines the lead module's request and response shapes.
package transport

import (
	"github.com/google/uuid"

	"homeshield_backend/internal/leads/domain"
	"homeshield_backend/internal/leads/recommend"
)

// ContactInfoRequest is the consultation form payload. Phone accepts any
// formatting but must contain exactly ten digits.
type ContactInfoRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Email          string `json:"email" validate:"required,email,max=254"`
	Phone          string `json:"phone" validate:"required,phone10"`
	BestTimeToCall string `json:"bestTimeToCall" validate:"required,oneof=morning afternoon evening"`
}

// HomeProfileRequest mirrors the questionnaire answer set. All fields are
// optional on the wire; missing values default to zero/false.
type HomeProfileRequest struct {
	DoorCount         int             `json:"doorCount" validate:"min=0"`
	WindowRoomCount   int             `json:"windowRoomCount" validate:"min=0"`
	HasDogs           bool            `json:"hasDogs"`
	HomeOften         bool            `json:"homeOften"`
	FrequentVisitors  bool            `json:"frequentVisitors"`
	FrequentPackages  bool            `json:"frequentPackages"`
	HasGasAppliances  bool            `json:"hasGasAppliances"`
	OutsideVisitors   bool            `json:"outsideVisitors"`
	ConnectThermostat bool            `json:"connectThermostat"`
	Cameras           map[string]bool `json:"cameras"`
}

// ToDomain converts the wire profile into a normalized domain profile.
func (r HomeProfileRequest) ToDomain() domain.HomeProfile {
	profile := domain.HomeProfile{
		DoorCount:         r.DoorCount,
		WindowRoomCount:   r.WindowRoomCount,
		HasDogs:           r.HasDogs,
		HomeOften:         r.HomeOften,
		FrequentVisitors:  r.FrequentVisitors,
		FrequentPackages:  r.FrequentPackages,
		HasGasAppliances:  r.HasGasAppliances,
		OutsideVisitors:   r.OutsideVisitors,
		ConnectThermostat: r.ConnectThermostat,
		Cameras:           r.Cameras,
	}
	profile.Normalize()
	return profile
}

// SubmitConsultationRequest is the full public submission: verified contact
// info plus the optional questionnaire snapshot.
type SubmitConsultationRequest struct {
	ChallengeToken string              `json:"challengeToken" validate:"required"`
	Contact        ContactInfoRequest  `json:"contact" validate:"required"`
	HomeDetails    *HomeProfileRequest `json:"homeDetails,omitempty"`
}

// RecommendationPreviewRequest asks the engine for a stateless preview.
type RecommendationPreviewRequest struct {
	HomeDetails HomeProfileRequest `json:"homeDetails" validate:"required"`
}

// RecommendationPreviewResponse carries engine output for the questionnaire UI.
type RecommendationPreviewResponse struct {
	Recommendations []recommend.Item  `json:"recommendations"`
	Summary         recommend.Summary `json:"summary"`
}

// SubmitConsultationResponse acknowledges a persisted lead.
type SubmitConsultationResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"createdAt"`
}

// LeadResponse represents a lead in staff dashboard API responses.
type LeadResponse struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	PhoneDisplay   string              `json:"phoneDisplay"`
	BestTimeToCall string              `json:"bestTimeToCall"`
	HomeDetails    *domain.HomeProfile `json:"homeDetails,omitempty"`
	SystemSummary  *recommend.Summary  `json:"systemSummary,omitempty"`
	Status         string              `json:"status"`
	Source         string              `json:"source"`
	CreatedAt      string              `json:"createdAt"`
	UpdatedAt      string              `json:"updatedAt"`
}

// LeadListResponse wraps the dashboard lead list.
type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

// LeadStatsResponse carries per-status counts for the dashboard filter badges.
type LeadStatsResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// UpdateLeadStatusRequest moves a lead to a new status.
type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted qualified closed"`
}
