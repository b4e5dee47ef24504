// Package leads wires the lead capture and triage module.
package leads

import (
	"homeshield_backend/internal/events"
	"homeshield_backend/internal/http"
	"homeshield_backend/internal/leads/handler"
	"homeshield_backend/internal/leads/ports"
	"homeshield_backend/internal/leads/repository"
	"homeshield_backend/internal/leads/service"
	"homeshield_backend/platform/logger"
	"homeshield_backend/platform/metrics"
	"homeshield_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the leads handlers for route registration.
type Module struct {
	public  *handler.PublicHandler
	staff   *handler.Handler
	service *service.Service
}

// NewModule creates the leads module with all its dependencies wired.
func NewModule(pool *pgxpool.Pool, verifier ports.ChallengeVerifier, bus events.Bus, log *logger.Logger, m *metrics.Metrics, v *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, verifier, bus, log, m)
	return &Module{
		public:  handler.NewPublicHandler(svc, v),
		staff:   handler.NewHandler(svc, v),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "leads" }

// Service exposes the leads service for other modules.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts the public website routes on /api/v1 and the
// dashboard routes on the authenticated group.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.V1.POST("/consultations", m.public.SubmitConsultation)
	ctx.V1.POST("/recommendations", m.public.PreviewRecommendations)

	leads := ctx.Protected.Group("/leads")
	{
		leads.GET("", m.staff.List)
		leads.GET("/stats", m.staff.Stats)
		leads.GET("/:id", m.staff.Get)
		leads.PATCH("/:id/status", m.staff.UpdateStatus)
	}
}
