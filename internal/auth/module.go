// Package auth provides the dashboard authentication module.
package auth

import (
	"homeshield_backend/internal/auth/handler"
	"homeshield_backend/internal/auth/repository"
	"homeshield_backend/internal/auth/service"
	"homeshield_backend/internal/http"
	"homeshield_backend/platform/config"
	"homeshield_backend/platform/logger"
	"homeshield_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, log *logger.Logger, v *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, cfg, v)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "auth" }

// Service returns the auth service for use by other modules.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.GET("/users/me", m.handler.GetMe)
	ctx.Protected.POST("/users/me/password", m.handler.ChangePassword)
}

// Compile-time check that Module implements http.Module
var _ http.Module = (*Module)(nil)
