package challenge

import (
	"homeshield_backend/internal/http"
	"homeshield_backend/platform/config"
	"homeshield_backend/platform/logger"
	"homeshield_backend/platform/metrics"
)

// Module bundles the challenge client and handler.
type Module struct {
	client  *Client
	handler *Handler
}

// NewModule creates the challenge module.
func NewModule(cfg config.ChallengeConfig, log *logger.Logger, m *metrics.Metrics) *Module {
	client := NewClient(cfg, log, m)
	return &Module{client: client, handler: NewHandler(client)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "challenge" }

// Client exposes the verifier for the leads module.
func (m *Module) Client() *Client { return m.client }

// RegisterRoutes mounts the standalone verification endpoint.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.V1.POST("/challenge/verify", m.handler.Verify)
}
