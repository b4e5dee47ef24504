package drafts

import (
	"homeshield_backend/internal/http"
	"homeshield_backend/platform/config"
	"homeshield_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Module bundles the draft store and its handler.
type Module struct {
	handler *Handler
}

// NewModule creates the drafts module. With a Redis URL configured it uses
// Redis, otherwise drafts live in process memory and are lost on restart.
func NewModule(cfg config.DraftStoreConfig, log *logger.Logger) (*Module, error) {
	var store Store
	if url := cfg.GetRedisURL(); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, err
		}
		store = NewRedisStore(redis.NewClient(opts))
		log.Info("draft store using redis")
	} else {
		store = NewMemoryStore()
		log.Warn("draft store using process memory, drafts will not survive restarts")
	}

	return &Module{handler: NewHandler(store, cfg)}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string { return "drafts" }

// RegisterRoutes mounts the draft endpoints on the public v1 group.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	drafts := ctx.V1.Group("/drafts")
	{
		drafts.GET("/:form", m.handler.Get)
		drafts.PUT("/:form", m.handler.Put)
		drafts.DELETE("/:form", m.handler.Delete)
	}
}

var _ http.Module = (*Module)(nil)
