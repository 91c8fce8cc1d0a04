// Package leads provides the lead storage bounded context module.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"leadcapture_backend/internal/events"
	apphttp "leadcapture_backend/internal/http"
	"leadcapture_backend/internal/leads/handler"
	"leadcapture_backend/internal/leads/repository"
	"leadcapture_backend/internal/leads/service"
	"leadcapture_backend/platform/logger"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule creates and initializes the leads module. scorer recomputes
// lead scores for the dashboard's rescore action.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, scorer service.Scorer, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, log)

	return &Module{
		handler: handler.New(svc, scorer),
		svc:     svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for cross-module adapters.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/leads"))
}

var _ apphttp.Module = (*Module)(nil)
