// Package forms provides the form engine bounded context module: public
// rendering and submission endpoints plus admin definition management.
package forms

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"leadcapture_backend/internal/forms/handler"
	"leadcapture_backend/internal/forms/ports"
	"leadcapture_backend/internal/forms/repository"
	"leadcapture_backend/internal/forms/service"
	apphttp "leadcapture_backend/internal/http"
	"leadcapture_backend/internal/storage"
	"leadcapture_backend/platform/config"
	"leadcapture_backend/platform/logger"
	"leadcapture_backend/platform/validator"
)

// Module is the forms bounded context module implementing http.Module.
type Module struct {
	admin  *handler.Handler
	public *handler.PublicHandler
	svc    *service.Service
}

// NewModule creates and initializes the forms module. uploads may be nil
// when object storage is disabled.
func NewModule(pool *pgxpool.Pool, store ports.LeadStore, lookup ports.IPLookup, uploads storage.Uploads, share config.ShareConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, lookup, log)

	return &Module{
		admin:  handler.New(svc, val),
		public: handler.NewPublicHandler(svc, uploads, share, val),
		svc:    svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "forms"
}

// Service returns the forms service for cross-module adapters.
func (m *Module) Service() *service.Service {
	return m.svc
}

// NotificationRecipient returns the form's configured notification email,
// or "" when notifications are off. Satisfies the notification module's
// resolver port.
func (m *Module) NotificationRecipient(ctx context.Context, formID string) (string, error) {
	def, err := m.svc.GetDefinition(ctx, formID)
	if err != nil {
		return "", err
	}
	return def.Settings.NotificationEmail, nil
}

// RegisterRoutes mounts forms routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.admin.RegisterRoutes(ctx.V1.Group("/forms"))
	m.public.RegisterRoutes(ctx.Public.Group("/forms"))
}

var _ apphttp.Module = (*Module)(nil)
