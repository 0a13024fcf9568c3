// Package jobs provides the production job bounded context module.
package jobs

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"leadtrack_backend/internal/audit"
	apphttp "leadtrack_backend/internal/http"
	"leadtrack_backend/internal/jobs/handler"
	"leadtrack_backend/internal/jobs/repository"
	"leadtrack_backend/internal/jobs/service"
	"leadtrack_backend/platform/logger"
	"leadtrack_backend/platform/validator"
)

// Module is the jobs bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and wires the jobs module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	auditLog := audit.NewService(audit.New(pool), log)
	svc := service.New(repository.New(pool), auditLog, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Service returns the jobs service.
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "jobs"
}

// RegisterRoutes mounts jobs routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/jobs"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
