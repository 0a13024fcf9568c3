// Package leads provides the lead bounded context module: intake, assignment,
// and the status transition pipeline.
package leads

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"leadtrack_backend/internal/adapters"
	"leadtrack_backend/internal/audit"
	"leadtrack_backend/internal/events"
	apphttp "leadtrack_backend/internal/http"
	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/internal/leads/handler"
	"leadtrack_backend/internal/leads/ports"
	"leadtrack_backend/internal/leads/repository"
	"leadtrack_backend/internal/leads/service"
	repsrepo "leadtrack_backend/internal/reps/repository"
	"leadtrack_backend/internal/scheduler"
	"leadtrack_backend/platform/config"
	"leadtrack_backend/platform/logger"
	"leadtrack_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and wires the leads module. The scheduler client may be
// nil; auto-assignment then runs inline off the intake event.
func NewModule(
	pool *pgxpool.Pool,
	eventBus events.Bus,
	issuer ports.CardIssuer,
	assignScheduler scheduler.AssignScheduler,
	val *validator.Validator,
	cfg *config.Config,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	locker := adapters.NewPgLeadLocker(pool)
	repDir := adapters.NewRepDirectory(repsrepo.New(pool), cfg)
	auditLog := audit.NewService(audit.New(pool), log)

	svc := service.New(repo, locker, repDir, issuer, auditLog, eventBus, log)

	// New leads trigger automatic assignment. With a scheduler the work goes
	// through the task queue; without one it runs inline on the bus handler.
	eventBus.Subscribe(events.LeadReceived{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadReceived)
		if !ok {
			return nil
		}
		if assignScheduler != nil {
			return assignScheduler.ScheduleLeadAutoAssign(ctx, scheduler.LeadAutoAssignPayload{
				LeadID: e.LeadID.String(),
			})
		}
		if _, err := svc.Assign(ctx, e.LeadID, domain.SystemActor()); err != nil {
			log.Warn("inline auto-assign failed", "leadId", e.LeadID.String(), "error", err.Error())
		}
		return nil
	}))

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Service returns the leads service for cross-module use (the worker's
// auto-assign handler).
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))

	intake := ctx.V1.Group("/intake")
	if ctx.IntakeRateLimiter != nil {
		intake.Use(ctx.IntakeRateLimiter.RateLimit())
	}
	m.handler.RegisterIntakeRoutes(intake)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
