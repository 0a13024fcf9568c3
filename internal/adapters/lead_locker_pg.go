// Package adapters provides concrete implementations of the ports consumed
// by the assignment and conversion engine, wired at the composition root.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	jobsrepo "leadtrack_backend/internal/jobs/repository"
	jobssvc "leadtrack_backend/internal/jobs/service"
	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/internal/leads/ports"
	leadrepo "leadtrack_backend/internal/leads/repository"
	"leadtrack_backend/platform/apperr"
)

// PgLeadLocker serializes lead operations with a row lock held inside one
// transaction. Every write issued through the callback's ConversionOps joins
// that transaction, so an error from the callback rolls all of them back.
type PgLeadLocker struct {
	pool *pgxpool.Pool
}

func NewPgLeadLocker(pool *pgxpool.Pool) *PgLeadLocker {
	return &PgLeadLocker{pool: pool}
}

func (l *PgLeadLocker) WithLeadLock(ctx context.Context, leadID uuid.UUID, fn func(ctx context.Context, lead leadrepo.Lead, ops ports.ConversionOps) error) error {
	err := pgx.BeginFunc(ctx, l.pool, func(tx pgx.Tx) error {
		lead, err := leadrepo.New(tx).GetForUpdate(ctx, leadID)
		if err != nil {
			return err
		}
		return fn(ctx, lead, &pgConversionOps{tx: tx, leadID: leadID})
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperr.Wrap(apperr.KindInternal, "lead operation failed", err).WithOp("adapters.with_lead_lock")
	}
	return nil
}

// pgConversionOps issues every write on the locked transaction.
type pgConversionOps struct {
	tx     pgx.Tx
	leadID uuid.UUID
}

func (o *pgConversionOps) UpdateStatus(ctx context.Context, to domain.Status) error {
	return leadrepo.New(o.tx).UpdateStatus(ctx, o.leadID, to)
}

func (o *pgConversionOps) SetAssignment(ctx context.Context, repID uuid.UUID, actorLabel string, advance bool) error {
	return leadrepo.New(o.tx).SetAssignment(ctx, o.leadID, repID, actorLabel, advance)
}

func (o *pgConversionOps) EnsureActiveJob(ctx context.Context) (ports.JobRecord, bool, error) {
	job, created, err := jobsrepo.New(o.tx).EnsureActiveForLead(ctx, o.leadID, jobssvc.DefaultStage)
	if err != nil {
		return ports.JobRecord{}, false, err
	}
	return ports.JobRecord{ID: job.ID, CardID: job.CardID}, created, nil
}

func (o *pgConversionOps) AttachCard(ctx context.Context, jobID uuid.UUID, card domain.CardReference) (string, error) {
	stage := jobssvc.StageForList(card.ListID)

	jobs := jobsrepo.New(o.tx)
	if err := jobs.AttachCard(ctx, jobID, card.CardID, card.CardURL, stage); err != nil {
		return "", err
	}
	if err := leadrepo.New(o.tx).AttachCard(ctx, o.leadID, card.CardID, card.CardURL); err != nil {
		return "", err
	}
	if _, err := jobs.OpenStage(ctx, jobID, stage); err != nil {
		return "", err
	}
	return stage, nil
}

// Compile-time checks.
var (
	_ ports.LeadLocker    = (*PgLeadLocker)(nil)
	_ ports.ConversionOps = (*pgConversionOps)(nil)
)
