package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"leadtrack_backend/platform/apperr"
)

type stubRow struct {
	err error
}

func (r stubRow) Scan(dest ...any) error { return r.err }

type stubQuerier struct {
	rowErr   error
	queryErr error
}

func (q *stubQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (q *stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, q.queryErr
}

func (q *stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return stubRow{err: q.rowErr}
}

type jobRow struct {
	job Job
}

func (r jobRow) Scan(dest ...any) error {
	*dest[0].(*uuid.UUID) = r.job.ID
	*dest[1].(*uuid.UUID) = r.job.LeadID
	*dest[2].(*string) = r.job.ProductionStage
	*dest[3].(**string) = r.job.CardID
	*dest[4].(**string) = r.job.CardURL
	*dest[5].(*bool) = r.job.Active
	*dest[6].(*bool) = r.job.Archived
	*dest[7].(*time.Time) = r.job.CreatedAt
	*dest[8].(*time.Time) = r.job.UpdatedAt
	return nil
}

// scriptedQuerier serves a fixed sequence of single-row results.
type scriptedQuerier struct {
	stubQuerier
	rows []pgx.Row
}

func (q *scriptedQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if len(q.rows) == 0 {
		return stubRow{err: errors.New("unexpected query")}
	}
	row := q.rows[0]
	q.rows = q.rows[1:]
	return row
}

func TestEnsureActiveForLeadReturnsExistingJob(t *testing.T) {
	leadID := uuid.New()
	existing := Job{ID: uuid.New(), LeadID: leadID, ProductionStage: "design", Active: true}
	q := &scriptedQuerier{rows: []pgx.Row{jobRow{job: existing}}}
	repo := New(q)

	job, created, err := repo.EnsureActiveForLead(context.Background(), leadID, "design")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected the existing job, not a new one")
	}
	if job.ID != existing.ID {
		t.Fatalf("job id = %v, want %v", job.ID, existing.ID)
	}
	if len(q.rows) != 0 {
		t.Fatalf("expected 1 query, %d rows unconsumed", len(q.rows))
	}
}

func TestEnsureActiveForLeadCreatesWhenAbsent(t *testing.T) {
	leadID := uuid.New()
	inserted := Job{ID: uuid.New(), LeadID: leadID, ProductionStage: "design", Active: true}
	q := &scriptedQuerier{rows: []pgx.Row{
		stubRow{err: pgx.ErrNoRows},
		jobRow{job: inserted},
	}}
	repo := New(q)

	job, created, err := repo.EnsureActiveForLead(context.Background(), leadID, "design")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected a new job to be created")
	}
	if job.ID != inserted.ID {
		t.Fatalf("job id = %v, want %v", job.ID, inserted.ID)
	}
}

func TestGetByIDStorageFailureReturnsInternal(t *testing.T) {
	cause := errors.New("ERROR: relation does not exist (SQLSTATE 42P01)")
	repo := New(&stubQuerier{rowErr: cause})

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal kind, got %v", err)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if strings.Contains(appErr.Message, "SQLSTATE") {
		t.Fatalf("client-facing message leaks storage detail: %q", appErr.Message)
	}
}

func TestGetByIDMissingJobReturnsNotFound(t *testing.T) {
	repo := New(&stubQuerier{rowErr: pgx.ErrNoRows})

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found kind, got %v", err)
	}
}

func TestGetActiveByLeadStorageFailureReturnsInternal(t *testing.T) {
	repo := New(&stubQuerier{rowErr: errors.New("ERROR: connection reset (SQLSTATE 08006)")})

	_, _, err := repo.GetActiveByLead(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal kind, got %v", err)
	}
}

func TestGetActiveByLeadNoRowsIsNotAnError(t *testing.T) {
	repo := New(&stubQuerier{rowErr: pgx.ErrNoRows})

	_, found, err := repo.GetActiveByLead(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected no active job")
	}
}
