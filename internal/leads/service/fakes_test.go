package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"leadtrack_backend/internal/audit"
	"leadtrack_backend/internal/events"
	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/internal/leads/ports"
	"leadtrack_backend/internal/leads/repository"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/logger"
)

// fakeStore is the in-memory state a fakeLocker guards. Writes made through
// fakeOps land on a staged copy; the locker commits the copy only when the
// callback succeeds, mirroring the transactional rollback of the real adapter.
type fakeStore struct {
	lead        repository.Lead
	job         *ports.JobRecord
	stageOpened string
	jobsCreated int
}

type fakeLocker struct {
	store     *fakeStore
	lockCalls int
}

func (l *fakeLocker) WithLeadLock(ctx context.Context, leadID uuid.UUID, fn func(ctx context.Context, lead repository.Lead, ops ports.ConversionOps) error) error {
	l.lockCalls++
	if l.store == nil || l.store.lead.ID != leadID {
		return apperr.NotFound("lead not found")
	}

	staged := *l.store
	ops := &fakeOps{store: &staged}
	if err := fn(ctx, staged.lead, ops); err != nil {
		return err
	}
	*l.store = staged
	return nil
}

type fakeOps struct {
	store *fakeStore
}

func (o *fakeOps) UpdateStatus(ctx context.Context, to domain.Status) error {
	o.store.lead.Status = to
	o.store.lead.SalesStatus = to
	return nil
}

func (o *fakeOps) SetAssignment(ctx context.Context, repID uuid.UUID, actorLabel string, advance bool) error {
	id := repID
	label := actorLabel
	o.store.lead.AssignedRepID = &id
	o.store.lead.AssignedBy = &label
	if advance {
		o.store.lead.Status = domain.StatusAssigned
		o.store.lead.SalesStatus = domain.StatusAssigned
	}
	return nil
}

func (o *fakeOps) EnsureActiveJob(ctx context.Context) (ports.JobRecord, bool, error) {
	if o.store.job != nil {
		return *o.store.job, false, nil
	}
	job := ports.JobRecord{ID: uuid.New()}
	o.store.job = &job
	o.store.jobsCreated++
	return job, true, nil
}

func (o *fakeOps) AttachCard(ctx context.Context, jobID uuid.UUID, card domain.CardReference) (string, error) {
	cardID := card.CardID
	cardURL := card.CardURL
	o.store.lead.CardID = &cardID
	o.store.lead.CardURL = &cardURL
	job := *o.store.job
	job.CardID = &cardID
	o.store.job = &job
	o.store.stageOpened = "design"
	return "design", nil
}

type fakeRepDirectory struct {
	candidates []ports.RepCandidate
	err        error
	calls      int
}

func (d *fakeRepDirectory) ListCandidates(ctx context.Context) ([]ports.RepCandidate, error) {
	d.calls++
	return d.candidates, d.err
}

type fakeIssuer struct {
	card  domain.CardReference
	err   error
	calls int
	last  ports.CardContext
}

func (i *fakeIssuer) CreateCard(ctx context.Context, cc ports.CardContext) (domain.CardReference, error) {
	i.calls++
	i.last = cc
	if i.err != nil {
		return domain.CardReference{}, i.err
	}
	return i.card, nil
}

type fakeAudit struct {
	entries []audit.Entry
}

func (a *fakeAudit) Append(ctx context.Context, entry audit.Entry) {
	a.entries = append(a.entries, entry)
}

type fakeBus struct {
	published []events.Event
}

func (b *fakeBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *fakeBus) PublishSync(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBus) Subscribe(eventName string, handler events.Handler) {}

type fakeRepo struct {
	leads map[uuid.UUID]repository.Lead
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leads: make(map[uuid.UUID]repository.Lead)}
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepo) Create(ctx context.Context, params repository.CreateParams) (repository.Lead, error) {
	lead := repository.Lead{
		ID:          uuid.New(),
		Code:        params.Code,
		Name:        params.Name,
		Email:       params.Email,
		Phone:       params.Phone,
		Company:     params.Company,
		Notes:       params.Notes,
		Status:      domain.StatusNew,
		SalesStatus: domain.StatusNew,
	}
	r.leads[lead.ID] = lead
	return lead, nil
}

func (r *fakeRepo) SetAssignment(ctx context.Context, id uuid.UUID, repID uuid.UUID, actorLabel string, advance bool) error {
	return errors.New("not used in tests")
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	return errors.New("not used in tests")
}

func (r *fakeRepo) AttachCard(ctx context.Context, id uuid.UUID, cardID, cardURL string) error {
	return errors.New("not used in tests")
}

// testHarness bundles the service with every fake it runs against.
type testHarness struct {
	svc    *Service
	store  *fakeStore
	locker *fakeLocker
	reps   *fakeRepDirectory
	issuer *fakeIssuer
	audit  *fakeAudit
	bus    *fakeBus
	repo   *fakeRepo
}

func newHarness(lead repository.Lead) *testHarness {
	store := &fakeStore{lead: lead}
	locker := &fakeLocker{store: store}
	reps := &fakeRepDirectory{}
	issuer := &fakeIssuer{card: domain.CardReference{CardID: "abc123", CardURL: "https://cards.example/abc123"}}
	auditLog := &fakeAudit{}
	bus := &fakeBus{}
	repo := newFakeRepo()
	repo.leads[lead.ID] = lead

	svc := New(repo, locker, reps, issuer, auditLog, bus, logger.New("test"))
	return &testHarness{
		svc:    svc,
		store:  store,
		locker: locker,
		reps:   reps,
		issuer: issuer,
		audit:  auditLog,
		bus:    bus,
		repo:   repo,
	}
}
