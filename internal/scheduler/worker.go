package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/config"
	"leadtrack_backend/platform/logger"
)

// AutoAssigner is the slice of the leads service the worker invokes.
type AutoAssigner interface {
	Assign(ctx context.Context, leadID uuid.UUID, actor domain.Actor) (uuid.UUID, error)
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	assigner AutoAssigner
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, assigner AutoAssigner, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetWorkerConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		assigner: assigner,
		log:      log,
	}

	mux.HandleFunc(TaskLeadAutoAssign, w.handleLeadAutoAssign)

	return w, nil
}

func (w *Worker) handleLeadAutoAssign(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadAutoAssignPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	repID, err := w.assigner.Assign(ctx, leadID, domain.SystemActor())
	if err != nil {
		// A deleted lead or an empty rep pool will not resolve by retrying.
		switch apperr.GetKind(err) {
		case apperr.KindNotFound, apperr.KindUnavailable:
			w.log.Warn("auto-assign skipped", "leadId", payload.LeadID, "error", err.Error())
			return nil
		}
		return err
	}

	w.log.Info("lead auto-assigned", "leadId", payload.LeadID, "repId", repID.String())
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
