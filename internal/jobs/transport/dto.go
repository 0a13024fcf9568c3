// Package transport defines the HTTP request and response shapes for the
// jobs module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/jobs/repository"
	"leadtrack_backend/internal/jobs/service"
)

// AdvanceStageRequest moves a job to a new production stage.
type AdvanceStageRequest struct {
	Stage string `json:"stage" validate:"required"`
}

// StageHistoryResponse is one entry of a job's timeline.
type StageHistoryResponse struct {
	Stage     string     `json:"stage"`
	EnteredAt time.Time  `json:"enteredAt"`
	ExitedAt  *time.Time `json:"exitedAt,omitempty"`
}

// JobResponse is the outward shape of a job with its timeline.
type JobResponse struct {
	ID              uuid.UUID              `json:"id"`
	LeadID          uuid.UUID              `json:"leadId"`
	ProductionStage string                 `json:"productionStage"`
	CardID          *string                `json:"cardId,omitempty"`
	CardURL         *string                `json:"cardUrl,omitempty"`
	Active          bool                   `json:"active"`
	Archived        bool                   `json:"archived"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
	History         []StageHistoryResponse `json:"history"`
}

// ToJobResponse maps a job with history to its response shape.
func ToJobResponse(jwh service.JobWithHistory) JobResponse {
	history := make([]StageHistoryResponse, 0, len(jwh.History))
	for _, entry := range jwh.History {
		history = append(history, toStageHistoryResponse(entry))
	}

	job := jwh.Job
	return JobResponse{
		ID:              job.ID,
		LeadID:          job.LeadID,
		ProductionStage: job.ProductionStage,
		CardID:          job.CardID,
		CardURL:         job.CardURL,
		Active:          job.Active,
		Archived:        job.Archived,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
		History:         history,
	}
}

func toStageHistoryResponse(entry repository.StageHistoryEntry) StageHistoryResponse {
	return StageHistoryResponse{
		Stage:     entry.Stage,
		EnteredAt: entry.EnteredAt,
		ExitedAt:  entry.ExitedAt,
	}
}
