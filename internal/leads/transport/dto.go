// Package transport defines the HTTP request and response shapes for the
// leads module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/leads/repository"
)

// IntakeLeadRequest is the public intake payload.
type IntakeLeadRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required,min=6,max=32"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=4000"`
}

// ChangeStatusRequest sets a lead's target status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignResponse reports the representative an assignment resolved to.
type AssignResponse struct {
	AssignedRepID uuid.UUID `json:"assignedRepId"`
}

// LeadResponse is the outward shape of a lead.
type LeadResponse struct {
	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Company       *string    `json:"company,omitempty"`
	Status        string     `json:"status"`
	SalesStatus   string     `json:"salesStatus"`
	AssignedRepID *uuid.UUID `json:"assignedRepId,omitempty"`
	AssignedAt    *time.Time `json:"assignedAt,omitempty"`
	AssignedBy    *string    `json:"assignedBy,omitempty"`
	CardID        *string    `json:"cardId,omitempty"`
	CardURL       *string    `json:"cardUrl,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ToLeadResponse maps a repository lead to its response shape.
func ToLeadResponse(lead repository.Lead) LeadResponse {
	return LeadResponse{
		ID:            lead.ID,
		Code:          lead.Code,
		Name:          lead.Name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		Company:       lead.Company,
		Status:        lead.Status.String(),
		SalesStatus:   lead.SalesStatus.String(),
		AssignedRepID: lead.AssignedRepID,
		AssignedAt:    lead.AssignedAt,
		AssignedBy:    lead.AssignedBy,
		CardID:        lead.CardID,
		CardURL:       lead.CardURL,
		Notes:         lead.Notes,
		CreatedAt:     lead.CreatedAt,
		UpdatedAt:     lead.UpdatedAt,
	}
}
