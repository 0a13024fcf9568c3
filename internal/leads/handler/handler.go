// Package handler exposes the leads module over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/internal/leads/service"
	"leadtrack_backend/internal/leads/transport"
	"leadtrack_backend/platform/httpkit"
	"leadtrack_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the authenticated lead routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id", h.Get)
	rg.POST("/:id/assign", h.Assign)
	rg.POST("/:id/status", h.ChangeStatus)
}

// RegisterIntakeRoutes mounts the public intake route.
func (h *Handler) RegisterIntakeRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.Intake)
}

func (h *Handler) Intake(c *gin.Context) {
	var req transport.IntakeLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Intake(c.Request.Context(), service.IntakeParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToLeadResponse(lead))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) Assign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	actor, ok := callerActor(c)
	if !ok {
		return
	}

	repID, err := h.svc.Assign(c.Request.Context(), id, actor)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.AssignResponse{AssignedRepID: repID})
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	actor, ok := callerActor(c)
	if !ok {
		return
	}

	if err := h.svc.ChangeStatus(c.Request.Context(), id, req.Status, actor); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

// callerActor builds the human actor from the authenticated identity.
// Writes the error response itself when the identity is missing.
func callerActor(c *gin.Context) (domain.Actor, bool) {
	ident := httpkit.GetIdentity(c)
	if ident == nil || !ident.IsAuthenticated() {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return domain.Actor{}, false
	}
	return domain.HumanActor(ident.UserID(), ident.Roles()), true
}
