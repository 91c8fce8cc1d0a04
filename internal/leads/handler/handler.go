// Package handler exposes the dashboard lead endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadcapture_backend/internal/leads/repository"
	"leadcapture_backend/internal/leads/service"
	"leadcapture_backend/platform/httpkit"
)

const msgInvalidLeadID = "Invalid lead id"

// Handler serves the lead list and detail endpoints.
type Handler struct {
	svc    *service.Service
	scorer service.Scorer
}

func New(svc *service.Service, scorer service.Scorer) *Handler {
	return &Handler{svc: svc, scorer: scorer}
}

// RegisterRoutes registers lead routes under /leads.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:leadId", h.Get)
	rg.POST("/rescore", h.Rescore)
}

// List returns leads, filterable by form, status and minimum score.
func (h *Handler) List(c *gin.Context) {
	filter := repository.ListFilter{
		FormID: c.Query("formId"),
		Status: c.Query("status"),
	}
	if raw := c.Query("minScore"); raw != "" {
		if score, err := strconv.Atoi(raw); err == nil {
			filter.MinScore = &score
		}
	}
	if raw := c.Query("limit"); raw != "" {
		filter.Limit, _ = strconv.Atoi(raw)
	}
	if raw := c.Query("offset"); raw != "" {
		filter.Offset, _ = strconv.Atoi(raw)
	}

	items, err := h.svc.ListLeads(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// Get returns one lead with its full answers and metadata.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	lead, err := h.svc.GetLead(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// Rescore recomputes every lead's score with the current scoring rules.
// Used from the dashboard after scoring weights change.
func (h *Handler) Rescore(c *gin.Context) {
	updated, err := h.svc.RescoreAll(c.Request.Context(), h.scorer)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "Rescore failed", nil)
		return
	}
	httpkit.OK(c, gin.H{"updated": updated})
}
