// Package handler exposes the forms HTTP endpoints: a public surface for
// rendering and submitting forms, and an authenticated admin surface for
// managing definitions.
package handler

import (
	"net/http"

	"leadcapture_backend/internal/forms/service"
	"leadcapture_backend/internal/forms/transport"
	"leadcapture_backend/platform/httpkit"
	"leadcapture_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgInvalidDefinition = "Invalid form definition"

// Handler serves the admin form management endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates the admin forms handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers admin form routes under /forms.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:formId", h.Get)
	rg.PUT("/:formId", h.Update)
	rg.DELETE("/:formId", h.Delete)
}

// List returns summaries of every form.
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.ListForms(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// Get returns one full form definition.
func (h *Handler) Get(c *gin.Context) {
	def, err := h.svc.GetDefinition(c.Request.Context(), c.Param("formId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, def)
}

// Create stores a new form definition.
func (h *Handler) Create(c *gin.Context) {
	var req transport.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidDefinition, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidDefinition, nil)
		return
	}

	created, err := h.svc.CreateForm(c.Request.Context(), req.Definition)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, created)
}

// Update replaces an existing form definition. The path ID wins over any
// ID in the body.
func (h *Handler) Update(c *gin.Context) {
	var req transport.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidDefinition, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidDefinition, nil)
		return
	}
	req.Definition.ID = c.Param("formId")

	if err := h.svc.UpdateForm(c.Request.Context(), req.Definition); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, req.Definition)
}

// Delete removes a form definition. Stored leads are unaffected.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.DeleteForm(c.Request.Context(), c.Param("formId")); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
