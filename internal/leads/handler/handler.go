package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homeshield_backend/internal/leads/service"
	"homeshield_backend/internal/leads/transport"
	"homeshield_backend/platform/httpkit"
	"homeshield_backend/platform/validator"
)

// Handler serves the authenticated dashboard endpoints.
type Handler struct {
	service   *service.Service
	validator *validator.Validator
}

// NewHandler creates a new staff leads handler.
func NewHandler(svc *service.Service, v *validator.Validator) *Handler {
	return &Handler{service: svc, validator: v}
}

// List handles GET /leads?status=&page=&pageSize=.
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))

	resp, err := h.service.List(c.Request.Context(), c.Query("status"), page, pageSize)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Stats handles GET /leads/stats.
func (h *Handler) Stats(c *gin.Context) {
	resp, err := h.service.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Get handles GET /leads/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// UpdateStatus handles PATCH /leads/:id/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	var req transport.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	ident := httpkit.MustGetIdentity(c)
	if ident == nil {
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, ident.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
