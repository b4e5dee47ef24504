// Package handler provides HTTP handlers for the leads module.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeshield_backend/internal/leads/service"
	"homeshield_backend/internal/leads/transport"
	"homeshield_backend/platform/httpkit"
	"homeshield_backend/platform/validator"
)

// PublicHandler serves the unauthenticated website endpoints.
type PublicHandler struct {
	service   *service.Service
	validator *validator.Validator
}

// NewPublicHandler creates a new public leads handler.
func NewPublicHandler(svc *service.Service, v *validator.Validator) *PublicHandler {
	return &PublicHandler{service: svc, validator: v}
}

// SubmitConsultation handles POST /consultations.
func (h *PublicHandler) SubmitConsultation(c *gin.Context) {
	var req transport.SubmitConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	resp, err := h.service.SubmitConsultation(c.Request.Context(), req, c.ClientIP())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, resp)
}

// PreviewRecommendations handles POST /recommendations. It is side-effect
// free, the questionnaire calls it on every answer change.
func (h *PublicHandler) PreviewRecommendations(c *gin.Context) {
	var req transport.RecommendationPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	httpkit.OK(c, h.service.Preview(req))
}
