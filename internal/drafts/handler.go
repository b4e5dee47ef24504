package drafts

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homeshield_backend/platform/config"
	"homeshield_backend/platform/httpkit"
)

// SessionHeader carries the opaque draft session id generated by the website.
const SessionHeader = "X-Draft-Session"

// maxDraftBytes caps a single draft payload.
const maxDraftBytes = 64 << 10

// FormConsultation and FormHomeDetails are the two resumable website forms.
const (
	FormConsultation = "consultation"
	FormHomeDetails  = "home-details"
)

// Handler serves the draft save and resume endpoints.
type Handler struct {
	store  Store
	config config.DraftStoreConfig
}

// NewHandler creates a new drafts handler.
func NewHandler(store Store, cfg config.DraftStoreConfig) *Handler {
	return &Handler{store: store, config: cfg}
}

func validForm(form string) bool {
	return form == FormConsultation || form == FormHomeDetails
}

func (h *Handler) sessionID(c *gin.Context) (string, bool) {
	sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
	if sessionID == "" || len(sessionID) > 128 {
		httpkit.Error(c, http.StatusBadRequest, "missing or invalid draft session header", nil)
		return "", false
	}
	return sessionID, true
}

// Get handles GET /drafts/:form.
func (h *Handler) Get(c *gin.Context) {
	form := c.Param("form")
	if !validForm(form) {
		httpkit.Error(c, http.StatusNotFound, "unknown form", nil)
		return
	}
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	payload, err := h.store.Get(c.Request.Context(), sessionID, form)
	if errors.Is(err, ErrNotFound) {
		httpkit.Error(c, http.StatusNotFound, "no draft saved", nil)
		return
	}
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "could not load draft", nil)
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// Put handles PUT /drafts/:form. The body is stored opaquely, the website
// owns the draft shape.
func (h *Handler) Put(c *gin.Context) {
	form := c.Param("form")
	if !validForm(form) {
		httpkit.Error(c, http.StatusNotFound, "unknown form", nil)
		return
	}
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDraftBytes+1))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read request body", nil)
		return
	}
	if len(payload) == 0 {
		httpkit.Error(c, http.StatusBadRequest, "draft body is empty", nil)
		return
	}
	if len(payload) > maxDraftBytes {
		httpkit.Error(c, http.StatusRequestEntityTooLarge, "draft too large", nil)
		return
	}

	if err := h.store.Put(c.Request.Context(), sessionID, form, payload, h.config.GetDraftTTL()); err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "could not save draft", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /drafts/:form.
func (h *Handler) Delete(c *gin.Context) {
	form := c.Param("form")
	if !validForm(form) {
		httpkit.Error(c, http.StatusNotFound, "unknown form", nil)
		return
	}
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), sessionID, form); err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "could not delete draft", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
