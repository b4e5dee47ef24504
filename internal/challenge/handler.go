package challenge

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeshield_backend/platform/httpkit"
)

// VerifyRequest is the standalone verification request body.
type VerifyRequest struct {
	Token string `json:"token"`
}

// VerifyResponse reports the verification outcome.
type VerifyResponse struct {
	Success bool `json:"success"`
}

// Handler exposes challenge verification as a standalone endpoint so the
// website can pre-check a token before assembling the full submission.
type Handler struct {
	client *Client
}

// NewHandler creates a new challenge handler.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Verify handles POST /challenge/verify.
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := h.client.Verify(c.Request.Context(), req.Token, c.ClientIP()); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, VerifyResponse{Success: true})
}
