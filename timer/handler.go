package timer

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chronogate/chronogate/errors"
	"github.com/chronogate/chronogate/server"
)

const bearerPrefix = "Bearer "

// Handler exposes the time resources over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates an HTTP handler for the timer service.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the resource endpoints on the engine.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/current_time", h.GetCurrentTime)
	r.GET("/v1/epoch_time", h.GetEpochTime)
}

// GetCurrentTime handles GET /v1/current_time.
func (h *Handler) GetCurrentTime(c *gin.Context) {
	token, err := tokenFromHeader(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	currentTime, err := h.svc.CurrentTime(c.Request.Context(), token)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, gin.H{ResourceCurrentTime: currentTime.Format(time.RFC3339)})
}

// GetEpochTime handles GET /v1/epoch_time.
func (h *Handler) GetEpochTime(c *gin.Context) {
	token, err := tokenFromHeader(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	epochTime, err := h.svc.EpochTime(c.Request.Context(), token)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, gin.H{ResourceEpochTime: epochTime})
}

// tokenFromHeader extracts the bearer token. A missing or malformed header
// fails the request before any token travels onward.
func tokenFromHeader(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.InvalidRequest("Authorization header is missing")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", errors.InvalidRequest(
			"Authorization header has invalid format: it must start with 'Bearer'")
	}
	return header[len(bearerPrefix):], nil
}
