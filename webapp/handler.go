// Package webapp is the front-end application: it obtains an access token on
// the caller's behalf and presents it to the resource service.
package webapp

import (
	"github.com/gin-gonic/gin"

	"github.com/chronogate/chronogate/apiclient"
	"github.com/chronogate/chronogate/logger"
	"github.com/chronogate/chronogate/oauth2"
	"github.com/chronogate/chronogate/server"
)

// Config configures the webapp's demo identity. The username becomes the
// token subject; the password is forwarded but never verified by the issuer.
type Config struct {
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
}

// ApplyDefaults fills in the demo identity.
func (c *Config) ApplyDefaults() {
	if c.Username == "" {
		c.Username = "bob"
	}
	if c.Password == "" {
		c.Password = "bob-pass"
	}
}

// Handler serves the unprotected front-end endpoints.
type Handler struct {
	auth     *apiclient.AuthClient
	resource *apiclient.ResourceClient
	cfg      Config
	log      *logger.Logger
}

// NewHandler creates the webapp handler.
func NewHandler(auth *apiclient.AuthClient, resource *apiclient.ResourceClient, cfg Config, log *logger.Logger) *Handler {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Handler{
		auth:     auth,
		resource: resource,
		cfg:      cfg,
		log:      log.WithComponent("webapp"),
	}
}

// RegisterRoutes mounts the front-end endpoints on the engine.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/current_time", h.GetCurrentTime)
	r.GET("/epoch_time", h.GetEpochTime)
}

// GetCurrentTime handles GET /current_time.
func (h *Handler) GetCurrentTime(c *gin.Context) {
	accessToken, err := h.requestAccessToken(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	currentTime, err := h.resource.GetCurrentTime(c.Request.Context(), accessToken)
	if err != nil {
		h.log.Warn("Resource request failed", logger.ErrorFields(err))
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, gin.H{"current_time": currentTime})
}

// GetEpochTime handles GET /epoch_time.
func (h *Handler) GetEpochTime(c *gin.Context) {
	accessToken, err := h.requestAccessToken(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	epochTime, err := h.resource.GetEpochTime(c.Request.Context(), accessToken)
	if err != nil {
		h.log.Warn("Resource request failed", logger.ErrorFields(err))
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, gin.H{"epoch_time": epochTime})
}

func (h *Handler) requestAccessToken(c *gin.Context) (string, error) {
	token, err := h.auth.RequestAccessToken(
		c.Request.Context(), oauth2.GrantTypePassword, h.cfg.Username, h.cfg.Password)
	if err != nil {
		h.log.Warn("Token request failed", logger.ErrorFields(err))
		return "", err
	}
	return token, nil
}
