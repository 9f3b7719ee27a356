package oauth2

import (
	"github.com/gin-gonic/gin"

	"github.com/chronogate/chronogate/errors"
	"github.com/chronogate/chronogate/server"
)

// IssueTokenRequest is the POST /v1/token body. The password field is
// accepted for wire compatibility but never verified.
type IssueTokenRequest struct {
	GrantType    string `json:"grant_type" binding:"required"`
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password"`
}

// TokenInfoRequest is the GET /v1/token body.
type TokenInfoRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// IssueTokenResponse is the successful POST /v1/token body.
type IssueTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// TokenInfoResponse is the successful GET /v1/token body.
type TokenInfoResponse struct {
	UserID    string   `json:"user_id"`
	ClientID  string   `json:"client_id"`
	IssuerURL string   `json:"issuer_url"`
	IssuedAt  int64    `json:"issued_at"`
	ExpiresAt int64    `json:"expires_at"`
	Scope     []string `json:"scope"`
}

// Handler exposes the token service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates an HTTP handler for the token service.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the token endpoints on the engine.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/token", h.IssueToken)
	r.GET("/v1/token", h.GetTokenInfo)
}

// IssueToken handles POST /v1/token.
func (h *Handler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidRequest(
			"Request schema validation failed: "+err.Error()))
		return
	}

	token, err := h.svc.IssueToken(req.GrantType, req.ClientID, req.ClientSecret, req.Username)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, IssueTokenResponse{AccessToken: token})
}

// GetTokenInfo handles GET /v1/token (introspection).
func (h *Handler) GetTokenInfo(c *gin.Context) {
	var req TokenInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidRequest(
			"Request schema validation failed: "+err.Error()))
		return
	}

	info, err := h.svc.GetTokenInfo(req.AccessToken)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, TokenInfoResponse{
		UserID:    info.UserID,
		ClientID:  info.ClientID,
		IssuerURL: info.IssuerURL,
		IssuedAt:  info.IssuedAt,
		ExpiresAt: info.ExpiresAt,
		Scope:     []string(info.Scope),
	})
}
