package apiclient

import (
	"context"
	"net/http"
	"time"

	"github.com/chronogate/chronogate/authz"
	"github.com/chronogate/chronogate/errors"
	"github.com/chronogate/chronogate/httpclient"
)

// Recognized wire codes per token-service endpoint.
var (
	issueTokenCodes = newCodeSet(
		errors.CodeInvalidRequest,
		errors.CodeInvalidClient,
		errors.CodeUnsupportedGrantType,
	)
	introspectionCodes = newCodeSet(
		errors.CodeInvalidRequest,
		errors.CodeInvalidAccessToken,
		errors.CodeAccessTokenExpired,
	)
)

// AuthConfig configures the token-service client.
type AuthConfig struct {
	// BaseURL is the token service base URL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds each outbound call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// ClientID/ClientSecret identify the calling application (token requests
	// only; introspection needs neither).
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
}

// TokenInfo is the introspection result trusted after validation.
type TokenInfo struct {
	UserID string   `json:"user_id" validate:"required"`
	Scope  []string `json:"scope" validate:"required"`
}

// ScopeSet returns the token scope as an authz.ScopeSet.
func (i *TokenInfo) ScopeSet() authz.ScopeSet {
	return authz.NewScopeSet(i.Scope...)
}

// AuthClient talks to the token service.
type AuthClient struct {
	p   pipeline
	cfg AuthConfig
}

// NewAuthClient creates a token-service client.
func NewAuthClient(cfg AuthConfig) (*AuthClient, error) {
	p, err := newPipeline(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}, "auth_api")
	if err != nil {
		return nil, err
	}
	return &AuthClient{p: p, cfg: cfg}, nil
}

type issueTokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

type issueTokenResponse struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// RequestAccessToken obtains a token on behalf of username using the
// configured client credentials. The password travels with the request but
// the issuer does not verify it.
func (c *AuthClient) RequestAccessToken(ctx context.Context, grantType, username, password string) (string, error) {
	var out issueTokenResponse
	err := c.p.doJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/v1/token",
		Body: issueTokenRequest{
			GrantType:    grantType,
			ClientID:     c.cfg.ClientID,
			ClientSecret: c.cfg.ClientSecret,
			Username:     username,
			Password:     password,
		},
	}, issueTokenCodes, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

type tokenInfoRequest struct {
	AccessToken string `json:"access_token"`
}

// GetAccessTokenInfo introspects a token against the token service and
// returns the validated claims view.
func (c *AuthClient) GetAccessTokenInfo(ctx context.Context, accessToken string) (*TokenInfo, error) {
	var out TokenInfo
	err := c.p.doJSON(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/v1/token",
		Body:   tokenInfoRequest{AccessToken: accessToken},
	}, introspectionCodes, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
