package apiclient

import (
	"context"
	"net/http"
	"time"

	"github.com/chronogate/chronogate/errors"
	"github.com/chronogate/chronogate/httpclient"
)

var resourceCodes = newCodeSet(
	errors.CodeInvalidRequest,
	errors.CodeInvalidAccessToken,
	errors.CodeAccessTokenExpired,
	errors.CodePermissionDenied,
)

// ResourceConfig configures the resource-service client.
type ResourceConfig struct {
	// BaseURL is the resource service base URL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds each outbound call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ResourceClient requests protected resources bearing an access token.
type ResourceClient struct {
	p pipeline
}

// NewResourceClient creates a resource-service client.
func NewResourceClient(cfg ResourceConfig) (*ResourceClient, error) {
	p, err := newPipeline(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}, "resource_api")
	if err != nil {
		return nil, err
	}
	return &ResourceClient{p: p}, nil
}

// GetResource fetches the named resource with the token as bearer
// credential. The response must carry exactly the field named after the
// resource; its absence raises a ResponseError naming it.
func (c *ResourceClient) GetResource(ctx context.Context, name, accessToken string) (any, error) {
	var out map[string]any
	err := c.p.doJSON(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/v1/" + name,
		Auth:   httpclient.BearerAuth(accessToken),
	}, resourceCodes, &out)
	if err != nil {
		return nil, err
	}

	value, ok := out[name]
	if !ok || value == nil {
		return nil, &ResponseError{Field: name, Message: "is missing"}
	}
	return value, nil
}

// GetCurrentTime fetches the current_time resource (ISO 8601 string).
func (c *ResourceClient) GetCurrentTime(ctx context.Context, accessToken string) (string, error) {
	value, err := c.GetResource(ctx, "current_time", accessToken)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", &ResponseError{Field: "current_time", Message: "has wrong type"}
	}
	return s, nil
}

// GetEpochTime fetches the epoch_time resource (unix seconds).
func (c *ResourceClient) GetEpochTime(ctx context.Context, accessToken string) (int64, error) {
	value, err := c.GetResource(ctx, "epoch_time", accessToken)
	if err != nil {
		return 0, err
	}
	// JSON numbers decode as float64
	f, ok := value.(float64)
	if !ok {
		return 0, &ResponseError{Field: "epoch_time", Message: "has wrong type"}
	}
	return int64(f), nil
}
