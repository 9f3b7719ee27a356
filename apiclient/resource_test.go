package apiclient

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chronogate/chronogate/errors"
)

func newResourceTestClient(t *testing.T, handler http.HandlerFunc) *ResourceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewResourceClient(ResourceConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewResourceClient: %v", err)
	}
	return c
}

func TestResourceClient_GetCurrentTime(t *testing.T) {
	c := newResourceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/current_time" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"current_time": "2026-03-14T09:26:53Z"})
	})

	value, err := c.GetCurrentTime(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("GetCurrentTime: %v", err)
	}
	if value != "2026-03-14T09:26:53Z" {
		t.Fatalf("current_time = %q", value)
	}
}

func TestResourceClient_GetEpochTime(t *testing.T) {
	c := newResourceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/epoch_time" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]int64{"epoch_time": 1700000000})
	})

	value, err := c.GetEpochTime(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("GetEpochTime: %v", err)
	}
	if value != 1700000000 {
		t.Fatalf("epoch_time = %d", value)
	}
}

func TestResourceClient_PermissionDenied(t *testing.T) {
	c := newResourceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusForbidden, errors.CodePermissionDenied,
			"User bob is not allowed to access current_time")
	})

	_, err := c.GetCurrentTime(context.Background(), "tok-123")
	if !errors.HasCode(err, errors.CodePermissionDenied) {
		t.Fatalf("got %v, want permission_denied", err)
	}
}

func TestResourceClient_ExpiredTokenEnvelopeBeatsStatus(t *testing.T) {
	c := newResourceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, errors.CodeAccessTokenExpired,
			"Access token expired")
	})

	_, err := c.GetEpochTime(context.Background(), "tok-123")
	if !errors.HasCode(err, errors.CodeAccessTokenExpired) {
		t.Fatalf("got %v, want access_token_expired", err)
	}
}

func TestResourceClient_MissingResourceField(t *testing.T) {
	c := newResourceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"something_else": "x"})
	})

	_, err := c.GetResource(context.Background(), "current_time", "tok-123")
	var re *ResponseError
	if !stderrors.As(err, &re) {
		t.Fatalf("got %v, want a ResponseError", err)
	}
	if re.Field != "current_time" {
		t.Fatalf("Field = %q, want current_time", re.Field)
	}
}

func TestResourceClient_WrongValueType(t *testing.T) {
	c := newResourceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"epoch_time": "not-a-number"})
	})

	_, err := c.GetEpochTime(context.Background(), "tok-123")
	if !IsIncorrectResponse(err) {
		t.Fatalf("got %v, want a ResponseError", err)
	}
}
