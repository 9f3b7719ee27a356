package timer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/chronogate/chronogate/apiclient"
	"github.com/chronogate/chronogate/errors"
	"github.com/chronogate/chronogate/oauth2"
	"github.com/chronogate/chronogate/registry"
)

const testSecret = "604fe435c2a4d63046741c572023c448b76af554c824a2065d53563fac168cd8"

// testStack wires a real token service behind an httptest server and a
// resource handler introspecting against it, the way the deployed services
// talk to each other.
type testStack struct {
	engine *gin.Engine
	tokens *oauth2.Service
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	apps := registry.NewInMemStore(registry.Application{
		ClientID:     "1234",
		ClientSecret: "qwerty",
	})
	tokens, err := oauth2.NewService(oauth2.Config{Secret: testSecret}, apps, nil)
	if err != nil {
		t.Fatalf("oauth2.NewService: %v", err)
	}
	authEngine := gin.New()
	oauth2.NewHandler(tokens).RegisterRoutes(authEngine)
	authSrv := httptest.NewServer(authEngine)
	t.Cleanup(authSrv.Close)

	authClient, err := apiclient.NewAuthClient(apiclient.AuthConfig{BaseURL: authSrv.URL})
	if err != nil {
		t.Fatalf("NewAuthClient: %v", err)
	}

	engine := gin.New()
	NewHandler(NewService(authClient, nil, nil)).RegisterRoutes(engine)
	return &testStack{engine: engine, tokens: tokens}
}

func (s *testStack) issueToken(t *testing.T) string {
	t.Helper()
	token, err := s.tokens.IssueToken(oauth2.GrantTypePassword, "1234", "qwerty", "bob")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return token
}

// signToken crafts a token outside the issuance path to control its scope
// and expiry.
func signToken(t *testing.T, scope string, expiresAt time.Time) string {
	t.Helper()
	now := time.Now()
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub":   "bob",
		"iss":   "http://localhost:5001/v1/token",
		"cid":   "1234",
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
		"scope": scope,
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func (s *testStack) get(t *testing.T, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func envelopeFrom(t *testing.T, rec *httptest.ResponseRecorder) errors.Envelope {
	t.Helper()
	env, ok := errors.DecodeEnvelope(rec.Body.Bytes())
	if !ok {
		t.Fatalf("body %q is not an error envelope", rec.Body.String())
	}
	return env
}

func TestHandler_CurrentTime_OK(t *testing.T) {
	s := newTestStack(t)
	token := s.issueToken(t)

	rec := s.get(t, "/v1/current_time", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, body["current_time"]); err != nil {
		t.Fatalf("current_time %q is not RFC 3339: %v", body["current_time"], err)
	}
}

func TestHandler_EpochTime_OK(t *testing.T) {
	s := newTestStack(t)
	token := s.issueToken(t)

	before := time.Now().Unix()
	rec := s.get(t, "/v1/epoch_time", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got := body["epoch_time"]; got < before || got > time.Now().Unix() {
		t.Fatalf("epoch_time = %d outside the request window", got)
	}
}

func TestHandler_MissingAuthorizationHeader(t *testing.T) {
	s := newTestStack(t)

	rec := s.get(t, "/v1/current_time", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env := envelopeFrom(t, rec); env.Error != errors.CodeInvalidRequest {
		t.Fatalf("error = %q, want invalid_request", env.Error)
	}
}

func TestHandler_MalformedAuthorizationHeader(t *testing.T) {
	s := newTestStack(t)
	token := s.issueToken(t)

	rec := s.get(t, "/v1/current_time", "Token "+token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env := envelopeFrom(t, rec); env.Error != errors.CodeInvalidRequest {
		t.Fatalf("error = %q, want invalid_request", env.Error)
	}
}

func TestHandler_InvalidToken(t *testing.T) {
	s := newTestStack(t)

	rec := s.get(t, "/v1/epoch_time", "Bearer garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env := envelopeFrom(t, rec); env.Error != errors.CodeInvalidAccessToken {
		t.Fatalf("error = %q, want invalid_access_token", env.Error)
	}
}

func TestHandler_ExpiredToken(t *testing.T) {
	s := newTestStack(t)
	token := signToken(t, "current_time epoch_time", time.Now().Add(-time.Minute))

	rec := s.get(t, "/v1/epoch_time", "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env := envelopeFrom(t, rec); env.Error != errors.CodeAccessTokenExpired {
		t.Fatalf("error = %q, want access_token_expired", env.Error)
	}
}

func TestHandler_ScopeDenied(t *testing.T) {
	s := newTestStack(t)
	token := signToken(t, "epoch_time", time.Now().Add(time.Hour))

	// The narrowed scope still covers epoch_time.
	rec := s.get(t, "/v1/epoch_time", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("epoch_time status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = s.get(t, "/v1/current_time", "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("current_time status = %d, want 403", rec.Code)
	}
	if env := envelopeFrom(t, rec); env.Error != errors.CodePermissionDenied {
		t.Fatalf("error = %q, want permission_denied", env.Error)
	}
}
