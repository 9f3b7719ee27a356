package oauth2

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/chronogate/chronogate/errors"
	"github.com/chronogate/chronogate/registry"
)

const testSecret = "604fe435c2a4d63046741c572023c448b76af554c824a2065d53563fac168cd8"

func newTestService(t *testing.T) *Service {
	t.Helper()
	apps := registry.NewInMemStore(registry.Application{
		ClientID:     "1234",
		ClientSecret: "qwerty",
	})
	svc, err := NewService(Config{Secret: testSecret}, apps, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func frozenClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestIssueToken_UnsupportedGrantType(t *testing.T) {
	svc := newTestService(t)

	// Grant type is checked before anything else, so the error is the same
	// whether the client credentials are valid or not.
	for _, secret := range []string{"qwerty", "wrong"} {
		_, err := svc.IssueToken("client_credentials", "1234", secret, "bob")
		if !errors.HasCode(err, errors.CodeUnsupportedGrantType) {
			t.Fatalf("secret %q: got %v, want unsupported_grant_type", secret, err)
		}
	}
}

func TestIssueToken_InvalidClientIndistinguishable(t *testing.T) {
	svc := newTestService(t)

	_, unknownErr := svc.IssueToken(GrantTypePassword, "no-such-client", "qwerty", "bob")
	_, mismatchErr := svc.IssueToken(GrantTypePassword, "1234", "wrong-secret", "bob")

	if !errors.HasCode(unknownErr, errors.CodeInvalidClient) {
		t.Fatalf("unknown client: got %v, want invalid_client", unknownErr)
	}
	if !errors.HasCode(mismatchErr, errors.CodeInvalidClient) {
		t.Fatalf("secret mismatch: got %v, want invalid_client", mismatchErr)
	}

	unknown, _ := errors.AsAppError(unknownErr)
	mismatch, _ := errors.AsAppError(mismatchErr)
	if unknown.Description == mismatch.Description {
		return
	}
	// Descriptions embed the client id, so compare against the same id.
	_, again := svc.IssueToken(GrantTypePassword, "no-such-client", "other", "bob")
	sameID, _ := errors.AsAppError(again)
	if unknown.Description != sameID.Description {
		t.Fatalf("unknown-client errors differ for the same id: %q vs %q",
			unknown.Description, sameID.Description)
	}
}

func TestIssueToken_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	issuedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	svc.now = frozenClock(issuedAt)

	token, err := svc.IssueToken(GrantTypePassword, "1234", "qwerty", "bob")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatal("IssueToken returned an empty token")
	}

	info, err := svc.GetTokenInfo(token)
	if err != nil {
		t.Fatalf("GetTokenInfo: %v", err)
	}
	if info.UserID != "bob" {
		t.Errorf("UserID = %q, want bob", info.UserID)
	}
	if info.ClientID != "1234" {
		t.Errorf("ClientID = %q, want 1234", info.ClientID)
	}
	if info.IssuerURL != defaultIssuerURL {
		t.Errorf("IssuerURL = %q, want %q", info.IssuerURL, defaultIssuerURL)
	}
	if info.IssuedAt != issuedAt.Unix() {
		t.Errorf("IssuedAt = %d, want %d", info.IssuedAt, issuedAt.Unix())
	}
	if want := issuedAt.Unix() + 300; info.ExpiresAt != want {
		t.Errorf("ExpiresAt = %d, want %d", info.ExpiresAt, want)
	}
	if got := info.Scope.String(); got != "current_time epoch_time" {
		t.Errorf("Scope = %q, want %q", got, "current_time epoch_time")
	}
}

func TestGetTokenInfo_Expired(t *testing.T) {
	svc := newTestService(t)
	issuedAt := time.Unix(1_700_000_000, 0)
	svc.now = frozenClock(issuedAt)

	token, err := svc.IssueToken(GrantTypePassword, "1234", "qwerty", "bob")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	// Just before expiry the token is still good.
	svc.now = frozenClock(issuedAt.Add(299 * time.Second))
	if _, err := svc.GetTokenInfo(token); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	// From expires_at onward it is expired, the boundary included.
	for _, offset := range []time.Duration{300 * time.Second, 301 * time.Second} {
		svc.now = frozenClock(issuedAt.Add(offset))
		_, err = svc.GetTokenInfo(token)
		if !errors.HasCode(err, errors.CodeAccessTokenExpired) {
			t.Fatalf("at +%v: got %v, want access_token_expired", offset, err)
		}
	}
}

func TestGetTokenInfo_WrongSecret(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.IssueToken(GrantTypePassword, "1234", "qwerty", "bob")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	other := newTestService(t)
	other.cfg.Secret = "a-completely-different-secret"
	_, err = other.GetTokenInfo(token)
	if !errors.HasCode(err, errors.CodeInvalidAccessToken) {
		t.Fatalf("got %v, want invalid_access_token", err)
	}
}

func TestGetTokenInfo_Garbage(t *testing.T) {
	svc := newTestService(t)
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.GetTokenInfo(token)
		if !errors.HasCode(err, errors.CodeInvalidAccessToken) {
			t.Errorf("token %q: got %v, want invalid_access_token", token, err)
		}
	}
}

func TestGetTokenInfo_MissingClaims(t *testing.T) {
	svc := newTestService(t)
	now := time.Now()

	base := func() gojwt.MapClaims {
		return gojwt.MapClaims{
			"sub":   "bob",
			"iss":   defaultIssuerURL,
			"cid":   "1234",
			"iat":   now.Unix(),
			"exp":   now.Add(time.Hour).Unix(),
			"scope": "current_time epoch_time",
		}
	}

	cases := []struct {
		name   string
		mutate func(gojwt.MapClaims)
	}{
		{"missing sub", func(c gojwt.MapClaims) { delete(c, "sub") }},
		{"missing cid", func(c gojwt.MapClaims) { delete(c, "cid") }},
		{"missing iss", func(c gojwt.MapClaims) { delete(c, "iss") }},
		{"missing iat", func(c gojwt.MapClaims) { delete(c, "iat") }},
		{"missing scope", func(c gojwt.MapClaims) { delete(c, "scope") }},
		{"scope wrong type", func(c gojwt.MapClaims) { c["scope"] = 42 }},
		{"sub wrong type", func(c gojwt.MapClaims) { c["sub"] = 42 }},
		{"iat wrong type", func(c gojwt.MapClaims) { c["iat"] = "yesterday" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims := base()
			tc.mutate(claims)
			token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).
				SignedString([]byte(testSecret))
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			_, err = svc.GetTokenInfo(token)
			if !errors.HasCode(err, errors.CodeInvalidAccessToken) {
				t.Fatalf("got %v, want invalid_access_token", err)
			}
		})
	}
}

func TestGetTokenInfo_RejectsOtherSigningMethod(t *testing.T) {
	svc := newTestService(t)
	now := time.Now()
	claims := gojwt.MapClaims{
		"sub":   "bob",
		"iss":   defaultIssuerURL,
		"cid":   "1234",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"scope": "current_time",
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).
		SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = svc.GetTokenInfo(token)
	if !errors.HasCode(err, errors.CodeInvalidAccessToken) {
		t.Fatalf("got %v, want invalid_access_token", err)
	}
}

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService(Config{}, registry.NewInMemStore(), nil)
	if err == nil {
		t.Fatal("NewService accepted an empty secret")
	}
}
