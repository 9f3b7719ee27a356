// Package oauth2 implements the token service: password-grant issuance of
// self-contained HMAC-signed tokens and their verification.
//
// Tokens are stateless; nothing is stored server-side. Validity is decided
// purely by signature and claim checks at verification time.
package oauth2

import (
	stderrors "errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/chronogate/chronogate/authz"
	"github.com/chronogate/chronogate/errors"
	"github.com/chronogate/chronogate/logger"
	"github.com/chronogate/chronogate/registry"
)

// GrantTypePassword is the only supported grant type.
const GrantTypePassword = "password"

var signingMethod = gojwt.SigningMethodHS256

// Service issues and verifies access tokens.
type Service struct {
	cfg  Config
	apps registry.Store
	log  *logger.Logger
	now  func() time.Time
}

// NewService creates a token service backed by the given application store.
func NewService(cfg Config, apps registry.Store, log *logger.Logger) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Service{
		cfg:  cfg,
		apps: apps,
		log:  log.WithComponent("oauth2"),
		now:  time.Now,
	}, nil
}

// IssueToken validates the grant type and client credentials and returns a
// signed token for username. Grant-type validation runs strictly first so
// wrong-grant requests never touch the registry. Unknown client and secret
// mismatch collapse into one external error to avoid leaking which check
// failed.
func (s *Service) IssueToken(grantType, clientID, clientSecret, username string) (string, error) {
	if grantType != GrantTypePassword {
		s.log.Warn("Token request has unsupported grant type",
			logger.Fields(logger.FieldGrantType, grantType))
		return "", errors.UnsupportedGrantType(grantType)
	}

	app, found := s.apps.Get(clientID)
	if !found || app.ClientSecret != clientSecret {
		if !found {
			s.log.Warn("Application with that client id not found",
				logger.Fields(logger.FieldClientID, clientID))
		} else {
			s.log.Warn("Client secrets don't match",
				logger.Fields(logger.FieldClientID, clientID))
		}
		return "", errors.InvalidClient(clientID)
	}

	// The username would normally be checked against a user store here.
	// Access tokens are granted to anyone with valid client credentials,
	// so the username becomes the subject as-is.
	userID := username

	return s.createToken(userID, clientID, authz.NewScopeSet(s.cfg.DefaultScope...))
}

// GetTokenInfo decodes and signature-verifies a token. The jwt library's own
// expiry check is authoritative; expires_at and issued_at are not compared
// again here.
func (s *Service) GetTokenInfo(token string) (*AccessTokenInfo, error) {
	claims := gojwt.MapClaims{}
	_, err := gojwt.ParseWithClaims(token, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{signingMethod.Alg()}),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if stderrors.Is(err, gojwt.ErrTokenExpired) {
			s.log.Info("Token expired", logger.ErrorFields(err))
			return nil, errors.AccessTokenExpired()
		}
		s.log.Warn("Token decoding failed", logger.ErrorFields(err))
		return nil, errors.InvalidAccessToken("").WithCause(err)
	}

	info, err := infoFromClaims(claims)
	if err != nil {
		s.log.Warn("Token payload doesn't contain all required claims with proper types")
		return nil, err
	}
	return info, nil
}

// createToken builds and signs the claims for a fresh token.
func (s *Service) createToken(userID, clientID string, scope authz.ScopeSet) (string, error) {
	issuedAt := s.now().Unix()
	info := &AccessTokenInfo{
		UserID:    userID,
		ClientID:  clientID,
		IssuerURL: s.cfg.IssuerURL,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt + int64(s.cfg.TokenLifetime/time.Second),
		Scope:     scope,
	}

	token := gojwt.NewWithClaims(signingMethod, info.toClaims())
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("oauth2: sign token: %w", err)
	}
	return signed, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != signingMethod.Alg() {
		return nil, fmt.Errorf("oauth2: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}
