// Package timer implements the protected time resources served by the
// resource service. Every request carries a bearer token that is introspected
// against the token service before the scope guard decides access.
package timer

import (
	"context"
	"time"

	"github.com/chronogate/chronogate/apiclient"
	"github.com/chronogate/chronogate/authz"
	"github.com/chronogate/chronogate/logger"
)

// Resource names served by this service.
const (
	ResourceCurrentTime = "current_time"
	ResourceEpochTime   = "epoch_time"
)

// Introspector resolves a token into its validated claims view.
type Introspector interface {
	GetAccessTokenInfo(ctx context.Context, accessToken string) (*apiclient.TokenInfo, error)
}

// Service serves the time resources behind scope checks.
type Service struct {
	auth    Introspector
	checker authz.Checker
	log     *logger.Logger
	now     func() time.Time
}

// NewService creates a timer service.
func NewService(auth Introspector, checker authz.Checker, log *logger.Logger) *Service {
	if checker == nil {
		checker = authz.Guard{}
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Service{
		auth:    auth,
		checker: checker,
		log:     log.WithComponent("timer"),
		now:     time.Now,
	}
}

// CurrentTime returns the current UTC time if the token scope covers
// current_time.
func (s *Service) CurrentTime(ctx context.Context, accessToken string) (time.Time, error) {
	if err := s.authorize(ctx, accessToken, ResourceCurrentTime); err != nil {
		return time.Time{}, err
	}
	return s.now().UTC(), nil
}

// EpochTime returns the current unix timestamp if the token scope covers
// epoch_time.
func (s *Service) EpochTime(ctx context.Context, accessToken string) (int64, error) {
	if err := s.authorize(ctx, accessToken, ResourceEpochTime); err != nil {
		return 0, err
	}
	return s.now().Unix(), nil
}

// authorize introspects the token and checks the requested resource against
// its scope.
func (s *Service) authorize(ctx context.Context, accessToken, resource string) error {
	info, err := s.auth.GetAccessTokenInfo(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.checker.CheckScope(info.ScopeSet(), resource); err != nil {
		s.log.Warn("Resource not in the token scope", logger.Fields(
			logger.FieldUserID, info.UserID,
			logger.FieldResource, resource,
			logger.FieldScope, info.Scope,
		))
		return err
	}
	return nil
}
