package oauth2

import (
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/chronogate/chronogate/authz"
	"github.com/chronogate/chronogate/errors"
)

// Claim names embedded in signed tokens. Scope travels as a single
// space-joined string and is re-split on decode.
const (
	claimSubject   = "sub"
	claimIssuer    = "iss"
	claimClientID  = "cid"
	claimIssuedAt  = "iat"
	claimExpiresAt = "exp"
	claimScope     = "scope"
)

// AccessTokenInfo is the decoded, verified view of a token. It is produced
// fresh on every verification and never cached.
type AccessTokenInfo struct {
	UserID    string
	ClientID  string
	IssuerURL string
	IssuedAt  int64
	ExpiresAt int64
	Scope     authz.ScopeSet
}

// infoFromClaims validates claim presence and types, then builds an
// AccessTokenInfo. The jwt library only guarantees structural JSON validity
// (and the exp check), so domain-specific claim shapes are verified here;
// any miss is an invalid_access_token.
func infoFromClaims(claims gojwt.MapClaims) (*AccessTokenInfo, error) {
	strs := make(map[string]string, 4)
	for _, name := range []string{claimSubject, claimIssuer, claimClientID, claimScope} {
		v, ok := claims[name].(string)
		if !ok {
			return nil, errors.InvalidAccessToken("").
				WithDetail("claim", name)
		}
		strs[name] = v
	}

	nums := make(map[string]int64, 2)
	for _, name := range []string{claimIssuedAt, claimExpiresAt} {
		// encoding/json decodes JWT numbers as float64
		v, ok := claims[name].(float64)
		if !ok {
			return nil, errors.InvalidAccessToken("").
				WithDetail("claim", name)
		}
		nums[name] = int64(v)
	}

	return &AccessTokenInfo{
		UserID:    strs[claimSubject],
		ClientID:  strs[claimClientID],
		IssuerURL: strs[claimIssuer],
		IssuedAt:  nums[claimIssuedAt],
		ExpiresAt: nums[claimExpiresAt],
		Scope:     authz.ParseScope(strs[claimScope]),
	}, nil
}

// toClaims builds the signed payload for an AccessTokenInfo.
func (i *AccessTokenInfo) toClaims() gojwt.MapClaims {
	return gojwt.MapClaims{
		claimSubject:   i.UserID,
		claimIssuer:    i.IssuerURL,
		claimClientID:  i.ClientID,
		claimIssuedAt:  i.IssuedAt,
		claimExpiresAt: i.ExpiresAt,
		claimScope:     i.Scope.String(),
	}
}
