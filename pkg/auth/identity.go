package auth

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/raktar-project/raktar/pkg/log"
	"github.com/raktar-project/raktar/pkg/types"
)

// identityClaims are the claims of interest in the identity provider's
// token. The provider assigns each user its registry id in the
// autogen_id claim during sign-in.
type identityClaims struct {
	AutogenID string `json:"autogen_id"`
	jwt.RegisteredClaims
}

// ParseIdentity extracts the authenticated principal from an identity
// provider JWT. The signature is not verified here: the token has already
// been validated by the SSO gateway in front of the service, so only the
// claims are read.
func ParseIdentity(token string) (types.AuthenticatedUser, error) {
	claims := &identityClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return types.AuthenticatedUser{}, fmt.Errorf("failed to parse identity token: %w", err)
	}

	id, err := strconv.ParseUint(claims.AutogenID, 10, 32)
	if err != nil {
		return types.AuthenticatedUser{}, fmt.Errorf("identity token has no usable autogen_id claim: %w", err)
	}

	return types.AuthenticatedUser{ID: types.UserID(id)}, nil
}

// IdentityAuthenticator gates the management endpoints with the identity
// provider's JWT. With allowAnonymous set (local development), requests
// without a usable identity are forwarded with no principal attached so
// the frontend can still introspect the API.
func IdentityAuthenticator(allowAnonymous bool) func(http.Handler) http.Handler {
	logger := log.WithComponent("auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := ParseIdentity(r.Header.Get("Authorization"))
			if err != nil {
				if allowAnonymous {
					next.ServeHTTP(w, r)
					return
				}
				logger.Warn().Err(err).Msg("failed to get claims from token")
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
