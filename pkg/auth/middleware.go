package auth

import (
	"context"
	"net/http"

	"github.com/raktar-project/raktar/pkg/log"
	"github.com/raktar-project/raktar/pkg/types"
)

// TokenGetter looks up a stored token by its raw credential bytes.
// Implemented by the token repository.
type TokenGetter interface {
	GetToken(token []byte) (*types.Token, error)
}

type userContextKey struct{}

// WithUser attaches the authenticated principal to the context.
func WithUser(ctx context.Context, user types.AuthenticatedUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext extracts the authenticated principal, if any.
func UserFromContext(ctx context.Context) (types.AuthenticatedUser, bool) {
	user, ok := ctx.Value(userContextKey{}).(types.AuthenticatedUser)
	return user, ok
}

// TokenAuthenticator gates the cargo-facing endpoints with registry
// tokens. The raw bytes of the Authorization header are the lookup key:
// cargo sends the bare token, so no scheme prefix is stripped.
func TokenAuthenticator(tokens TokenGetter) func(http.Handler) http.Handler {
	logger := log.WithComponent("auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header := r.Header.Get("Authorization"); header != "" {
				token, err := tokens.GetToken([]byte(header))
				switch {
				case err != nil:
					logger.Error().Err(err).Msg("failed to look up token")
				case token != nil:
					user := types.AuthenticatedUser{ID: token.UserID}
					next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
					return
				}
			}

			logger.Warn().Str("path", r.URL.Path).Msg("unauthorized attempt to access registry")
			writeUnauthorized(w)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"errors":[{"detail":"Unauthorized"}]}`))
}
