package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mediakite/catalogd/internal/catalogsrv/catcommon"
	"github.com/mediakite/catalogd/internal/common/httpx"
)

const (
	authHeaderPrefix = "Bearer "
	genericAuthError = "authentication failed"
)

// ContextMiddleware authenticates the request from its bearer token and
// attaches the principal to the context. All failures return the same
// generic 401.
func ContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.Ctx(ctx)

		// Skip authentication for test contexts
		if catcommon.GetTestContext(ctx) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Debug().Msg("missing authorization header")
			httpx.ErrUnAuthorized(genericAuthError).Send(w)
			return
		}
		if !strings.HasPrefix(authHeader, authHeaderPrefix) {
			logger.Debug().Msg("invalid authorization header format")
			httpx.ErrUnAuthorized(genericAuthError).Send(w)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, authHeaderPrefix))
		if token == "" {
			logger.Debug().Msg("empty token")
			httpx.ErrUnAuthorized(genericAuthError).Send(w)
			return
		}

		claims, err := ParseToken(ctx, token)
		if err != nil {
			logger.Debug().Err(err).Msg("token validation failed")
			httpx.ErrUnAuthorized(genericAuthError).Send(w)
			return
		}

		userID, parseErr := uuid.Parse(claims.Subject)
		if parseErr != nil {
			logger.Debug().Err(parseErr).Msg("invalid subject claim")
			httpx.ErrUnAuthorized(genericAuthError).Send(w)
			return
		}

		ctx = catcommon.SetPrincipal(ctx, &catcommon.Principal{
			UserID:   userID,
			Username: claims.Username,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
