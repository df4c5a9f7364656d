package db

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mediakite/catalogd/internal/common/httpx"
)

// LoadConnMiddleware attaches a database connection from the pool to the
// request context and returns it to the pool after the request is served.
func LoadConnMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a store already bound into the context (tests) wins over the pool
		if d, ok := r.Context().Value(ctxStoreKey).(DB_); ok && d != nil {
			next.ServeHTTP(w, r)
			return
		}
		conn := Conn(r.Context())
		if conn == nil {
			log.Ctx(r.Context()).Error().Msg("unable to get db connection")
			httpx.ErrApplicationError("unable to service request at this time").Send(w)
			return
		}
		ctx := context.WithValue(r.Context(), ctxDbKey, conn)
		// background context so a canceled request still releases the conn
		defer conn.Close(context.Background())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
