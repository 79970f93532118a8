package server

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/hayato-coosy/kouseian/internal/config"
)

const basicAuthRealm = `Basic realm="kouseian", charset="UTF-8"`

// basicAuth rejects requests whose credentials do not match mode.
func basicAuth(mode config.AuthMode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, password, ok := r.BasicAuth()
			if !ok || !mode.Verify(user, password) {
				hlog.FromRequest(r).Warn().Bool("credentials_sent", ok).Msg("Basic auth rejected")
				w.Header().Set("WWW-Authenticate", basicAuthRealm)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
