package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
)

// admin is an HTTP middleware that restricts an endpoint to administrator
// accounts. It must always be mounted behind the auth middleware: the
// caller's identity is read from the request context, never from the
// request itself.
//
// A request without a context token, or with a token whose privilege flag
// is unset, is rejected with HTTP 403. The flag reflects the account's role
// at the time the token was issued.
func (h *Handler) admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, ok := utils.GetTokenFromContext(r.Context())
		if !ok || !token.IsAdmin {
			log.Warn().Str("uri", r.RequestURI).Msg("non-admin access to admin endpoint denied")
			writeError(w, "Action Forbidden", http.StatusForbidden, "")
			return
		}

		next.ServeHTTP(w, r)
	})
}
