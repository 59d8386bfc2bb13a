package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
)

// routeKey identifies a routed endpoint for the verify-failure table.
type routeKey struct {
	method string
	path   string
}

// verifyFailureOverrides maps endpoints to the status reported when a
// syntactically well-formed token fails verification there. Endpoints
// without an entry report 404 with a user-not-found message, which keeps
// token probing indistinguishable from guessing account identifiers. The
// post listing is the one historical exception and answers 403 instead.
var verifyFailureOverrides = map[routeKey]int{
	{http.MethodGet, "/api/posts/all"}: http.StatusForbidden,
}

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], and on success stores
// the decoded [models.Token] in the request context under
// [utils.TokenCtxKey] before delegating to the next handler.
//
// A missing or malformed header is rejected with HTTP 401 before the token
// codec is ever invoked:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header is not exactly "Bearer <token>"
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]).
//
// A well-formed header whose token fails verification is rejected with the
// status from verifyFailureOverrides, defaulting to 404.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized, "")
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			writeError(w, err.Error(), http.StatusUnauthorized, "")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Str("uri", r.RequestURI).Msg("token verification failed")

			if status, ok := verifyFailureOverrides[routeKey{r.Method, r.URL.Path}]; ok {
				writeError(w, http.StatusText(status), status, "")
				return
			}
			writeError(w, "User not found", http.StatusNotFound, "")
			return
		}

		// Store the decoded token in the context so that downstream handlers
		// can read the caller's identity and role without re-parsing it.
		ctx = context.WithValue(ctx, utils.TokenCtxKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header must follow the exact format:
//
//	Authorization: Bearer <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header does not split into
//     exactly two space-separated parts, or the scheme is not "Bearer".
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
