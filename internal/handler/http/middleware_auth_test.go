package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Helpers ----

func executeAuth(h *Handler, target, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = injectNopLogger(req)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

// ---- getTokenFromAuthHeader unit tests ----

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{
			name:      "valid Bearer token",
			header:    "Bearer my-jwt-token",
			wantToken: "my-jwt-token",
		},
		{
			name:    "single part",
			header:  "Bearer",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "wrong scheme",
			header:  "Basic my-jwt-token",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "lowercase scheme",
			header:  "bearer my-jwt-token",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "three parts",
			header:  "Bearer my jwt",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "empty token",
			header:  "Bearer ",
			wantErr: ErrEmptyToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ---- auth middleware tests ----

func TestAuth_MissingHeader(t *testing.T) {
	parseCalled := false
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			parseCalled = true
			return models.Token{}, nil
		},
	}
	h := newHandlerWithAuth(t, auth)

	rr := executeAuth(h, "/api/users/details", "", failNext(t))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, parseCalled, "codec must not run without a header")
}

func TestAuth_MalformedHeader(t *testing.T) {
	parseCalled := false
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			parseCalled = true
			return models.Token{}, nil
		},
	}
	h := newHandlerWithAuth(t, auth)

	for _, header := range []string{"Bearer", "Basic abc", "Bearer a b", "Bearer "} {
		rr := executeAuth(h, "/api/users/details", header, failNext(t))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "header %q", header)
	}
	assert.False(t, parseCalled, "codec must not run on malformed headers")
}

func TestAuth_VerifyFailure_DefaultsToNotFound(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenSignatureInvalid
		},
	}
	h := newHandlerWithAuth(t, auth)

	rr := executeAuth(h, "/api/users/details", "Bearer bad-token", failNext(t))

	require.Equal(t, http.StatusNotFound, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, "User not found", apiErr.Message)
}

func TestAuth_VerifyFailure_PostListingOverride(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenExpired
		},
	}
	h := newHandlerWithAuth(t, auth)

	rr := executeAuth(h, "/api/posts/all", "Bearer expired-token", failNext(t))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAuth_Success_AttachesToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			assert.Equal(t, "good-token", tokenString)
			return stubToken("7", true), nil
		},
	}
	h := newHandlerWithAuth(t, auth)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true

		token, ok := utils.GetTokenFromContext(r.Context())
		require.True(t, ok)

		userID, err := token.GetUserID()
		require.NoError(t, err)
		assert.Equal(t, int64(7), userID)
		assert.True(t, token.IsAdmin)
	})

	rr := executeAuth(h, "/api/users/details", "Bearer good-token", next)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, nextCalled)
}

// failNext returns a next handler that fails the test when reached.
func failNext(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not be reached")
	})
}

// ---- admin middleware tests ----

func executeAdmin(h *Handler, token *models.Token, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.admin(next)
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/1", nil)
	req = injectNopLogger(req)
	if token != nil {
		req = withToken(req, *token)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

func TestAdmin_NoToken(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	rr := executeAdmin(h, nil, failNext(t))

	require.Equal(t, http.StatusForbidden, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, "Action Forbidden", apiErr.Message)
}

func TestAdmin_NonAdminToken(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	token := stubToken("7", false)
	rr := executeAdmin(h, &token, failNext(t))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdmin_AdminToken(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	token := stubToken("1", true)
	rr := executeAdmin(h, &token, next)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, nextCalled)
}
