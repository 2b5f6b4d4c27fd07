package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlindqvist/minauth/internal/auth"
	"github.com/mlindqvist/minauth/internal/logging"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (s stubVerifier) Verify(string) (auth.Claims, error) {
	return s.claims, s.err
}

func injectNopLogger(r *http.Request) *http.Request {
	nop := logging.Nop()
	return r.WithContext(nop.WithContext(r.Context()))
}

func executeAuth(verifier TokenVerifier, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	mw := RequireAuth(verifier)(next)
	req := httptest.NewRequest(http.MethodGet, "/validate", nil)
	req = injectNopLogger(req)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)
	return rr
}

func TestBearerToken_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{name: "valid bearer token", header: "Bearer my-jwt-token", wantToken: "my-jwt-token", wantOK: true},
		{name: "lowercase scheme", header: "bearer my-jwt-token", wantToken: "my-jwt-token", wantOK: true},
		{name: "mixed-case scheme", header: "BEARER my-jwt-token", wantToken: "my-jwt-token", wantOK: true},
		{name: "empty header", header: ""},
		{name: "scheme only", header: "Bearer"},
		{name: "scheme with trailing space", header: "Bearer "},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "extra parts", header: "Bearer token extra-part"},
		{name: "double space", header: "Bearer  token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestRequireAuth_NoCredential(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be reached")
	})

	for _, header := range []string{"", "Bearer", "Token abc", "Bearer a b"} {
		rr := executeAuth(stubVerifier{}, header, next)
		assert.Equal(t, http.StatusForbidden, rr.Code, "header %q", header)
		assert.JSONEq(t, `{"error":"no token provided"}`, rr.Body.String())
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be reached")
	})

	for _, err := range []error{auth.ErrTokenExpired, auth.ErrTokenBadSignature, auth.ErrTokenMalformed} {
		rr := executeAuth(stubVerifier{err: err}, "Bearer some-token", next)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "verifier error %v", err)
		assert.JSONEq(t, `{"error":"invalid token"}`, rr.Body.String())
	}
}

func TestRequireAuth_Success(t *testing.T) {
	verifier := stubVerifier{claims: auth.Claims{UserID: 42, Username: "alice"}}

	var gotClaims auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.IdentityFromContext(r.Context())
		require.True(t, ok)
		gotClaims = claims
		w.WriteHeader(http.StatusOK)
	})

	rr := executeAuth(verifier, "Bearer valid-token", next)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(42), gotClaims.UserID)
	assert.Equal(t, "alice", gotClaims.Username)
}
