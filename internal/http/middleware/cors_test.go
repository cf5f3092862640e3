package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func corsRequest(t *testing.T, allowed []string, method, origin string, preflight bool) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	reached := false
	handler := CORS(allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(method, "/api/query", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, reached
}

func TestCORSGrantsListedOrigin(t *testing.T) {
	rec, reached := corsRequest(t, []string{"https://app.swasthyasetu.in"}, http.MethodPost, "https://app.swasthyasetu.in", false)
	require.True(t, reached)
	require.Equal(t, "https://app.swasthyasetu.in", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	require.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSIgnoresUnlistedOrigin(t *testing.T) {
	rec, reached := corsRequest(t, []string{"https://app.swasthyasetu.in"}, http.MethodPost, "https://evil.example", false)
	require.True(t, reached, "request still reaches the handler, browser enforces the denial")
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardEchoesOrigin(t *testing.T) {
	rec, _ := corsRequest(t, []string{"*"}, http.MethodGet, "https://anm-portal.odisha.gov.in", false)
	require.Equal(t, "https://anm-portal.odisha.gov.in", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAnswersPreflightWithoutHandler(t *testing.T) {
	rec, reached := corsRequest(t, []string{"https://app.swasthyasetu.in"}, http.MethodOptions, "https://app.swasthyasetu.in", true)
	require.False(t, reached)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSSkipsSameOriginRequests(t *testing.T) {
	rec, reached := corsRequest(t, []string{"https://app.swasthyasetu.in"}, http.MethodGet, "", false)
	require.True(t, reached)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
