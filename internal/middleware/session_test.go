package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSession_AssignsAndKeepsCartID(t *testing.T) {
	store := NewCookieStore("test-secret-key-with-enough-bytes", 3600, false)
	m := NewSessionMiddleware(store)

	var seen string
	handler := m.CartSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCartID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/checkout/attendees", nil))

	first := seen
	_, err := uuid.Parse(first)
	require.NoError(t, err)

	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Same cookie, same cart
	req := httptest.NewRequest("GET", "/checkout/attendees", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, first, seen)
	assert.Empty(t, rr.Result().Cookies())
}

func TestCartSession_InvalidCookieReplaced(t *testing.T) {
	m := NewSessionMiddleware(NewCookieStore("test-secret-key-with-enough-bytes", 3600, false))

	var seen string
	handler := m.CartSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCartID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "tampered"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, seen)
	assert.NotEmpty(t, rr.Result().Cookies())
}

func TestGetCartID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, GetCartID(req.Context()))
	assert.Equal(t, "abc", GetCartID(WithCartID(req.Context(), "abc")))
}

func TestSecureHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))
}
