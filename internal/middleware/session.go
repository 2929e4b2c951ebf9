package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName  = "session"
	cartIDValue  = "cart_id"
	cartIDCtxKey = contextKey("cart_id")
)

// SessionMiddleware provides session management functionality
type SessionMiddleware struct {
	store sessions.Store
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(store sessions.Store) *SessionMiddleware {
	return &SessionMiddleware{
		store: store,
	}
}

// NewCookieStore creates the cookie store used for shopper sessions
func NewCookieStore(secret string, maxAge int, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// CartSession makes sure every session carries a cart id and puts it in the
// request context. A session cookie that cannot be decoded is replaced.
func (m *SessionMiddleware) CartSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, sessionName)
		if err != nil {
			log.Printf("[%s] Discarding invalid session: %v", GetRequestID(r.Context()), err)
		}

		cartID, ok := session.Values[cartIDValue].(string)
		if !ok || cartID == "" {
			cartID = uuid.NewString()
			session.Values[cartIDValue] = cartID
			if err := session.Save(r, w); err != nil {
				log.Printf("[%s] Failed to save session: %v", GetRequestID(r.Context()), err)
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
		}

		ctx := context.WithValue(r.Context(), cartIDCtxKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCartID returns the cart id of the session, or "" outside CartSession
func GetCartID(ctx context.Context) string {
	cartID, _ := ctx.Value(cartIDCtxKey).(string)
	return cartID
}

// WithCartID returns a copy of ctx carrying cartID
func WithCartID(ctx context.Context, cartID string) context.Context {
	return context.WithValue(ctx, cartIDCtxKey, cartID)
}

// SecureHeaders adds security headers to responses
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")

		// Only set HSTS for HTTPS
		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
