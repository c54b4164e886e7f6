package http

import (
	"github.com/mrlokans/bookstore/internal/auth"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Persistence
	Books  BookRepository
	Stores StoreRepository
	Health Pinger

	// Authentication. AuthMiddleware is required; the rest are optional.
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	RateLimiter    *auth.RateLimiter

	// CSRF protection for cookie sessions, enabled when CSRFSecret is set
	CSRFSecret    []byte
	SecureCookies bool

	// Application info
	Version string
}
