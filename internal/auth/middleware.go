package auth

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
	ContextKeyAuthType = "auth_type"
)

// AuthType indicates how the user was authenticated
type AuthType string

const (
	AuthTypeNone    AuthType = "none"
	AuthTypeSession AuthType = "session"
	AuthTypeBasic   AuthType = "basic"
)

// Middleware guards routes with HTTP Basic authentication. A logged-in
// session is accepted in place of credentials, unless the request carries
// an Authorization header, in which case only the header counts.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	limiter        *RateLimiter
	challenge      string
}

// NewMiddleware creates a new authentication middleware. sessionManager and
// limiter are optional.
func NewMiddleware(service *Service, sessionManager *SessionManager, limiter *RateLimiter, cfg config.Auth) *Middleware {
	realm := cfg.Realm
	if realm == "" {
		realm = config.DefaultAuthRealm
	}
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		limiter:        limiter,
		challenge:      fmt.Sprintf("Basic realm=%q, charset=\"UTF-8\"", realm),
	}
}

// Handler returns a Gin middleware handler that rejects unauthenticated requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if user := m.trySessionAuth(c); user != nil {
				setUserContext(c, user, AuthTypeSession)
				c.Next()
				return
			}
		}

		identifier, password, ok := c.Request.BasicAuth()
		if !ok {
			m.unauthorized(c)
			return
		}

		ip := c.ClientIP()
		if m.limiter != nil {
			if allowed, retryAfter := m.limiter.Allow(ip, identifier); !allowed {
				TooManyAttempts(c, retryAfter)
				return
			}
		}

		user, err := m.service.Authenticate(c.Request.Context(), identifier, password)
		if err != nil {
			if !errors.Is(err, ErrInvalidCredentials) {
				log.Printf("Basic auth lookup failed: %v", err)
			}
			if m.limiter != nil {
				m.limiter.RecordFailure(ip, identifier)
			}
			m.unauthorized(c)
			return
		}
		if m.limiter != nil {
			m.limiter.RecordSuccess(ip, identifier)
		}

		setUserContext(c, user, AuthTypeBasic)
		c.Next()
	}
}

// trySessionAuth returns the session's user, or nil for anonymous sessions.
func (m *Middleware) trySessionAuth(c *gin.Context) *entities.User {
	if m.sessionManager == nil {
		return nil
	}

	userID := m.sessionManager.GetUserID(c.Request)
	if userID == 0 {
		return nil
	}

	user, err := m.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		return nil
	}
	return user
}

func (m *Middleware) unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", m.challenge)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials."})
}

// TooManyAttempts aborts with 429 and a Retry-After header in whole seconds.
func TooManyAttempts(c *gin.Context, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"message": fmt.Sprintf("Too many login attempts. Please try again in %d seconds.", seconds),
	})
}

func setUserContext(c *gin.Context, user *entities.User, authType AuthType) {
	c.Set(ContextKeyUserID, user.ID)
	c.Set(ContextKeyUsername, user.Username)
	c.Set(ContextKeyAuthType, authType)
}

// GetUserID retrieves the authenticated user's ID from the context, or 0.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUsername retrieves the authenticated user's username from the context.
func GetUsername(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}

// GetAuthType retrieves the authentication method used.
func GetAuthType(c *gin.Context) AuthType {
	if t, exists := c.Get(ContextKeyAuthType); exists {
		if authType, ok := t.(AuthType); ok {
			return authType
		}
	}
	return AuthTypeNone
}
