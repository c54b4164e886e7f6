package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/config"
)

type middlewareFixture struct {
	router   *gin.Engine
	sessions *SessionManager
}

func setupMiddleware(t *testing.T) *middlewareFixture {
	t.Helper()

	cfg := config.Auth{
		Realm:            "Bookstore",
		BcryptCost:       4,
		SessionLifetime:  time.Hour,
		MaxLoginAttempts: 3,
		RateLimitWindow:  time.Minute,
		LockoutDuration:  time.Minute,
	}

	service := setupService(t)
	registerTestUser(t, service)

	sm := setupSessionManager(t)
	limiter := NewRateLimiter(cfg)
	t.Cleanup(limiter.Stop)

	router := gin.New()
	router.Use(sm.SessionLoadSave())
	router.POST("/login", func(c *gin.Context) {
		user, err := service.Authenticate(c.Request.Context(), "testuser", "password")
		require.NoError(t, err)
		require.NoError(t, sm.CreateSession(c.Request, user))
		c.Status(http.StatusNoContent)
	})

	protected := router.Group("/")
	protected.Use(NewMiddleware(service, sm, limiter, cfg).Handler())
	protected.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   GetUserID(c),
			"username":  GetUsername(c),
			"auth_type": GetAuthType(c),
		})
	})

	return &middlewareFixture{router: router, sessions: sm}
}

func (f *middlewareFixture) whoami(t *testing.T, setup func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if setup != nil {
		setup(req)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_RequiresCredentials(t *testing.T) {
	f := setupMiddleware(t)

	rr := f.whoami(t, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, `Basic realm="Bookstore", charset="UTF-8"`, rr.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"message":"Invalid credentials."}`, rr.Body.String())
}

func TestMiddleware_BasicAuth(t *testing.T) {
	f := setupMiddleware(t)

	tests := []struct {
		name       string
		identifier string
		password   string
		wantStatus int
	}{
		{name: "username", identifier: "testuser", password: "password", wantStatus: http.StatusOK},
		{name: "email", identifier: "test@example.com", password: "password", wantStatus: http.StatusOK},
		{name: "wrong password", identifier: "testuser", password: "nope-nope", wantStatus: http.StatusUnauthorized},
		{name: "unknown user", identifier: "ghost", password: "password", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.whoami(t, func(r *http.Request) { r.SetBasicAuth(tt.identifier, tt.password) })
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, "testuser", body["username"])
				assert.Equal(t, string(AuthTypeBasic), body["auth_type"])
			}
		})
	}
}

func TestMiddleware_MalformedAuthorizationHeader(t *testing.T) {
	f := setupMiddleware(t)

	rr := f.whoami(t, func(r *http.Request) { r.Header.Set("Authorization", "Basic !!!not-base64") })

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddleware_ThrottlesRepeatedFailures(t *testing.T) {
	f := setupMiddleware(t)
	badCredentials := func(r *http.Request) { r.SetBasicAuth("testuser", "wrong-password") }

	for i := 0; i < 3; i++ {
		rr := f.whoami(t, badCredentials)
		require.Equal(t, http.StatusUnauthorized, rr.Code, "attempt %d", i+1)
	}

	rr := f.whoami(t, func(r *http.Request) { r.SetBasicAuth("testuser", "password") })
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
}

func TestMiddleware_SessionAuth(t *testing.T) {
	f := setupMiddleware(t)

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)
	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)

	t.Run("session cookie is accepted", func(t *testing.T) {
		rr := f.whoami(t, func(r *http.Request) { r.AddCookie(cookie) })
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"auth_type":"session"`)
	})

	t.Run("authorization header takes precedence", func(t *testing.T) {
		rr := f.whoami(t, func(r *http.Request) {
			r.AddCookie(cookie)
			r.SetBasicAuth("testuser", "wrong-password")
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
