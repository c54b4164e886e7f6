package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/stores"
	"github.com/mrlokans/bookstore/internal/database/users"
)

const (
	testUsername = "testuser"
	testEmail    = "test@example.com"
	testPassword = "password123"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.NewDatabase(config.Database{
		Path:     filepath.Join(t.TempDir(), "test_http.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func testAuthConfig() config.Auth {
	return config.Auth{
		Realm:            "Bookstore",
		BcryptCost:       4,
		SessionLifetime:  time.Hour,
		MaxLoginAttempts: 3,
		RateLimitWindow:  time.Minute,
		LockoutDuration:  time.Minute,
	}
}

// testApp is the fully wired router backed by a temporary database with one
// registered user.
type testApp struct {
	router *gin.Engine
	db     *database.Database
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	db := setupTestDB(t)
	cfg := testAuthConfig()

	service := auth.NewService(users.NewRepository(db.DB), cfg)
	_, err := service.Register(context.Background(), auth.Registration{
		Name:     "Test User",
		Username: testUsername,
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err)

	sqlDB, err := db.SQLDB()
	require.NoError(t, err)
	sessions, err := auth.NewSessionManager(sqlDB, cfg)
	require.NoError(t, err)

	limiter := auth.NewRateLimiter(cfg)
	t.Cleanup(limiter.Stop)

	router := NewRouter(RouterConfig{
		Books:          books.NewRepository(db.DB),
		Stores:         stores.NewRepository(db.DB),
		Health:         db,
		AuthService:    service,
		AuthMiddleware: auth.NewMiddleware(service, sessions, limiter, cfg),
		SessionManager: sessions,
		RateLimiter:    limiter,
		CSRFSecret:     bytes.Repeat([]byte("k"), 32),
		SecureCookies:  false,
		Version:        "test",
	})

	return &testApp{router: router, db: db}
}

// do sends a request with Basic credentials of the registered user.
func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := newJSONRequest(t, method, path, body)
	req.SetBasicAuth(testUsername, testPassword)
	return a.serve(req)
}

func (a *testApp) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, path, bytes.NewReader(payload))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
