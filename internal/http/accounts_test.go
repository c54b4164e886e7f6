package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/auth"
)

// withCookies copies the cookies set by a previous response onto req.
func withCookies(req *http.Request, w *httptest.ResponseRecorder) *http.Request {
	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			continue
		}
		req.AddCookie(cookie)
	}
	return req
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAccountsController_Register(t *testing.T) {
	app := setupTestApp(t)

	t.Run("creates user and starts a session", func(t *testing.T) {
		w := app.serve(newJSONRequest(t, http.MethodPost, "/register", map[string]any{
			"name":     "Jane Doe",
			"username": "jane",
			"email":    "jane@example.com",
			"password": "secret-password",
		}))
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		assert.Empty(t, w.Body.String())
		require.NotNil(t, findCookie(w, auth.SessionCookieName))

		req := newJSONRequest(t, http.MethodGet, "/books", nil)
		req.SetBasicAuth("jane", "secret-password")
		assert.Equal(t, http.StatusOK, app.serve(req).Code)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		w := app.serve(newJSONRequest(t, http.MethodPost, "/register", map[string]any{
			"name":     "Other",
			"username": "other",
			"email":    testEmail,
			"password": "secret-password",
		}))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, []string{"The email has already been taken."},
			decode[ValidationErrorResponse](t, w).Errors["email"])
	})

	t.Run("rejects taken username", func(t *testing.T) {
		w := app.serve(newJSONRequest(t, http.MethodPost, "/register", map[string]any{
			"name":     "Other",
			"username": testUsername,
			"email":    "other@example.com",
			"password": "secret-password",
		}))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, []string{"The username has already been taken."},
			decode[ValidationErrorResponse](t, w).Errors["username"])
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		w := app.serve(newJSONRequest(t, http.MethodPost, "/register", map[string]any{
			"username": "a b",
			"email":    "not-an-email",
			"password": "short",
		}))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		resp := decode[ValidationErrorResponse](t, w)
		assert.Equal(t, "The name field is required. (and 3 more errors)", resp.Message)
		assert.Contains(t, resp.Errors, "username")
		assert.Equal(t, []string{"The email field must be a valid email address."}, resp.Errors["email"])
		assert.Equal(t, []string{"The password field must be at least 8 characters."}, resp.Errors["password"])
	})
}

func TestAccountsController_Login(t *testing.T) {
	app := setupTestApp(t)

	t.Run("accepts username or email", func(t *testing.T) {
		for _, login := range []string{testUsername, testEmail} {
			w := app.serve(newJSONRequest(t, http.MethodPost, "/login", map[string]any{
				"login":    login,
				"password": testPassword,
			}))
			require.Equal(t, http.StatusNoContent, w.Code, login)
			require.NotNil(t, findCookie(w, auth.SessionCookieName))

			// The session alone authorizes reads.
			w = app.serve(withCookies(newJSONRequest(t, http.MethodGet, "/books", nil), w))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		w := app.serve(newJSONRequest(t, http.MethodPost, "/login", map[string]any{
			"login":    testUsername,
			"password": "wrong-password",
		}))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, []string{"These credentials do not match our records."},
			decode[ValidationErrorResponse](t, w).Errors["login"])
	})

	t.Run("throttles repeated failures", func(t *testing.T) {
		body := map[string]any{"login": "victim", "password": "wrong-password"}
		for range testAuthConfig().MaxLoginAttempts {
			w := app.serve(newJSONRequest(t, http.MethodPost, "/login", body))
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		}

		w := app.serve(newJSONRequest(t, http.MethodPost, "/login", body))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})
}

func TestAccountsController_Logout(t *testing.T) {
	app := setupTestApp(t)

	login := app.serve(newJSONRequest(t, http.MethodPost, "/login", map[string]any{
		"login":    testUsername,
		"password": testPassword,
	}))
	require.Equal(t, http.StatusNoContent, login.Code)

	// A session without a CSRF token cannot log out.
	w := app.serve(withCookies(newJSONRequest(t, http.MethodPost, "/logout", nil), login))
	require.Equal(t, http.StatusForbidden, w.Code)

	tokenReq := withCookies(newJSONRequest(t, http.MethodGet, "/csrf-token", nil), login)
	tokenResp := app.serve(tokenReq)
	require.Equal(t, http.StatusOK, tokenResp.Code)
	token := decode[map[string]string](t, tokenResp)["token"]
	require.NotEmpty(t, token)

	req := withCookies(withCookies(newJSONRequest(t, http.MethodPost, "/logout", nil), login), tokenResp)
	req.Header.Set(auth.CSRFTokenHeader, token)
	w = app.serve(req)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = app.serve(withCookies(newJSONRequest(t, http.MethodGet, "/books", nil), login))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
