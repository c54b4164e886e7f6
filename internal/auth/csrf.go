package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFTokenHeader is the header carrying the CSRF token on unsafe requests.
const CSRFTokenHeader = "X-CSRF-Token"

// CSRF guards cookie-session clients against cross-site request forgery.
type CSRF struct {
	protect  func(http.Handler) http.Handler
	secure   bool
	sessions *SessionManager
}

// NewCSRF creates the protection. With secure unset, requests are treated as
// plain HTTP and the strict Referer check for TLS is skipped.
func NewCSRF(secret []byte, secure bool, sessions *SessionManager) *CSRF {
	return &CSRF{
		protect: csrf.Protect(
			secret,
			csrf.Secure(secure),
			csrf.HttpOnly(true),
			csrf.SameSite(csrf.SameSiteStrictMode),
			csrf.Path("/"),
			csrf.RequestHeader(CSRFTokenHeader),
			csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
		),
		secure:   secure,
		sessions: sessions,
	}
}

// Middleware checks the token on unsafe methods. Requests carrying an
// Authorization header and requests without a session cookie pass unchecked:
// neither relies on ambient cookie authority.
func (p *CSRF) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hasAuthorizationHeader(c.Request) || !p.hasSession(c.Request) {
			c.Next()
			return
		}

		passed := false
		handler := p.protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, p.prepare(c.Request))

		if !passed {
			c.Abort()
		}
	}
}

// TokenHandler issues a masked token and sets the CSRF cookie. When Middleware
// already handled the request, its token is reused so only one cookie is set.
func (p *CSRF) TokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := csrf.Token(c.Request); token != "" {
			c.JSON(http.StatusOK, gin.H{"token": token})
			return
		}

		handler := p.protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.JSON(http.StatusOK, gin.H{"token": csrf.Token(r)})
		}))
		handler.ServeHTTP(c.Writer, p.prepare(c.Request))
	}
}

func (p *CSRF) prepare(r *http.Request) *http.Request {
	if p.secure {
		return r
	}
	return csrf.PlaintextHTTPRequest(r)
}

func (p *CSRF) hasSession(r *http.Request) bool {
	return p.sessions != nil && p.sessions.HasSessionCookie(r)
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"message":"CSRF token mismatch."}`))
}

func hasAuthorizationHeader(r *http.Request) bool {
	return strings.TrimSpace(r.Header.Get("Authorization")) != ""
}
