package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
)

// AccountsController handles registration and cookie-session login.
type AccountsController struct {
	service  *auth.Service
	sessions *auth.SessionManager
	limiter  *auth.RateLimiter
}

// NewAccountsController creates the controller. sessions and limiter are optional.
func NewAccountsController(service *auth.Service, sessions *auth.SessionManager, limiter *auth.RateLimiter) *AccountsController {
	return &AccountsController{
		service:  service,
		sessions: sessions,
		limiter:  limiter,
	}
}

// Register handles POST /register
func (ac *AccountsController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ac.service.Register(c.Request.Context(), auth.Registration{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if fieldErr, ok := registrationFieldError(err); ok {
			respondValidationErrors(c, []fieldError{fieldErr})
			return
		}
		respondInternalError(c, err, "register user")
		return
	}

	if ac.sessions != nil {
		if err := ac.sessions.CreateSession(c.Request, user); err != nil {
			respondInternalError(c, err, "create session")
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// Login handles POST /login
func (ac *AccountsController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	ip := c.ClientIP()
	if ac.limiter != nil {
		if allowed, retryAfter := ac.limiter.Allow(ip, req.Login); !allowed {
			auth.TooManyAttempts(c, retryAfter)
			return
		}
	}

	user, err := ac.service.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			respondInternalError(c, err, "authenticate")
			return
		}
		if ac.limiter != nil {
			ac.limiter.RecordFailure(ip, req.Login)
		}
		respondValidationErrors(c, []fieldError{{
			field:   "login",
			message: "These credentials do not match our records.",
		}})
		return
	}
	if ac.limiter != nil {
		ac.limiter.RecordSuccess(ip, req.Login)
	}

	if ac.sessions != nil {
		if err := ac.sessions.CreateSession(c.Request, user); err != nil {
			respondInternalError(c, err, "create session")
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// Logout handles POST /logout
func (ac *AccountsController) Logout(c *gin.Context) {
	if ac.sessions != nil {
		if err := ac.sessions.DestroySession(c.Request); err != nil {
			respondInternalError(c, err, "destroy session")
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// registrationFieldError turns a rejected registration into a field error.
func registrationFieldError(err error) (fieldError, bool) {
	var dup *auth.DuplicateUserError
	switch {
	case errors.As(err, &dup):
		return fieldError{field: dup.Field, message: "The " + dup.Field + " has already been taken."}, true
	case errors.Is(err, auth.ErrNameRequired):
		return fieldError{field: "name", message: "The name field is required."}, true
	case errors.Is(err, auth.ErrUsernameInvalid):
		return fieldError{field: "username", message: "The username field format is invalid."}, true
	case errors.Is(err, auth.ErrEmailInvalid):
		return fieldError{field: "email", message: "The email field must be a valid email address."}, true
	case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooLong):
		return fieldError{field: "password", message: "The password field must be between 8 and 72 characters."}, true
	}
	return fieldError{}, false
}
