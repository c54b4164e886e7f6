package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware())

	// CSRF must run before session so that session context is preserved
	var csrfProtection *auth.CSRF
	if len(cfg.CSRFSecret) > 0 {
		csrfProtection = auth.NewCSRF(cfg.CSRFSecret, cfg.SecureCookies, cfg.SessionManager)
		router.Use(csrfProtection.Middleware())
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Public endpoints
	healthController := NewHealthController(cfg.Health, cfg.Version)
	router.GET("/health", healthController.Status)
	router.GET("/ping", healthController.Ping)

	if cfg.AuthService != nil {
		accountsController := NewAccountsController(cfg.AuthService, cfg.SessionManager, cfg.RateLimiter)
		router.POST("/register", accountsController.Register)
		router.POST("/login", accountsController.Login)
		router.POST("/logout", accountsController.Logout)
	}
	if csrfProtection != nil {
		router.GET("/csrf-token", csrfProtection.TokenHandler())
	}

	// Everything below requires Basic credentials or a logged-in session
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.Handler())

	booksController := NewBooksController(cfg.Books)
	protected.GET("/books", booksController.List)
	protected.POST("/books", booksController.Create)
	protected.GET("/books/:id", booksController.Show)
	protected.PUT("/books/:id", booksController.Update)
	protected.PATCH("/books/:id", booksController.Update)
	protected.DELETE("/books/:id", booksController.Destroy)

	storesController := NewStoresController(cfg.Stores)
	protected.GET("/stores", storesController.List)
	protected.POST("/stores", storesController.Create)
	protected.GET("/stores/:id", storesController.Show)
	protected.PUT("/stores/:id", storesController.Update)
	protected.PATCH("/stores/:id", storesController.Update)
	protected.DELETE("/stores/:id", storesController.Destroy)
	protected.GET("/stores/:id/books", storesController.ListBooks)
	protected.POST("/stores/:id/books/:bookId/associate", storesController.AssociateBook)

	return router
}
