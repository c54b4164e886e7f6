// Package auth provides HTTP Basic authentication for the API.
//
// Every catalog route requires credentials. A client either sends
// "Authorization: Basic" on each request (username or email as the user
// name), or logs in once through /login or /register and then presents the
// session cookie. Cookie-session clients must also send the X-CSRF-Token
// header on unsafe methods; the token comes from GET /csrf-token.
//
// # Configuration
//
//	AUTH_REALM=Bookstore               # Realm announced in WWW-Authenticate
//	AUTH_BCRYPT_COST=12                # bcrypt cost factor
//	AUTH_SESSION_SECRET=<hex>          # CSRF key, generated if empty
//	AUTH_SESSION_LIFETIME=24h          # Session duration
//	AUTH_SECURE_COOKIES=true           # HTTPS-only cookies
//	AUTH_MAX_LOGIN_ATTEMPTS=5          # Failures allowed per window
//	AUTH_RATE_LIMIT_WINDOW=15m
//	AUTH_LOCKOUT_DURATION=30m
//
// # Usage
//
//	authService := auth.NewService(users.NewRepository(db), cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService, sessionManager, limiter, cfg.Auth)
//	protected.Use(authMiddleware.Handler())
//
// Extract the user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
