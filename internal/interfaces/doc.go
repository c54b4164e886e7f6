// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookRepository: Book CRUD (internal/http/repositories.go)
//   - StoreRepository: Store CRUD and the store/book association (internal/http/repositories.go)
//   - Pinger: Database reachability for /health (internal/http/health.go)
//   - UserStore: Account persistence for authentication (internal/auth/service.go)
//
// Lookups return (entity, found, error). A missing row is found == false with
// a nil error; errors are reserved for storage failures and, in
// StoreRepository.AssociateBook, a *database.NotFoundError naming the missing side.
//
// # Adding a New Resource
//
//  1. Add the entity to internal/entities/ and register it in database.Migrate.
//
//  2. Create sub-package internal/database/<resource>/:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the interface the controller needs in internal/http/repositories.go
//     and add a controller with its request payloads in validation.go.
//
//  4. Register routes in router.go inside the protected group and wire the
//     repository in internal/entrypoint.
//
//  5. Add a compile-time check:
//
//     var _ http.PublisherRepository = (*publishers.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the current list.
package interfaces
