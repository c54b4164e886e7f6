// Package database provides the data access layer for the bookstore API.
//
// # Architecture
//
// The connection and schema live here; entity operations live in
// domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── errors.go        # NotFoundError, StorageError and constraint helpers
//	├── books/           # Book CRUD
//	├── stores/          # Store CRUD and the store/book association
//	└── users/           # API accounts
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	booksRepo := books.NewRepository(db.DB)
//	storesRepo := stores.NewRepository(db.DB)
//
//	book, found, err := booksRepo.Find(ctx, 42)
//	err = storesRepo.AssociateBook(ctx, storeID, book.ID)
//
// # Errors
//
// Lookups report absence with a false "found" result rather than an error.
// Operations that reference other rows by id (AssociateBook) return a
// *NotFoundError, which matches ErrNotFound. Every other failure is returned
// as a *StorageError naming the operation.
//
// # Interface Implementations
//
//   - books.Repository: implements http.BookRepository
//   - stores.Repository: implements http.StoreRepository
//   - users.Repository: implements auth.UserStore
//
// The compile-time checks live in internal/interfaces.
package database
