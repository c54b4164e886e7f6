package http

import (
	"context"

	"github.com/mrlokans/bookstore/internal/database/stores"
	"github.com/mrlokans/bookstore/internal/entities"
)

// This file holds the persistence interfaces the controllers depend on.
// Lookups report absence through the boolean result, not an error.

// BookRepository provides book CRUD.
type BookRepository interface {
	GetAll(ctx context.Context) ([]entities.Book, error)
	Create(ctx context.Context, fields entities.BookFields) (*entities.Book, error)
	Find(ctx context.Context, id uint) (*entities.Book, bool, error)
	Update(ctx context.Context, book *entities.Book, changes entities.BookChanges) error
	Delete(ctx context.Context, book *entities.Book) error
}

// StoreRepository provides store CRUD plus the store/book association.
type StoreRepository interface {
	GetAll(ctx context.Context) ([]entities.Store, error)
	Create(ctx context.Context, fields entities.StoreFields) (*entities.Store, error)
	Find(ctx context.Context, id uint) (*entities.Store, bool, error)
	Update(ctx context.Context, store *entities.Store, changes entities.StoreChanges) error
	Delete(ctx context.Context, store *entities.Store) error
	AssociateBook(ctx context.Context, storeID, bookID uint) error
	ListBooks(ctx context.Context, storeID uint) (*stores.Inventory, bool, error)
}
