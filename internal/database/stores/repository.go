// Package stores provides database operations for stores and the books they stock.
package stores

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

// BookSummary is the id/name projection of a book stocked by a store.
type BookSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Inventory is a store together with the books it stocks.
type Inventory struct {
	Store entities.Store
	Books []BookSummary
}

// Repository handles store persistence and store/book links.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new stores repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every store ordered by id.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Store, error) {
	stores := []entities.Store{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&stores).Error; err != nil {
		return nil, database.Wrap("list stores", err)
	}
	return stores, nil
}

// Create persists a new store built from fields.
func (r *Repository) Create(ctx context.Context, fields entities.StoreFields) (*entities.Store, error) {
	store := entities.NewStore(fields)
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return nil, database.Wrap("create store", err)
	}
	return store, nil
}

// Find returns the store with the given id. found is false when it does not exist.
func (r *Repository) Find(ctx context.Context, id uint) (store *entities.Store, found bool, err error) {
	var s entities.Store
	err = r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, database.Wrap("find store", err)
	}
	return &s, true, nil
}

// Update persists changes to an existing store and applies them to the passed value.
func (r *Repository) Update(ctx context.Context, store *entities.Store, changes entities.StoreChanges) error {
	columns := changes.Columns()
	if len(columns) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(store).Updates(columns).Error; err != nil {
		return database.Wrap("update store", err)
	}
	changes.ApplyTo(store)
	return nil
}

// Delete removes the store together with its book links.
func (r *Repository) Delete(ctx context.Context, store *entities.Store) error {
	if err := r.db.WithContext(ctx).Select("Books").Delete(store).Error; err != nil {
		return database.Wrap("delete store", err)
	}
	return nil
}

// AssociateBook links a book to a store. Linking an already linked pair is a no-op.
// A missing store or book yields a *database.NotFoundError and nothing is written.
func (r *Repository) AssociateBook(ctx context.Context, storeID, bookID uint) error {
	db := r.db.WithContext(ctx)

	var store entities.Store
	if err := db.First(&store, storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &database.NotFoundError{Entity: "Store", ID: storeID}
		}
		return database.Wrap("find store", err)
	}

	var book entities.Book
	if err := db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &database.NotFoundError{Entity: "Book", ID: bookID}
		}
		return database.Wrap("find book", err)
	}

	if err := db.Model(&store).Association("Books").Append(&book); err != nil {
		return database.Wrap("associate book", err)
	}
	return nil
}

// ListBooks returns the store and the books it stocks, ordered by book id.
// found is false when the store does not exist.
func (r *Repository) ListBooks(ctx context.Context, storeID uint) (inventory *Inventory, found bool, err error) {
	store, found, err := r.Find(ctx, storeID)
	if err != nil || !found {
		return nil, found, err
	}

	books := []BookSummary{}
	err = r.db.WithContext(ctx).
		Model(&entities.Book{}).
		Select("books.id, books.name").
		Joins("JOIN book_store ON book_store.book_id = books.id").
		Where("book_store.store_id = ?", storeID).
		Order("books.id ASC").
		Scan(&books).Error
	if err != nil {
		return nil, false, database.Wrap("list store books", err)
	}

	return &Inventory{Store: *store, Books: books}, true, nil
}
