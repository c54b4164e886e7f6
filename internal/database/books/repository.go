// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.Create(ctx, entities.BookFields{Name: "Dune"})
//	book, found, err := repo.Find(ctx, book.ID)
package books

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

// Repository handles book persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every book ordered by id.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&books).Error; err != nil {
		return nil, database.Wrap("list books", err)
	}
	return books, nil
}

// Create persists a new book built from fields.
func (r *Repository) Create(ctx context.Context, fields entities.BookFields) (*entities.Book, error) {
	book := entities.NewBook(fields)
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, database.Wrap("create book", err)
	}
	return book, nil
}

// Find returns the book with the given id. found is false when it does not exist.
func (r *Repository) Find(ctx context.Context, id uint) (book *entities.Book, found bool, err error) {
	var b entities.Book
	err = r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, database.Wrap("find book", err)
	}
	return &b, true, nil
}

// Update persists changes to an existing book and applies them to the passed value.
func (r *Repository) Update(ctx context.Context, book *entities.Book, changes entities.BookChanges) error {
	columns := changes.Columns()
	if len(columns) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(book).Updates(columns).Error; err != nil {
		return database.Wrap("update book", err)
	}
	changes.ApplyTo(book)
	return nil
}

// Delete removes the book together with its store links.
func (r *Repository) Delete(ctx context.Context, book *entities.Book) error {
	if err := r.db.WithContext(ctx).Select("Stores").Delete(book).Error; err != nil {
		return database.Wrap("delete book", err)
	}
	return nil
}
