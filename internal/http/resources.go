package http

import (
	"github.com/mrlokans/bookstore/internal/database/stores"
	"github.com/mrlokans/bookstore/internal/entities"
)

// BookResource is the JSON projection of a book.
type BookResource struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	ISBN  string  `json:"isbn"`
	Value float64 `json:"value"`
}

// StoreResource is the JSON projection of a store.
type StoreResource struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Active  bool   `json:"active"`
}

// BookSummaryResource is the id/name projection used when listing a store's books.
type BookSummaryResource struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// StoreBooksResponse is the body of GET /stores/:id/books.
type StoreBooksResponse struct {
	Store StoreResource         `json:"store"`
	Books []BookSummaryResource `json:"books"`
}

func NewBookResource(book *entities.Book) BookResource {
	return BookResource{
		ID:    book.ID,
		Name:  book.Name,
		ISBN:  book.ISBN,
		Value: book.Value,
	}
}

func NewBookCollection(books []entities.Book) []BookResource {
	resources := make([]BookResource, 0, len(books))
	for i := range books {
		resources = append(resources, NewBookResource(&books[i]))
	}
	return resources
}

func NewStoreResource(store *entities.Store) StoreResource {
	return StoreResource{
		ID:      store.ID,
		Name:    store.Name,
		Address: store.Address,
		Active:  store.Active,
	}
}

func NewStoreCollection(list []entities.Store) []StoreResource {
	resources := make([]StoreResource, 0, len(list))
	for i := range list {
		resources = append(resources, NewStoreResource(&list[i]))
	}
	return resources
}

func NewStoreBooksResponse(inventory *stores.Inventory) StoreBooksResponse {
	books := make([]BookSummaryResource, 0, len(inventory.Books))
	for _, book := range inventory.Books {
		books = append(books, BookSummaryResource{ID: book.ID, Name: book.Name})
	}
	return StoreBooksResponse{
		Store: NewStoreResource(&inventory.Store),
		Books: books,
	}
}
