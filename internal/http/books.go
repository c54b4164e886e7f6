package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BooksController serves the book resource routes.
type BooksController struct {
	books BookRepository
}

// NewBooksController creates a controller backed by the given repository.
func NewBooksController(books BookRepository) *BooksController {
	return &BooksController{books: books}
}

// List handles GET /books
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.books.GetAll(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, NewBookCollection(books))
}

// Create handles POST /books
func (bc *BooksController) Create(c *gin.Context) {
	var req CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := bc.books.Create(c.Request.Context(), req.Fields())
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	c.JSON(http.StatusCreated, NewBookResource(book))
}

// Show handles GET /books/:id
func (bc *BooksController) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Book")
	if !ok {
		return
	}

	book, found, err := bc.books.Find(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "find book")
		return
	}
	if !found {
		respondNotFound(c, "Book")
		return
	}
	c.JSON(http.StatusOK, NewBookResource(book))
}

// Update handles PUT/PATCH /books/:id
func (bc *BooksController) Update(c *gin.Context) {
	var req UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	id, ok := parseIDParam(c, "id", "Book")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, found, err := bc.books.Find(ctx, id)
	if err != nil {
		respondInternalError(c, err, "find book")
		return
	}
	if !found {
		respondNotFound(c, "Book")
		return
	}

	if err := bc.books.Update(ctx, book, req.Changes()); err != nil {
		respondInternalError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, NewBookResource(book))
}

// Destroy handles DELETE /books/:id
func (bc *BooksController) Destroy(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Book")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, found, err := bc.books.Find(ctx, id)
	if err != nil {
		respondInternalError(c, err, "find book")
		return
	}
	if !found {
		respondNotFound(c, "Book")
		return
	}

	if err := bc.books.Delete(ctx, book); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	respondMessage(c, http.StatusOK, "Book deleted successfully")
}
