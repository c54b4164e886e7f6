package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StoresController serves the store resource routes.
type StoresController struct {
	stores StoreRepository
}

// NewStoresController creates a controller backed by the given repository.
func NewStoresController(stores StoreRepository) *StoresController {
	return &StoresController{stores: stores}
}

// List handles GET /stores
func (sc *StoresController) List(c *gin.Context) {
	stores, err := sc.stores.GetAll(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list stores")
		return
	}
	c.JSON(http.StatusOK, NewStoreCollection(stores))
}

// Create handles POST /stores
func (sc *StoresController) Create(c *gin.Context) {
	var req CreateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := sc.stores.Create(c.Request.Context(), req.Fields())
	if err != nil {
		respondInternalError(c, err, "create store")
		return
	}
	c.JSON(http.StatusCreated, NewStoreResource(store))
}

// Show handles GET /stores/:id
func (sc *StoresController) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Store")
	if !ok {
		return
	}

	store, found, err := sc.stores.Find(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "find store")
		return
	}
	if !found {
		respondNotFound(c, "Store")
		return
	}
	c.JSON(http.StatusOK, NewStoreResource(store))
}

// Update handles PUT/PATCH /stores/:id
func (sc *StoresController) Update(c *gin.Context) {
	var req UpdateStoreRequest
	if !bindJSON(c, &req) {
		return
	}
	id, ok := parseIDParam(c, "id", "Store")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	store, found, err := sc.stores.Find(ctx, id)
	if err != nil {
		respondInternalError(c, err, "find store")
		return
	}
	if !found {
		respondNotFound(c, "Store")
		return
	}

	if err := sc.stores.Update(ctx, store, req.Changes()); err != nil {
		respondInternalError(c, err, "update store")
		return
	}
	c.JSON(http.StatusOK, NewStoreResource(store))
}

// Destroy handles DELETE /stores/:id
func (sc *StoresController) Destroy(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Store")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	store, found, err := sc.stores.Find(ctx, id)
	if err != nil {
		respondInternalError(c, err, "find store")
		return
	}
	if !found {
		respondNotFound(c, "Store")
		return
	}

	if err := sc.stores.Delete(ctx, store); err != nil {
		respondInternalError(c, err, "delete store")
		return
	}
	respondMessage(c, http.StatusOK, "Store deleted successfully")
}

// AssociateBook handles POST /stores/:id/books/:bookId/associate
// Linking an already linked pair succeeds without adding a second link.
// The store is checked before the book.
func (sc *StoresController) AssociateBook(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id", "Store")
	if !ok {
		return
	}
	// 0 matches no book, so the repository reports it after checking the store
	bookID, _ := parseID(c.Param("bookId"))

	if err := sc.stores.AssociateBook(c.Request.Context(), storeID, bookID); err != nil {
		respondRepositoryError(c, err, "associate book")
		return
	}
	respondMessage(c, http.StatusOK, "Book associated with store successfully")
}

// ListBooks handles GET /stores/:id/books
func (sc *StoresController) ListBooks(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id", "Store")
	if !ok {
		return
	}

	inventory, found, err := sc.stores.ListBooks(c.Request.Context(), storeID)
	if err != nil {
		respondInternalError(c, err, "list store books")
		return
	}
	if !found {
		respondNotFound(c, "Store")
		return
	}
	c.JSON(http.StatusOK, NewStoreBooksResponse(inventory))
}
