package entities

import "time"

// Store is a shop that stocks books.
type Store struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Address   string    `gorm:"size:255" json:"address"`
	Active    bool      `gorm:"not null" json:"active"`
	Books     []Book    `gorm:"many2many:book_store;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Store) TableName() string {
	return "stores"
}

// BookStoreTable is the join table linking stores and books.
// Its primary key is (store_id, book_id), so a pair can only be linked once.
const BookStoreTable = "book_store"

// StoreFields is the validated field set used to create a store.
type StoreFields struct {
	Name    string
	Address string
	Active  bool
}

// NewStore builds an unsaved store from validated fields.
func NewStore(fields StoreFields) *Store {
	return &Store{
		Name:    fields.Name,
		Address: fields.Address,
		Active:  fields.Active,
	}
}

// StoreChanges is a partial update. Nil fields keep their stored value.
type StoreChanges struct {
	Name    *string
	Address *string
	Active  *bool
}

// Columns returns the column/value pairs to persist, keyed by column name.
func (c StoreChanges) Columns() map[string]any {
	columns := make(map[string]any)
	if c.Name != nil {
		columns["name"] = *c.Name
	}
	if c.Address != nil {
		columns["address"] = *c.Address
	}
	if c.Active != nil {
		columns["active"] = *c.Active
	}
	return columns
}

// ApplyTo merges the changes into an in-memory store.
func (c StoreChanges) ApplyTo(store *Store) {
	if c.Name != nil {
		store.Name = *c.Name
	}
	if c.Address != nil {
		store.Address = *c.Address
	}
	if c.Active != nil {
		store.Active = *c.Active
	}
}
