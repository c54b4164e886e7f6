package entities

import "time"

// Book is a catalog entry that can be stocked by any number of stores.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	ISBN      string    `gorm:"column:isbn;size:20" json:"isbn"`
	Value     float64   `gorm:"type:decimal(10,2)" json:"value"`
	Stores    []Store   `gorm:"many2many:book_store;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BookFields is the validated field set used to create a book.
type BookFields struct {
	Name  string
	ISBN  string
	Value float64
}

// NewBook builds an unsaved book from validated fields.
func NewBook(fields BookFields) *Book {
	return &Book{
		Name:  fields.Name,
		ISBN:  fields.ISBN,
		Value: fields.Value,
	}
}

// BookChanges is a partial update. Nil fields keep their stored value.
type BookChanges struct {
	Name  *string
	ISBN  *string
	Value *float64
}

// Columns returns the column/value pairs to persist, keyed by column name.
func (c BookChanges) Columns() map[string]any {
	columns := make(map[string]any)
	if c.Name != nil {
		columns["name"] = *c.Name
	}
	if c.ISBN != nil {
		columns["isbn"] = *c.ISBN
	}
	if c.Value != nil {
		columns["value"] = *c.Value
	}
	return columns
}

// ApplyTo merges the changes into an in-memory book.
func (c BookChanges) ApplyTo(book *Book) {
	if c.Name != nil {
		book.Name = *c.Name
	}
	if c.ISBN != nil {
		book.ISBN = *c.ISBN
	}
	if c.Value != nil {
		book.Value = *c.Value
	}
}
