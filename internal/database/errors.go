package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// ErrNotFound matches any *NotFoundError via errors.Is.
var ErrNotFound = errors.New("record not found")

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string // "Book", "Store", ...
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Wrap annotates err with the failed operation. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// UniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint
// failure, and the first offending column ("email" for
// "UNIQUE constraint failed: users.email"). column is empty if the driver
// message has an unexpected shape.
func UniqueViolation(err error) (column string, ok bool) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return "", false
	}
	if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique && sqliteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
		return "", false
	}

	_, columns, found := strings.Cut(sqliteErr.Error(), "constraint failed: ")
	if !found {
		return "", true
	}
	first, _, _ := strings.Cut(columns, ",")
	if _, name, qualified := strings.Cut(first, "."); qualified {
		return strings.TrimSpace(name), true
	}
	return strings.TrimSpace(first), true
}
