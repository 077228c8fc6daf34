// Package librarians provides database operations for librarian accounts.
package librarians

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"schulbib/internal/entities"
)

// ErrNotFound is returned when no librarian matches the lookup.
var ErrNotFound = errors.New("librarian not found")

// Repository handles all librarian database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new librarians repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByLogin retrieves a librarian by their unique login name.
func (r *Repository) GetByLogin(login string) (*entities.Librarian, error) {
	var librarian entities.Librarian
	err := r.db.Where("login = ?", login).First(&librarian).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &librarian, nil
}

// GetByID retrieves a librarian by ID.
func (r *Repository) GetByID(id uint) (*entities.Librarian, error) {
	var librarian entities.Librarian
	err := r.db.First(&librarian, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &librarian, nil
}

// Create inserts a new librarian account with an already-hashed password.
func (r *Repository) Create(librarian *entities.Librarian) error {
	if err := r.db.Create(librarian).Error; err != nil {
		return fmt.Errorf("failed to create librarian: %w", err)
	}
	return nil
}
