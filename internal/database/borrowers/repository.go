// Package borrowers provides database operations for borrower management.
package borrowers

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"schulbib/internal/entities"
)

var (
	// ErrNotFound is returned when no borrower matches the given ID.
	ErrNotFound = errors.New("borrower not found")
	// ErrHasOpenLoans is returned when a borrower cannot be deleted
	// because outstanding loans still exist.
	ErrHasOpenLoans = errors.New("borrower has open loans")
)

// ListFilter holds the optional filters of the borrower listing.
type ListFilter struct {
	Name  string // substring over first or last name
	Class string // exact match
}

// Input carries the writable fields of a borrower.
type Input struct {
	FirstName string
	LastName  string
	Class     *string
	Email     *string
}

// Repository handles all borrower database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new borrowers repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns borrowers matching the filter, ordered by last then first name.
func (r *Repository) List(filter ListFilter) ([]entities.Borrower, error) {
	query := r.db.Model(&entities.Borrower{})

	if name := strings.TrimSpace(filter.Name); name != "" {
		like := "%" + name + "%"
		query = query.Where("last_name LIKE ? OR first_name LIKE ?", like, like)
	}
	if class := strings.TrimSpace(filter.Class); class != "" {
		query = query.Where("class = ?", class)
	}

	var borrowers []entities.Borrower
	if err := query.Order("last_name, first_name").Find(&borrowers).Error; err != nil {
		return nil, fmt.Errorf("failed to list borrowers: %w", err)
	}
	return borrowers, nil
}

// GetByID retrieves a single borrower.
func (r *Repository) GetByID(id uint) (*entities.Borrower, error) {
	var borrower entities.Borrower
	err := r.db.First(&borrower, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &borrower, nil
}

// Create inserts a new borrower.
func (r *Repository) Create(input Input) (*entities.Borrower, error) {
	borrower := &entities.Borrower{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Class:     input.Class,
		Email:     input.Email,
	}
	if err := r.db.Create(borrower).Error; err != nil {
		return nil, fmt.Errorf("failed to create borrower: %w", err)
	}
	return borrower, nil
}

// Delete removes a borrower. The deletion is refused while the borrower
// still holds outstanding loans (return date NULL); returned loans are
// kept as history and do not block deletion.
func (r *Repository) Delete(id uint) error {
	var openLoans int64
	err := r.db.Model(&entities.Loan{}).
		Where("borrower_id = ? AND return_date IS NULL", id).
		Count(&openLoans).Error
	if err != nil {
		return fmt.Errorf("failed to count open loans: %w", err)
	}
	if openLoans > 0 {
		return ErrHasOpenLoans
	}

	result := r.db.Delete(&entities.Borrower{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete borrower: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
