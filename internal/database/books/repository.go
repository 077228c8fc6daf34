// Package books provides database operations for the book catalog.
package books

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"schulbib/internal/entities"
)

var (
	// ErrNotFound is returned when no book matches the given ID.
	ErrNotFound = errors.New("book not found")
	// ErrHasLoans is returned when a book cannot be deleted because loan
	// records still reference it.
	ErrHasLoans = errors.New("book has loan records")
)

// ListFilter holds the optional filters of the book listing. Blank values
// are ignored; Availability is only honored for the literal values "1"
// (in stock) and "0" (out of stock).
type ListFilter struct {
	Query        string // substring over title, description and author
	Category     string // exact match
	Publisher    string // exact match
	Availability string // "1", "0" or anything else for no filter
}

// Input carries the writable fields of a book. Optional fields are nil
// when the form field was left blank so they store as NULL.
type Input struct {
	ISBN            string
	Title           string
	Description     *string
	Author          *string
	Publisher       *string
	Category        *string
	Price           *float64
	TotalCopies     int
	AvailableCopies int
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns books matching the filter, ordered by title. Every filter
// value is passed as a bound parameter.
func (r *Repository) List(filter ListFilter) ([]entities.Book, error) {
	query := r.db.Model(&entities.Book{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + q + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR author LIKE ?", like, like, like)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if publisher := strings.TrimSpace(filter.Publisher); publisher != "" {
		query = query.Where("publisher = ?", publisher)
	}
	switch filter.Availability {
	case "1":
		query = query.Where("available_copies > 0")
	case "0":
		query = query.Where("available_copies = 0")
	}

	var books []entities.Book
	if err := query.Order("title ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetByID retrieves a single book.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// Create inserts a new book. A brand-new book starts fully available:
// AvailableCopies is initialized to TotalCopies regardless of input.
func (r *Repository) Create(input Input) (*entities.Book, error) {
	total := input.TotalCopies
	if total < 0 {
		total = 0
	}

	book := &entities.Book{
		ISBN:            input.ISBN,
		Title:           input.Title,
		Description:     input.Description,
		Author:          input.Author,
		Publisher:       input.Publisher,
		Category:        input.Category,
		Price:           input.Price,
		TotalCopies:     total,
		AvailableCopies: total,
	}

	if err := r.db.Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// Update overwrites all fields of an existing book. Copy counts are
// clamped so that 0 <= available <= total always holds.
func (r *Repository) Update(id uint, input Input) (*entities.Book, error) {
	book, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	total := input.TotalCopies
	if total < 0 {
		total = 0
	}
	available := input.AvailableCopies
	if available < 0 {
		available = 0
	}
	if available > total {
		available = total
	}

	book.ISBN = input.ISBN
	book.Title = input.Title
	book.Description = input.Description
	book.Author = input.Author
	book.Publisher = input.Publisher
	book.Category = input.Category
	book.Price = input.Price
	book.TotalCopies = total
	book.AvailableCopies = available

	if err := r.db.Save(book).Error; err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return book, nil
}

// Delete removes a book. Deletion is refused while any loan record,
// open or returned, still references the book.
func (r *Repository) Delete(id uint) error {
	var loanCount int64
	if err := r.db.Model(&entities.Loan{}).Where("book_id = ?", id).Count(&loanCount).Error; err != nil {
		return fmt.Errorf("failed to count loans: %w", err)
	}
	if loanCount > 0 {
		return ErrHasLoans
	}

	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DistinctCategories returns all non-empty categories, ordered, for the
// listing filter dropdown.
func (r *Repository) DistinctCategories() ([]string, error) {
	return r.distinctColumn("category")
}

// DistinctPublishers returns all non-empty publishers, ordered.
func (r *Repository) DistinctPublishers() ([]string, error) {
	return r.distinctColumn("publisher")
}

func (r *Repository) distinctColumn(column string) ([]string, error) {
	var values []string
	err := r.db.Model(&entities.Book{}).
		Distinct(column).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s values: %w", column, err)
	}
	return values, nil
}
