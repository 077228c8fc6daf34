// Package loans provides database operations for the loan lifecycle.
//
// A loan moves one way: outstanding (return date NULL) to returned. Both
// Issue and Return bundle their two writes (loan row plus availability
// counter) into a single transaction so the counter can never drift from
// the loan table.
package loans

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"schulbib/internal/entities"
)

var (
	// ErrNotFound is returned when no loan matches the given ID.
	ErrNotFound = errors.New("loan not found")
	// ErrBookNotFound is returned when a loan is issued against a
	// nonexistent book.
	ErrBookNotFound = errors.New("book not found")
	// ErrNoCopiesAvailable is returned when a loan is issued against a
	// book with no available copies.
	ErrNoCopiesAvailable = errors.New("no copies available")
)

// ListFilter holds the optional filters of the loan listing.
type ListFilter struct {
	ActiveOnly bool   // only loans with a NULL return date
	Title      string // substring over the book title
	Borrower   string // substring over the borrower's first or last name
}

// Row is one line of the loan listing with the joined book and borrower
// columns needed for rendering.
type Row struct {
	ID                uint
	LoanDate          string
	ReturnDate        *string
	BookTitle         string
	BorrowerFirstName string
	BorrowerLastName  string
	BorrowerClass     *string
}

// Repository handles all loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns loans matching the filter, most recent first (loan date
// descending, ties broken by ID descending).
func (r *Repository) List(filter ListFilter) ([]Row, error) {
	query := r.db.Table("loans").
		Select(`loans.id,
			loans.loan_date,
			loans.return_date,
			books.title AS book_title,
			borrowers.first_name AS borrower_first_name,
			borrowers.last_name AS borrower_last_name,
			borrowers.class AS borrower_class`).
		Joins("JOIN books ON books.id = loans.book_id").
		Joins("JOIN borrowers ON borrowers.id = loans.borrower_id")

	if filter.ActiveOnly {
		query = query.Where("loans.return_date IS NULL")
	}
	if title := strings.TrimSpace(filter.Title); title != "" {
		query = query.Where("books.title LIKE ?", "%"+title+"%")
	}
	if name := strings.TrimSpace(filter.Borrower); name != "" {
		like := "%" + name + "%"
		query = query.Where("borrowers.first_name LIKE ? OR borrowers.last_name LIKE ?", like, like)
	}

	var rows []Row
	if err := query.Order("loans.loan_date DESC, loans.id DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return rows, nil
}

// GetByID retrieves a single loan.
func (r *Repository) GetByID(id uint) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.First(&loan, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// Issue creates a loan for today and takes one copy off the shelf. The
// availability check and the decrement are a single conditional UPDATE
// inside the transaction, so two requests racing for the last copy cannot
// both succeed.
func (r *Repository) Issue(bookID, borrowerID, librarianID uint) (*entities.Loan, error) {
	var loan *entities.Loan

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		result := tx.Model(&entities.Book{}).
			Where("id = ? AND available_copies > 0", bookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNoCopiesAvailable
		}

		loan = &entities.Loan{
			BookID:      bookID,
			BorrowerID:  borrowerID,
			LibrarianID: librarianID,
			LoanDate:    today(),
		}
		return tx.Create(loan).Error
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// Return closes a loan and puts the copy back on the shelf. Returning an
// already-returned loan is a no-op that still reports success: repeated
// return requests must not double-increment availability.
func (r *Repository) Return(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var loan entities.Loan
		if err := tx.First(&loan, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if loan.Returned() {
			return nil
		}

		if err := tx.Model(&loan).UpdateColumn("return_date", today()).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Book{}).
			Where("id = ?", loan.BookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies + 1")).Error
	})
}

func today() string {
	return time.Now().Format("2006-01-02")
}
