package loans

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schulbib/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_loans_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Borrower{},
		&entities.Librarian{},
		&entities.Book{},
		&entities.Loan{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createTestBook(t *testing.T, db *gorm.DB, title string, available int) *entities.Book {
	book := &entities.Book{
		ISBN:            "978-3-00000-000-0",
		Title:           title,
		TotalCopies:     available,
		AvailableCopies: available,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func createTestBorrower(t *testing.T, db *gorm.DB, first, last string) *entities.Borrower {
	borrower := &entities.Borrower{FirstName: first, LastName: last}
	require.NoError(t, db.Create(borrower).Error)
	return borrower
}

func availableCopies(t *testing.T, db *gorm.DB, bookID uint) int {
	var book entities.Book
	require.NoError(t, db.First(&book, bookID).Error)
	return book.AvailableCopies
}

func TestRepository_IssueDecrementsAvailability(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Exel", 4)
	borrower := createTestBorrower(t, db, "Paul", "Berger")

	loan, err := repo.Issue(book.ID, borrower.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, book.ID, loan.BookID)
	assert.Equal(t, borrower.ID, loan.BorrowerID)
	assert.Equal(t, uint(1), loan.LibrarianID)
	assert.Equal(t, time.Now().Format("2006-01-02"), loan.LoanDate)
	assert.Nil(t, loan.ReturnDate)

	assert.Equal(t, 3, availableCopies(t, db, book.ID))
}

func TestRepository_IssueBookNotFound(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	borrower := createTestBorrower(t, db, "Paul", "Berger")

	_, err := repo.Issue(9999, borrower.ID, 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_IssueNoCopiesAvailable(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Mann & Kuh", 0)
	borrower := createTestBorrower(t, db, "Paul", "Berger")

	_, err := repo.Issue(book.ID, borrower.ID, 1)
	assert.ErrorIs(t, err, ErrNoCopiesAvailable)

	// No writes: no loan row, counter untouched
	var loanCount int64
	db.Model(&entities.Loan{}).Count(&loanCount)
	assert.Equal(t, int64(0), loanCount)
	assert.Equal(t, 0, availableCopies(t, db, book.ID))
}

func TestRepository_IssueLastCopyOnlyOnce(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Mann & Kuh", 1)
	borrower := createTestBorrower(t, db, "Paul", "Berger")

	_, err := repo.Issue(book.ID, borrower.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, availableCopies(t, db, book.ID))

	// The second attempt must hit the conditional decrement and fail
	_, err = repo.Issue(book.ID, borrower.ID, 1)
	assert.ErrorIs(t, err, ErrNoCopiesAvailable)

	var loanCount int64
	db.Model(&entities.Loan{}).Count(&loanCount)
	assert.Equal(t, int64(1), loanCount)
	assert.Equal(t, 0, availableCopies(t, db, book.ID))
}

func TestRepository_ReturnIncrementsAvailability(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Exel", 4)
	borrower := createTestBorrower(t, db, "Paul", "Berger")

	loan, err := repo.Issue(book.ID, borrower.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 3, availableCopies(t, db, book.ID))

	require.NoError(t, repo.Return(loan.ID))

	assert.Equal(t, 4, availableCopies(t, db, book.ID))

	reloaded, err := repo.GetByID(loan.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.ReturnDate)
	assert.Equal(t, time.Now().Format("2006-01-02"), *reloaded.ReturnDate)
}

func TestRepository_ReturnIsIdempotent(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Exel", 4)
	borrower := createTestBorrower(t, db, "Paul", "Berger")

	loan, err := repo.Issue(book.ID, borrower.ID, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Return(loan.ID))

	first, err := repo.GetByID(loan.ID)
	require.NoError(t, err)

	// Second return reports success but changes nothing
	require.NoError(t, repo.Return(loan.ID))

	assert.Equal(t, 4, availableCopies(t, db, book.ID))
	second, err := repo.GetByID(loan.ID)
	require.NoError(t, err)
	assert.Equal(t, *first.ReturnDate, *second.ReturnDate)
}

func TestRepository_ReturnNotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	assert.ErrorIs(t, repo.Return(9999), ErrNotFound)
}

func TestRepository_ListMostRecentFirst(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Exel", 4)
	borrower := createTestBorrower(t, db, "Paul", "Berger")

	older := entities.Loan{BookID: book.ID, BorrowerID: borrower.ID, LibrarianID: 1, LoanDate: "2026-08-01"}
	require.NoError(t, db.Create(&older).Error)
	newer := entities.Loan{BookID: book.ID, BorrowerID: borrower.ID, LibrarianID: 1, LoanDate: "2026-08-15"}
	require.NoError(t, db.Create(&newer).Error)
	sameDay := entities.Loan{BookID: book.ID, BorrowerID: borrower.ID, LibrarianID: 1, LoanDate: "2026-08-15"}
	require.NoError(t, db.Create(&sameDay).Error)

	rows, err := repo.List(ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Loan date descending, ties broken by ID descending
	assert.Equal(t, sameDay.ID, rows[0].ID)
	assert.Equal(t, newer.ID, rows[1].ID)
	assert.Equal(t, older.ID, rows[2].ID)
}

func TestRepository_ListActiveOnly(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Exel", 4)
	borrower := createTestBorrower(t, db, "Paul", "Berger")

	open, err := repo.Issue(book.ID, borrower.ID, 1)
	require.NoError(t, err)
	closed, err := repo.Issue(book.ID, borrower.ID, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Return(closed.ID))

	rows, err := repo.List(ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, open.ID, rows[0].ID)
	assert.Nil(t, rows[0].ReturnDate)
}

func TestRepository_ListTitleAndBorrowerFilters(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	exel := createTestBook(t, db, "Exel", 4)
	kuh := createTestBook(t, db, "Mann & Kuh", 1)
	paul := createTestBorrower(t, db, "Paul", "Berger")
	phillipp := createTestBorrower(t, db, "Phillipp", "Schlichting")

	_, err := repo.Issue(exel.ID, paul.ID, 1)
	require.NoError(t, err)
	_, err = repo.Issue(kuh.ID, phillipp.ID, 1)
	require.NoError(t, err)

	byTitle, err := repo.List(ListFilter{Title: "Kuh"})
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Mann & Kuh", byTitle[0].BookTitle)

	byBorrower, err := repo.List(ListFilter{Borrower: "Berger"})
	require.NoError(t, err)
	require.Len(t, byBorrower, 1)
	assert.Equal(t, "Exel", byBorrower[0].BookTitle)

	byFirstName, err := repo.List(ListFilter{Borrower: "Phillipp"})
	require.NoError(t, err)
	require.Len(t, byFirstName, 1)
	assert.Equal(t, "Schlichting", byFirstName[0].BorrowerLastName)
}
