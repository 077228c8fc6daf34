package books

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schulbib/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

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

func strPtr(s string) *string {
	return &s
}

func createTestBook(t *testing.T, repo *Repository, title, category string, total int) *entities.Book {
	book, err := repo.Create(Input{
		ISBN:        "978-3-00000-000-0",
		Title:       title,
		Category:    strPtr(category),
		TotalCopies: total,
	})
	require.NoError(t, err)
	return book
}

func TestRepository_CreateStartsFullyAvailable(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Create(Input{
		ISBN:        "978-3-12345-000-2",
		Title:       "Exel",
		TotalCopies: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, book.TotalCopies)
	assert.Equal(t, 4, book.AvailableCopies)
}

func TestRepository_CreateNegativeTotalClampsToZero(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Create(Input{
		ISBN:        "978-3-00000-000-0",
		Title:       "Kaputt",
		TotalCopies: -3,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, book.TotalCopies)
	assert.Equal(t, 0, book.AvailableCopies)
}

func TestRepository_UpdateClampsAvailableToTotal(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, repo, "Exel", "Informationstechnologie", 4)

	updated, err := repo.Update(book.ID, Input{
		ISBN:            book.ISBN,
		Title:           book.Title,
		TotalCopies:     2,
		AvailableCopies: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.TotalCopies)
	assert.Equal(t, 2, updated.AvailableCopies)
}

func TestRepository_UpdateNegativeCountsClampToZero(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, repo, "Exel", "Informationstechnologie", 4)

	updated, err := repo.Update(book.ID, Input{
		ISBN:            book.ISBN,
		Title:           book.Title,
		TotalCopies:     -1,
		AvailableCopies: -1,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, updated.TotalCopies)
	assert.Equal(t, 0, updated.AvailableCopies)
}

func TestRepository_UpdateStoresBlankOptionalFieldsAsNull(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, repo, "Exel", "Informationstechnologie", 4)

	_, err := repo.Update(book.ID, Input{
		ISBN:        book.ISBN,
		Title:       book.Title,
		Category:    nil,
		TotalCopies: 4,
	})
	require.NoError(t, err)

	var count int64
	db.Model(&entities.Book{}).Where("id = ? AND category IS NULL", book.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListFiltersByCategory(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestBook(t, repo, "Exel", "Informationstechnologie", 4)
	createTestBook(t, repo, "Mann & Kuh", "Wissenschaft", 1)

	filtered, err := repo.List(ListFilter{Category: "Wissenschaft"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Mann & Kuh", filtered[0].Title)

	all, err := repo.List(ListFilter{Category: ""})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Ordered by title ascending
	assert.Equal(t, "Exel", all[0].Title)
	assert.Equal(t, "Mann & Kuh", all[1].Title)
}

func TestRepository_ListFreeTextMatchesTitleDescriptionAuthor(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Create(Input{
		ISBN: "1", Title: "Exel",
		Description: strPtr("Einführung in Tabellen"),
		Author:      strPtr("Bill Gates"),
		TotalCopies: 1,
	})
	require.NoError(t, err)
	_, err = repo.Create(Input{
		ISBN: "2", Title: "Mann & Kuh",
		Author:      strPtr("Julian Bittner"),
		TotalCopies: 1,
	})
	require.NoError(t, err)

	byTitle, err := repo.List(ListFilter{Query: "Exel"})
	require.NoError(t, err)
	assert.Len(t, byTitle, 1)

	byAuthor, err := repo.List(ListFilter{Query: "Bittner"})
	require.NoError(t, err)
	assert.Len(t, byAuthor, 1)

	byDescription, err := repo.List(ListFilter{Query: "Tabellen"})
	require.NoError(t, err)
	assert.Len(t, byDescription, 1)

	// Blank query is ignored entirely, not "match nothing"
	blank, err := repo.List(ListFilter{Query: "   "})
	require.NoError(t, err)
	assert.Len(t, blank, 2)
}

func TestRepository_ListAvailabilityFilter(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestBook(t, repo, "Verfügbar", "Bildung", 2)
	empty := createTestBook(t, repo, "Vergriffen", "Bildung", 1)
	require.NoError(t, db.Model(&entities.Book{}).Where("id = ?", empty.ID).
		Update("available_copies", 0).Error)

	inStock, err := repo.List(ListFilter{Availability: "1"})
	require.NoError(t, err)
	require.Len(t, inStock, 1)
	assert.Equal(t, "Verfügbar", inStock[0].Title)

	outOfStock, err := repo.List(ListFilter{Availability: "0"})
	require.NoError(t, err)
	require.Len(t, outOfStock, 1)
	assert.Equal(t, "Vergriffen", outOfStock[0].Title)

	// Any other value applies no filter
	all, err := repo.List(ListFilter{Availability: "x"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_DeleteRefusedWithLoanHistory(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, repo, "Exel", "Informationstechnologie", 4)

	loan := entities.Loan{BookID: book.ID, BorrowerID: 1, LibrarianID: 1, LoanDate: "2026-08-29"}
	require.NoError(t, db.Create(&loan).Error)

	err := repo.Delete(book.ID)
	assert.ErrorIs(t, err, ErrHasLoans)

	// Book must still exist
	_, err = repo.GetByID(book.ID)
	assert.NoError(t, err)
}

func TestRepository_DeleteWithoutLoans(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, repo, "Exel", "Informationstechnologie", 4)

	require.NoError(t, repo.Delete(book.ID))

	_, err := repo.GetByID(book.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(book.ID), ErrNotFound)
}

func TestRepository_DistinctCategories(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestBook(t, repo, "A", "Wissenschaft", 1)
	createTestBook(t, repo, "B", "Bildung", 1)
	createTestBook(t, repo, "C", "Bildung", 1)

	categories, err := repo.DistinctCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bildung", "Wissenschaft"}, categories)
}
