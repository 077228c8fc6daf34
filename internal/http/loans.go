package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"schulbib/internal/auth"
	"schulbib/internal/database/books"
	"schulbib/internal/database/borrowers"
	"schulbib/internal/database/loans"
)

// LoansController serves the loan-issue form, the loan listing and the
// return action.
type LoansController struct {
	loans     *loans.Repository
	books     *books.Repository
	borrowers *borrowers.Repository
}

// NewLoansController creates a new loans controller.
func NewLoansController(loansRepo *loans.Repository, booksRepo *books.Repository, borrowersRepo *borrowers.Repository) *LoansController {
	return &LoansController{
		loans:     loansRepo,
		books:     booksRepo,
		borrowers: borrowersRepo,
	}
}

// IssueForm renders the loan form for one book with a filterable
// borrower picker.
func (ctrl *LoansController) IssueForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := ctrl.books.GetByID(id)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			c.String(http.StatusNotFound, "Buch nicht gefunden.")
			return
		}
		respondDatabaseError(c, err, "load book")
		return
	}

	filter := borrowers.ListFilter{
		Name:  c.Query("name"),
		Class: c.Query("klasse"),
	}
	candidates, err := ctrl.borrowers.List(filter)
	if err != nil {
		respondDatabaseError(c, err, "list borrowers")
		return
	}

	c.HTML(http.StatusOK, "loan-form", gin.H{
		"Book":      book,
		"Borrowers": candidates,
		"Filters":   filter,
	})
}

// Issue creates a loan attributed to the authenticated librarian and
// redirects to the loan listing.
func (ctrl *LoansController) Issue(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	borrowerID := parseCount(c.PostForm("benutzer_id"))
	if borrowerID <= 0 {
		c.String(http.StatusBadRequest, "Ungültiger Benutzer.")
		return
	}

	librarianID := auth.CurrentLibrarianID(c)

	_, err := ctrl.loans.Issue(bookID, uint(borrowerID), librarianID)
	switch {
	case errors.Is(err, loans.ErrBookNotFound):
		c.String(http.StatusNotFound, "Buch nicht gefunden.")
	case errors.Is(err, loans.ErrNoCopiesAvailable):
		c.String(http.StatusBadRequest, "Keine Exemplare verfügbar.")
	case err != nil:
		respondDatabaseError(c, err, "issue loan")
	default:
		c.Redirect(http.StatusFound, "/admin/ausleihen")
	}
}

// List renders the filtered loan listing, most recent first.
func (ctrl *LoansController) List(c *gin.Context) {
	filter := loans.ListFilter{
		ActiveOnly: c.Query("nurAktiv") == "1",
		Title:      c.Query("titel"),
		Borrower:   c.Query("name"),
	}

	rows, err := ctrl.loans.List(filter)
	if err != nil {
		respondDatabaseError(c, err, "list loans")
		return
	}

	c.HTML(http.StatusOK, "loans", gin.H{
		"Loans":    rows,
		"Filters":  filter,
		"NurAktiv": filter.ActiveOnly,
	})
}

// Return marks a loan as returned. Already-returned loans redirect
// without further writes.
func (ctrl *LoansController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := ctrl.loans.Return(id)
	switch {
	case errors.Is(err, loans.ErrNotFound):
		c.String(http.StatusNotFound, "Ausleihe nicht gefunden.")
	case err != nil:
		respondDatabaseError(c, err, "return loan")
	default:
		c.Redirect(http.StatusFound, "/admin/ausleihen")
	}
}
