package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"schulbib/internal/database/borrowers"
)

// BorrowersController serves the administrative borrower screens.
type BorrowersController struct {
	borrowers *borrowers.Repository
}

// NewBorrowersController creates a new borrowers controller.
func NewBorrowersController(repo *borrowers.Repository) *BorrowersController {
	return &BorrowersController{borrowers: repo}
}

// List renders the filtered borrower listing.
func (ctrl *BorrowersController) List(c *gin.Context) {
	filter := borrowers.ListFilter{
		Name:  c.Query("name"),
		Class: c.Query("klasse"),
	}

	list, err := ctrl.borrowers.List(filter)
	if err != nil {
		respondDatabaseError(c, err, "list borrowers")
		return
	}

	c.HTML(http.StatusOK, "users", gin.H{
		"Users":   list,
		"Filters": filter,
	})
}

// NewForm renders the empty create-borrower form.
func (ctrl *BorrowersController) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "user-form", gin.H{
		"FormTitle":  "Neuen Benutzer anlegen",
		"FormAction": "/admin/benutzer/new",
	})
}

// Create stores a new borrower and redirects to the borrower listing.
func (ctrl *BorrowersController) Create(c *gin.Context) {
	input := borrowers.Input{
		FirstName: c.PostForm("vname"),
		LastName:  c.PostForm("name"),
		Class:     optionalField(c.PostForm("klasse")),
		Email:     optionalField(c.PostForm("email")),
	}

	if _, err := ctrl.borrowers.Create(input); err != nil {
		respondDatabaseError(c, err, "create borrower")
		return
	}
	c.Redirect(http.StatusFound, "/admin/benutzer")
}

// Delete removes a borrower unless they still hold outstanding loans.
func (ctrl *BorrowersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := ctrl.borrowers.Delete(id)
	switch {
	case errors.Is(err, borrowers.ErrHasOpenLoans):
		c.String(http.StatusBadRequest, "Benutzer kann nicht gelöscht werden (evtl. noch Ausleihen vorhanden).")
	case errors.Is(err, borrowers.ErrNotFound):
		c.String(http.StatusNotFound, "Benutzer nicht gefunden.")
	case err != nil:
		respondDatabaseError(c, err, "delete borrower")
	default:
		c.Redirect(http.StatusFound, "/admin/benutzer")
	}
}
