package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"schulbib/internal/auth"
	"schulbib/internal/database/books"
)

// BooksController serves the public catalog and the administrative book
// CRUD screens.
type BooksController struct {
	books *books.Repository
}

// NewBooksController creates a new books controller.
func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{books: repo}
}

// listFilterFromQuery reads the catalog filter parameters shared by the
// public and the admin listing.
func listFilterFromQuery(c *gin.Context) books.ListFilter {
	return books.ListFilter{
		Query:        c.Query("q"),
		Category:     c.Query("kategorie"),
		Publisher:    c.Query("verlag"),
		Availability: c.Query("verfuegbar"),
	}
}

func (ctrl *BooksController) renderListing(c *gin.Context, template string, extra gin.H) {
	filter := listFilterFromQuery(c)

	list, err := ctrl.books.List(filter)
	if err != nil {
		respondDatabaseError(c, err, "list books")
		return
	}
	categories, err := ctrl.books.DistinctCategories()
	if err != nil {
		respondDatabaseError(c, err, "list categories")
		return
	}
	publishers, err := ctrl.books.DistinctPublishers()
	if err != nil {
		respondDatabaseError(c, err, "list publishers")
		return
	}

	data := gin.H{
		"Books":      list,
		"Filters":    filter,
		"Categories": categories,
		"Publishers": publishers,
	}
	for k, v := range extra {
		data[k] = v
	}
	c.HTML(http.StatusOK, template, data)
}

// PublicList renders the public filtered book listing.
func (ctrl *BooksController) PublicList(c *gin.Context) {
	ctrl.renderListing(c, "index", nil)
}

// AdminList renders the protected filtered book listing.
func (ctrl *BooksController) AdminList(c *gin.Context) {
	ctrl.renderListing(c, "admin", gin.H{
		"Librarian": auth.CurrentDisplayName(c),
	})
}

// NewForm renders the empty create-book form.
func (ctrl *BooksController) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "book-form", gin.H{
		"FormTitle":  "Neues Buch anlegen",
		"FormAction": "/admin/books/new",
		"Book":       nil,
	})
}

func bookInputFromForm(c *gin.Context) books.Input {
	return books.Input{
		ISBN:            c.PostForm("isbn"),
		Title:           c.PostForm("titel"),
		Description:     optionalField(c.PostForm("beschreibung")),
		Author:          optionalField(c.PostForm("autor")),
		Publisher:       optionalField(c.PostForm("verlag")),
		Category:        optionalField(c.PostForm("kategorie")),
		Price:           parsePrice(c.PostForm("apreis")),
		TotalCopies:     parseCount(c.PostForm("anzahlges")),
		AvailableCopies: parseCount(c.PostForm("anzahlver")),
	}
}

// Create stores a new book and redirects to the admin listing.
func (ctrl *BooksController) Create(c *gin.Context) {
	if _, err := ctrl.books.Create(bookInputFromForm(c)); err != nil {
		respondDatabaseError(c, err, "create book")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// EditForm renders the edit form for an existing book.
func (ctrl *BooksController) EditForm(c *gin.Context) {
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

	c.HTML(http.StatusOK, "book-form", gin.H{
		"FormTitle":  "Buch bearbeiten",
		"FormAction": "/admin/books/" + c.Param("id") + "/edit",
		"Book":       book,
	})
}

// Edit overwrites a book with the submitted form values.
func (ctrl *BooksController) Edit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.books.Update(id, bookInputFromForm(c)); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			c.String(http.StatusNotFound, "Buch nicht gefunden.")
			return
		}
		respondDatabaseError(c, err, "update book")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// Delete removes a book unless loan records still reference it.
func (ctrl *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := ctrl.books.Delete(id)
	switch {
	case errors.Is(err, books.ErrHasLoans):
		c.String(http.StatusBadRequest, "Buch kann nicht gelöscht werden (Ausleihen vorhanden).")
	case errors.Is(err, books.ErrNotFound):
		c.String(http.StatusNotFound, "Buch nicht gefunden.")
	case err != nil:
		respondDatabaseError(c, err, "delete book")
	default:
		c.Redirect(http.StatusFound, "/admin")
	}
}
