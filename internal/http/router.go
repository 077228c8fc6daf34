package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"schulbib/internal/auth"
	"schulbib/internal/database"
	"schulbib/internal/database/books"
	"schulbib/internal/database/borrowers"
	"schulbib/internal/database/loans"
)

// RouterConfig carries all router dependencies.
type RouterConfig struct {
	Database       *database.Database
	SessionManager *auth.SessionManager
	AuthService    *auth.Service
	TemplatesPath  string
	StaticPath     string
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Session middleware must run before anything touching session state
	router.Use(cfg.SessionManager.SessionLoadSave())

	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	db := cfg.Database.DB
	booksRepo := books.NewRepository(db)
	borrowersRepo := borrowers.NewRepository(db)
	loansRepo := loans.NewRepository(db)

	booksController := NewBooksController(booksRepo)
	borrowersController := NewBorrowersController(borrowersRepo)
	loansController := NewLoansController(loansRepo, booksRepo, borrowersRepo)
	health := NewHealthController(cfg.Database, cfg.Version)

	authController := auth.NewController(cfg.AuthService, cfg.SessionManager)
	authController.RegisterRoutes(router)

	// Public routes
	router.GET("/", booksController.PublicList)
	router.GET("/health", health.Status)

	// Administrative routes, gated on a valid session
	authMiddleware := auth.NewMiddleware(cfg.SessionManager)
	admin := router.Group("/admin", authMiddleware.RequireLogin())
	{
		admin.GET("", booksController.AdminList)

		admin.GET("/books/new", booksController.NewForm)
		admin.POST("/books/new", booksController.Create)
		admin.GET("/books/:id/edit", booksController.EditForm)
		admin.POST("/books/:id/edit", booksController.Edit)
		admin.POST("/books/:id/delete", booksController.Delete)

		admin.GET("/benutzer", borrowersController.List)
		admin.GET("/benutzer/new", borrowersController.NewForm)
		admin.POST("/benutzer/new", borrowersController.Create)
		admin.POST("/benutzer/:id/delete", borrowersController.Delete)

		admin.GET("/books/:id/loan", loansController.IssueForm)
		admin.POST("/books/:id/loan", loansController.Issue)
		admin.GET("/ausleihen", loansController.List)
		admin.POST("/ausleihen/:id/return", loansController.Return)
	}

	return router
}
