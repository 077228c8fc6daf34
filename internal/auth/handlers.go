package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// loginErrorMessage is the single user-facing message for every failed
// login. Unknown login names and wrong passwords must render the exact
// same text.
const loginErrorMessage = "Benutzername oder Passwort ist falsch."

// isLocalPath validates that a redirect path is local to prevent open
// redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	// Reject protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") {
		return false
	}
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to /admin.
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/admin"
}

// Controller handles the login and logout endpoints.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
}

// NewController creates a new authentication controller.
func NewController(service *Service, sessionManager *SessionManager) *Controller {
	return &Controller{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ctrl.LoginPage)
	router.POST("/login", ctrl.Login)
	router.GET("/logout", ctrl.Logout)
}

// LoginPage renders the login form.
func (ctrl *Controller) LoginPage(c *gin.Context) {
	if ctrl.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	c.HTML(http.StatusOK, "login", gin.H{
		"Next": sanitizeRedirectPath(c.Query("next")),
	})
}

// Login handles the login form submission. A failed attempt re-renders
// the form with the generic error text and HTTP 200: it is a re-prompt,
// not a failure response.
func (ctrl *Controller) Login(c *gin.Context) {
	login := c.PostForm("login")
	password := c.PostForm("password")
	next := sanitizeRedirectPath(c.PostForm("next"))

	librarian, err := ctrl.service.Authenticate(login, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			log.Printf("Login failed for %q: %v", login, err)
		}
		c.HTML(http.StatusOK, "login", gin.H{
			"Error": loginErrorMessage,
			"Login": login,
			"Next":  next,
		})
		return
	}

	if err := ctrl.sessionManager.CreateSession(c.Request, librarian); err != nil {
		log.Printf("Failed to create session: %v", err)
		c.String(http.StatusInternalServerError, "Datenbankfehler.")
		return
	}

	c.Redirect(http.StatusFound, next)
}

// Logout destroys the session unconditionally and redirects to the
// public entry point.
func (ctrl *Controller) Logout(c *gin.Context) {
	if err := ctrl.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}
