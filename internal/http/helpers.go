package http

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 and returns false on malformed input.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Ungültige ID.")
		return 0, false
	}
	return uint(id), true
}

// respondDatabaseError logs the error server-side and sends the generic
// database failure text. Store failures are never recovered locally.
func respondDatabaseError(c *gin.Context, err error, context string) {
	log.Printf("Database error (%s): %v", context, err)
	c.String(http.StatusInternalServerError, "Datenbankfehler.")
}

// optionalField returns nil for a blank form value so that optional
// columns store as NULL rather than empty strings.
func optionalField(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

// parseCount parses a copy-count form field with a fallback of zero on
// parse failure. Negative clamping happens in the repository.
func parseCount(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

// parsePrice parses an optional numeric price; blank or invalid input
// stores as NULL.
func parsePrice(value string) *float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &price
}
