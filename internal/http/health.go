package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schulbib/internal/database"
)

// HealthController reports process liveness and database reachability.
type HealthController struct {
	db      *database.Database
	version string
}

// NewHealthController creates a new health controller.
func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status pings the database and reports overall health as JSON.
func (ctrl *HealthController) Status(c *gin.Context) {
	sqlDB, err := ctrl.db.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"version": ctrl.version,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": ctrl.version,
	})
}
