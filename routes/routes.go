package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var startedAt = time.Now()

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":     true,
			"uptime": time.Since(startedAt).Seconds(),
		})
	})

	r.GET("/db-ping", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "now": time.Now()})
	})

	SetupProductRoutes(r, db)
	SetupUserRoutes(r, db)
	SetupCartRoutes(r, db)
	SetupOrderRoutes(r, db)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
