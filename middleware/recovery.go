package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONRecovery converts panics into the same opaque JSON 500 every other
// unexpected failure produces.
func JSONRecovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Printf("panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	})
}
