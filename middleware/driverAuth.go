package middleware

import (
	"net/http"
	"strings"

	driverRepo "fleetdesk/database/repository/driver"
	"fleetdesk/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthDriverMiddleware authenticates driver requests and stores the
// driver's ID in the context as "driverID".
func JWTAuthDriverMiddleware(drivers driverRepo.DriverRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		driverID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || driverID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		drv, err := drivers.GetByID(driverID)
		if err != nil || drv == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set("driverID", drv.ID)
		c.Next()
	}
}
