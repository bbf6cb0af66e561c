package auth

import "github.com/gin-gonic/gin"

const (
	staffIDKey   = "staffID"
	staffRoleKey = "staffRole"
)

// GetStaffID returns the signed-in staff member's ID or empty string.
func GetStaffID(c *gin.Context) string {
	return getString(c, staffIDKey)
}

// GetStaffRole returns the role carried by the session token or empty string.
func GetStaffRole(c *gin.Context) string {
	return getString(c, staffRoleKey)
}

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
