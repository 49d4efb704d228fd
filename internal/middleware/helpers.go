// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

// GetAdminID gets the authenticated admin's ID from context
func GetAdminID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("admin_id")
	if !exists {
		return 0, false
	}

	id, ok := v.(int64)
	return id, ok
}

// MustGetAdminID gets the admin ID from context or panics
func MustGetAdminID(c *gin.Context) int64 {
	id, exists := GetAdminID(c)
	if !exists {
		panic("admin_id not found in context")
	}
	return id
}

// GetAdminEmail gets the authenticated admin's email from context
func GetAdminEmail(c *gin.Context) string {
	v, exists := c.Get("admin_email")
	if !exists {
		return ""
	}

	email, _ := v.(string)
	return email
}

// IsAuthenticated checks if the request carries a validated identity
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("admin_id")
	return exists
}
