package middleware

import "github.com/gin-gonic/gin"

// callerKey stores the authenticated caller's ledger address.
const callerKey = contextKey("callerAddress")

// GetCallerFromContext retrieves the authenticated caller address. It returns
// the address and a boolean indicating if it was found.
func GetCallerFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(callerKey); v != nil {
		if addr, ok := v.(string); ok {
			return addr, true
		}
	}
	return "", false
}
