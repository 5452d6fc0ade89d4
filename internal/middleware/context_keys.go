package middleware

import "github.com/gin-gonic/gin"

// custCodeKey is the key used to store the authenticated customer's code in
// the request context. Using a custom type prevents collisions.
const custCodeKey = contextKey("custCode")

// GetCustCodeFromContext retrieves the authenticated customer code from the
// Gin context. It returns the code and a boolean indicating if it was found.
func GetCustCodeFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(custCodeKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(custCodeKey)
		if ctxVal != nil {
			return ctxVal.(string), true
		}
		return "", false
	}

	custCode, ok := val.(string)
	if !ok {
		return "", false
	}

	return custCode, true
}
