package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "userID"

// GinRequireAuth adapts the net/http AuthMiddleware to Gin. The resolved
// user id is also stored on the gin context under UserIDKey.
func GinRequireAuth(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false

		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			if userID, ok := UserIDFromContext(r.Context()); ok {
				c.Set(UserIDKey, userID)
			}
		})

		auth.RequireAuth(next).ServeHTTP(c.Writer, c.Request)

		// If auth middleware already handled the response, stop Gin chain
		if !passed {
			c.Abort()
			return
		}
		c.Next()
	}
}
