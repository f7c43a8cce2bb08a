package middleware

import (
	"net/http"

	"megaexe/session"

	"github.com/gin-gonic/gin"
)

// SessionAuth gates protected routes on the session's isAuth flag. Every
// failure path, from a missing cookie to a store fault, degrades to the same
// 401 denial.
func SessionAuth(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(session.CookieName)
		if err != nil {
			deny(c)
			return
		}

		data, err := sessions.Get(c.Request.Context(), sid)
		if err != nil || !data.IsAuth {
			deny(c)
			return
		}

		c.Set("userId", data.UserID)
		c.Set("emailAddress", data.EmailAddress)
		c.Next()
	}
}

func deny(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	c.Abort()
}
