package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionChecker reports whether the client holds a token
type SessionChecker interface {
	IsAuthenticated() bool
}

// RequireSession sends visitors without a session to the auth screen
func RequireSession(session SessionChecker, authPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, authPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectAuthenticated keeps signed-in users away from the auth screen
func RedirectAuthenticated(session SessionChecker, homePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, homePath)
			c.Abort()
			return
		}
		c.Next()
	}
}
