package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler recovers from panics in handlers and answers with a plain
// error page, or JSON when the client asked for it.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)
				log.Printf("Error: %s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, requestID, err)
				writeError(c, http.StatusInternalServerError, "Internal Server Error", requestID)
			}
		}()
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			log.Printf("Error: %s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, GetRequestID(c), c.Errors.String())
			status := c.Writer.Status()
			if status < http.StatusBadRequest {
				status = http.StatusInternalServerError
			}
			writeError(c, status, c.Errors.Last().Error(), GetRequestID(c))
		}
	}
}

func writeError(c *gin.Context, status int, message, requestID string) {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.AbortWithStatusJSON(status, ErrorResponse{Error: message, RequestID: requestID})
		return
	}
	c.Abort()
	c.String(status, "%s (request %s)", message, requestID)
}
