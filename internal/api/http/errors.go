package http

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	notFoundText       = "Bad URL Request: Page Not Found"
	internalErrMessage = "Internal Server Error"
)

// NotFound answers any request that matched no route.
func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, notFoundText)
}

// ErrorBoundary turns errors left on the gin context by handlers that did not
// write a response into the fixed 500 body. Details stay in the server log.
func ErrorBoundary(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		log.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).WithError(c.Errors.Last()).Error("unhandled request error")

		c.JSON(http.StatusInternalServerError, gin.H{"message": internalErrMessage})
	}
}

// Recovery catches panics anywhere below it, logs the stack and answers with
// the same body as ErrorBoundary.
func Recovery(log *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, err any) {
		log.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"panic":      err,
			"stack":      string(debug.Stack()),
		}).Error("recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": internalErrMessage})
	})
}
