package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// headroom for multipart boundaries and part headers
var multipartOverhead = int64(8 * 1024)

// SizeLimit caps the request body with http.MaxBytesReader. Reads past
// the cap fail with http.MaxBytesError, which handlers surface as
// 413 Request Entity Too Large.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := c.Writer

		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, maxBodyBytes+(c.Request.ContentLength+multipartOverhead))

		c.Next()
	}
}
