package utilities

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// TokenCookieName is the httpOnly cookie the auth handlers set on login
const TokenCookieName = "token"

// ExtractToken returns the signed token carried by the request, preferring
// the httpOnly cookie issued by this backend and falling back to an
// Authorization Bearer header.
func ExtractToken(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie, nil
	}
	return ExtractBearerToken(c)
}

// ExtractBearerToken pulls the token out of the Authorization header
func ExtractBearerToken(c *gin.Context) (string, error) {
	const bearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")

	if len(authHeader) <= len(bearerSchema) {
		return "", fmt.Errorf("no token provided, authorization denied")
	}

	return authHeader[len(bearerSchema):], nil
}
