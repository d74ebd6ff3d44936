package auth

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobdesk-backend/internal/utilities"
)

// setAuthCookie attaches the signed token as an httpOnly cookie. The
// token is also returned in the response body so non-browser clients
// can use the Authorization header instead.
func setAuthCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := strings.ToLower(strings.TrimSpace(os.Getenv("COOKIE_SECURE"))) == "true"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utilities.TokenCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// clearAuthCookie expires the auth cookie immediately.
func clearAuthCookie(c *gin.Context) {
	secure := strings.ToLower(strings.TrimSpace(os.Getenv("COOKIE_SECURE"))) == "true"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utilities.TokenCookieName, "", -1, "/", "", secure, true)
}
