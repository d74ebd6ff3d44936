package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobdesk-backend/internal/utilities"
)

// CheckPremiumAccess protects company endpoints that require the premium
// flag. Must run after RequireCompany.
func CheckPremiumAccess() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		company, err := utilities.ExtractCompany(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
			return
		}

		if !company.HavePremiumAccess {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.Fail(
				"Premium access required for this operation",
			))
			return
		}

		ctx.Next()
	}
}
