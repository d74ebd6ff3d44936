// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"jobdesk-backend/internal/auth"
	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// validatedSubject extracts and verifies the request token, returning the
// principal ID it was issued for. Auth failures abort with a status and
// message that tells the caller which stage failed: missing token,
// expired, bad signature, or bad issuer.
func validatedSubject(ctx *gin.Context) (string, bool) {
	tokenString, err := utilities.ExtractToken(ctx)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return "", false
	}

	token, err := auth.ValidatedToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("Token has expired"))
			return "", false
		}

		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("Invalid token signature"))
			return "", false
		}

		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail(
			fmt.Sprintf("Failed to validate token: %s", err.Error()),
		))
		return "", false
	}

	if !token.Valid {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("Invalid access token"))
		return "", false
	}

	claims := token.Claims.(*jwt.RegisteredClaims)

	if claims.Issuer != auth.JwtIssuer {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("Invalid token issuer"))
		return "", false
	}

	return claims.Subject, true
}

// RequireUser validates the request token and loads the job seeker it
// belongs to into the "user" context key.
func RequireUser(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		subject, ok := validatedSubject(ctx)
		if !ok {
			return
		}

		var foundUser model.User
		if err := db.Where("id = ?", subject).First(&foundUser).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("User not found"))
				return
			}
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.Fail(
				fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
			))
			return
		}

		ctx.Set("user", foundUser)
		ctx.Next()
	}
}

// RequireCompany validates the request token and loads the company it
// belongs to into the "company" context key.
func RequireCompany(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		subject, ok := validatedSubject(ctx)
		if !ok {
			return
		}

		var foundCompany model.Company
		if err := db.Where("id = ?", subject).First(&foundCompany).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("Company not found"))
				return
			}
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.Fail(
				fmt.Sprintf("Failed to retrieve company data: %s", err.Error()),
			))
			return
		}

		ctx.Set("company", foundCompany)
		ctx.Next()
	}
}

// RequireAdmin validates the request token and loads the admin it
// belongs to into the "admin" context key.
func RequireAdmin(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		subject, ok := validatedSubject(ctx)
		if !ok {
			return
		}

		var foundAdmin model.Admin
		if err := db.Where("id = ?", subject).First(&foundAdmin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("Admin not found"))
				return
			}
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.Fail(
				fmt.Sprintf("Failed to retrieve admin data: %s", err.Error()),
			))
			return
		}

		ctx.Set("admin", foundAdmin)
		ctx.Next()
	}
}
