// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"reflect"

	"jobdesk-backend/internal/model"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ErrorResponse is the failure envelope every handler returns
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResponse is the success envelope for handlers with no payload
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Fail builds a failure envelope with the given message
func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

// OK builds a success envelope with the given message
func OK(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}

// HashPassword hashes a plaintext password with bcrypt (per-password salt)
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ExtractUser extracts the authenticated user from gin context.
// Returns an error instead of aborting so handlers decide the response.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get("user")
	if u == nil {
		return model.User{}, errors.New("user information not provided")
	}
	user, ok := u.(model.User)
	if !ok {
		return model.User{}, errors.New("failed to assert type")
	}
	return user, nil
}

// ExtractCompany extracts the authenticated company from gin context
func ExtractCompany(c *gin.Context) (model.Company, error) {
	v, _ := c.Get("company")
	if v == nil {
		return model.Company{}, errors.New("company information not provided")
	}
	company, ok := v.(model.Company)
	if !ok {
		return model.Company{}, errors.New("failed to assert type")
	}
	return company, nil
}

// ExtractAdmin extracts the authenticated admin from gin context
func ExtractAdmin(c *gin.Context) (model.Admin, error) {
	v, _ := c.Get("admin")
	if v == nil {
		return model.Admin{}, errors.New("admin information not provided")
	}
	admin, ok := v.(model.Admin)
	if !ok {
		return model.Admin{}, errors.New("failed to assert type")
	}
	return admin, nil
}

// MergeNonEmpty help merge struct with non-empty field
func MergeNonEmpty(dst, src interface{}) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()

	for i := 0; i < sv.NumField(); i++ {
		sf := sv.Field(i)
		if !sf.IsZero() {
			df := dv.FieldByName(sv.Type().Field(i).Name)
			if df.IsValid() && df.CanSet() {
				df.Set(sf)
			}
		}
	}
}
