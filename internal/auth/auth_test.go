package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error

const testPasskey = "test-passkey"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	_ = os.Setenv("ADMIN_PASSKEY", testPasskey)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
}

// Helper: validate access token in response and return claims.
func assertValidAccessToken(t *testing.T, resp map[string]interface{}) *jwt.RegisteredClaims {
	t.Helper()
	tokenStr, ok := resp["token"].(string)
	assert.True(t, ok, "token not a string")
	token, err := ValidatedToken(tokenStr)
	assert.NoError(t, err)
	assert.True(t, token.Valid)
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	assert.True(t, ok, "claims type mismatch")
	assert.NotEmpty(t, claims.Subject, "token subject empty")
	assert.Equal(t, JwtIssuer, claims.Issuer)
	return claims
}

func TestRegisterUser(t *testing.T) {
	handler := NewUserAuthHandler(testDB)

	payload := map[string]string{
		"name":     "Registering User",
		"email":    "register-user@example.com",
		"phone":    "0811111111",
		"password": "password123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Register, "/api/users/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	assert.Contains(t, resp, "token")
	claims := assertValidAccessToken(t, resp)

	userVal, ok := resp["user"].(map[string]interface{})
	assert.True(t, ok, "user object missing in response")
	assert.Equal(t, userVal["id"], claims.Subject, "JWT subject should match user id")
	assert.NotContains(t, userVal, "password", "password hash must never be serialized")
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	handler := NewUserAuthHandler(testDB)

	payload := map[string]string{
		"name":     "Duplicate",
		"email":    database.TestUser1.Email,
		"phone":    "0899999999",
		"password": "password123",
	}
	rec, _, err := utilities.SimulateAPICall(handler.Register, "/api/users/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code, "body: %s", rec.Body.String())
}

func TestRegisterUserPasswordTooShort(t *testing.T) {
	handler := NewUserAuthHandler(testDB)

	payload := map[string]string{
		"name":     "Shorty",
		"email":    "shorty@example.com",
		"phone":    "0822222222",
		"password": "short",
	}
	rec, _, err := utilities.SimulateAPICall(handler.Register, "/api/users/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginUser(t *testing.T) {
	handler := NewUserAuthHandler(testDB)

	payload := map[string]string{
		"email":    database.TestUser1.Email,
		"password": database.TestSeedPassword,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/api/users/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	claims := assertValidAccessToken(t, resp)
	assert.Equal(t, database.TestUser1.ID.String(), claims.Subject)

	// Cookie must be set alongside the body token
	cookies := rec.Result().Cookies()
	found := false
	for _, ck := range cookies {
		if ck.Name == utilities.TokenCookieName && ck.Value != "" {
			found = true
			assert.True(t, ck.HttpOnly, "auth cookie must be httpOnly")
		}
	}
	assert.True(t, found, "auth cookie not set on login")
}

func TestLoginUserWrongPassword(t *testing.T) {
	handler := NewUserAuthHandler(testDB)

	payload := map[string]string{
		"email":    database.TestUser1.Email,
		"password": "definitely-wrong",
	}
	rec, _, err := utilities.SimulateAPICall(handler.Login, "/api/users/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginCompany(t *testing.T) {
	handler := NewCompanyAuthHandler(testDB, nil)

	payload := map[string]string{
		"email":    database.TestCompany1.Email,
		"password": database.TestSeedPassword,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/api/company/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	claims := assertValidAccessToken(t, resp)
	assert.Equal(t, database.TestCompany1.ID.String(), claims.Subject)
}

func TestLoginCompanyUnverifiedRejected(t *testing.T) {
	handler := NewCompanyAuthHandler(testDB, nil)

	// Correct credentials are not enough while the company is unverified
	payload := map[string]string{
		"email":    database.TestCompanyUnverified.Email,
		"password": database.TestSeedPassword,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/api/company/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, resp["message"], "not yet verified")
}

func TestLoginAdmin(t *testing.T) {
	handler := NewAdminAuthHandler(testDB)

	payload := map[string]string{
		"email":    database.TestPrimaryAdmin.Email,
		"password": database.TestSeedPassword,
		"passkey":  testPasskey,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/api/admin/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	claims := assertValidAccessToken(t, resp)
	assert.Equal(t, database.TestPrimaryAdmin.ID.String(), claims.Subject)
}

func TestLoginAdminWrongPasskey(t *testing.T) {
	handler := NewAdminAuthHandler(testDB)

	payload := map[string]string{
		"email":    database.TestPrimaryAdmin.Email,
		"password": database.TestSeedPassword,
		"passkey":  "wrong-passkey",
	}
	rec, _, err := utilities.SimulateAPICall(handler.Login, "/api/admin/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterAdminBecomesSubAdmin(t *testing.T) {
	handler := NewAdminAuthHandler(testDB)

	payload := map[string]string{
		"name":     "New Moderator",
		"email":    "new-moderator@example.com",
		"password": "password123",
		"passkey":  testPasskey,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Register, "/api/admin/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	adminVal, ok := resp["admin"].(map[string]interface{})
	assert.True(t, ok, "admin object missing in response")
	assert.Equal(t, "sub-admin", adminVal["role"])
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken(database.TestUser1.ID, -time.Minute)
	assert.NoError(t, err)

	_, err = ValidatedToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
