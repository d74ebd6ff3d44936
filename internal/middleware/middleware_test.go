package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"jobdesk-backend/internal/auth"
	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

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

func protectedEngine(guard gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, utilities.OK("through"))
	})
	return r
}

func doRequest(r *gin.Engine, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireUserMissingToken(t *testing.T) {
	r := protectedEngine(RequireUser(testDB))
	rec := doRequest(r, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token provided")
}

func TestRequireUserBearerToken(t *testing.T) {
	token, err := auth.GenerateToken(database.TestUser1.ID, time.Hour)
	assert.NoError(t, err)

	r := protectedEngine(RequireUser(testDB))
	rec := doRequest(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
}

func TestRequireUserCookieToken(t *testing.T) {
	token, err := auth.GenerateToken(database.TestUser1.ID, time.Hour)
	assert.NoError(t, err)

	r := protectedEngine(RequireUser(testDB))
	rec := doRequest(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: utilities.TokenCookieName, Value: token})
	})
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
}

func TestRequireUserExpiredToken(t *testing.T) {
	token, err := auth.GenerateToken(database.TestUser1.ID, -time.Minute)
	assert.NoError(t, err)

	r := protectedEngine(RequireUser(testDB))
	rec := doRequest(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has expired")
}

func TestRequireUserPrincipalGone(t *testing.T) {
	// Token for a company is not a user token: subject resolves to nothing
	token, err := auth.GenerateToken(database.TestCompany1.ID, time.Hour)
	assert.NoError(t, err)

	r := protectedEngine(RequireUser(testDB))
	rec := doRequest(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestRequireCompany(t *testing.T) {
	token, err := auth.GenerateToken(database.TestCompany1.ID, time.Hour)
	assert.NoError(t, err)

	r := protectedEngine(RequireCompany(testDB))
	rec := doRequest(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	token, err := auth.GenerateToken(database.TestPrimaryAdmin.ID, time.Hour)
	assert.NoError(t, err)

	r := protectedEngine(RequireAdmin(testDB))
	rec := doRequest(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
}

func TestPremiumGate(t *testing.T) {
	r := gin.New()
	r.GET("/premium", RequireCompany(testDB), CheckPremiumAccess(), func(c *gin.Context) {
		c.JSON(http.StatusOK, utilities.OK("through"))
	})

	premiumToken, err := auth.GenerateToken(database.TestCompany1.ID, time.Hour)
	assert.NoError(t, err)
	basicToken, err := auth.GenerateToken(database.TestCompany2.ID, time.Hour)
	assert.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/premium", nil)
	req.Header.Set("Authorization", "Bearer "+premiumToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	req, _ = http.NewRequest(http.MethodGet, "/premium", nil)
	req.Header.Set("Authorization", "Bearer "+basicToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Premium access required")
}
