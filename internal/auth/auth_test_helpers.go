package auth

import (
	"fmt"
	"net/http"
	"testing"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/utilities"
)

// GetUserAccessToken obtains an access token by simulating a job seeker login.
// It returns the access token as a string and any error encountered.
func GetUserAccessToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	email string,
	password string,
) (string, error) {
	t.Helper()
	handler := NewUserAuthHandler(db)
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/api/users/login", http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login Failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	if resp["token"] == nil {
		return "", fmt.Errorf("login Failed: no token in response: %s", rec.Body.String())
	}
	return resp["token"].(string), nil
}

// GetCompanyAccessToken obtains an access token by simulating a company login.
func GetCompanyAccessToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	email string,
	password string,
) (string, error) {
	t.Helper()
	handler := NewCompanyAuthHandler(db, nil)
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/api/company/login", http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login Failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	if resp["token"] == nil {
		return "", fmt.Errorf("login Failed: no token in response: %s", rec.Body.String())
	}
	return resp["token"].(string), nil
}

// GetAdminAccessToken obtains an access token by simulating an admin login.
// The admin passkey is read from the ADMIN_PASSKEY environment variable,
// so tests must set it before calling.
func GetAdminAccessToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	email string,
	password string,
	passkey string,
) (string, error) {
	t.Helper()
	handler := NewAdminAuthHandler(db)
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/api/admin/login", http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
		"passkey":  passkey,
	})
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login Failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	if resp["token"] == nil {
		return "", fmt.Errorf("login Failed: no token in response: %s", rec.Body.String())
	}
	return resp["token"].(string), nil
}
