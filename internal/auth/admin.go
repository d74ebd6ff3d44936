package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// AdminAuthHandler holds DB reference for admin auth endpoints. Both
// registration and login require the env-configured passkey on top of
// the usual credentials.
type AdminAuthHandler struct {
	DB *database.DBinstanceStruct
}

// NewAdminAuthHandler creates a new instance of AdminAuthHandler.
func NewAdminAuthHandler(db *database.DBinstanceStruct) *AdminAuthHandler {
	return &AdminAuthHandler{
		DB: db,
	}
}

type adminRegisterInfo struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Passkey  string `json:"passkey" binding:"required"`
}

type adminLoginInfo struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Passkey  string `json:"passkey" binding:"required"`
}

func passkeyMatches(supplied string) bool {
	configured := os.Getenv("ADMIN_PASSKEY")
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(configured)) == 1
}

// Register function handles admin registration. New admins always enter
// as sub-admins, a primary admin only comes from the startup bootstrap.
// @Summary Register a new sub-admin account
// @Description Requires the admin passkey configured on the server
// @Tags Admin
// @Accept json
// @Produce json
// @Param Info body adminRegisterInfo true "Account fields plus passkey"
// @Success 201 {object} model.AdminResponse "Account created"
// @Failure 400 {object} utilities.ErrorResponse "Missing or malformed fields"
// @Failure 401 {object} utilities.ErrorResponse "Wrong passkey"
// @Failure 409 {object} utilities.ErrorResponse "Email already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /api/admin/register [post]
func (ah *AdminAuthHandler) Register(c *gin.Context) {
	var info adminRegisterInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			"Name, email, password (at least 8 characters) and passkey must be provided",
		))
		return
	}

	if !passkeyMatches(info.Passkey) {
		c.JSON(http.StatusUnauthorized, utilities.Fail("Invalid admin passkey"))
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed hash password: %s", err.Error()),
		))
		return
	}

	admin := model.Admin{
		Name:     info.Name,
		Email:    info.Email,
		Password: hashedPassword,
		Role:     model.RoleSubAdmin,
	}

	if err := ah.DB.Create(&admin).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.Fail("Email already registered"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to create admin: %s", err.Error()),
		))
		return
	}

	accessToken, err := GenerateToken(admin.ID, AdminTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		))
		return
	}

	setAuthCookie(c, accessToken, AdminTokenTTL)
	c.JSON(http.StatusCreated, model.AdminResponse{
		Success:     true,
		Admin:       admin,
		AccessToken: accessToken,
		Message:     "Registered successfully",
	})
}

// Login function handles admin login with email, password and passkey.
// @Summary Log in as an admin
// @Description Email must exist, password must match and passkey must be correct
// @Tags Admin
// @Accept json
// @Produce json
// @Param Info body adminLoginInfo true "Credentials plus passkey"
// @Success 200 {object} model.AdminResponse "Logged in"
// @Failure 400 {object} utilities.ErrorResponse "Missing credentials"
// @Failure 401 {object} utilities.ErrorResponse "Wrong credentials or passkey"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/login [post]
func (ah *AdminAuthHandler) Login(c *gin.Context) {
	var info adminLoginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Email, password and passkey must be provided"))
		return
	}

	if !passkeyMatches(info.Passkey) {
		c.JSON(http.StatusUnauthorized, utilities.Fail("Invalid admin passkey"))
		return
	}

	var admin model.Admin
	err := ah.DB.Where("email = ?", info.Email).First(&admin).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, utilities.Fail("Email or password is incorrect"))
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Database error: %s", err.Error()),
		))
		return
	}

	if admin.Password == "" || !utilities.VerifyPassword(info.Password, admin.Password) {
		c.JSON(http.StatusUnauthorized, utilities.Fail("Email or password is incorrect"))
		return
	}

	accessToken, err := GenerateToken(admin.ID, AdminTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		))
		return
	}

	setAuthCookie(c, accessToken, AdminTokenTTL)
	c.JSON(http.StatusOK, model.AdminResponse{
		Success:     true,
		Admin:       admin,
		AccessToken: accessToken,
		Message:     "Logged in successfully",
	})
}

// Logout clears the auth cookie.
// @Summary Log out the current admin
// @Tags Admin
// @Produce json
// @Success 200 {object} utilities.MessageResponse "Logged out"
// @Router /api/admin/logout [post]
func (ah *AdminAuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, utilities.OK("Logged out successfully"))
}
