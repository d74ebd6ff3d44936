package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// UserAuthHandler holds DB reference for job seeker auth endpoints.
type UserAuthHandler struct {
	DB *database.DBinstanceStruct
}

// NewUserAuthHandler creates a new instance of UserAuthHandler with the provided database connection.
func NewUserAuthHandler(db *database.DBinstanceStruct) *UserAuthHandler {
	return &UserAuthHandler{
		DB: db,
	}
}

type userRegisterInfo struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register function handles job seeker registration.
// Rejects duplicate email or phone and issues a 1 day token on success.
// @Summary Register a new job seeker account
// @Description Email and phone must not already be used, password must be at least 8 characters
// @Tags User
// @Accept json
// @Produce json
// @Param Info body userRegisterInfo true "Account fields"
// @Success 201 {object} model.UserResponse "Account created"
// @Failure 400 {object} utilities.ErrorResponse "Missing or malformed fields"
// @Failure 409 {object} utilities.ErrorResponse "Email or phone already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /api/users/register [post]
func (uh *UserAuthHandler) Register(c *gin.Context) {
	var info userRegisterInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			"Name, email, phone and password (at least 8 characters) must be provided",
		))
		return
	}

	var existing model.User
	err := uh.DB.Where("email = ? OR phone = ?", info.Email, info.Phone).First(&existing).Error

	switch {
	case err == nil:
		c.JSON(http.StatusConflict, utilities.Fail("Email or phone already registered"))
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Database error: %s", err.Error()),
		))
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed hash password: %s", err.Error()),
		))
		return
	}

	user := model.User{
		Name:     info.Name,
		Email:    info.Email,
		Phone:    info.Phone,
		Password: hashedPassword,
	}

	// Profile row is created together with the account so profile reads
	// never have to special-case a missing record.
	err = uh.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserProfile{UserID: user.ID}).Error
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.Fail("Email or phone already registered"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to create user: %s", err.Error()),
		))
		return
	}

	accessToken, err := GenerateToken(user.ID, UserTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		))
		return
	}

	setAuthCookie(c, accessToken, UserTokenTTL)
	c.JSON(http.StatusCreated, model.UserResponse{
		Success:     true,
		User:        user,
		AccessToken: accessToken,
		Message:     "Registered successfully",
	})
}

// Login function handles job seeker login with email and password.
// @Summary Log in as a job seeker
// @Description Email must exist and password must match
// @Tags User
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.UserResponse "Logged in"
// @Failure 400 {object} utilities.ErrorResponse "Missing credentials"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/users/login [post]
func (uh *UserAuthHandler) Login(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Email or password is not provided"))
		return
	}

	var user model.User
	err := uh.DB.Where("email = ?", info.Email).First(&user).Error

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

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, utilities.Fail("Email or password is incorrect"))
		return
	}

	accessToken, err := GenerateToken(user.ID, UserTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		))
		return
	}

	setAuthCookie(c, accessToken, UserTokenTTL)
	c.JSON(http.StatusOK, model.UserResponse{
		Success:     true,
		User:        user,
		AccessToken: accessToken,
		Message:     "Logged in successfully",
	})
}

// Logout clears the auth cookie.
// @Summary Log out the current job seeker
// @Tags User
// @Produce json
// @Success 200 {object} utilities.MessageResponse "Logged out"
// @Router /api/users/logout [post]
func (uh *UserAuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, utilities.OK("Logged out successfully"))
}
