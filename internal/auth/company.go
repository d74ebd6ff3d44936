package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/storage"
	"jobdesk-backend/internal/utilities"
)

// CompanyAuthHandler holds DB and object storage references for
// recruiter auth endpoints. Registration accepts an optional logo.
type CompanyAuthHandler struct {
	DB      *database.DBinstanceStruct
	Storage storage.Uploader
}

// NewCompanyAuthHandler creates a new instance of CompanyAuthHandler.
func NewCompanyAuthHandler(db *database.DBinstanceStruct, store storage.Uploader) *CompanyAuthHandler {
	return &CompanyAuthHandler{
		DB:      db,
		Storage: store,
	}
}

type companyRegisterInfo struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Phone    string `form:"phone" binding:"required"`
	Password string `form:"password" binding:"required,min=8"`
}

// Register function handles recruiter registration from a multipart form
// with an optional logo image. The company starts unverified and can not
// log in until an admin verifies it.
// @Summary Register a new company account
// @Description Company name and email pair must not already be registered; optional logo image
// @Tags Company
// @Accept mpfd
// @Produce json
// @Param name formData string true "Company name"
// @Param email formData string true "Contact email"
// @Param phone formData string true "Contact phone"
// @Param password formData string true "Password, at least 8 characters"
// @Param image formData file false "Company logo"
// @Success 201 {object} model.CompanyResponse "Account created, pending verification"
// @Failure 400 {object} utilities.ErrorResponse "Missing or malformed fields"
// @Failure 409 {object} utilities.ErrorResponse "Company already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database, storage or password hashing error"
// @Router /api/company/register [post]
func (ch *CompanyAuthHandler) Register(c *gin.Context) {
	var info companyRegisterInfo

	if err := c.ShouldBind(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			"Name, email, phone and password (at least 8 characters) must be provided",
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

	imageURL := ""
	if rawFile, err := c.FormFile("image"); err == nil && ch.Storage != nil {
		f, err := rawFile.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Fail("Cannot open logo file"))
			return
		}
		defer func() {
			_ = f.Close()
		}()

		imageURL, err = ch.Storage.Upload(c.Request.Context(), storage.CompanyImageFolder, rawFile.Filename, f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Fail(
				fmt.Sprintf("Failed to store logo: %s", err.Error()),
			))
			return
		}
	}

	company := model.Company{
		Name:     info.Name,
		Email:    info.Email,
		Phone:    info.Phone,
		Image:    imageURL,
		Password: hashedPassword,
	}

	if err := ch.DB.Create(&company).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.Fail("Company already registered"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to create company: %s", err.Error()),
		))
		return
	}

	accessToken, err := GenerateToken(company.ID, UserTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		))
		return
	}

	setAuthCookie(c, accessToken, UserTokenTTL)
	c.JSON(http.StatusCreated, model.CompanyResponse{
		Success:     true,
		Company:     company,
		AccessToken: accessToken,
		Message:     "Registered successfully, awaiting verification",
	})
}

// Login function handles recruiter login. Correct credentials are not
// enough: an unverified company is rejected with a distinct message so
// the client can surface the pending state.
// @Summary Log in as a company
// @Description Email must exist, password must match and the company must be verified
// @Tags Company
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.CompanyResponse "Logged in"
// @Failure 400 {object} utilities.ErrorResponse "Missing credentials"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 403 {object} utilities.ErrorResponse "Company not yet verified"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/company/login [post]
func (ch *CompanyAuthHandler) Login(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Email or password is not provided"))
		return
	}

	var company model.Company
	err := ch.DB.Where("email = ?", info.Email).First(&company).Error

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

	if company.Password == "" || !utilities.VerifyPassword(info.Password, company.Password) {
		c.JSON(http.StatusUnauthorized, utilities.Fail("Email or password is incorrect"))
		return
	}

	if !company.IsVerified {
		c.JSON(http.StatusForbidden, utilities.Fail("Company is not yet verified"))
		return
	}

	accessToken, err := GenerateToken(company.ID, CompanyTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		))
		return
	}

	setAuthCookie(c, accessToken, CompanyTokenTTL)
	c.JSON(http.StatusOK, model.CompanyResponse{
		Success:     true,
		Company:     company,
		AccessToken: accessToken,
		Message:     "Logged in successfully",
	})
}

// Logout clears the auth cookie.
// @Summary Log out the current company
// @Tags Company
// @Produce json
// @Success 200 {object} utilities.MessageResponse "Logged out"
// @Router /api/company/logout [post]
func (ch *CompanyAuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, utilities.OK("Logged out successfully"))
}
