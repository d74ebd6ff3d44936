// Package user provides HTTP handlers for job seeker operations:
// applying to jobs, resume upload and profile management.
package user

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/storage"
	"jobdesk-backend/internal/utilities"
)

// UserController handles job seeker related endpoints
type UserController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Uploader
}

// NewUserController creates a new instance of UserController with the
// provided database connection and object storage.
func NewUserController(db *database.DBinstanceStruct, store storage.Uploader) *UserController {
	return &UserController{
		DB:      db,
		Storage: store,
	}
}

// Me returns the authenticated user's own record.
// @Summary Get the current user account
// @Tags User
// @Produce json
// @Success 200 {object} model.User "Current user"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /api/users/me [get]
func (uc *UserController) Me(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

type applyRequest struct {
	CompanyID       string         `json:"company_id"`
	ApplicationData datatypes.JSON `json:"application_data"`
}

// ApplyForJob submits an application to the job in the path. A second
// application to the same job answers 409 whether the duplicate arrives
// sequentially or concurrently: the unique index backstops the check.
// @Summary Apply for a job
// @Description One application per user per job; optional company_id must match the job's owner
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job to apply to"
// @Param Info body applyRequest false "Optional company check and free-form application data"
// @Success 201 {object} model.JobApplication "Application submitted"
// @Failure 400 {object} utilities.ErrorResponse "Supplied company does not own the job"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Already applied"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/users/apply/{id} [post]
func (uc *UserController) ApplyForJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info applyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&info); err != nil {
			c.JSON(http.StatusBadRequest, utilities.Fail(
				fmt.Sprintf("Invalid request body: %s", err.Error()),
			))
			return
		}
	}

	job := model.Job{}
	if err := uc.DB.Where("id = ?", c.Param("id")).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Job not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		))
		return
	}

	if info.CompanyID != "" && info.CompanyID != job.CompanyID.String() {
		c.JSON(http.StatusBadRequest, utilities.Fail("Company does not own this job"))
		return
	}

	application := model.JobApplication{
		UserID:          user.ID,
		JobID:           job.ID,
		CompanyID:       job.CompanyID,
		ApplicationData: info.ApplicationData,
		Status:          model.ApplicationStatusPending,
		Interview:       model.InterviewNotStarted,
		Onboarding:      model.OnboardingNotStarted,
	}

	if err := uc.DB.Create(&application).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.Fail("Already Applied"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to submit application: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "application": application})
}

// Applications returns the user's own applications with the job and
// company joined in.
// @Summary List own applications
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.JobApplication "Own applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/users/applications [get]
func (uc *UserController) Applications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	applications := []model.JobApplication{}
	if err := uc.DB.Preload("Job").Preload("Company").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve applications: %s", err.Error()),
		))
		return
	}

	jobs := make([]model.Job, 0, len(applications))
	companies := make([]model.Company, 0, len(applications))
	for _, app := range applications {
		jobs = append(jobs, app.Job)
		companies = append(companies, app.Company)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"applications": applications,
		"jobs":         jobs,
		"companies":    companies,
	})
}

// UploadResume stores a new resume for the user, replacing any prior
// one. Deleting the old object is best-effort: a stale object must not
// block the new upload.
// @Summary Upload resume file
// @Description Only .pdf files are permitted
// @Tags User
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param resume formData file true "Upload your resume file"
// @Success 200 {object} model.User "User with the new resume URL"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File too large"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database or storage error"
// @Router /api/users/resume [post]
func (uc *UserController) UploadResume(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	rawFile, err := c.FormFile("resume")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.Fail(err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		))
		return
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if extension != ".pdf" {
		c.JSON(http.StatusUnsupportedMediaType, utilities.Fail(
			fmt.Sprintf("Unsupported file extension: %s", extension),
		))
		return
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail("Cannot open file"))
		return
	}
	defer func() {
		_ = f.Close()
	}()

	url, err := uc.Storage.Upload(c.Request.Context(), storage.ResumeFolder, rawFile.Filename, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to store resume: %s", err.Error()),
		))
		return
	}

	oldResume := user.Resume
	user.Resume = url

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("id = ?", user.ID).
			Update("resume", url).Error; err != nil {
			return err
		}
		// Profile keeps its own copy of the resume URL
		return tx.Model(&model.UserProfile{}).
			Where("user_id = ?", user.ID).
			Update("resume", url).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to update user information: %s", err.Error()),
		))
		return
	}

	if oldResume != "" {
		_ = uc.Storage.Delete(c.Request.Context(), oldResume)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
