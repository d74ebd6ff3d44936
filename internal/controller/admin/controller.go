// Package admin provides HTTP handlers for moderation: job and company
// verification, objections, admin-side job management and review.
package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// AdminController handles admin related endpoints
type AdminController struct {
	DB *database.DBinstanceStruct
}

// NewAdminController creates a new instance of AdminController with the provided database connection.
func NewAdminController(db *database.DBinstanceStruct) *AdminController {
	return &AdminController{
		DB: db,
	}
}

// Me returns the authenticated admin's own record.
// @Summary Get the current admin account
// @Tags Admin
// @Produce json
// @Success 200 {object} model.Admin "Current admin"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /api/admin/me [get]
func (ac *AdminController) Me(c *gin.Context) {
	admin, err := utilities.ExtractAdmin(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "admin": admin})
}

// UnverifiedJobs lists jobs waiting for verification. Sub-admins only
// see jobs they created themselves.
// @Summary List unverified jobs
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Job "Jobs awaiting verification"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/unverified-jobs [get]
func (ac *AdminController) UnverifiedJobs(c *gin.Context) {
	admin, err := utilities.ExtractAdmin(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	jobs := []model.Job{}
	query := admin.ScopeJobs(ac.DB.DB).
		Preload("Objections").
		Where("is_verified = ?", false).
		Order("posted_at DESC")
	if err := query.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve jobs: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// UnverifiedRecruiters lists companies waiting for verification.
// @Summary List unverified companies
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Company "Companies awaiting verification"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/unverified-recruiters [get]
func (ac *AdminController) UnverifiedRecruiters(c *gin.Context) {
	companies := []model.Company{}
	if err := ac.DB.Where("is_verified = ?", false).Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve companies: %s", err.Error()),
		))
		return
	}
	c.JSON(http.StatusOK, companies)
}

// AllRecruiters lists every company.
// @Summary List all companies
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Company "All companies"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/all-recruiters [get]
func (ac *AdminController) AllRecruiters(c *gin.Context) {
	companies := []model.Company{}
	if err := ac.DB.Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve companies: %s", err.Error()),
		))
		return
	}
	c.JSON(http.StatusOK, companies)
}

// AllUsers lists every job seeker account.
// @Summary List all users
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.User "All users"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/all-users [get]
func (ac *AdminController) AllUsers(c *gin.Context) {
	users := []model.User{}
	if err := ac.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve users: %s", err.Error()),
		))
		return
	}
	c.JSON(http.StatusOK, users)
}

// loadScopedJob fetches a job within the admin's visibility scope.
func (ac *AdminController) loadScopedJob(c *gin.Context, admin model.Admin, jobID string) (model.Job, bool) {
	job := model.Job{}
	if err := admin.ScopeJobs(ac.DB.DB).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Job not found"))
			return job, false
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		))
		return job, false
	}
	return job, true
}

// VerifyJob approves a job for public listing. Verifying an already
// verified job is a no-op success, so retries are harmless.
// @Summary Verify a job
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path integer true "ID of the job to verify"
// @Success 200 {object} model.Job "Verified job"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/verify/{jobId} [put]
func (ac *AdminController) VerifyJob(c *gin.Context) {
	admin, err := utilities.ExtractAdmin(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	job, ok := ac.loadScopedJob(c, admin, c.Param("jobId"))
	if !ok {
		return
	}

	if job.IsVerified {
		c.JSON(http.StatusOK, gin.H{"success": true, "job": job, "message": "Job already verified"})
		return
	}

	// Only the verification flag flips here; the edited marker is
	// cleared when an admin replaces it with an objection.
	job.IsVerified = true
	if err := ac.DB.Model(&model.Job{}).
		Where("id = ?", job.ID).
		Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to update job: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "job": job, "message": "Job verified"})
}

// VerifyRecruiter marks a company verified so it can log in.
// @Summary Verify a company
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param recruiterId path string true "UUID of the company to verify"
// @Success 200 {object} model.Company "Verified company"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/verify-recruiter/{recruiterId} [put]
func (ac *AdminController) VerifyRecruiter(c *gin.Context) {
	company := model.Company{}
	if err := ac.DB.Where("id = ?", c.Param("recruiterId")).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Company not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve company: %s", err.Error()),
		))
		return
	}

	if company.IsVerified {
		c.JSON(http.StatusOK, gin.H{"success": true, "company": company, "message": "Company already verified"})
		return
	}

	company.IsVerified = true
	if err := ac.DB.Model(&model.Company{}).
		Where("id = ?", company.ID).
		Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to update company: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "company": company, "message": "Company verified"})
}

// UpdatePremium toggles a company's premium flag.
// @Summary Toggle premium access for a company
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param recruiterId path string true "UUID of the company"
// @Success 200 {object} model.Company "Company with flipped premium flag"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/update-premium/{recruiterId} [put]
func (ac *AdminController) UpdatePremium(c *gin.Context) {
	company := model.Company{}
	if err := ac.DB.Where("id = ?", c.Param("recruiterId")).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Company not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve company: %s", err.Error()),
		))
		return
	}

	company.HavePremiumAccess = !company.HavePremiumAccess
	if err := ac.DB.Model(&model.Company{}).
		Where("id = ?", company.ID).
		Update("have_premium_access", company.HavePremiumAccess).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to update company: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "company": company})
}

type objectionRequest struct {
	Message string `json:"message" binding:"required"`
}

// JobObjection appends an active objection to a job's history and
// clears the edited flag. Verification is left alone: objecting to a
// live job does not pull it from the listing.
// @Summary Raise an objection against a job
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path integer true "ID of the job"
// @Param Info body objectionRequest true "Objection message"
// @Success 200 {object} model.Job "Job with its objection history"
// @Failure 400 {object} utilities.ErrorResponse "Missing message"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/job-objection/{jobId} [put]
func (ac *AdminController) JobObjection(c *gin.Context) {
	admin, err := utilities.ExtractAdmin(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info objectionRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("message must be provided"))
		return
	}

	job, ok := ac.loadScopedJob(c, admin, c.Param("jobId"))
	if !ok {
		return
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		objection := model.Objection{
			JobID:   job.ID,
			Message: info.Message,
			Active:  true,
		}
		if err := tx.Create(&objection).Error; err != nil {
			return err
		}
		return tx.Model(&model.Job{}).
			Where("id = ?", job.ID).
			Update("is_edited", false).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to record objection: %s", err.Error()),
		))
		return
	}

	if err := ac.DB.Preload("Objections").Where("id = ?", job.ID).First(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "job": job})
}

type adminEditJobRequest struct {
	model.EditableJobInfo
	Visible        *bool                 `json:"visible"`
	CompanyDetails *model.CompanyDetails `json:"company_details"`
}

// EditJob lets an admin update any job in scope. Unlike the company
// edit this does not reset verification and leaves the objection
// history untouched.
// @Summary Edit a job as admin
// @Description Absent fields keep their prior values; verification is not reset
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path integer true "ID of the job"
// @Param Job body adminEditJobRequest true "Fields to update"
// @Success 200 {object} model.Job "Updated job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/edit-job/{jobId} [put]
func (ac *AdminController) EditJob(c *gin.Context) {
	admin, err := utilities.ExtractAdmin(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	job, ok := ac.loadScopedJob(c, admin, c.Param("jobId"))
	if !ok {
		return
	}

	var info adminEditJobRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		))
		return
	}

	utilities.MergeNonEmpty(&job.EditableJobInfo, &info.EditableJobInfo)
	if info.Visible != nil {
		job.Visible = *info.Visible
	}
	if info.CompanyDetails != nil {
		utilities.MergeNonEmpty(&job.CompanyDetails, info.CompanyDetails)
	}

	if err := ac.DB.Model(&model.Job{}).
		Where("id = ?", job.ID).
		Select("*").
		Omit("id", "company_id", "posted_at", "is_verified", "is_edited").
		Updates(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to update job: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "job": job})
}

type adminPostJobRequest struct {
	model.EditableJobInfo
	Visible        *bool                 `json:"visible"`
	CompanyDetails *model.CompanyDetails `json:"company_details"`
	CompanyName    string                `json:"company_name" binding:"required"`
	CompanyEmail   string                `json:"company_email" binding:"required,email"`
	CompanyPhone   string                `json:"company_phone"`
}

// PostJob creates a job on a company's behalf. When no company matches
// the given name and email pair, a verified credential-less stub is
// created so the job has an owner. Admin-posted jobs skip the
// verification queue and record who created them.
// @Summary Create a job on behalf of a company
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body adminPostJobRequest true "Job fields plus the owning company identity"
// @Success 201 {object} model.Job "Created job"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/post-job [post]
func (ac *AdminController) PostJob(c *gin.Context) {
	admin, err := utilities.ExtractAdmin(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info adminPostJobRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			fmt.Sprintf("Invalid request body: %s", err.Error()),
		))
		return
	}

	// Admin-created jobs land verified and visible, so they face the
	// same completeness bar as company submissions.
	if missing := model.MissingJobFields(&info.EditableJobInfo, info.CompanyDetails); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
		))
		return
	}

	var job model.Job
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		company := model.Company{}
		err := tx.Where("name = ? AND email = ?", info.CompanyName, info.CompanyEmail).
			First(&company).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Stub owner: verified so its jobs can list, but with no
			// password so nobody can log in as it.
			company = model.Company{
				Name:       info.CompanyName,
				Email:      info.CompanyEmail,
				Phone:      info.CompanyPhone,
				IsVerified: true,
			}
			if err := tx.Create(&company).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		createdBy := admin.ID
		job = model.Job{
			CompanyID:       company.ID,
			CreatedByID:     &createdBy,
			EditableJobInfo: info.EditableJobInfo,
			CompanyDetails:  *info.CompanyDetails,
			Visible:         true,
			IsVerified:      true,
		}
		if info.Visible != nil {
			job.Visible = *info.Visible
		}
		return tx.Create(&job).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to create job: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "job": job})
}

type adminChangeStatusRequest struct {
	ApplicationID   uint    `json:"application_id" binding:"required"`
	Status          string  `json:"status" binding:"required"`
	RejectionReason *string `json:"rejection_reason"`
}

// ChangeStatus sets an application's status with review metadata. This
// is the only place ReviewedByID and ReviewedAt are ever written.
// @Summary Change status of any application, recording the reviewer
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body adminChangeStatusRequest true "Application, new status and optional rejection reason"
// @Success 200 {object} model.JobApplication "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields or status outside the enum"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/change-status [post]
func (ac *AdminController) ChangeStatus(c *gin.Context) {
	admin, err := utilities.ExtractAdmin(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info adminChangeStatusRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("application_id and status must be provided"))
		return
	}

	if !model.ValidApplicationStatus(info.Status) {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			fmt.Sprintf("Status '%s' is not allowed", info.Status),
		))
		return
	}

	application := model.JobApplication{}
	if err := ac.DB.Where("id = ?", info.ApplicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Application not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		))
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         info.Status,
		"reviewed_by_id": admin.ID,
		"reviewed_at":    now,
	}
	if info.RejectionReason != nil && strings.TrimSpace(*info.RejectionReason) != "" {
		updates["rejection_reason"] = *info.RejectionReason
	}

	if err := ac.DB.Model(&model.JobApplication{}).
		Where("id = ?", application.ID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to update application: %s", err.Error()),
		))
		return
	}

	application.Status = info.Status
	application.ReviewedByID = &admin.ID
	application.ReviewedAt = &now
	if info.RejectionReason != nil {
		application.RejectionReason = info.RejectionReason
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "application": application})
}

// UserProfile returns the extended profile of any user.
// @Summary Get a user's candidate profile
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param userId path string true "UUID of the user"
// @Success 200 {object} model.UserProfile "The user's profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/user-profile/{userId} [get]
func (ac *AdminController) UserProfile(c *gin.Context) {
	profile := model.UserProfile{}
	if err := ac.DB.Preload("User").
		Where("user_id = ?", c.Param("userId")).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Profile not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// JobApplications returns every application submitted by a user.
// @Summary List a user's applications
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param userId path string true "UUID of the user"
// @Success 200 {array} model.JobApplication "The user's applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/job-applications/{userId} [get]
func (ac *AdminController) JobApplications(c *gin.Context) {
	applications := []model.JobApplication{}
	if err := ac.DB.Preload("Job").Preload("Company").
		Where("user_id = ?", c.Param("userId")).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve applications: %s", err.Error()),
		))
		return
	}
	c.JSON(http.StatusOK, applications)
}

// CompanyJobs returns every job owned by a company.
// @Summary List a company's jobs
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param companyId path string true "UUID of the company"
// @Success 200 {array} model.Job "The company's jobs"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/company-jobs/{companyId} [get]
func (ac *AdminController) CompanyJobs(c *gin.Context) {
	jobs := []model.Job{}
	if err := ac.DB.Preload("Objections").
		Where("company_id = ?", c.Param("companyId")).
		Order("posted_at DESC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve jobs: %s", err.Error()),
		))
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// JobApplicants returns every application for a job.
// @Summary List applications for any job
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path integer true "ID of the job"
// @Success 200 {array} model.JobApplication "Applications for the job"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/admin/job-applicants/{jobId} [get]
func (ac *AdminController) JobApplicants(c *gin.Context) {
	applications := []model.JobApplication{}
	if err := ac.DB.Preload("User").
		Where("job_id = ?", c.Param("jobId")).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve applications: %s", err.Error()),
		))
		return
	}
	c.JSON(http.StatusOK, applications)
}
