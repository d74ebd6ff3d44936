// Package company provides HTTP handlers for recruiter operations:
// job management, applicant review and account info.
package company

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// CompanyController handles company related endpoints
type CompanyController struct {
	DB *database.DBinstanceStruct
}

// NewCompanyController creates a new instance of CompanyController with the provided database connection.
func NewCompanyController(db *database.DBinstanceStruct) *CompanyController {
	return &CompanyController{
		DB: db,
	}
}

// Me returns the authenticated company's own record.
// @Summary Get the current company account
// @Tags Company
// @Produce json
// @Success 200 {object} model.Company "Current company"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /api/company/me [get]
func (cc *CompanyController) Me(c *gin.Context) {
	company, err := utilities.ExtractCompany(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "company": company})
}

type postJobRequest struct {
	model.EditableJobInfo
	Visible        *bool                 `json:"visible"`
	CompanyDetails *model.CompanyDetails `json:"company_details"`
}

// PostJob handles the creation of a new job by a company.
// The job always enters unverified and stays out of the public listing
// until an admin approves it.
// @Summary Create a job based on given json structure
// @Description All core fields and the full company details snapshot are required
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body postJobRequest true "Input job information"
// @Success 201 {object} model.Job "Successfully created job"
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields, the error names them"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/company/post-job [post]
func (cc *CompanyController) PostJob(c *gin.Context) {
	company, err := utilities.ExtractCompany(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info postJobRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			fmt.Sprintf("Invalid request body: %s", err.Error()),
		))
		return
	}

	if missing := model.MissingJobFields(&info.EditableJobInfo, info.CompanyDetails); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
		))
		return
	}

	job := model.Job{
		CompanyID:       company.ID,
		EditableJobInfo: info.EditableJobInfo,
		CompanyDetails:  *info.CompanyDetails,
		Visible:         true,
		IsVerified:      false,
	}
	if info.Visible != nil {
		job.Visible = *info.Visible
	}

	if err := cc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprint("Failed to create job: ", err),
		))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "job": job})
}

// loadOwnedJob fetches the job and enforces the ownership guard. A
// foreign job answers 403, a missing one 404; the two are never merged.
func (cc *CompanyController) loadOwnedJob(c *gin.Context, jobID string, company model.Company) (model.Job, bool) {
	job := model.Job{}
	if err := cc.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Job not found"))
			return job, false
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		))
		return job, false
	}

	if !job.OwnedBy(company.ID) {
		c.JSON(http.StatusForbidden, utilities.Fail("You are not allowed to manage this job"))
		return job, false
	}

	return job, true
}

// EditJob allows a company to update a job it owns. Partial update:
// absent fields keep their prior values. Any edit knocks the job back
// to unverified and flags it edited; active objections are retired,
// with the newest one marked superseded so the history shows which
// objection the edit answered.
// @Summary Edit an owned job
// @Description Premium companies only; absent fields keep their prior values
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path integer true "ID of desired job"
// @Param Job body postJobRequest true "Fields to update"
// @Success 200 {object} model.Job "Successfully updated job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Job belongs to another company, or no premium access"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/company/edit-job/{jobId} [put]
func (cc *CompanyController) EditJob(c *gin.Context) {
	company, err := utilities.ExtractCompany(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	job, ok := cc.loadOwnedJob(c, c.Param("jobId"), company)
	if !ok {
		return
	}

	var info postJobRequest
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
		// Snapshot refreshes only on explicit edit
		utilities.MergeNonEmpty(&job.CompanyDetails, info.CompanyDetails)
	}

	job.IsVerified = false
	job.IsEdited = true

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		// Retire the objections this edit answers. Empty history is fine.
		var newest model.Objection
		err := tx.Where("job_id = ? AND active = ?", job.ID, true).
			Order("created_at DESC").
			First(&newest).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if err := tx.Model(&model.Objection{}).
				Where("id = ?", newest.ID).
				Update("superseded", true).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Objection{}).
				Where("job_id = ? AND active = ?", job.ID, true).
				Update("active", false).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Job{}).
			Where("id = ?", job.ID).
			Select("*").
			Omit("id", "company_id", "posted_at").
			Updates(&job).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to update job: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "job": job})
}

// DeleteJob allows a company to delete a job it owns.
// @Summary Delete an owned job
// @Description Premium companies only; applications and objections go with it
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path integer true "ID of desired job"
// @Success 200 {object} utilities.MessageResponse "Successfully deleted job"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Job belongs to another company, or no premium access"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/company/delete-job/{jobId} [delete]
func (cc *CompanyController) DeleteJob(c *gin.Context) {
	company, err := utilities.ExtractCompany(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	job, ok := cc.loadOwnedJob(c, c.Param("jobId"), company)
	if !ok {
		return
	}

	if err := cc.DB.Delete(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to delete job: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, utilities.OK("Job deleted"))
}

type changeVisibilityRequest struct {
	JobID uint `json:"job_id" binding:"required"`
}

// ChangeVisibility toggles the Visible flag of an owned job. Visibility
// is independent from verification: a hidden verified job stays
// verified, it just leaves the public listing.
// @Summary Toggle visibility of an owned job
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body changeVisibilityRequest true "Job to toggle"
// @Success 200 {object} model.Job "Job with flipped visibility"
// @Failure 400 {object} utilities.ErrorResponse "Missing job_id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Job belongs to another company, or no premium access"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/company/change-visibility [post]
func (cc *CompanyController) ChangeVisibility(c *gin.Context) {
	company, err := utilities.ExtractCompany(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info changeVisibilityRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("job_id must be provided"))
		return
	}

	job, ok := cc.loadOwnedJob(c, fmt.Sprint(info.JobID), company)
	if !ok {
		return
	}

	job.Visible = !job.Visible
	if err := cc.DB.Model(&model.Job{}).
		Where("id = ?", job.ID).
		Update("visible", job.Visible).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to update job: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "job": job})
}

// JobWithApplicantCount pairs a job with how many applications it has
type JobWithApplicantCount struct {
	model.Job
	ApplicantCount int64 `json:"applicant_count"`
}

// ListJobs returns every job owned by the company with applicant counts.
// @Summary List own jobs with applicant counts
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} JobWithApplicantCount "Own jobs"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/company/list-jobs [get]
func (cc *CompanyController) ListJobs(c *gin.Context) {
	company, err := utilities.ExtractCompany(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	jobs := []model.Job{}
	if err := cc.DB.Where("company_id = ?", company.ID).
		Order("posted_at DESC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve jobs: %s", err.Error()),
		))
		return
	}

	response := []JobWithApplicantCount{}
	for _, job := range jobs {
		var count int64
		if err := cc.DB.Model(&model.JobApplication{}).
			Where("job_id = ?", job.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Fail(
				fmt.Sprintf("Failed to count applicants: %s", err.Error()),
			))
			return
		}
		response = append(response, JobWithApplicantCount{Job: job, ApplicantCount: count})
	}

	c.JSON(http.StatusOK, response)
}

// Applicants returns every application for an owned job, with the
// applying users joined in.
// @Summary List applications for an owned job
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path integer true "ID of desired job"
// @Success 200 {array} model.JobApplication "Applications for the job"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Job belongs to another company, or no premium access"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/company/applicants/{jobId} [get]
func (cc *CompanyController) Applicants(c *gin.Context) {
	company, err := utilities.ExtractCompany(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	job, ok := cc.loadOwnedJob(c, c.Param("jobId"), company)
	if !ok {
		return
	}

	applications := []model.JobApplication{}
	if err := cc.DB.Preload("User").
		Where("job_id = ?", job.ID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve applications: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, applications)
}

// loadOwnedApplication fetches an application and checks the company
// owns the job it was submitted to.
func (cc *CompanyController) loadOwnedApplication(c *gin.Context, applicationID uint, company model.Company) (model.JobApplication, bool) {
	application := model.JobApplication{}
	if err := cc.DB.Where("id = ?", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Application not found"))
			return application, false
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		))
		return application, false
	}

	if !application.OwnedBy(company.ID) {
		c.JSON(http.StatusForbidden, utilities.Fail("You are not allowed to manage this application"))
		return application, false
	}

	return application, true
}

type changeStatusRequest struct {
	ApplicationID uint   `json:"application_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
}

// strictStatusPolicy reports whether the status enum is enforced for
// company updates. Default is permissive, matching historical behavior.
func strictStatusPolicy() bool {
	return strings.ToLower(strings.TrimSpace(os.Getenv("STRICT_APPLICATION_STATUS"))) == "true"
}

// ChangeStatus lets a company set the status of an application to one
// of its jobs. Review metadata (reviewer, review time) is admin-only
// and is never touched here.
// @Summary Change status of an application to an owned job
// @Description With STRICT_APPLICATION_STATUS=true only the known status values are accepted
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body changeStatusRequest true "Application and new status"
// @Success 200 {object} model.JobApplication "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields or status outside the enum under strict policy"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Application belongs to another company's job"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/company/change-status [post]
func (cc *CompanyController) ChangeStatus(c *gin.Context) {
	company, err := utilities.ExtractCompany(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info changeStatusRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("application_id and status must be provided"))
		return
	}

	if strictStatusPolicy() && !model.ValidApplicationStatus(info.Status) {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			fmt.Sprintf("Status '%s' is not allowed", info.Status),
		))
		return
	}

	application, ok := cc.loadOwnedApplication(c, info.ApplicationID, company)
	if !ok {
		return
	}

	application.Status = info.Status
	if err := cc.DB.Model(&model.JobApplication{}).
		Where("id = ?", application.ID).
		Update("status", info.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to update application: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "application": application})
}

type changeSubStateRequest struct {
	ApplicationID uint   `json:"application_id" binding:"required"`
	Value         string `json:"value" binding:"required"`
}

// ChangeInterview overwrites the free-text interview sub-state of an
// application to an owned job.
// @Summary Change interview note of an application
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body changeSubStateRequest true "Application and interview note"
// @Success 200 {object} model.JobApplication "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Application belongs to another company's job"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/company/change-int [post]
func (cc *CompanyController) ChangeInterview(c *gin.Context) {
	cc.changeSubState(c, "interview")
}

// ChangeOnboarding overwrites the free-text onboarding sub-state of an
// application to an owned job.
// @Summary Change onboarding note of an application
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body changeSubStateRequest true "Application and onboarding note"
// @Success 200 {object} model.JobApplication "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Application belongs to another company's job"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/company/change-onboard [post]
func (cc *CompanyController) ChangeOnboarding(c *gin.Context) {
	cc.changeSubState(c, "onboarding")
}

func (cc *CompanyController) changeSubState(c *gin.Context, column string) {
	company, err := utilities.ExtractCompany(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info changeSubStateRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("application_id and value must be provided"))
		return
	}

	application, ok := cc.loadOwnedApplication(c, info.ApplicationID, company)
	if !ok {
		return
	}

	if err := cc.DB.Model(&model.JobApplication{}).
		Where("id = ?", application.ID).
		Update(column, info.Value).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to update application: %s", err.Error()),
		))
		return
	}

	switch column {
	case "interview":
		application.Interview = info.Value
	case "onboarding":
		application.Onboarding = info.Value
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "application": application})
}
