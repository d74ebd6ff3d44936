// Package job provides the public, unauthenticated job browsing endpoints.
package job

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// Listing pagination defaults
const (
	defaultPage  = 1
	defaultLimit = 9
)

// JobController handles public job browsing endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController with the provided database connection.
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

// JobListResponse is the paginated public listing payload
type JobListResponse struct {
	Success    bool        `json:"success"`
	Jobs       []model.Job `json:"jobs"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
	HasNext    bool        `json:"has_next"`
	HasPrev    bool        `json:"has_prev"`
}

// GetJobs fetches publicly listable jobs matching the query filters.
// Only jobs that are both visible and admin-verified ever appear here.
// @Summary Get public job listing based on query
// @Description Every query is optional; results are paginated, newest first
// @Tags Job
// @Produce json
// @Param title query string false "Search job title, substring matching and case insensitive"
// @Param location query string false "Search location or company city/state, substring matching and case insensitive"
// @Param category query string false "Category, must exactly match"
// @Param states query string false "Comma separated list of company states to include"
// @Param salaryMin query integer false "Lowest salary to include"
// @Param salaryMax query integer false "Highest salary to include"
// @Param experience query integer false "Minimum required experience in years"
// @Param page query integer false "Page number, default 1"
// @Param limit query integer false "Page size, default 9"
// @Success 200 {object} JobListResponse "Return matching job(s)"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {

	rawTitle := c.Query("title")
	rawLocation := c.Query("location")
	rawCategory := c.Query("category")
	rawStates := c.Query("states")
	rawSalaryMin := c.Query("salaryMin")
	rawSalaryMax := c.Query("salaryMax")
	rawExperience := c.Query("experience")

	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}

	result := jc.DB.Model(&model.Job{}).
		Where("visible = ? AND is_verified = ?", true, true)

	if rawTitle != "" {
		result = result.Where("title ILIKE ?", "%"+rawTitle+"%")
	}

	if rawLocation != "" {
		pattern := "%" + rawLocation + "%"
		result = result.Where(
			"location ILIKE ? OR company_city ILIKE ? OR company_state ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	if rawCategory != "" {
		result = result.Where("category = ?", rawCategory)
	}

	if rawStates != "" {
		states := []string{}
		for _, s := range strings.Split(rawStates, ",") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				states = append(states, trimmed)
			}
		}
		if len(states) > 0 {
			result = result.Where("company_state IN ?", states)
		}
	}

	if rawSalaryMin != "" {
		if minSalary, err := strconv.Atoi(rawSalaryMin); err == nil {
			result = result.Where("salary >= ?", minSalary)
		}
	}

	if rawSalaryMax != "" {
		if maxSalary, err := strconv.Atoi(rawSalaryMax); err == nil {
			result = result.Where("salary <= ?", maxSalary)
		}
	}

	if rawExperience != "" {
		if exp, err := strconv.Atoi(rawExperience); err == nil {
			result = result.Where("experience >= ?", exp)
		}
	}

	var total int64
	if err := result.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprint("Failed to fetch jobs: ", err.Error()),
		))
		return
	}

	jobs := []model.Job{}
	if err := result.
		Order("posted_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprint("Failed to fetch jobs: ", err.Error()),
		))
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, JobListResponse{
		Success:    true,
		Jobs:       jobs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	})
}

// GetJobByID fetches a single job with its owning company.
// @Summary Get job by ID
// @Description Retrieve a specific job using its unique ID
// @Tags Job
// @Produce json
// @Param id path integer true "ID of desired job"
// @Success 200 {object} model.Job "Return the job with the specified ID"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.
		Preload("Company").
		Preload("Objections", "active = ?", true).
		Where("id = ?", id).
		First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Job not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job":     job,
		"company": job.Company,
	})
}

// CompanyWithJobs pairs a verified company with its publicly listable jobs
type CompanyWithJobs struct {
	Company model.Company `json:"company"`
	Jobs    []model.Job   `json:"jobs"`
}

// GetCompaniesWithJobs fetches verified companies joined with their
// publicly listable jobs. Companies without a listable job are skipped.
// @Summary Get companies together with their public jobs
// @Tags Job
// @Produce json
// @Success 200 {array} CompanyWithJobs "Companies with their jobs"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/jobs/companies-with-jobs [get]
func (jc *JobController) GetCompaniesWithJobs(c *gin.Context) {
	var companies []model.Company
	if err := jc.DB.Where("is_verified = ?", true).Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve companies: %s", err.Error()),
		))
		return
	}

	response := []CompanyWithJobs{}
	for _, company := range companies {
		jobs := []model.Job{}
		if err := jc.DB.
			Where("company_id = ? AND visible = ? AND is_verified = ?", company.ID, true, true).
			Order("posted_at DESC").
			Find(&jobs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Fail(
				fmt.Sprintf("Failed to retrieve jobs: %s", err.Error()),
			))
			return
		}
		if len(jobs) == 0 {
			continue
		}
		response = append(response, CompanyWithJobs{Company: company, Jobs: jobs})
	}

	c.JSON(http.StatusOK, response)
}
