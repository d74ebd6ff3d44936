package company

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"jobdesk-backend/internal/auth"
	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/middleware"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func companyEngine() *gin.Engine {
	cc := NewCompanyController(testDB)
	r := gin.New()

	grp := r.Group("/api/company", middleware.RequireCompany(testDB))
	grp.GET("/me", cc.Me)
	grp.POST("/post-job", cc.PostJob)
	grp.POST("/change-status", cc.ChangeStatus)
	grp.POST("/change-int", cc.ChangeInterview)
	grp.POST("/change-onboard", cc.ChangeOnboarding)

	premium := grp.Group("", middleware.CheckPremiumAccess())
	premium.PUT("/edit-job/:jobId", cc.EditJob)
	premium.DELETE("/delete-job/:jobId", cc.DeleteJob)
	premium.POST("/change-visibility", cc.ChangeVisibility)
	premium.GET("/list-jobs", cc.ListJobs)
	premium.GET("/applicants/:jobId", cc.Applicants)

	return r
}

func companyToken(t *testing.T, email string) string {
	t.Helper()
	token, err := auth.GetCompanyAccessToken(t, testDB, email, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

// mustCreateJob seeds a job directly, bypassing the handlers.
func mustCreateJob(t *testing.T, company model.Company, title string, verified bool) model.Job {
	t.Helper()
	job := model.Job{
		CompanyID: company.ID,
		EditableJobInfo: model.EditableJobInfo{
			Title: title, Description: "desc", Location: "Bangkok",
			Category: "Engineering", Level: "Mid",
			Salary: 40000, Openings: 1, EmploymentType: model.EmploymentFullTime,
		},
		CompanyDetails: model.CompanyDetails{
			Name: company.Name, ShortDescription: "snapshot",
			City: "Bangkok", State: "Bangkok", Country: "Thailand",
		},
		Visible:    true,
		IsVerified: verified,
	}
	require.NoError(t, testDB.Create(&job).Error)
	return job
}

func fullJobPayload(title string) gin.H {
	return gin.H{
		"title":           title,
		"description":     "Build and run the backend platform",
		"location":        "Bangkok",
		"category":        "Engineering",
		"level":           "Senior",
		"experience":      4,
		"salary":          80000,
		"openings":        2,
		"employment_type": "full-time",
		"requirements":    []string{"Go", "Postgres"},
		"company_details": gin.H{
			"name":              "TechNova",
			"short_description": "Innovative platform solutions",
			"city":              "Bangkok",
			"state":             "Bangkok",
			"country":           "Thailand",
		},
	}
}

func TestMe(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/api/company/me", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	company := resp["company"].(map[string]interface{})
	assert.Equal(t, database.TestCompany1.ID.String(), company["id"])
	assert.NotContains(t, company, "password")
}

func TestPostJobEntersUnverified(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	rec, resp := testutil.MakeJSONRequest(fullJobPayload("Platform Engineer"), token, r, "/api/company/post-job", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	job := resp["job"].(map[string]interface{})
	assert.Equal(t, false, job["is_verified"], "new jobs must wait for admin approval")
	assert.Equal(t, true, job["visible"])
	assert.Equal(t, database.TestCompany1.ID.String(), job["company_id"])
}

func TestPostJobNamesAllMissingFields(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Lonely Title"}, token, r, "/api/company/post-job", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	msg := resp["message"].(string)
	for _, field := range []string{"description", "location", "category", "level", "salary", "openings", "employment_type", "company_details"} {
		assert.Contains(t, msg, field)
	}
	assert.NotContains(t, msg, "title,")
}

func TestEditJobResetsVerificationAndRetiresObjections(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	job := mustCreateJob(t, database.TestCompany1, "Edit Target", true)

	older := model.Objection{JobID: job.ID, Message: "first concern", Active: true}
	require.NoError(t, testDB.Create(&older).Error)
	newer := model.Objection{JobID: job.ID, Message: "second concern", Active: true}
	require.NoError(t, testDB.Create(&newer).Error)

	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Edit Target v2"}, token, r,
		fmt.Sprintf("/api/company/edit-job/%d", job.ID), http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	edited := resp["job"].(map[string]interface{})
	assert.Equal(t, "Edit Target v2", edited["title"])
	assert.Equal(t, "desc", edited["description"], "absent fields keep prior values")
	assert.Equal(t, false, edited["is_verified"])
	assert.Equal(t, true, edited["is_edited"])

	var got model.Objection
	require.NoError(t, testDB.First(&got, "id = ?", newer.ID).Error)
	assert.False(t, got.Active)
	assert.True(t, got.Superseded, "newest objection records which one the edit answered")

	require.NoError(t, testDB.First(&got, "id = ?", older.ID).Error)
	assert.False(t, got.Active)
	assert.False(t, got.Superseded)
}

func TestEditJobNoObjectionsIsFine(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	job := mustCreateJob(t, database.TestCompany1, "Quiet Job", true)

	rec, _ := testutil.MakeJSONRequest(gin.H{"salary": 45000}, token, r,
		fmt.Sprintf("/api/company/edit-job/%d", job.ID), http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var reloaded model.Job
	require.NoError(t, testDB.First(&reloaded, "id = ?", job.ID).Error)
	assert.Equal(t, 45000, reloaded.Salary)
	assert.False(t, reloaded.IsVerified)
}

func TestEditJobForeignJobForbidden(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	foreign := mustCreateJob(t, database.TestCompany2, "Foreign Job", true)

	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Hijack"}, token, r,
		fmt.Sprintf("/api/company/edit-job/%d", foreign.ID), http.MethodPut)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not allowed to manage this job", resp["message"])
}

func TestEditJobUnknownJobNotFound(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Ghost"}, token, r,
		"/api/company/edit-job/999999", http.MethodPut)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["message"])
}

func TestEditJobRequiresPremium(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany2.Email)

	job := mustCreateJob(t, database.TestCompany2, "Non Premium Job", true)

	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Nope"}, token, r,
		fmt.Sprintf("/api/company/edit-job/%d", job.ID), http.MethodPut)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Premium access required for this operation", resp["message"])
}

func TestDeleteJobCascades(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	job := mustCreateJob(t, database.TestCompany1, "Doomed Job", true)
	application := model.JobApplication{UserID: database.TestUser1.ID, JobID: job.ID, CompanyID: job.CompanyID}
	require.NoError(t, testDB.Create(&application).Error)

	rec, resp := testutil.MakeJSONRequest(nil, token, r,
		fmt.Sprintf("/api/company/delete-job/%d", job.ID), http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Job deleted", resp["message"])

	var count int64
	testDB.Model(&model.JobApplication{}).Where("job_id = ?", job.ID).Count(&count)
	assert.Equal(t, int64(0), count, "applications must go with the job")
}

func TestChangeVisibilityToggles(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	job := mustCreateJob(t, database.TestCompany1, "Toggle Job", true)

	rec, resp := testutil.MakeJSONRequest(gin.H{"job_id": job.ID}, token, r,
		"/api/company/change-visibility", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["job"].(map[string]interface{})["visible"])

	var reloaded model.Job
	require.NoError(t, testDB.First(&reloaded, "id = ?", job.ID).Error)
	assert.False(t, reloaded.Visible)
	assert.True(t, reloaded.IsVerified, "hiding a job must not touch verification")

	rec, resp = testutil.MakeJSONRequest(gin.H{"job_id": job.ID}, token, r,
		"/api/company/change-visibility", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["job"].(map[string]interface{})["visible"])
}

func TestListJobsCountsApplicants(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	job := mustCreateJob(t, database.TestCompany1, "Counted Job", true)
	application := model.JobApplication{UserID: database.TestUser2.ID, JobID: job.ID, CompanyID: job.CompanyID}
	require.NoError(t, testDB.Create(&application).Error)

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/api/company/list-jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))

	found := false
	for _, entry := range listed {
		if entry["id"].(float64) == float64(job.ID) {
			found = true
			assert.Equal(t, float64(1), entry["applicant_count"])
		}
	}
	assert.True(t, found, "own job missing from list")
}

func TestApplicantsForeignJobForbidden(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	foreign := mustCreateJob(t, database.TestCompany2, "Foreign Applicants", true)

	rec, resp := testutil.MakeJSONRequest(nil, token, r,
		fmt.Sprintf("/api/company/applicants/%d", foreign.ID), http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not allowed to manage this job", resp["message"])
}

func TestChangeStatusPermissiveByDefault(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	job := mustCreateJob(t, database.TestCompany1, "Status Job", true)
	application := model.JobApplication{UserID: database.TestUser1.ID, JobID: job.ID, CompanyID: job.CompanyID}
	require.NoError(t, testDB.Create(&application).Error)

	rec, _ := testutil.MakeJSONRequest(gin.H{"application_id": application.ID, "status": "shortlisted-maybe"}, token, r,
		"/api/company/change-status", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code, "free-form status allowed without strict policy")

	var reloaded model.JobApplication
	require.NoError(t, testDB.First(&reloaded, "id = ?", application.ID).Error)
	assert.Equal(t, "shortlisted-maybe", reloaded.Status)
	assert.Nil(t, reloaded.ReviewedByID, "company updates never write review metadata")
	assert.Nil(t, reloaded.ReviewedAt)
}

func TestChangeStatusStrictPolicy(t *testing.T) {
	t.Setenv("STRICT_APPLICATION_STATUS", "true")

	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	job := mustCreateJob(t, database.TestCompany1, "Strict Status Job", true)
	application := model.JobApplication{UserID: database.TestUser2.ID, JobID: job.ID, CompanyID: job.CompanyID}
	require.NoError(t, testDB.Create(&application).Error)

	rec, resp := testutil.MakeJSONRequest(gin.H{"application_id": application.ID, "status": "shortlisted-maybe"}, token, r,
		"/api/company/change-status", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["message"], "not allowed")

	rec, _ = testutil.MakeJSONRequest(gin.H{"application_id": application.ID, "status": model.ApplicationStatusAccepted}, token, r,
		"/api/company/change-status", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChangeStatusForeignApplicationForbidden(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany2.Email)

	job := mustCreateJob(t, database.TestCompany1, "Foreign Status Job", true)
	application := model.JobApplication{UserID: database.TestUser1.ID, JobID: job.ID, CompanyID: job.CompanyID}
	require.NoError(t, testDB.Create(&application).Error)

	rec, resp := testutil.MakeJSONRequest(gin.H{"application_id": application.ID, "status": "accepted"}, token, r,
		"/api/company/change-status", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not allowed to manage this application", resp["message"])
}

func TestChangeInterviewAndOnboarding(t *testing.T) {
	r := companyEngine()
	token := companyToken(t, database.TestCompany1.Email)

	job := mustCreateJob(t, database.TestCompany1, "Substate Job", true)
	application := model.JobApplication{UserID: database.TestUser1.ID, JobID: job.ID, CompanyID: job.CompanyID}
	require.NoError(t, testDB.Create(&application).Error)

	rec, resp := testutil.MakeJSONRequest(gin.H{"application_id": application.ID, "value": "Round 2 on Friday"}, token, r,
		"/api/company/change-int", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	returned := resp["application"].(map[string]interface{})
	assert.Equal(t, "Round 2 on Friday", returned["interview"], "response carries the updated value")

	rec, resp = testutil.MakeJSONRequest(gin.H{"application_id": application.ID, "value": "Starts next month"}, token, r,
		"/api/company/change-onboard", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	returned = resp["application"].(map[string]interface{})
	assert.Equal(t, "Starts next month", returned["onboarding"], "response carries the updated value")

	var reloaded model.JobApplication
	require.NoError(t, testDB.First(&reloaded, "id = ?", application.ID).Error)
	assert.Equal(t, "Round 2 on Friday", reloaded.Interview)
	assert.Equal(t, "Starts next month", reloaded.Onboarding)
}
