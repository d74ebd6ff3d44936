// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"jobdesk-backend/internal/auth"
	"jobdesk-backend/internal/controller/admin"
	"jobdesk-backend/internal/controller/company"
	"jobdesk-backend/internal/controller/job"
	"jobdesk-backend/internal/controller/user"
	"jobdesk-backend/internal/middleware"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrigins := strings.Split(allowOriginsStr, ",")

	userAuth := auth.NewUserAuthHandler(s.DB)
	companyAuth := auth.NewCompanyAuthHandler(s.DB, s.Storage)
	adminAuth := auth.NewAdminAuthHandler(s.DB)

	jobController := job.NewJobController(s.DB)
	userController := user.NewUserController(s.DB, s.Storage)
	companyController := company.NewCompanyController(s.DB)
	adminController := admin.NewAdminController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Cookies carry the auth token
	}))
	r.Use(middleware.SafeHeader())
	r.Use(middleware.EnvRateLimitMiddleware())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)

	api := r.Group("/api")
	{
		jobRoute := api.Group("/jobs")
		{
			jobRoute.GET("", jobController.GetJobs)
			jobRoute.GET("/companies-with-jobs", jobController.GetCompaniesWithJobs)
			jobRoute.GET("/:id", jobController.GetJobByID)
		}

		userRoute := api.Group("/users")
		{
			userRoute.POST("/register", userAuth.Register)
			userRoute.POST("/login", userAuth.Login)
			userRoute.POST("/logout", userAuth.Logout)

			userRoute.Use(middleware.RequireUser(s.DB))
			userRoute.GET("/me", userController.Me)
			userRoute.POST("/apply/:id", userController.ApplyForJob)
			userRoute.GET("/applications", userController.Applications)
			userRoute.POST("/resume", middleware.SizeLimit(10<<20), userController.UploadResume)
		}

		profileRoute := api.Group("/profile")
		{
			profileRoute.Use(middleware.RequireUser(s.DB))
			profileRoute.POST("", userController.UpsertProfile)
			profileRoute.PUT("", userController.UpsertProfile)
			profileRoute.GET("", userController.GetProfile)
			profileRoute.DELETE("", userController.DeleteProfile)
		}

		companyRoute := api.Group("/company")
		{
			companyRoute.POST("/register", middleware.SizeLimit(10<<20), companyAuth.Register)
			companyRoute.POST("/login", companyAuth.Login)
			companyRoute.POST("/logout", companyAuth.Logout)

			companyRoute.Use(middleware.RequireCompany(s.DB))
			companyRoute.GET("/me", companyController.Me)
			companyRoute.POST("/post-job", companyController.PostJob)
			companyRoute.POST("/change-status", companyController.ChangeStatus)
			companyRoute.POST("/change-int", companyController.ChangeInterview)
			companyRoute.POST("/change-onboard", companyController.ChangeOnboarding)

			premium := companyRoute.Group("")
			{
				premium.Use(middleware.CheckPremiumAccess())
				premium.PUT("/edit-job/:jobId", companyController.EditJob)
				premium.DELETE("/delete-job/:jobId", companyController.DeleteJob)
				premium.POST("/change-visibility", companyController.ChangeVisibility)
				premium.GET("/list-jobs", companyController.ListJobs)
				premium.GET("/applicants/:jobId", companyController.Applicants)
			}
		}

		adminRoute := api.Group("/admin")
		{
			adminRoute.POST("/register", adminAuth.Register)
			adminRoute.POST("/login", adminAuth.Login)
			adminRoute.POST("/logout", adminAuth.Logout)

			adminRoute.Use(middleware.RequireAdmin(s.DB))
			adminRoute.GET("/me", adminController.Me)
			adminRoute.GET("/unverified-jobs", adminController.UnverifiedJobs)
			adminRoute.GET("/unverified-recruiters", adminController.UnverifiedRecruiters)
			adminRoute.GET("/all-recruiters", adminController.AllRecruiters)
			adminRoute.GET("/all-users", adminController.AllUsers)
			adminRoute.PUT("/verify/:jobId", adminController.VerifyJob)
			adminRoute.PUT("/verify-recruiter/:recruiterId", adminController.VerifyRecruiter)
			adminRoute.PUT("/update-premium/:recruiterId", adminController.UpdatePremium)
			adminRoute.PUT("/job-objection/:jobId", adminController.JobObjection)
			adminRoute.PUT("/edit-job/:jobId", adminController.EditJob)
			adminRoute.POST("/post-job", adminController.PostJob)
			adminRoute.POST("/change-status", adminController.ChangeStatus)
			adminRoute.GET("/user-profile/:userId", adminController.UserProfile)
			adminRoute.GET("/job-applications/:userId", adminController.JobApplications)
			adminRoute.GET("/company-jobs/:companyId", adminController.CompanyJobs)
			adminRoute.GET("/job-applicants/:jobId", adminController.JobApplicants)
			adminRoute.POST("/import-candidates", middleware.SizeLimit(10<<20), adminController.ImportCandidates)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
