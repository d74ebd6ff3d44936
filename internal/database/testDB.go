package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded records for package tests
var (
	TestUser1 m.User
	TestUser2 m.User

	// TestCompany1 is verified and has premium access
	TestCompany1 m.Company
	// TestCompany2 is verified without premium access
	TestCompany2 m.Company
	// TestCompanyUnverified can not log in until an admin verifies it
	TestCompanyUnverified m.Company

	TestPrimaryAdmin m.Admin
	TestSubAdmin     m.Admin

	// TestJobPublic is verified and visible (publicly listable)
	TestJobPublic m.Job
	// TestJobUnverified is visible but awaiting admin verification
	TestJobUnverified m.Job
	// TestJobHidden is verified but toggled invisible by its company
	TestJobHidden m.Job

	// Shared plain password for every seeded principal
	TestSeedPassword = "SeedPass123!"
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample users, companies, admins and jobs if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	users := []m.User{
		{Name: "Alice Nguyen", Email: "alice@example.com", Phone: "0100000001", Password: hashedPwd},
		{Name: "Bob Somsak", Email: "bob@example.com", Phone: "0100000002", Password: hashedPwd},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestUser1, TestUser2 = users[0], users[1]

	companies := []m.Company{
		{
			Name: "TechNova", Email: "hr@technova.example", Phone: "0200000001",
			Image: "https://cdn.example.com/company_images/technova.png", Password: hashedPwd,
			IsVerified: true, HavePremiumAccess: true,
		},
		{
			Name: "DataForge", Email: "hr@dataforge.example", Phone: "0200000002",
			Image: "https://cdn.example.com/company_images/dataforge.png", Password: hashedPwd,
			IsVerified: true,
		},
		{
			Name: "StealthCo", Email: "hr@stealthco.example", Phone: "0200000003",
			Image: "https://cdn.example.com/company_images/stealthco.png", Password: hashedPwd,
		},
	}
	if err := db.Create(&companies).Error; err != nil {
		return err
	}
	TestCompany1, TestCompany2, TestCompanyUnverified = companies[0], companies[1], companies[2]

	admins := []m.Admin{
		{Name: "Primary Admin", Email: "admin@example.com", Password: hashedPwd, Role: m.RolePrimaryAdmin},
		{Name: "Sub Admin", Email: "subadmin@example.com", Password: hashedPwd, Role: m.RoleSubAdmin},
	}
	if err := db.Create(&admins).Error; err != nil {
		return err
	}
	TestPrimaryAdmin, TestSubAdmin = admins[0], admins[1]

	deadline := time.Now().AddDate(0, 1, 0)
	jobs := []m.Job{
		{
			CompanyID: TestCompany1.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title: "Backend Engineer", Description: "Build Go services and database layers.",
				Location: "Bangkok", Category: "Engineering", Level: "Mid",
				Experience: 2, Salary: 55000, Openings: 3, Deadline: &deadline,
				EmploymentType: m.EmploymentFullTime,
				Requirements:   pq.StringArray{"Go", "SQL"},
			},
			CompanyDetails: m.CompanyDetails{
				Name: "TechNova", ShortDescription: "Innovative platform solutions",
				City: "Bangkok", State: "Bangkok", Country: "Thailand",
			},
			Visible:    true,
			IsVerified: true,
		},
		{
			CompanyID: TestCompany1.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title: "Frontend Developer", Description: "Component library work.",
				Location: "Remote", Category: "Engineering", Level: "Junior",
				Experience: 1, Salary: 35000, Openings: 2, Deadline: &deadline,
				EmploymentType: m.EmploymentFullTime,
				Requirements:   pq.StringArray{"TypeScript", "React"},
			},
			CompanyDetails: m.CompanyDetails{
				Name: "TechNova", ShortDescription: "Innovative platform solutions",
				City: "Bangkok", State: "Bangkok", Country: "Thailand",
			},
			Visible: true,
		},
		{
			CompanyID: TestCompany2.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title: "Data Analyst", Description: "Dashboards and data cleansing.",
				Location: "Chiang Mai", Category: "Data", Level: "Junior",
				Experience: 1, Salary: 30000, Openings: 1, Deadline: &deadline,
				EmploymentType: m.EmploymentInternship,
				Requirements:   pq.StringArray{"SQL"},
			},
			CompanyDetails: m.CompanyDetails{
				Name: "DataForge", ShortDescription: "Data analytics consulting",
				City: "Chiang Mai", State: "Chiang Mai", Country: "Thailand",
			},
			Visible:    false,
			IsVerified: true,
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJobPublic, TestJobUnverified, TestJobHidden = jobs[0], jobs[1], jobs[2]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	if err := db.First(&TestUser1, "email = ?", "alice@example.com").Error; err != nil {
		return err
	}
	if err := db.First(&TestUser2, "email = ?", "bob@example.com").Error; err != nil {
		return err
	}
	if err := db.First(&TestCompany1, "name = ?", "TechNova").Error; err != nil {
		return err
	}
	if err := db.First(&TestCompany2, "name = ?", "DataForge").Error; err != nil {
		return err
	}
	if err := db.First(&TestCompanyUnverified, "name = ?", "StealthCo").Error; err != nil {
		return err
	}
	if err := db.First(&TestPrimaryAdmin, "email = ?", "admin@example.com").Error; err != nil {
		return err
	}
	if err := db.First(&TestSubAdmin, "email = ?", "subadmin@example.com").Error; err != nil {
		return err
	}

	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err != nil {
		return err
	}
	if len(jobs) > 0 {
		TestJobPublic = jobs[0]
	}
	if len(jobs) > 1 {
		TestJobUnverified = jobs[1]
	}
	if len(jobs) > 2 {
		TestJobHidden = jobs[2]
	}

	return nil
}
