package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Employment type values accepted by the jobs table check constraint
var (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentInternship = "internship"
	EmploymentUnpaid     = "unpaid"
)

// CompanyDetails is the point-in-time company snapshot embedded in a job.
// It is refreshed only when the owning company explicitly edits the job,
// so it can drift from the Company record in between.
type CompanyDetails struct {
	Name             string `gorm:"type:text" json:"name"`
	ShortDescription string `gorm:"type:text" json:"short_description"`
	City             string `gorm:"type:text" json:"city"`
	State            string `gorm:"type:text" json:"state"`
	Country          string `gorm:"type:text" json:"country"`
	HRName           string `gorm:"type:text" json:"hr_name,omitempty"`
	HREmail          string `gorm:"type:text" json:"hr_email,omitempty"`
	HRPhone          string `gorm:"type:text" json:"hr_phone,omitempty"`
}

// EditableJobInfo is the part of a job that create and edit requests may set
type EditableJobInfo struct {
	Title          string         `gorm:"type:text" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Location       string         `gorm:"type:text" json:"location"`
	Category       string         `gorm:"type:text" json:"category"`
	Level          string         `gorm:"type:text" json:"level"`
	Experience     int            `json:"experience"`
	Salary         int            `json:"salary"`
	Openings       int            `json:"openings"`
	Deadline       *time.Time     `gorm:"type:timestamp" json:"deadline,omitempty"`
	EmploymentType string         `gorm:"type:text;check:employment_type IN ('full-time', 'part-time', 'internship', 'unpaid')" json:"employment_type"`
	Requirements   pq.StringArray `gorm:"type:text[]" json:"requirements"`
}

// Job is gorm model for a job posting.
//
// Verification and visibility are independent flags: a job is publicly
// listable only when both hold. Any company edit after verification drops
// the job back to unverified until an admin re-approves it.
type Job struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"company_id"`
	Company   Company   `gorm:"foreignKey:CompanyID;references:ID" json:"-"`

	// Set when an admin created the job on a company's behalf;
	// sub-admin listings are scoped by this column.
	CreatedByID *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`
	CreatedBy   *Admin     `gorm:"foreignKey:CreatedByID;references:ID" json:"-"`

	EditableJobInfo
	CompanyDetails CompanyDetails `gorm:"embedded;embeddedPrefix:company_" json:"company_details"`

	PostedAt        time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"posted_at"`
	Visible         bool      `gorm:"default:true" json:"visible"`
	IsVerified      bool      `gorm:"default:false" json:"is_verified"`
	IsEdited        bool      `gorm:"default:false" json:"is_edited"`
	IsViewApplicant bool      `gorm:"default:false" json:"is_view_applicant"`

	// Feed provenance: set for jobs ingested from the external listing
	JustjobID *string `gorm:"type:text;uniqueIndex" json:"justjob_id,omitempty"`

	Objections   []Objection      `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"objections"`
	Applications []JobApplication `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

// PubliclyListable reports whether the job appears in the public listing
func (j *Job) PubliclyListable() bool {
	return j.Visible && j.IsVerified
}

// OwnedBy reports whether the job belongs to the given company
func (j *Job) OwnedBy(companyID uuid.UUID) bool {
	return j.CompanyID.String() == companyID.String()
}

// MissingJobFields collects the names of required create fields the
// request left empty, so the error can name every one of them at once.
// Creation requires the complete company snapshot, whoever posts the job.
func MissingJobFields(info *EditableJobInfo, details *CompanyDetails) []string {
	missing := []string{}
	if info.Title == "" {
		missing = append(missing, "title")
	}
	if info.Description == "" {
		missing = append(missing, "description")
	}
	if info.Location == "" {
		missing = append(missing, "location")
	}
	if info.Category == "" {
		missing = append(missing, "category")
	}
	if info.Level == "" {
		missing = append(missing, "level")
	}
	if info.Salary == 0 {
		missing = append(missing, "salary")
	}
	if info.Openings == 0 {
		missing = append(missing, "openings")
	}
	if info.EmploymentType == "" {
		missing = append(missing, "employment_type")
	}
	if details == nil {
		missing = append(missing, "company_details")
		return missing
	}
	if details.Name == "" {
		missing = append(missing, "company_details.name")
	}
	if details.ShortDescription == "" {
		missing = append(missing, "company_details.short_description")
	}
	if details.City == "" {
		missing = append(missing, "company_details.city")
	}
	if details.State == "" {
		missing = append(missing, "company_details.state")
	}
	if details.Country == "" {
		missing = append(missing, "company_details.country")
	}
	return missing
}

// Objection is one entry of a job's objection history. The history is
// append-only: entries are never deleted, a company edit only flips
// Active off and marks the newest entry Superseded. "Current objections"
// are the Active rows, the full track is every row.
type Objection struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	JobID      uint      `gorm:"not null;index" json:"job_id"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Active     bool      `gorm:"default:true" json:"active"`
	Superseded bool      `gorm:"default:false" json:"superseded"`
	CreatedAt  time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
