package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	// ApplicationStatusPending indicates that the application has not been looked at
	ApplicationStatusPending = "pending"
	// ApplicationStatusUnderReview indicates that the application is being considered
	ApplicationStatusUnderReview = "under_review"
	// ApplicationStatusAccepted indicates that the application has been accepted
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "rejected"
	// ApplicationStatusInterviewed indicates that the candidate has been interviewed
	ApplicationStatusInterviewed = "interviewed"
	// ApplicationStatusOnboarded indicates that the candidate has been onboarded
	ApplicationStatusOnboarded = "onboarded"

	// InterviewNotStarted is the interview sub-state sentinel
	InterviewNotStarted = "Not Interviewed"
	// OnboardingNotStarted is the onboarding sub-state sentinel
	OnboardingNotStarted = "Not Onboarded"
)

// ValidApplicationStatus reports whether s is one of the enumerated statuses
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusUnderReview,
		ApplicationStatusAccepted, ApplicationStatusRejected,
		ApplicationStatusInterviewed, ApplicationStatusOnboarded:
		return true
	}
	return false
}

// JobApplication represents one candidate's application to one job.
//
// The composite unique index on (user_id, job_id) makes the at-most-one
// application rule hold even under concurrent submission; handlers map the
// unique violation to a conflict response.
//
// ReviewedByID/ReviewedAt are written only by the admin status change,
// never by company-side mutations.
type JobApplication struct {
	ID     uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	JobID uint `gorm:"not null;uniqueIndex:idx_applications_user_job;index" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	// Denormalized from the job at submit time so company-side queries
	// don't need a join for the ownership check.
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Company   Company   `gorm:"foreignKey:CompanyID;references:ID" json:"-"`

	ApplicationData datatypes.JSON `gorm:"type:jsonb" json:"application_data"`

	Status     string `gorm:"type:text;default:'pending'" json:"status"`
	Interview  string `gorm:"type:text;default:'Not Interviewed'" json:"interview"`
	Onboarding string `gorm:"type:text;default:'Not Onboarded'" json:"onboarding"`

	ReviewedByID    *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedBy      *Admin     `gorm:"foreignKey:ReviewedByID;references:ID" json:"-"`
	ReviewedAt      *time.Time `gorm:"type:timestamp" json:"reviewed_at,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// OwnedBy reports whether the application belongs to the given company
func (a *JobApplication) OwnedBy(companyID uuid.UUID) bool {
	return a.CompanyID.String() == companyID.String()
}
