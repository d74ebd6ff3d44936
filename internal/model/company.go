package model

import "github.com/google/uuid"

// Company is a recruiter account. A company must be verified by an admin
// before it can log in, and premium endpoints additionally require the
// HavePremiumAccess flag.
//
// The composite unique index on (name, email) rejects duplicate
// registrations at the storage layer instead of relying on a
// check-then-insert sequence.
type Company struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name              string    `gorm:"type:text;not null;uniqueIndex:idx_companies_identity" json:"name"`
	Email             string    `gorm:"type:text;not null;uniqueIndex:idx_companies_identity" json:"email"`
	Phone             string    `gorm:"type:text;not null" json:"phone"`
	Image             string    `gorm:"type:text" json:"image"`
	Password          string    `gorm:"type:text;not null" json:"-"`
	IsVerified        bool      `gorm:"default:false" json:"is_verified"`
	HavePremiumAccess bool      `gorm:"default:false" json:"have_premium_access"`
}
