// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// User is a job seeker account. The password hash is never serialized.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"type:text;not null" json:"name"`
	Email    string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Phone    string    `gorm:"type:text" json:"phone"`
	Password string    `gorm:"type:text" json:"-"`
	Resume   string    `gorm:"type:text" json:"resume,omitempty"`
	Image    string    `gorm:"type:text" json:"image,omitempty"`
}

// EditableProfileInfo is the part of a user profile the user may overwrite.
type EditableProfileInfo struct {
	FirstName      string         `gorm:"type:text" json:"first_name"`
	LastName       string         `gorm:"type:text" json:"last_name"`
	Gender         string         `gorm:"type:text" json:"gender"`
	DateOfBirth    *time.Time     `gorm:"type:timestamp" json:"date_of_birth,omitempty"`
	Street         string         `gorm:"type:text" json:"street"`
	City           string         `gorm:"type:text" json:"city"`
	State          string         `gorm:"type:text" json:"state"`
	Country        string         `gorm:"type:text" json:"country"`
	Pincode        string         `gorm:"type:text" json:"pincode"`
	Education      datatypes.JSON `gorm:"type:jsonb" json:"education"`
	Experience     datatypes.JSON `gorm:"type:jsonb" json:"experience"`
	Skills         pq.StringArray `gorm:"type:text[]" json:"skills"`
	Languages      pq.StringArray `gorm:"type:text[]" json:"languages"`
	Resume         string         `gorm:"type:text" json:"resume"`
	ProfilePicture string         `gorm:"type:text" json:"profile_picture"`
}

// UserProfile holds the extended candidate profile, one per user.
type UserProfile struct {
	ID     uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	EditableProfileInfo
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}
