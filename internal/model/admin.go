package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// RolePrimaryAdmin can see and manage every job and company
	RolePrimaryAdmin = "primary"
	// RoleSubAdmin only sees jobs it created itself
	RoleSubAdmin = "sub-admin"
)

// Admin is a moderator account. Role decides job visibility: a primary
// admin sees everything, a sub-admin is scoped to jobs it created.
type Admin struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"type:text;not null" json:"name"`
	Email    string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`
	Role     string    `gorm:"type:text;default:'sub-admin';check:role IN ('primary', 'sub-admin')" json:"role"`
}

// CanSeeAllJobs reports whether this admin may operate on jobs it did not create.
func (a *Admin) CanSeeAllJobs() bool {
	return a.Role == RolePrimaryAdmin
}

// ScopeJobs narrows a job query to what this admin is allowed to see.
// Scoping lives here so handlers don't re-derive the role check.
func (a *Admin) ScopeJobs(tx *gorm.DB) *gorm.DB {
	if a.CanSeeAllJobs() {
		return tx
	}
	return tx.Where("created_by_id = ?", a.ID)
}
