package entities

import "time"

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"  // Full access, manages users
	UserRoleEditor UserRole = "editor" // Manages CMS and course content
	UserRoleUser   UserRole = "user"   // Students and site members
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleEditor, UserRoleUser:
		return true
	}
	return false
}

type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Username         string     `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email            string     `gorm:"uniqueIndex;size:254;not null" json:"email"`
	PasswordHash     string     `gorm:"size:255" json:"-"`
	FullName         string     `gorm:"size:255" json:"fullName"`
	Role             UserRole   `gorm:"size:20;default:user" json:"role"`
	FailedLoginCount int        `gorm:"default:0" json:"-"`
	LockedUntil      *time.Time `json:"-"`
	LastLoginAt      *time.Time `json:"lastLoginAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// CanEdit reports whether the user may change CMS and course content.
func (u *User) CanEdit() bool {
	return u.Role == UserRoleAdmin || u.Role == UserRoleEditor
}
