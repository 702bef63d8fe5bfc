package models

import "time"

// UserRole defines allowed roles in the system. Roles are fixed at
// registration time; there is no role-change operation.
type UserRole string

const (
	RolePIN             UserRole = "PIN"
	RoleCSR             UserRole = "CSR"
	RolePlatformManager UserRole = "Platform Manager"
	RoleVolunteer       UserRole = "Volunteer"
	RoleAdmin           UserRole = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RolePIN, RoleCSR, RolePlatformManager, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// UserStatus gates what an account may do. New accounts start Pending and
// must be activated by an admin before they can act.
type UserStatus string

const (
	UserPending   UserStatus = "Pending"
	UserActive    UserStatus = "Active"
	UserSuspended UserStatus = "Suspended"
)

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         UserRole   `json:"role" gorm:"not null;default:'PIN'"`
	Status       UserStatus `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
