package models

import "time"

// Volunteer is the 1:1 profile behind a Volunteer-role user.
//
// IsAvailable is a cached projection of the volunteer's active-assignment
// count: false while exactly one request with this volunteer is Assigned or
// In Progress, true otherwise. It is recomputed inside every lifecycle
// transaction and must never be trusted as independent state.
type Volunteer struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	UserID              uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User                User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CategoryID          *uint     `json:"category_id"`
	Category            *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	IsAvailable         bool      `json:"is_available" gorm:"not null;default:true"`
	TotalTasksCompleted uint      `json:"total_tasks_completed" gorm:"not null;default:0"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
