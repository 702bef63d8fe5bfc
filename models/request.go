package models

import "time"

// RequestStatus represents all possible states of a help request.
type RequestStatus string

const (
	RequestPending    RequestStatus = "Pending"
	RequestAccepted   RequestStatus = "Accepted"
	RequestAssigned   RequestStatus = "Assigned"
	RequestInProgress RequestStatus = "In Progress"
	RequestCompleted  RequestStatus = "Completed"
)

// Active reports whether the status counts against a volunteer's
// availability.
func (s RequestStatus) Active() bool {
	return s == RequestAssigned || s == RequestInProgress
}

type Request struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Reference   string        `json:"reference" gorm:"uniqueIndex;not null"`
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description" gorm:"not null"`
	CategoryID  uint          `json:"category_id" gorm:"not null"`
	Category    Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Status      RequestStatus `json:"status" gorm:"not null;default:'Pending'"`
	ScheduledAt time.Time     `json:"scheduled_at" gorm:"not null"`
	ViewCount   uint          `json:"view_count" gorm:"not null;default:0"`
	CreatorID   uint          `json:"creator_id" gorm:"not null"`
	Creator     User          `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	VolunteerID *uint         `json:"volunteer_id"`
	Volunteer   *Volunteer    `json:"volunteer,omitempty" gorm:"foreignKey:VolunteerID"`
	// AcceptedAt is set when a CSR accepts the request. A later decline
	// returns the request to Accepted when this is set, Pending otherwise.
	AcceptedAt    *time.Time             `json:"accepted_at"`
	StatusHistory []RequestStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:RequestID"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// RequestStatusHistory records every status change for auditing.
type RequestStatusHistory struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	RequestID  uint          `json:"request_id" gorm:"not null;index"`
	FromStatus RequestStatus `json:"from_status"`
	ToStatus   RequestStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint          `json:"changed_by"`
	Note       string        `json:"note"`
	CreatedAt  time.Time     `json:"created_at"`
}
