package models

import "time"

// Review is the single rating a requester may leave on a completed request.
type Review struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RequestID   uint      `json:"request_id" gorm:"uniqueIndex;not null"`
	Request     Request   `json:"request,omitempty" gorm:"foreignKey:RequestID"`
	VolunteerID uint      `json:"volunteer_id" gorm:"not null;index"`
	Volunteer   Volunteer `json:"volunteer,omitempty" gorm:"foreignKey:VolunteerID"`
	AuthorID    uint      `json:"author_id" gorm:"not null"`
	Author      User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Rating      int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}
