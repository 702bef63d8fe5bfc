package models

import "time"

// Shortlist is a CSR's bookmark on a request. One entry per (user, request).
type Shortlist struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_shortlist_user_request"`
	RequestID uint      `json:"request_id" gorm:"not null;uniqueIndex:idx_shortlist_user_request"`
	Request   Request   `json:"request,omitempty" gorm:"foreignKey:RequestID"`
	CreatedAt time.Time `json:"created_at"`
}
