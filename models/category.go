package models

import "time"

// Category is a request/volunteer specialty area, e.g. "Transport".
// Names are stored trimmed and compared case-insensitively.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
