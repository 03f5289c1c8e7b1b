package models

import "time"

// MessRating is one user's 1–5 rating of a meal on a weekday. Owner is nil
// for anonymous ratings; signed-in users get one row per (owner, day, meal).
type MessRating struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	Owner  *string `json:"owner" gorm:"size:64;index"`
	Day    string  `json:"day" gorm:"size:12;not null"` // uppercased weekday
	Meal   string  `json:"meal" gorm:"size:40;not null"`
	Rating int     `json:"rating" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
