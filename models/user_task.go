package models

import "time"

// UserTask is a personal planner entry; rows expire a week after creation
// unless the client sets something else.
type UserTask struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Owner     string    `json:"owner" gorm:"size:64;index;not null"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Date      string    `json:"date" gorm:"size:10"` // YYYY-MM-DD
	Time      string    `json:"time" gorm:"size:5"`  // HH:MM
	Slot      string    `json:"slot" gorm:"size:20"`
	Completed bool      `json:"completed" gorm:"not null;default:false"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
