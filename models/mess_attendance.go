package models

import "time"

// MessAttendance is append-only: one row per (user, event), enforced by the
// composite unique index so a concurrent double scan cannot slip past the
// handler's pre-check.
type MessAttendance struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"userId" gorm:"size:64;not null;uniqueIndex:idx_mess_attendance_user_event"`
	Email      string    `json:"email" gorm:"size:120"`
	EventID    uint      `json:"eventId" gorm:"not null;uniqueIndex:idx_mess_attendance_user_event;index"`
	AttendedAt time.Time `json:"attendedAt" gorm:"autoCreateTime"`
}
