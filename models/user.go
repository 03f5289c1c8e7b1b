package models

import "time"

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleWarden  = "warden"
)

// User is keyed by the Google account subject. Role is resolved from the
// configured reviewer emails at sign-in; everyone else is a student.
type User struct {
	UID      string `json:"uid" gorm:"primaryKey;size:64"`
	Email    string `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Name     string `json:"name" gorm:"size:120"`
	PhotoURL string `json:"photoURL" gorm:"size:255"`
	Role     string `json:"role" gorm:"size:20;not null;default:student"`

	// Profile fields filled in during first-time setup
	RollNumber string `json:"rollNumber" gorm:"size:20"`
	Mobile     string `json:"mobile" gorm:"size:15"`
	Course     string `json:"course" gorm:"size:60"`
	Semester   string `json:"semester" gorm:"size:10"`
	Hostel     string `json:"hostel" gorm:"size:60"`
	RoomNumber string `json:"roomNumber" gorm:"size:10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileComplete reports whether leave submission may snapshot this user.
func (u *User) ProfileComplete() bool {
	return u.RollNumber != "" && u.Mobile != "" && u.Hostel != "" && u.RoomNumber != ""
}
