package models

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Workflow stages. pending_faculty → pending_warden → approved, with a
// rejection branch at each gate. approved/rejected_* are terminal.
const (
	StagePendingFaculty  = "pending_faculty"
	StagePendingWarden   = "pending_warden"
	StageApproved        = "approved"
	StageRejectedFaculty = "rejected_faculty"
	StageRejectedWarden  = "rejected_warden"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

var (
	ErrStageMismatch     = errors.New("decision does not match the request's current stage")
	ErrInvalidDateRange  = errors.New("toDate is before fromDate")
	ErrUnparseableDate   = errors.New("dates must be YYYY-MM-DD")
	ErrUnknownDecision   = errors.New("decision must be approve or reject")
	ErrUnknownReviewRole = errors.New("role must be faculty or warden")
)

// ApprovalState is one reviewer's sub-record on a leave request.
type ApprovalState struct {
	Status   string     `json:"status" gorm:"size:20;not null;default:pending"`
	Comments string     `json:"comments" gorm:"type:text"`
	ActedAt  *time.Time `json:"actedAt"`
	Name     string     `json:"name" gorm:"size:120"`
	Email    string     `json:"email" gorm:"size:120"`
}

// StudentProfile is the denormalized snapshot taken at submission time.
// The student editing their profile later must not rewrite history.
type StudentProfile struct {
	Name       string `json:"name" gorm:"size:120;not null"`
	RollNumber string `json:"rollNumber" gorm:"size:20;not null"`
	Mobile     string `json:"mobile" gorm:"size:15"`
	Course     string `json:"course" gorm:"size:60"`
	Semester   string `json:"semester" gorm:"size:10"`
	Hostel     string `json:"hostel" gorm:"size:60"`
	RoomNumber string `json:"roomNumber" gorm:"size:10"`
}

type LeaveRequest struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	ApplicationID string `json:"applicationId" gorm:"uniqueIndex;size:40;not null"`
	StudentUID    string `json:"studentUid" gorm:"index;size:64;not null"`

	StudentProfile StudentProfile `json:"studentProfile" gorm:"embedded;embeddedPrefix:student_"`

	StudentAddress string `json:"studentAddress" gorm:"type:text"`
	ContactAddress string `json:"contactAddress" gorm:"type:text"`
	ParentMobile   string `json:"parentMobile" gorm:"size:15"`
	ParentEmail    string `json:"parentEmail" gorm:"size:120"`
	LeavePurpose   string `json:"leavePurpose" gorm:"type:text;not null"`

	FromDate    string `json:"fromDate" gorm:"size:10;not null"` // YYYY-MM-DD
	FromTime    string `json:"fromTime" gorm:"size:5"`           // HH:MM
	ToDate      string `json:"toDate" gorm:"size:10;not null"`
	ToTime      string `json:"toTime" gorm:"size:5"`
	TotalDays   int    `json:"totalDays" gorm:"not null"`
	WorkingDays int    `json:"workingDays" gorm:"not null"`
	DateApplied string `json:"dateApplied" gorm:"size:10;not null"`

	Status  string        `json:"status" gorm:"size:20;index;not null"`
	Faculty ApprovalState `json:"faculty" gorm:"embedded;embeddedPrefix:faculty_"`
	Warden  ApprovalState `json:"warden" gorm:"embedded;embeddedPrefix:warden_"`

	// Latest rejection comment; cleared whenever an approval advances the request.
	RejectionReason string `json:"rejectionReason" gorm:"type:text"`

	// Optimistic-concurrency counter: every decision is a compare-and-swap
	// on this value.
	Version int `json:"version" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsTerminalStage reports whether no further transition is defined.
func IsTerminalStage(stage string) bool {
	switch stage {
	case StageApproved, StageRejectedFaculty, StageRejectedWarden:
		return true
	}
	return false
}

// OpenStages are the non-terminal stages a student may have at most one of.
func OpenStages() []string {
	return []string{StagePendingFaculty, StagePendingWarden}
}

// NextStage is the whole transition table. It is the only place a stage
// value is ever produced, so the stored status can never disagree with the
// reviewer sub-records that drive it.
func NextStage(current, role, decision string) (string, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return "", ErrUnknownDecision
	}
	switch {
	case current == StagePendingFaculty && role == RoleFaculty:
		if decision == DecisionApprove {
			return StagePendingWarden, nil
		}
		return StageRejectedFaculty, nil
	case current == StagePendingWarden && role == RoleWarden:
		if decision == DecisionApprove {
			return StageApproved, nil
		}
		return StageRejectedWarden, nil
	case role != RoleFaculty && role != RoleWarden:
		return "", ErrUnknownReviewRole
	}
	return "", ErrStageMismatch
}

// CountLeaveDays returns the inclusive calendar-day count and the subset of
// Monday–Friday days between fromDate and toDate.
func CountLeaveDays(fromDate, toDate string) (total, working int, err error) {
	start, err := time.Parse("2006-01-02", fromDate)
	if err != nil {
		return 0, 0, ErrUnparseableDate
	}
	end, err := time.Parse("2006-01-02", toDate)
	if err != nil {
		return 0, 0, ErrUnparseableDate
	}
	if end.Before(start) {
		return 0, 0, ErrInvalidDateRange
	}
	for dt := start; !dt.After(end); dt = dt.AddDate(0, 0, 1) {
		total++
		if wd := dt.Weekday(); wd != time.Saturday && wd != time.Sunday {
			working++
		}
	}
	return total, working, nil
}

// NewApplicationID builds the human-readable id shown on the printed form,
// e.g. IIITK-LF-2024BCS0066-48213.
func NewApplicationID(rollNumber string) string {
	roll := strings.ToUpper(strings.Join(strings.Fields(rollNumber), ""))
	if roll == "" {
		roll = "GEN"
	}
	suffix := 10000 + rand.Intn(90000)
	return fmt.Sprintf("IIITK-LF-%s-%d", roll, suffix)
}

// Per-stage visual states for the status tracker. Not persisted.
const (
	StepCompleted = "completed"
	StepPending   = "pending"
	StepRejected  = "rejected"
	StepIdle      = "idle"
)

type StepStates struct {
	Faculty string `json:"faculty"`
	Warden  string `json:"warden"`
}

// Steps derives the tracker states from the reviewer sub-records. The warden
// step stays idle until the faculty gate has been passed.
func (lr *LeaveRequest) Steps() StepStates {
	s := StepStates{Faculty: StepPending, Warden: StepIdle}
	switch lr.Faculty.Status {
	case ApprovalApproved:
		s.Faculty = StepCompleted
	case ApprovalRejected:
		s.Faculty = StepRejected
	}
	if lr.Faculty.Status == ApprovalApproved {
		switch lr.Warden.Status {
		case ApprovalApproved:
			s.Warden = StepCompleted
		case ApprovalRejected:
			s.Warden = StepRejected
		default:
			s.Warden = StepPending
		}
	}
	return s
}
