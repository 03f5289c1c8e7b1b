package models

import "time"

// Derived event liveness. Never stored: computed from the clock on every read.
const (
	EventUpcoming = "upcoming"
	EventLive     = "live"
	EventClosed   = "closed"
)

// QRPayloadType is the type tag every scanned payload must carry.
const QRPayloadType = "mess-event-attendance"

type MessEvent struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"size:120;not null"`
	Date          string `json:"date" gorm:"size:10;not null"`     // YYYY-MM-DD
	StartTime     string `json:"startTime" gorm:"size:5;not null"` // HH:MM
	EndTime       string `json:"endTime" gorm:"size:5;not null"`   // HH:MM
	QRCode        string `json:"qrCode" gorm:"size:64;not null"`   // opaque, rotatable
	AttendeeCount int64  `json:"attendeeCount" gorm:"not null;default:0"`
	CreatedBy     string `json:"createdBy" gorm:"size:64;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Window resolves [date+startTime, date+endTime] in local time.
func (e *MessEvent) Window() (start, end time.Time, err error) {
	start, err = time.ParseInLocation("2006-01-02 15:04", e.Date+" "+e.StartTime, time.Local)
	if err != nil {
		return
	}
	end, err = time.ParseInLocation("2006-01-02 15:04", e.Date+" "+e.EndTime, time.Local)
	return
}

// StatusAt computes liveness: start ≤ now ≤ end is live, boundaries included.
// Unparseable windows count as closed.
func (e *MessEvent) StatusAt(now time.Time) string {
	start, end, err := e.Window()
	if err != nil {
		return EventClosed
	}
	if now.Before(start) {
		return EventUpcoming
	}
	if !now.After(end) {
		return EventLive
	}
	return EventClosed
}

// QRPayload is the JSON object baked into the event's QR image. Scans are
// trusted only when qrCode matches the current stored token exactly.
type QRPayload struct {
	EventID   uint   `json:"eventId"`
	EventName string `json:"eventName"`
	QRCode    string `json:"qrCode"`
	Type      string `json:"type"`
}

func (e *MessEvent) Payload() QRPayload {
	return QRPayload{EventID: e.ID, EventName: e.Name, QRCode: e.QRCode, Type: QRPayloadType}
}
